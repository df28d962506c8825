package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/pipeline"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/mapping"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// layoutCommand creates the layout command, which prints the computed grid
// without rendering any output file.
func (c *CLI) layoutCommand() *cobra.Command {
	var input inputFlags

	cmd := &cobra.Command{
		Use:   "layout <series.json>",
		Short: "Print the grid layout and per-cell geometry",
		Long: `Print the grid layout and per-cell geometry.

The layout command runs a render pass without output and prints the derived
geometry: grid dimensions, cell size, dial radius and width, resolved font
sizes, then one row per gauge with its reading, colour and anchor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := input.load(args[0])
			if err != nil {
				return err
			}
			pass, err := computePass(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printLayout(c.Out, pass, opts.Series)
			return nil
		},
	}
	input.register(cmd)
	return cmd
}

// computePass validates opts and runs a pass on an in-memory canvas.
func computePass(ctx context.Context, opts pipeline.Options) (*gauge.Result, error) {
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var rec canvas.Recorder
	host := canvas.NewMemoryHost(opts.Width, opts.Height)
	return gauge.New(&rec, host, gauge.WithLogger(opts.Logger)).DrawContext(ctx, opts.Config, opts.Series)
}

func printLayout(w io.Writer, pass *gauge.Result, items []series.Item) {
	l := pass.Layout
	fmt.Fprintln(w, StyleTitle.Render("Layout"))
	printKeyValue(w, "canvas", fmt.Sprintf("%s x %s", fnum(l.CanvasWidth), fnum(l.CanvasHeight)))
	if len(items) == 0 {
		printDetail(w, "no series; only the background is drawn")
		return
	}
	printKeyValue(w, "grid", fmt.Sprintf("%d columns x %d rows", l.Columns, l.Rows))
	printKeyValue(w, "cell", fmt.Sprintf("%s x %s", fnum(l.CellWidth), fnum(l.CellHeight)))
	printKeyValue(w, "dial", fmt.Sprintf("radius %s, width %s", fnum(l.Radius), fnum(l.Width)))
	printKeyValue(w, "fonts", fmt.Sprintf("label %s, value %s, threshold %s",
		fnum(l.LabelFontSize), fnum(l.ValueFontSize), fnum(l.ThresholdLabelFontSize)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, cellTable(pass, items, -1).Render())
}

// cellTable tabulates every cell. The row at selected, if any, is
// highlighted.
func cellTable(pass *gauge.Result, items []series.Item, selected int) *table.Table {
	rows := make([][]string, 0, len(pass.Cells))
	for i, cell := range pass.Cells {
		reading, color := "-", "-"
		if v, ok := items[i].Value(); ok {
			reading = fnum(v)
			color = mapping.Color(&pass.Config, v)
		}
		rows = append(rows, []string{
			strconv.Itoa(cell.Index),
			items[i].Label,
			reading,
			color,
			fmt.Sprintf("%d,%d", cell.Col, cell.Row),
			fmt.Sprintf("%s,%s", fnum(cell.X), fnum(cell.Y)),
			fmt.Sprintf("%s,%s", fnum(cell.CX), fnum(cell.CY)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Value", "Color", "Col,Row", "X,Y", "Center").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == selected:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 2:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
}

// fnum formats a coordinate with at most two decimals.
func fnum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
