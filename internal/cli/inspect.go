package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/mapping"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// inspectCommand creates the interactive cell browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var input inputFlags

	cmd := &cobra.Command{
		Use:   "inspect <series.json>",
		Short: "Browse the computed cells interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := input.load(args[0])
			if err != nil {
				return err
			}
			pass, err := computePass(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if len(pass.Cells) == 0 {
				printInfo(c.Out, "No series to inspect")
				return nil
			}
			p := tea.NewProgram(newCellModel(pass, opts.Series), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	input.register(cmd)
	return cmd
}

var (
	detailStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// cellModel is the bubbletea model for browsing cells.
type cellModel struct {
	pass   *gauge.Result
	items  []series.Item
	cursor int
}

func newCellModel(pass *gauge.Result, items []series.Item) cellModel {
	return cellModel{pass: pass, items: items}
}

func (m cellModel) Init() tea.Cmd { return nil }

func (m cellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.pass.Cells)-1 {
				m.cursor++
			}
		case "left", "h":
			if m.cursor%m.pass.Layout.Columns > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor%m.pass.Layout.Columns < m.pass.Layout.Columns-1 && m.cursor < len(m.pass.Cells)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.pass.Cells) - 1
		}
	}
	return m, nil
}

func (m cellModel) View() string {
	var b strings.Builder
	l := m.pass.Layout

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Gauge grid %dx%d", l.Columns, l.Rows)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ ←/→ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")
	b.WriteString(cellTable(m.pass, m.items, m.cursor).Render())
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(m.detail()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.pass.Cells))))
	return b.String()
}

// detail describes the selected cell: where it sits and how its reading
// maps onto the dial.
func (m cellModel) detail() string {
	cell := m.pass.Cells[m.cursor]
	it := m.items[m.cursor]
	cfg := &m.pass.Config

	lines := []string{
		StyleValue.Render(it.Label),
		fmt.Sprintf("cell    %s x %s at %s,%s", fnum(cell.CellWidth), fnum(cell.CellHeight), fnum(cell.X), fnum(cell.Y)),
		fmt.Sprintf("center  %s,%s (offset %s)", fnum(cell.CX), fnum(cell.CY), fnum(cell.OffsetY)),
	}
	if v, ok := it.Value(); ok {
		lines = append(lines,
			fmt.Sprintf("value   %s", StyleNumber.Render(fnum(v))),
			fmt.Sprintf("angle   %s° of %s°..%s°", fnum(mapping.Angle(cfg, v)), fnum(cfg.Gauge.StartAngle), fnum(cfg.Gauge.EndAngle)),
			fmt.Sprintf("color   %s", mapping.Color(cfg, v)))
	} else {
		lines = append(lines, StyleDim.Render("no data"))
	}
	return strings.Join(lines, "\n")
}
