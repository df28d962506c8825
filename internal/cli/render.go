package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/pipeline"
	"github.com/matzehuels/gaugegrid/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    inputFlags
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // comma-separated output formats
	scale    float64 // PNG scale factor
	title    string  // SVG/PDF document title
	noFonts  bool    // reference fonts by name instead of embedding them
	noCache  bool    // disable the artifact cache
	refresh  bool    // re-render even when cached
	redisURL string  // Redis artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <series.json>",
		Short: "Render a gauge grid to SVG, PNG, PDF or JSON",
		Long: `Render a gauge grid from a series file.

The series file is a JSON array of {"label", "data"} items; the first point's
y value is the reading. Gauge appearance comes from a TOML config (-c) laid
over the defaults; print them with 'gaugegrid config'.

With one format the output goes to -o (or <input>.<format>); with several,
-o is a base path and each format gets its own extension. Use -o - to write
a single format to stdout.

Rendered artifacts are cached by content, locally or in Redis (--redis or
GAUGEGRID_REDIS_URL).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (SVG, PDF)")
	cmd.Flags().BoolVar(&opts.noFonts, "no-fonts", false, "do not embed fonts in SVG/PDF output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache (default $"+envRedisURL+")")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := pipeline.ParseFormats(ro.formats)
	if err != nil {
		return err
	}
	if slices.Contains(formats, pipeline.FormatPDF) && !render.Available() {
		printWarning(c.Out, "skipping pdf: %s not found in PATH", render.ConverterBinary)
		formats = slices.DeleteFunc(formats, func(f string) bool { return f == pipeline.FormatPDF })
	}
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeUnsupported, "no output format available")
	}
	if ro.output == "-" && len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(formats))
	}

	opts, err := ro.input.load(input)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Scale = ro.scale
	opts.Title = ro.title
	opts.NoFonts = ro.noFonts
	opts.Refresh = ro.refresh
	opts.Logger = logger
	logger.Debugf("Loaded %d series from %s", len(opts.Series), input)

	runner, err := c.newRunner(ctx, ro.noCache, ro.redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := newSpinner(ctx, c.Err, "Rendering "+strings.Join(formats, ", ")+"...")
	sp.Start()
	result, err := runner.Execute(ctx, opts)
	sp.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d gauges", result.Stats.SeriesCount))

	base := basePath(ro.output, input)
	for _, format := range formats {
		path := outputPath(ro.output, base, format, len(formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		if path != "-" {
			printFile(c.Out, path)
		}
	}

	if ro.output != "-" {
		cols, rows := 0, 0
		if result.Pass != nil {
			cols, rows = result.Pass.Layout.Columns, result.Pass.Layout.Rows
		}
		printStats(c.Out, result.Stats.SeriesCount, cols, rows, result.CacheHit)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format honours an
// explicit output path verbatim.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	return base + "." + format
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
