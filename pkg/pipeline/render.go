package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/sink"
)

// Render produces one format. opts must have been validated.
func Render(ctx context.Context, opts Options, format string) ([]byte, *gauge.Result, error) {
	gaugeOpts := []gauge.Option{gauge.WithLogger(opts.Logger)}
	svgOpts := []sink.SVGOption{sink.WithSVGGaugeOptions(gaugeOpts...)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.NoFonts {
		svgOpts = append(svgOpts, sink.WithoutEmbeddedFonts())
	}

	w, h, cfg, items := opts.Width, opts.Height, opts.Config, opts.Series
	switch format {
	case FormatSVG:
		return sink.RenderSVG(ctx, w, h, cfg, items, svgOpts...)
	case FormatPNG:
		return sink.RenderPNG(ctx, w, h, cfg, items,
			sink.WithScale(opts.Scale), sink.WithPNGGaugeOptions(gaugeOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, w, h, cfg, items, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(ctx, w, h, cfg, items,
			sink.WithJSONTexts(), sink.WithJSONGaugeOptions(gaugeOpts...))
	}
	return nil, nil, fmt.Errorf("unsupported format: %s", format)
}
