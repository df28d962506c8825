package sink

import (
	"context"

	"github.com/matzehuels/gaugegrid/pkg/render"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the pass as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, width, height float64, cfg config.Config, items []series.Item, opts ...PDFOption) ([]byte, *gauge.Result, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg, res, err := RenderSVG(ctx, width, height, cfg, items, r.svgOpts...)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := render.ToPDF(ctx, svg)
	if err != nil {
		return nil, nil, err
	}
	return pdf, res, nil
}
