// Package render provides the rendering entry points shared by gaugegrid's
// output formats.
//
// # Overview
//
// Gauge grids are drawn by the [gauge] subpackage, which runs a render pass
// against an abstract drawing surface. Its [gauge/sink] subpackage binds that
// pass to concrete formats: SVG, PNG, PDF and a JSON layout dump.
//
// # Format Conversion
//
// [ToPDF] converts an SVG document using the external rsvg-convert tool
// (from librsvg). The PDF sink uses it; [Available] reports whether the
// tool is installed.
//
//	svg, _, err := sink.RenderSVG(ctx, 800, 400, cfg, items)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Cancelling ctx kills the converter process.
//
// [gauge]: github.com/matzehuels/gaugegrid/pkg/render/gauge
// [gauge/sink]: github.com/matzehuels/gaugegrid/pkg/render/gauge/sink
package render
