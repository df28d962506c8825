// Package sink provides output format renderers for gauge grids.
//
// # Overview
//
// A "sink" runs a render pass against a concrete drawing target and
// returns the encoded result together with the pass's [gauge.Result]:
//
//   - SVG: vector output with native clip paths and drop-shadow filters
//   - PNG: raster output drawn natively with gg
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: computed layout and per-cell geometry
//
// Every sink measures text with the fonts in package fonts, so labels are
// centered with the metrics they are drawn with.
//
// # SVG Output
//
// [RenderSVG] embeds the fonts it uses as base64 @font-face rules unless
// [WithoutEmbeddedFonts] is given:
//
//	svg, res, err := sink.RenderSVG(ctx, 800, 400, cfg, items,
//	    sink.WithTitle("Cluster health"),
//	)
//
// # PNG Output
//
// [RenderPNG] rasterizes with gg at [WithScale] times the canvas size
// (2 by default). gg has no blur filter, so the inner shadow of gauge
// arcs is approximated with a few translucent strokes.
//
// # PDF Output
//
// [RenderPDF] renders SVG and converts it with [render.ToPDF]. It requires
// librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # JSON Output
//
// [RenderJSON] records the pass without drawing. Use [WithJSONTexts] to
// include placed text and [WithJSONConfig] for the resolved configuration.
//
// [render.ToPDF]: github.com/matzehuels/gaugegrid/pkg/render#ToPDF
package sink
