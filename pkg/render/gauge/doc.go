// Package gauge renders a grid of circular gauges, one per data series.
//
// # Overview
//
// A render pass turns a configuration, a list of series and a canvas into
// drawing calls:
//
//  1. The configuration is validated and its thresholds sorted
//     ([config.Config.Prepare]). Invalid settings stop the pass before
//     anything is drawn.
//  2. [layout.Compute] sizes the grid, resolves automatic fields on the
//     pass's private copy of the configuration and fixes the dial radius.
//  3. Each series gets a [layout.CellLayout]; [arcs] draws its background,
//     frame, value arc and threshold band, and [labels] places its text.
//
// # Drawing Targets
//
// Drawing goes through [canvas.Surface] and text through [canvas.TextHost],
// so the same pass feeds the SVG and PNG sinks, an interactive host or a
// test recorder:
//
//	chart := gauge.New(surface, host)
//	res, err := chart.Draw(cfg, items)
//
// A [Chart] keeps its text elements between passes. Redrawing after a resize
// or a data update moves and rewrites the existing elements, and removes
// the ones whose series are gone.
//
// # Draw Order
//
// Per series: cell background, frame and value arc, threshold band,
// threshold values, value, label. The canvas background comes first.
//
// # Errors
//
// INVALID_CONFIG and DEGENERATE_LAYOUT errors (see package errors) are
// returned before the first drawing call. Readings outside the gauge domain
// are not errors; they pin the dial at its nearest end.
package gauge
