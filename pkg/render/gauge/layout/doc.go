// Package layout computes the pixel geometry of a gauge grid.
//
// # Overview
//
// A render pass starts here. [Compute] takes the canvas size, the number of
// series and the configuration and returns a [Layout]: the grid shape, the
// cell size, the dial radius and ring width, and the resolved margins and
// font sizes of every text element. [ComputeCell] then places one series in
// its cell and returns the [CellLayout] whose center anchors every arc and
// text drawn for that series.
//
// # Grid
//
// Series fill the grid in row-major order. The number of columns is the
// smaller of the series count and layout.columns, so a single series gets
// the full canvas width:
//
//	columns = min(seriesCount, layout.columns)
//	rows    = ceil(seriesCount / columns)
//
// With layout.square set, cells take the smaller of their width and height
// in both dimensions.
//
// # Radius
//
// The dial radius is the largest one that fits the cell both ways:
//
//   - Horizontally, half the cell width minus the cell margin, the threshold
//     band and the threshold label allowance.
//   - Vertically, the cell height minus the label, scaled by how far the
//     dial's angular span reaches below its center ([geom.MaxSin]). When the
//     span barely dips below center, the value readout under the center is
//     what limits the height instead.
//
// A configured ring width that does not fit inside the radius is clamped to
// max(3, radius/3).
//
// # Errors
//
// A non-positive canvas or a radius that collapses to zero or below is a
// DEGENERATE_LAYOUT error. A grid without columns is INVALID_CONFIG. Both are
// returned before anything is drawn.
package layout
