// Package arcs draws the rectangles and rings of a gauge grid: the canvas
// and cell backgrounds, the dial frame, the value arc and the threshold band.
//
// Ring radii are chosen so the frame's outer edge lies on the layout radius.
// The value arc sits 1px inside the frame on both edges, and the threshold
// band runs just outside it:
//
//	frame      radius-width .. radius
//	value      radius-width+1 .. radius-1
//	threshold  radius+2 .. radius+thresholdWidth
package arcs

import (
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/layout"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/mapping"
)

// The inner shadow is always a 10px gray blur centered on the arc; the
// configured blur only switches it on.
const (
	ShadowBlur  = 10.0
	ShadowColor = "gray"
)

// Renderer draws onto one surface for one render pass.
type Renderer struct {
	surface canvas.Surface
	cfg     *config.Config
	layout  layout.Layout
}

// New returns a Renderer. cfg must already be resolved by [layout.Compute].
func New(s canvas.Surface, cfg *config.Config, l layout.Layout) *Renderer {
	return &Renderer{surface: s, cfg: cfg, layout: l}
}

// Background fills and outlines the whole canvas when grid.show is set.
func (r *Renderer) Background() {
	g := r.cfg.Grid
	if !g.Show {
		return
	}
	rect := geom.Rect{W: r.layout.CanvasWidth, H: r.layout.CanvasHeight}
	r.surface.Save()
	if g.BackgroundColor != "" {
		r.surface.FillRect(rect, g.BackgroundColor)
	}
	if g.BorderColor != "" && g.BorderWidth > 0 {
		r.surface.StrokeRect(rect, canvas.Stroke{Color: g.BorderColor, Width: g.BorderWidth})
	}
	r.surface.Restore()
}

// CellBackground fills and outlines one cell.
func (r *Renderer) CellBackground(c layout.CellLayout) {
	cell := r.cfg.Cell
	rect := c.Bounds()
	r.surface.Save()
	if cell.Background.Color != "" {
		r.surface.FillRect(rect, cell.Background.Color)
	}
	if b := cell.Border; b.Show && b.Color != "" && b.Width > 0 {
		r.surface.StrokeRect(rect, canvas.Stroke{Color: b.Color, Width: b.Width})
	}
	r.surface.Restore()
}

// Frame draws the full-span dial ring.
func (r *Renderer) Frame(c layout.CellLayout) {
	g := r.cfg.Gauge
	r.ring(c, r.layout.Radius-r.layout.Width/2, r.layout.Width,
		g.StartAngle, g.EndAngle, g.Stroke.Color, g.Stroke.Width, g.Background.Color, r.shadowed())
}

// Value draws the arc from the dial start to v's angle in v's threshold
// colour.
func (r *Renderer) Value(c layout.CellLayout, v float64) {
	color := mapping.Color(r.cfg, v)
	r.ring(c, r.layout.Radius-r.layout.Width/2, r.layout.Width-2,
		r.cfg.Gauge.StartAngle, mapping.Angle(r.cfg, v), color, 1, color, r.shadowed())
}

// ThresholdBand draws one segment per threshold step around the dial.
func (r *Renderer) ThresholdBand(c layout.CellLayout) {
	tw := r.layout.ThresholdWidth
	for _, seg := range mapping.Bands(r.cfg) {
		r.ring(c, r.layout.Radius+tw/2+1, tw-2, seg.Start, seg.End, seg.Color, 1, seg.Color, false)
	}
}

func (r *Renderer) shadowed() bool {
	s := r.cfg.Gauge.Shadow
	return s.Show && s.Blur != 0
}

// ring fills and strokes a ring sector between two angles in degrees. With
// shadow set, a gray blur is cast inward from the sector's edges: the
// sector becomes the clip and a slightly larger outline is stroked with the
// shadow on, so only the blur falling inside the sector shows.
func (r *Renderer) ring(c layout.CellLayout, radius, width, a1, a2 float64, line string, lineWidth float64, fill string, shadow bool) {
	if a1 == a2 {
		return
	}
	rad1, rad2 := geom.Radians(a1), geom.Radians(a2)
	path := geom.Ring(c.CX, c.CY, radius, width, rad1, rad2)

	r.surface.Save()
	defer r.surface.Restore()

	r.surface.FillPath(path, fill)
	r.surface.StrokePath(path, canvas.Stroke{Color: line, Width: lineWidth})
	if !shadow {
		return
	}
	r.surface.Clip(path)
	r.surface.SetShadow(canvas.Shadow{Blur: ShadowBlur, Color: ShadowColor})
	r.surface.StrokePath(geom.Ring(c.CX, c.CY, radius, width+2, rad1, rad2), canvas.Stroke{Color: line, Width: 1})
}
