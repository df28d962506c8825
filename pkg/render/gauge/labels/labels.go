// Package labels places the text of a gauge grid: the series label above
// each dial, the reading at its center and the threshold values around it.
//
// Text is measured by the host after its content is set, and every element
// is re-centered horizontally on its anchor using that measurement.
// Threshold values are also centered vertically and turned to read radially
// outward from the dial.
package labels

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/layout"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/mapping"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// Renderer places text for one render pass.
type Renderer struct {
	reg    *Registry
	cfg    *config.Config
	layout layout.Layout
}

// New returns a Renderer. cfg must already be resolved by [layout.Compute].
func New(reg *Registry, cfg *config.Config, l layout.Layout) *Renderer {
	return &Renderer{reg: reg, cfg: cfg, layout: l}
}

// Label places the series label centered above the dial.
func (r *Renderer) Label(c layout.CellLayout, it series.Item) canvas.Text {
	v, _ := it.Value()
	y := c.Y + c.CellMargin + r.layout.LabelMargin + c.OffsetY
	return r.reg.PlaceText(Key{Series: c.Index, Role: RoleLabel}, c.CX, y,
		labelText(r.cfg.Label, it.Label, v), style(r.cfg.Label.Font, r.cfg.Label.Color, r.cfg.Label.Background))
}

// Value places the reading centered on the dial. A series without data gets
// an empty readout.
func (r *Renderer) Value(c layout.CellLayout, it series.Item) canvas.Text {
	text := ""
	if v, ok := it.Value(); ok {
		text = valueText(r.cfg.Value, it.Label, v)
	}
	y := c.CY - r.layout.ValueFontSize/2
	return r.reg.PlaceText(Key{Series: c.Index, Role: RoleValue}, c.CX, y,
		text, style(r.cfg.Value.Font, r.cfg.Value.Color, r.cfg.Value.Background))
}

// ThresholdValues places the min and max labels and one label per threshold
// step strictly inside the domain. Each label is centered radius + margin +
// fontSize/2 from the dial center. The distance starts at the gauge radius,
// not at the band's outer edge, so a band wider than the margin runs under
// the labels.
func (r *Renderer) ThresholdValues(c layout.CellLayout) []canvas.Text {
	tl := r.cfg.Threshold.Label
	dist := r.layout.ThresholdLabelMargin + r.layout.ThresholdLabelFontSize/2 + r.layout.Radius
	st := style(tl.Font, tl.Color, tl.Background)

	markers := mapping.Markers(r.cfg)
	out := make([]canvas.Text, 0, len(markers))
	for _, m := range markers {
		p := geom.Polar(c.CX, c.CY, dist, geom.Radians(m.Angle))
		key := Key{Series: c.Index, Role: RoleThreshold, Marker: m.Key}
		out = append(out, r.reg.PlaceRotated(key, p.X, p.Y, m.Angle, thresholdText(tl, m.Value), st))
	}
	return out
}

// PlaceText sets the element for k to text and centers it horizontally on
// x with its top edge at y.
func (r *Registry) PlaceText(k Key, x, y float64, text string, st canvas.TextStyle) canvas.Text {
	el := r.acquire(k)
	place(el, x, y, text, st, false)
	return el
}

// PlaceRotated sets the element for k to text, centers it on (x, y) and
// turns it by [Rotation] so it reads outward from a dial lying in
// direction angle+180.
func (r *Registry) PlaceRotated(k Key, x, y, angle float64, text string, st canvas.TextStyle) canvas.Text {
	el := r.acquire(k)
	place(el, x, y, text, st, true)
	el.SetRotation(Rotation(angle))
	return el
}

// Rotation returns the turn, in degrees, applied to a threshold label at
// angle degrees.
func Rotation(angle float64) float64 { return angle + 90 }

// place updates el and positions it from its measured size. The style is
// applied before measuring since it changes the glyph metrics.
func place(el canvas.Text, x, y float64, text string, st canvas.TextStyle, middle bool) {
	el.SetStyle(st)
	el.SetText(text)
	w, h := el.Measure()
	top := y
	if middle {
		top -= h / 2
	}
	el.SetPosition(x-w/2, top)
}

func style(f config.Font, color string, bg config.Fill) canvas.TextStyle {
	return canvas.TextStyle{
		FontSize:   f.Size.Value(),
		FontFamily: f.Family,
		Color:      color,
		Background: bg.Color,
		Opacity:    bg.Opacity,
	}
}

func labelText(t config.Text, label string, v float64) string {
	switch {
	case t.Formatter != nil:
		return t.Formatter(label, v)
	case t.Format != "":
		return fmt.Sprintf(t.Format, label)
	}
	return label
}

func valueText(t config.Text, label string, v float64) string {
	switch {
	case t.Formatter != nil:
		return t.Formatter(label, v)
	case t.Format != "":
		return sprintNumber(t.Format, v)
	}
	return formatNumber(v)
}

func thresholdText(t config.ThresholdLabel, v float64) string {
	switch {
	case t.Formatter != nil:
		return t.Formatter(v)
	case t.Format != "":
		return sprintNumber(t.Format, v)
	}
	return formatNumber(v)
}

// sprintNumber formats v with a printf format. Integer verbs get v
// truncated toward zero, so "%d" shows 59.7 as 59.
func sprintNumber(format string, v float64) string {
	if integerVerb(format) && math.Abs(v) < 1<<63 {
		return fmt.Sprintf(format, int64(v))
	}
	return fmt.Sprintf(format, v)
}

// integerVerb reports whether the first verb of format takes an integer.
func integerVerb(format string) bool {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0123456789.*[]", format[i]) >= 0 {
			i++
		}
		if i == len(format) {
			return false
		}
		switch format[i] {
		case '%':
			continue
		case 'd', 'o', 'O', 'x', 'X', 'c', 'U':
			return true
		}
		return false
	}
	return false
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
