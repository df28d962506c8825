// Package canvas defines the drawing boundary of the gauge renderer.
//
// A render pass draws arcs and rectangles onto a [Surface] and places text
// through a [TextHost]. Both follow the immediate-mode canvas model: state
// such as clipping and shadows is pushed with Save and popped with Restore,
// and text elements are retained objects that can be updated in place and
// measured after their content is set.
//
// The sinks in package sink provide SVG and raster implementations. This
// package also ships [Recorder] and [MemoryHost], which record what was drawn
// without producing pixels.
package canvas

import (
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
)

// Stroke is an outline colour and line width.
type Stroke struct {
	Color string
	Width float64
}

// Shadow configures the shadow cast by subsequent drawing. The zero Shadow
// casts none.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   string
}

// Enabled reports whether s casts a visible shadow.
func (s Shadow) Enabled() bool { return s.Color != "" && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0) }

// Surface is a 2D drawing target.
//
// Save pushes the current clip and shadow; Restore pops them. Clip
// intersects the current clip with p. Fill and stroke calls with an empty
// colour draw nothing.
type Surface interface {
	Save()
	Restore()
	StrokeRect(r geom.Rect, s Stroke)
	FillRect(r geom.Rect, color string)
	StrokePath(p geom.Path, s Stroke)
	FillPath(p geom.Path, color string)
	Clip(p geom.Path)
	SetShadow(s Shadow)
}

// TextStyle styles a text element. Zero fields inherit the host's default
// styling rather than meaning "none".
type TextStyle struct {
	FontSize   float64
	FontFamily string
	Color      string
	Background string
	Opacity    float64
}

// Merge returns s with every zero field taken from base.
func (s TextStyle) Merge(base TextStyle) TextStyle {
	if s.FontSize == 0 {
		s.FontSize = base.FontSize
	}
	if s.FontFamily == "" {
		s.FontFamily = base.FontFamily
	}
	if s.Color == "" {
		s.Color = base.Color
	}
	if s.Background == "" {
		s.Background = base.Background
	}
	if s.Opacity == 0 {
		s.Opacity = base.Opacity
	}
	return s
}

// TextHost owns positioned text elements laid over the surface.
type TextHost interface {
	// Size returns the host's pixel size.
	Size() (width, height float64)
	// NewText appends an empty element and returns its handle.
	NewText() Text
}

// Text is a retained, positioned text element. Position is the element's
// top-left corner; rotation turns it around its own center.
type Text interface {
	SetText(s string)
	SetStyle(st TextStyle)
	SetPosition(left, top float64)
	SetRotation(deg float64)
	// Measure returns the rendered width and height of the current content.
	Measure() (width, height float64)
	Remove()
}
