package canvas

import (
	"unicode/utf8"
)

// MeasureFunc returns the rendered size of text in a fully resolved style.
type MeasureFunc func(text string, style TextStyle) (width, height float64)

// ApproxMeasure estimates text size from the rune count: 0.6em per glyph and
// one em of height.
func ApproxMeasure(text string, style TextStyle) (float64, float64) {
	return 0.6 * style.FontSize * float64(utf8.RuneCountInString(text)), style.FontSize
}

// MemoryHost is a [TextHost] that keeps elements in memory. Sinks read the
// live elements back with [MemoryHost.Elements] once a pass completes.
type MemoryHost struct {
	Width, Height float64
	// Default is the style unset fields inherit.
	Default TextStyle
	// Measure sizes text. Nil uses [ApproxMeasure].
	Measure MeasureFunc

	elems []*MemoryText
	seq   int
}

// NewMemoryHost returns a host of the given size with a 10px sans-serif
// default style.
func NewMemoryHost(width, height float64) *MemoryHost {
	return &MemoryHost{
		Width:   width,
		Height:  height,
		Default: TextStyle{FontSize: 10, FontFamily: "sans-serif", Color: "black"},
	}
}

// Size implements TextHost.
func (h *MemoryHost) Size() (float64, float64) { return h.Width, h.Height }

// NewText implements TextHost.
func (h *MemoryHost) NewText() Text {
	h.seq++
	t := &MemoryText{ID: h.seq, host: h}
	h.elems = append(h.elems, t)
	return t
}

// Elements returns the live elements in creation order.
func (h *MemoryHost) Elements() []*MemoryText {
	out := make([]*MemoryText, 0, len(h.elems))
	for _, e := range h.elems {
		if !e.removed {
			out = append(out, e)
		}
	}
	return out
}

// Created returns how many elements were ever created, removed ones
// included.
func (h *MemoryHost) Created() int { return h.seq }

// MemoryText is an element of a [MemoryHost].
type MemoryText struct {
	ID       int
	Content  string
	Style    TextStyle
	Left     float64
	Top      float64
	Rotation float64

	host    *MemoryHost
	removed bool
}

func (t *MemoryText) SetText(s string)              { t.Content = s }
func (t *MemoryText) SetStyle(st TextStyle)         { t.Style = st }
func (t *MemoryText) SetPosition(left, top float64) { t.Left, t.Top = left, top }
func (t *MemoryText) SetRotation(deg float64)       { t.Rotation = deg }
func (t *MemoryText) Remove()                       { t.removed = true }

// Resolved returns the element style with inherited fields filled in.
func (t *MemoryText) Resolved() TextStyle { return t.Style.Merge(t.host.Default) }

// Measure implements Text.
func (t *MemoryText) Measure() (float64, float64) {
	measure := t.host.Measure
	if measure == nil {
		measure = ApproxMeasure
	}
	return measure(t.Content, t.Resolved())
}
