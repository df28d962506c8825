package layout

import (
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
)

// CellLayout places one series inside the grid. CX and CY anchor every arc
// and text drawn for it.
type CellLayout struct {
	Index      int     `json:"index"`
	Col        int     `json:"col"`
	Row        int     `json:"row"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	OffsetY    float64 `json:"offset_y"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	CellMargin float64 `json:"cell_margin"`
	CX         float64 `json:"cx"`
	CY         float64 `json:"cy"`
}

// ComputeCell places series i. The dial's top edge sits just below the
// label; the whole assembly then moves down by cell.vAlign's share of the
// unused height.
func ComputeCell(cfg *config.Config, l Layout, i int) CellLayout {
	col, row := i%l.Columns, i/l.Columns
	x := l.Margin + (l.CellWidth+l.HMargin)*float64(col)
	y := l.Margin + (l.CellHeight+l.VMargin)*float64(row)

	cy := y + l.CellMargin + 2*l.LabelMargin + l.LabelFontSize +
		l.ThresholdWidth + l.ThresholdLabelFontSize + 2*l.ThresholdLabelMargin + l.Radius

	blank := l.CellHeight - 2*l.CellMargin - 2*l.LabelMargin - l.LabelFontSize - l.GaugeOuterHeight
	var offsetY float64
	switch cfg.Cell.VAlign {
	case config.AlignMiddle:
		offsetY = blank / 2
	case config.AlignBottom:
		offsetY = blank
	}

	return CellLayout{
		Index:      i,
		Col:        col,
		Row:        row,
		X:          x,
		Y:          y,
		OffsetY:    offsetY,
		CellWidth:  l.CellWidth,
		CellHeight: l.CellHeight,
		CellMargin: l.CellMargin,
		CX:         x + l.CellWidth/2,
		CY:         cy + offsetY,
	}
}

// Bounds returns the cell rectangle.
func (c CellLayout) Bounds() geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, W: c.CellWidth, H: c.CellHeight}
}

// Center returns the dial center.
func (c CellLayout) Center() geom.Point {
	return geom.Point{X: c.CX, Y: c.CY}
}
