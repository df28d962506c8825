package layout

import (
	"math"

	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
)

// MinStrokeWidth is the narrowest ring a clamped width may produce.
const MinStrokeWidth = 3.0

// Layout is the canvas-wide geometry shared by every cell of one render
// pass. Text margins and font sizes are zero for elements that are hidden.
type Layout struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	Margin       float64 `json:"margin"`
	HMargin      float64 `json:"h_margin"`
	VMargin      float64 `json:"v_margin"`
	Columns      int     `json:"columns"`
	Rows         int     `json:"rows"`
	CellWidth    float64 `json:"cell_width"`
	CellHeight   float64 `json:"cell_height"`
	CellMargin   float64 `json:"cell_margin"`

	LabelMargin            float64 `json:"label_margin"`
	LabelFontSize          float64 `json:"label_font_size"`
	ValueMargin            float64 `json:"value_margin"`
	ValueFontSize          float64 `json:"value_font_size"`
	ThresholdWidth         float64 `json:"threshold_width"`
	ThresholdLabelMargin   float64 `json:"threshold_label_margin"`
	ThresholdLabelFontSize float64 `json:"threshold_label_font_size"`

	Width            float64 `json:"width"`
	Radius           float64 `json:"radius"`
	HeightRatioV     float64 `json:"height_ratio_v"`
	OuterRadius      float64 `json:"outer_radius"`
	GaugeOuterHeight float64 `json:"gauge_outer_height"`
}

// Compute derives the grid layout for seriesCount gauges on a width×height
// canvas.
//
// Automatic fields of cfg are resolved in place from the cell width, so
// callers that need their configuration untouched pass a [config.Config.Clone].
func Compute(width, height float64, seriesCount int, cfg *config.Config) (Layout, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return Layout{}, errors.Layout("canvas must be positive, got %vx%v", width, height)
	}
	columns := min(seriesCount, cfg.Layout.Columns)
	if columns < 1 {
		return Layout{}, errors.Config("grid needs at least one column (series=%d, layout.columns=%d)",
			seriesCount, cfg.Layout.Columns)
	}
	rows := (seriesCount + columns - 1) / columns

	l := Layout{
		CanvasWidth:  width,
		CanvasHeight: height,
		Margin:       cfg.Layout.Margin,
		HMargin:      cfg.Layout.HMargin,
		VMargin:      cfg.Layout.VMargin,
		Columns:      columns,
		Rows:         rows,
		CellMargin:   cfg.Cell.Margin,
	}
	l.CellWidth = (width - 2*l.Margin - l.HMargin*float64(columns-1)) / float64(columns)
	l.CellHeight = (height - 2*l.Margin - l.VMargin*float64(rows-1)) / float64(rows)
	if cfg.Layout.Square {
		side := math.Min(l.CellWidth, l.CellHeight)
		l.CellWidth, l.CellHeight = side, side
	}
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return Layout{}, errors.Layout("margins leave no room for cells (%.2fx%.2f)", l.CellWidth, l.CellHeight)
	}

	cfg.ResolveAuto(l.CellWidth)
	l.resolveText(cfg)

	thresholdAllowance := l.ThresholdWidth + 2*l.ThresholdLabelMargin + l.ThresholdLabelFontSize
	labelAllowance := 2*l.CellMargin + 2*l.LabelMargin + l.LabelFontSize
	valueAllowance := l.ValueMargin + l.ValueFontSize/2

	maxRadiusH := l.CellWidth/2 - l.CellMargin - thresholdAllowance

	l.HeightRatioV = geom.MaxSin(cfg.Gauge.StartAngle, cfg.Gauge.EndAngle)
	outerRadiusV := (l.CellHeight - labelAllowance) / (1 + l.HeightRatioV)
	if outerRadiusV*l.HeightRatioV < valueAllowance {
		outerRadiusV = l.CellHeight - labelAllowance - valueAllowance
	}
	maxRadiusV := outerRadiusV - thresholdAllowance

	l.Radius = math.Min(maxRadiusH, maxRadiusV)
	if l.Radius <= 0 || math.IsNaN(l.Radius) {
		return Layout{}, errors.Layout("cell %.2fx%.2f leaves no room for a dial (radius %.2f)",
			l.CellWidth, l.CellHeight, l.Radius)
	}
	l.Width = StrokeWidth(cfg.Gauge.Width.Value(), l.Radius)

	l.OuterRadius = thresholdAllowance + l.Radius
	l.GaugeOuterHeight = math.Max(l.OuterRadius*(1+l.HeightRatioV), l.OuterRadius+valueAllowance)
	return l, nil
}

// resolveText copies the resolved text and threshold sizes into l, leaving
// zero for hidden elements so they take no room.
func (l *Layout) resolveText(cfg *config.Config) {
	if cfg.Label.Show {
		l.LabelMargin = cfg.Label.Margin.Value()
		l.LabelFontSize = cfg.Label.Font.Size.Value()
	}
	if cfg.Value.Show {
		l.ValueMargin = cfg.Value.Margin.Value()
		l.ValueFontSize = cfg.Value.Font.Size.Value()
	}
	if cfg.Threshold.Show {
		l.ThresholdWidth = cfg.Threshold.Width.Value()
	}
	if cfg.Threshold.Label.Show {
		l.ThresholdLabelMargin = cfg.Threshold.Label.Margin.Value()
		l.ThresholdLabelFontSize = cfg.Threshold.Label.Font.Size.Value()
	}
}

// StrokeWidth returns the configured ring width, or max(3, radius/3) when the
// configured width would fill or overflow the radius.
func StrokeWidth(configured, radius float64) float64 {
	if configured >= radius {
		return math.Max(MinStrokeWidth, radius/3)
	}
	return configured
}

// Cells returns the layout of every cell in index order.
func (l Layout) Cells(cfg *config.Config, n int) []CellLayout {
	cells := make([]CellLayout, n)
	for i := range cells {
		cells[i] = ComputeCell(cfg, l, i)
	}
	return cells
}
