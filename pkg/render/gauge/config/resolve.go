package config

// Ratios of the cell width used for automatic fields, with their floors.
const (
	gaugeWidthRatio           = 8
	labelMarginRatio          = 20
	labelFontRatio            = 8
	valueMarginRatio          = 30
	valueFontRatio            = 9
	thresholdWidthRatio       = 100
	thresholdLabelMarginRatio = 40
	thresholdLabelFontRatio   = 15
)

// ResolveAuto replaces every automatic field with a value derived from the
// cell width. Fields already fixed are left alone, so a second call is a
// no-op.
func (c *Config) ResolveAuto(cellWidth float64) {
	c.Gauge.Width.resolve(cellWidth/gaugeWidthRatio, 5)

	c.Label.Margin.resolve(cellWidth/labelMarginRatio, 1)
	c.Label.Font.Size.resolve(cellWidth/labelFontRatio, 5)

	c.Value.Margin.resolve(cellWidth/valueMarginRatio, 1)
	c.Value.Font.Size.resolve(cellWidth/valueFontRatio, 5)

	c.Threshold.Width.resolve(cellWidth/thresholdWidthRatio, 3)
	c.Threshold.Label.Margin.resolve(cellWidth/thresholdLabelMarginRatio, 3)
	c.Threshold.Label.Font.Size.resolve(cellWidth/thresholdLabelFontRatio, 5)
}

type namedSize struct {
	name string
	size Size
}

func (c *Config) sizes() []namedSize {
	return []namedSize{
		{"gauge.width", c.Gauge.Width},
		{"label.margin", c.Label.Margin},
		{"label.font.size", c.Label.Font.Size},
		{"value.margin", c.Value.Margin},
		{"value.font.size", c.Value.Font.Size},
		{"threshold.width", c.Threshold.Width},
		{"threshold.label.margin", c.Threshold.Label.Margin},
		{"threshold.label.font.size", c.Threshold.Label.Font.Size},
	}
}
