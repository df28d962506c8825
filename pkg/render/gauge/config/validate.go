package config

import (
	"github.com/matzehuels/gaugegrid/pkg/errors"
)

// MaxSpan is the largest angular span a dial may cover, in degrees.
const MaxSpan = 360.0

type field struct {
	name  string
	value float64
}

// Validate checks c for settings that cannot be rendered. It reports the
// first problem found as an INVALID_CONFIG error. Automatic sizes are valid
// at any point; fixed sizes must be non-negative.
func (c *Config) Validate() error {
	if c.Layout.Columns < 1 {
		return errors.Config("layout.columns must be >= 1, got %d", c.Layout.Columns)
	}
	for _, f := range []field{
		{"layout.margin", c.Layout.Margin},
		{"layout.hMargin", c.Layout.HMargin},
		{"layout.vMargin", c.Layout.VMargin},
		{"cell.margin", c.Cell.Margin},
		{"cell.border.width", c.Cell.Border.Width},
		{"grid.borderWidth", c.Grid.BorderWidth},
		{"gauge.stroke.width", c.Gauge.Stroke.Width},
		{"gauge.shadow.blur", c.Gauge.Shadow.Blur},
	} {
		if err := errors.ValidateNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	for _, s := range c.sizes() {
		if s.size.IsAuto() {
			continue
		}
		if err := errors.ValidateNonNegative(s.name, s.size.Value()); err != nil {
			return err
		}
	}
	if err := errors.ValidateOneOf("cell.vAlign", string(c.Cell.VAlign),
		string(AlignTop), string(AlignMiddle), string(AlignBottom)); err != nil {
		return err
	}

	g := c.Gauge
	for _, f := range []field{
		{"gauge.min", g.Min},
		{"gauge.max", g.Max},
		{"gauge.startAngle", g.StartAngle},
		{"gauge.endAngle", g.EndAngle},
	} {
		if err := errors.ValidateFinite(f.name, f.value); err != nil {
			return err
		}
	}
	if g.Min >= g.Max {
		return errors.Config("gauge.min (%v) must be < gauge.max (%v)", g.Min, g.Max)
	}
	if g.StartAngle >= g.EndAngle {
		return errors.Config("gauge.startAngle (%v) must be < gauge.endAngle (%v)", g.StartAngle, g.EndAngle)
	}
	if span := g.EndAngle - g.StartAngle; span > MaxSpan {
		return errors.Config("gauge span must be <= %v degrees, got %v", MaxSpan, span)
	}

	if c.Threshold.Show && len(c.Threshold.Values) == 0 {
		return errors.Config("threshold.values is empty while threshold.show is set")
	}
	for i, step := range c.Threshold.Values {
		if err := errors.ValidateFinite("threshold.values.value", step.Value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "threshold %d", i)
		}
	}
	return nil
}

// Prepare returns a validated copy of c with thresholds sorted ascending.
// Render passes work on the copy so the caller's configuration is never
// mutated.
func (c Config) Prepare() (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	out := c.Clone()
	if !out.ThresholdsSorted() {
		out.SortThresholds()
	}
	return out, nil
}
