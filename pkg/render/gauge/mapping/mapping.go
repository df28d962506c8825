// Package mapping turns a gauge reading into a dial angle and a threshold
// colour.
package mapping

import (
	"strconv"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
)

// FallbackColor colours the value arc when no threshold steps are
// configured.
const FallbackColor = "lightgreen"

// Angle interpolates v from [gauge.min, gauge.max] onto
// [gauge.startAngle, gauge.endAngle] and returns degrees. Readings outside
// the domain clamp to the nearest end of the dial.
func Angle(cfg *config.Config, v float64) float64 {
	g := cfg.Gauge
	a := g.StartAngle + (g.EndAngle-g.StartAngle)*((v-g.Min)/(g.Max-g.Min))
	switch {
	case a < g.StartAngle:
		return g.StartAngle
	case a > g.EndAngle:
		return g.EndAngle
	}
	return a
}

// Color returns the colour of the first threshold step whose value is at
// least v, or the last step's colour when v exceeds them all. Steps must be
// sorted ascending (see [config.Config.Prepare]).
func Color(cfg *config.Config, v float64) string {
	steps := cfg.Threshold.Values
	if len(steps) == 0 {
		return FallbackColor
	}
	for _, s := range steps {
		if v <= s.Value {
			return s.Color
		}
	}
	return steps[len(steps)-1].Color
}

// Segment is one coloured stretch of the threshold band, in degrees.
type Segment struct {
	Start, End float64
	Color      string
}

// Bands splits the dial into threshold segments. The first segment starts at
// gauge.startAngle and each segment ends at its step's mapped angle, so
// steps beyond the domain collapse into zero-length segments at the ends.
func Bands(cfg *config.Config) []Segment {
	out := make([]Segment, 0, len(cfg.Threshold.Values))
	a1 := cfg.Gauge.StartAngle
	for _, s := range cfg.Threshold.Values {
		a2 := Angle(cfg, s.Value)
		out = append(out, Segment{Start: a1, End: a2, Color: s.Color})
		a1 = a2
	}
	return out
}

// Marker is a value printed around the threshold band.
type Marker struct {
	// Key is stable per marker within one gauge: "min", "max", or the
	// threshold step index.
	Key   string
	Value float64
	Angle float64
}

// Markers lists the threshold labels of a dial: min, max, and every step
// strictly inside the domain. Steps equal to min or max are skipped so they
// do not print on top of the end labels.
func Markers(cfg *config.Config) []Marker {
	g := cfg.Gauge
	out := []Marker{
		{Key: "min", Value: g.Min, Angle: g.StartAngle},
		{Key: "max", Value: g.Max, Angle: g.EndAngle},
	}
	for j, s := range cfg.Threshold.Values {
		if s.Value > g.Min && s.Value < g.Max {
			out = append(out, Marker{Key: "step" + strconv.Itoa(j), Value: s.Value, Angle: Angle(cfg, s.Value)})
		}
	}
	return out
}
