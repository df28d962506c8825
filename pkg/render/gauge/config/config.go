// Package config defines the hierarchical gauge configuration: grid layout,
// cell styling, dial geometry, text elements and threshold rules.
//
// # Lifecycle
//
// A Config starts from [Default], is overlaid with a TOML or JSON document
// ([Load], [Decode], [DecodeJSON]) and checked with [Config.Validate]. Each
// render pass works on its own [Config.Clone]; the layout engine calls
// [Config.ResolveAuto] on that clone once the cell width is known, so
// automatic fields track the canvas size across resizes while the caller's
// Config is never mutated.
//
// # Automatic fields
//
// Widths, margins and font sizes are [Size] values: Fixed(n) or Auto().
// Documents spell automatic fields as the string "auto":
//
//	[gauge]
//	width = "auto"
//	startAngle = 162
//	endAngle = 378
//
//	[[threshold.values]]
//	value = 50
//	color = "lightgreen"
package config

import (
	"slices"
)

// VAlign positions the gauge assembly vertically inside its cell.
type VAlign string

// Vertical alignments.
const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
	AlignBottom VAlign = "bottom"
)

// Config is the complete gauge configuration tree.
type Config struct {
	Debug     bool      `toml:"debug" json:"debug,omitempty"`
	Grid      Grid      `toml:"grid" json:"grid"`
	Layout    Layout    `toml:"layout" json:"layout"`
	Cell      Cell      `toml:"cell" json:"cell"`
	Gauge     Gauge     `toml:"gauge" json:"gauge"`
	Label     Text      `toml:"label" json:"label"`
	Value     Text      `toml:"value" json:"value"`
	Threshold Threshold `toml:"threshold" json:"threshold"`
}

// Grid controls the whole-canvas background.
type Grid struct {
	Show            bool    `toml:"show" json:"show"`
	BorderColor     string  `toml:"borderColor" json:"borderColor,omitempty"`
	BorderWidth     float64 `toml:"borderWidth" json:"borderWidth,omitempty"`
	BackgroundColor string  `toml:"backgroundColor" json:"backgroundColor,omitempty"`
}

// Layout controls how cells are arranged on the canvas.
type Layout struct {
	Columns int     `toml:"columns" json:"columns"`
	Margin  float64 `toml:"margin" json:"margin"`
	HMargin float64 `toml:"hMargin" json:"hMargin"`
	VMargin float64 `toml:"vMargin" json:"vMargin"`
	Square  bool    `toml:"square" json:"square"`
}

// Cell controls a single grid slot.
type Cell struct {
	Margin     float64 `toml:"margin" json:"margin"`
	VAlign     VAlign  `toml:"vAlign" json:"vAlign"`
	Border     Border  `toml:"border" json:"border"`
	Background Fill    `toml:"background" json:"background"`
}

// Border is an optional rectangle outline.
type Border struct {
	Show  bool    `toml:"show" json:"show"`
	Color string  `toml:"color" json:"color,omitempty"`
	Width float64 `toml:"width" json:"width,omitempty"`
}

// Fill is an optional fill colour. Opacity applies to text backgrounds only;
// zero means fully opaque.
type Fill struct {
	Color   string  `toml:"color" json:"color,omitempty"`
	Opacity float64 `toml:"opacity" json:"opacity,omitempty"`
}

// Gauge controls the dial: its angular span, value domain and ring styling.
// Angles are degrees, clockwise from the positive x-axis.
type Gauge struct {
	StartAngle float64 `toml:"startAngle" json:"startAngle"`
	EndAngle   float64 `toml:"endAngle" json:"endAngle"`
	Min        float64 `toml:"min" json:"min"`
	Max        float64 `toml:"max" json:"max"`
	Width      Size    `toml:"width" json:"width"`
	Background Fill    `toml:"background" json:"background"`
	Stroke     Stroke  `toml:"stroke" json:"stroke"`
	Shadow     Shadow  `toml:"shadow" json:"shadow"`
}

// Stroke is an outline colour and width.
type Stroke struct {
	Color string  `toml:"color" json:"color,omitempty"`
	Width float64 `toml:"width" json:"width"`
}

// Shadow toggles the inner drop shadow on gauge arcs.
type Shadow struct {
	Show bool    `toml:"show" json:"show"`
	Blur float64 `toml:"blur" json:"blur"`
}

// Font describes text size and family. An empty family inherits the
// surface default.
type Font struct {
	Size   Size   `toml:"size" json:"size"`
	Family string `toml:"family" json:"family,omitempty"`
}

// Text configures the series label or the value readout.
//
// Formatter takes precedence over Format. Format is a fmt verb string applied
// to the raw label (label role) or raw value (value role).
type Text struct {
	Show       bool   `toml:"show" json:"show"`
	Margin     Size   `toml:"margin" json:"margin"`
	Font       Font   `toml:"font" json:"font"`
	Color      string `toml:"color" json:"color,omitempty"`
	Background Fill   `toml:"background" json:"background"`
	Format     string `toml:"format" json:"format,omitempty"`

	// Formatter is set programmatically; documents cannot carry it.
	Formatter func(label string, value float64) string `toml:"-" json:"-"`
}

// ThresholdLabel configures the numbers printed around the threshold band.
type ThresholdLabel struct {
	Show       bool   `toml:"show" json:"show"`
	Margin     Size   `toml:"margin" json:"margin"`
	Font       Font   `toml:"font" json:"font"`
	Color      string `toml:"color" json:"color,omitempty"`
	Background Fill   `toml:"background" json:"background"`
	Format     string `toml:"format" json:"format,omitempty"`

	Formatter func(value float64) string `toml:"-" json:"-"`
}

// Step is one threshold rule: values up to and including Value take Color.
type Step struct {
	Value float64 `toml:"value" json:"value"`
	Color string  `toml:"color" json:"color"`
}

// Threshold configures the coloured band and the value-to-colour rules.
type Threshold struct {
	Show   bool           `toml:"show" json:"show"`
	Width  Size           `toml:"width" json:"width"`
	Values []Step         `toml:"values" json:"values"`
	Label  ThresholdLabel `toml:"label" json:"label"`
}

// Clone returns a deep copy that shares no slices with c.
func (c Config) Clone() Config {
	c.Threshold.Values = slices.Clone(c.Threshold.Values)
	return c
}

// HasFormatters reports whether any text is formatted by a Go func. Funcs
// do not serialise, so such a config has no stable content identity.
func (c Config) HasFormatters() bool {
	return c.Label.Formatter != nil || c.Value.Formatter != nil || c.Threshold.Label.Formatter != nil
}

// SortThresholds orders threshold steps ascending by value. Steps with equal
// values keep their relative order.
func (c *Config) SortThresholds() {
	slices.SortStableFunc(c.Threshold.Values, func(a, b Step) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
}

// ThresholdsSorted reports whether steps are already in ascending order.
func (c *Config) ThresholdsSorted() bool {
	for i := 1; i < len(c.Threshold.Values); i++ {
		if c.Threshold.Values[i].Value < c.Threshold.Values[i-1].Value {
			return false
		}
	}
	return true
}
