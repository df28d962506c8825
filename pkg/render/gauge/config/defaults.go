package config

// Default dial span: 0.9π to 2.1π, a 216° arc open at the bottom.
const (
	DefaultStartAngle = 162.0
	DefaultEndAngle   = 378.0
)

// DefaultFontFamily is used by every text element unless overridden.
const DefaultFontFamily = "sans-serif"

// Default returns the configuration every document is overlaid on.
func Default() Config {
	return Config{
		Grid: Grid{
			Show:        false,
			BorderColor: "#545454",
			BorderWidth: 1,
		},
		Layout: Layout{
			Columns: 3,
			Margin:  5,
			HMargin: 5,
			VMargin: 5,
		},
		Cell: Cell{
			Margin: 5,
			VAlign: AlignMiddle,
			Border: Border{Show: true, Color: "black", Width: 1},
		},
		Gauge: Gauge{
			StartAngle: DefaultStartAngle,
			EndAngle:   DefaultEndAngle,
			Min:        0,
			Max:        100,
			Width:      Auto(),
			Background: Fill{Color: "white"},
			Stroke:     Stroke{Color: "lightgray", Width: 2},
			Shadow:     Shadow{Show: true, Blur: 5},
		},
		Label: Text{
			Show:   true,
			Margin: Auto(),
			Font:   Font{Size: Auto(), Family: DefaultFontFamily},
		},
		Value: Text{
			Show:   true,
			Margin: Auto(),
			Font:   Font{Size: Auto(), Family: DefaultFontFamily},
			Format: "%d",
		},
		Threshold: Threshold{
			Show:  true,
			Width: Auto(),
			Values: []Step{
				{Value: 50, Color: "lightgreen"},
				{Value: 80, Color: "yellow"},
				{Value: 100, Color: "red"},
			},
			Label: ThresholdLabel{
				Show:   true,
				Margin: Auto(),
				Font:   Font{Size: Auto(), Family: DefaultFontFamily},
			},
		},
	}
}
