package labels

import (
	"math"
	"strconv"
	"testing"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/layout"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

func setup(t *testing.T, n int) (*canvas.MemoryHost, *Registry, *config.Config, layout.Layout) {
	t.Helper()
	cfg := config.Default()
	l, err := layout.Compute(600, 300, n, &cfg)
	if err != nil {
		t.Fatalf("layout.Compute() error = %v", err)
	}
	host := canvas.NewMemoryHost(600, 300)
	return host, NewRegistry(host), &cfg, l
}

func item(label string, v float64) series.Item {
	return series.Item{Label: label, Data: []series.Point{{0, v}}}
}

func TestPlaceText(t *testing.T) {
	host := canvas.NewMemoryHost(200, 100)
	reg := NewRegistry(host)
	k := Key{Series: 0, Role: RoleLabel}

	el := reg.PlaceText(k, 100, 10, "hello", canvas.TextStyle{FontSize: 20}).(*canvas.MemoryText)
	if el.Left != 70 || el.Top != 10 {
		t.Errorf("position = (%v, %v), want (70, 10)", el.Left, el.Top)
	}
	if el.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", el.Rotation)
	}

	again := reg.PlaceText(k, 100, 10, "hi", canvas.TextStyle{FontSize: 20}).(*canvas.MemoryText)
	if again != el || host.Created() != 1 {
		t.Fatalf("PlaceText() created %d elements, want reuse", host.Created())
	}
	if el.Content != "hi" || el.Left != 100-12 {
		t.Errorf("updated element = %q at %v, want \"hi\" at 88", el.Content, el.Left)
	}
}

func TestPlaceTextInheritsStyle(t *testing.T) {
	host := canvas.NewMemoryHost(200, 100)
	reg := NewRegistry(host)
	el := reg.PlaceText(Key{Role: RoleLabel}, 50, 0, "ab", canvas.TextStyle{}).(*canvas.MemoryText)
	if got := el.Resolved().FontSize; got != 10 {
		t.Errorf("inherited font size = %v, want host default 10", got)
	}
	if el.Left != 50-6 {
		t.Errorf("left = %v, want %v", el.Left, 50-6)
	}
}

func TestPlaceRotated(t *testing.T) {
	tests := []struct {
		angle    float64
		rotation float64
	}{
		{0, 90},
		{-90, 0},
		{270, 360},
		{162, 252},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.angle, 'f', -1, 64), func(t *testing.T) {
			reg := NewRegistry(canvas.NewMemoryHost(200, 200))
			el := reg.PlaceRotated(Key{Role: RoleThreshold, Marker: "min"}, 100, 100, tt.angle, "50",
				canvas.TextStyle{FontSize: 10}).(*canvas.MemoryText)
			if el.Rotation != tt.rotation {
				t.Errorf("rotation = %v, want %v", el.Rotation, tt.rotation)
			}
			if el.Left != 94 || el.Top != 95 {
				t.Errorf("position = (%v, %v), want centered at (94, 95)", el.Left, el.Top)
			}
		})
	}
}

func TestLabelAndValue(t *testing.T) {
	host, reg, cfg, l := setup(t, 1)
	c := layout.ComputeCell(cfg, l, 0)
	r := New(reg, cfg, l)

	label := r.Label(c, item("CPU", 63.5)).(*canvas.MemoryText)
	if label.Content != "CPU" {
		t.Errorf("label = %q, want CPU", label.Content)
	}
	if want := c.Y + c.CellMargin + l.LabelMargin + c.OffsetY; label.Top != want {
		t.Errorf("label top = %v, want %v", label.Top, want)
	}

	value := r.Value(c, item("CPU", 63.5)).(*canvas.MemoryText)
	if value.Content != "64" {
		t.Errorf("value = %q, want 64", value.Content)
	}
	if want := c.CY - l.ValueFontSize/2; value.Top != want {
		t.Errorf("value top = %v, want %v", value.Top, want)
	}
	w, _ := value.Measure()
	if math.Abs(value.Left+w/2-c.CX) > 1e-9 {
		t.Errorf("value not centered on cx: left %v width %v cx %v", value.Left, w, c.CX)
	}
	if got := value.Style.FontFamily; got != config.DefaultFontFamily {
		t.Errorf("value font family = %q", got)
	}
	if host.Created() != 2 {
		t.Errorf("created = %d, want 2", host.Created())
	}
}

func TestTextFormatting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		item   series.Item
		label  string
		value  string
	}{
		{
			name:   "defaults",
			mutate: func(c *config.Config) {},
			item:   item("Disk", 91.2),
			label:  "Disk",
			value:  "91",
		},
		{
			name:   "default truncates",
			mutate: func(c *config.Config) {},
			item:   item("Disk", 59.7),
			label:  "Disk",
			value:  "59",
		},
		{
			name:   "truncates toward zero",
			mutate: func(c *config.Config) {},
			item:   item("Delta", -0.5),
			label:  "Delta",
			value:  "0",
		},
		{
			name:   "padded integer",
			mutate: func(c *config.Config) { c.Value.Format = "%03d rpm" },
			item:   item("Fan", 7.9),
			label:  "Fan",
			value:  "007 rpm",
		},
		{
			name:   "raw value",
			mutate: func(c *config.Config) { c.Value.Format = "" },
			item:   item("Disk", 91.25),
			label:  "Disk",
			value:  "91.25",
		},
		{
			name: "printf formats",
			mutate: func(c *config.Config) {
				c.Label.Format = "[%s]"
				c.Value.Format = "%.1f%%"
			},
			item:  item("Mem", 42),
			label: "[Mem]",
			value: "42.0%",
		},
		{
			name: "formatters win",
			mutate: func(c *config.Config) {
				c.Label.Format = "ignored %s"
				c.Label.Formatter = func(label string, v float64) string { return label + "=" + strconv.Itoa(int(v)) }
				c.Value.Formatter = func(label string, v float64) string { return "v" + strconv.Itoa(int(v)) }
			},
			item:  item("Net", 7),
			label: "Net=7",
			value: "v7",
		},
		{
			name:   "no data",
			mutate: func(c *config.Config) {},
			item:   series.Item{Label: "Empty"},
			label:  "Empty",
			value:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reg, cfg, l := setup(t, 1)
			tt.mutate(cfg)
			c := layout.ComputeCell(cfg, l, 0)
			r := New(reg, cfg, l)

			if got := r.Label(c, tt.item).(*canvas.MemoryText).Content; got != tt.label {
				t.Errorf("label = %q, want %q", got, tt.label)
			}
			if got := r.Value(c, tt.item).(*canvas.MemoryText).Content; got != tt.value {
				t.Errorf("value = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestSprintNumber(t *testing.T) {
	tests := []struct {
		format string
		v      float64
		want   string
	}{
		{"%d", 59.7, "59"},
		{"%d", -3.9, "-3"},
		{"%[1]d%%", 12.3, "12%"},
		{"%x", 255.9, "ff"},
		{"%.1f%%", 59.74, "59.7%"},
		{"%5.1f", 3, "  3.0"},
		{"load %g", 0.25, "load 0.25"},
	}

	for _, tt := range tests {
		if got := sprintNumber(tt.format, tt.v); got != tt.want {
			t.Errorf("sprintNumber(%q, %v) = %q, want %q", tt.format, tt.v, got, tt.want)
		}
	}
}

func TestThresholdValues(t *testing.T) {
	_, reg, cfg, l := setup(t, 1)
	c := layout.ComputeCell(cfg, l, 0)
	r := New(reg, cfg, l)

	els := r.ThresholdValues(c)
	// min, max, 50 and 80; 100 coincides with max.
	want := []string{"0", "100", "50", "80"}
	if len(els) != len(want) {
		t.Fatalf("ThresholdValues() = %d labels, want %d", len(els), len(want))
	}
	dist := l.ThresholdLabelMargin + l.ThresholdLabelFontSize/2 + l.Radius
	angles := []float64{cfg.Gauge.StartAngle, cfg.Gauge.EndAngle}
	for i, el := range els {
		mt := el.(*canvas.MemoryText)
		if mt.Content != want[i] {
			t.Errorf("label %d = %q, want %q", i, mt.Content, want[i])
		}
		if i < 2 {
			p := geom.Polar(c.CX, c.CY, dist, geom.Radians(angles[i]))
			w, h := mt.Measure()
			if math.Abs(mt.Left+w/2-p.X) > 1e-9 || math.Abs(mt.Top+h/2-p.Y) > 1e-9 {
				t.Errorf("label %d centered at (%v, %v), want (%v, %v)", i, mt.Left+w/2, mt.Top+h/2, p.X, p.Y)
			}
			if mt.Rotation != angles[i]+90 {
				t.Errorf("label %d rotation = %v, want %v", i, mt.Rotation, angles[i]+90)
			}
		}
	}

	cfg.Threshold.Label.Formatter = func(v float64) string { return strconv.Itoa(int(v)) + "!" }
	if got := r.ThresholdValues(c)[0].(*canvas.MemoryText).Content; got != "0!" {
		t.Errorf("formatted min = %q, want 0!", got)
	}
	if reg.Len() != 4 {
		t.Errorf("registry holds %d elements after redraw, want 4", reg.Len())
	}
}

func TestRegistryPassEviction(t *testing.T) {
	host, reg, cfg, l := setup(t, 3)
	r := New(reg, cfg, l)

	draw := func(n int) {
		reg.Begin()
		for i := 0; i < n; i++ {
			c := layout.ComputeCell(cfg, l, i)
			r.Label(c, item("s"+strconv.Itoa(i), 1))
			r.Value(c, item("s"+strconv.Itoa(i), 1))
		}
		reg.End()
	}

	draw(3)
	if reg.Len() != 6 || len(host.Elements()) != 6 {
		t.Fatalf("after 3 series: registry %d, host %d; want 6", reg.Len(), len(host.Elements()))
	}
	draw(3)
	if host.Created() != 6 {
		t.Errorf("redraw created %d elements, want 6 total", host.Created())
	}
	draw(1)
	if reg.Len() != 2 || len(host.Elements()) != 2 {
		t.Errorf("after shrink: registry %d, host %d; want 2", reg.Len(), len(host.Elements()))
	}
	if _, ok := reg.elems[Key{Series: 2, Role: RoleLabel}]; ok {
		t.Error("evicted element still registered")
	}
}
