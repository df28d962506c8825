package sink

import (
	"context"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/matzehuels/gaugegrid/pkg/fonts"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// newHost returns a text host that measures with the embedded fonts, so
// placement matches what the sinks draw.
func newHost(width, height float64) *canvas.MemoryHost {
	host := canvas.NewMemoryHost(width, height)
	host.Default.FontFamily = config.DefaultFontFamily
	host.Measure = func(text string, st canvas.TextStyle) (float64, float64) {
		return fonts.Measure(text, st.FontFamily, st.FontSize)
	}
	return host
}

// draw runs one pass onto surface and returns the text it placed.
func draw(ctx context.Context, surface canvas.Surface, width, height float64, cfg config.Config, items []series.Item, opts []gauge.Option) (*gauge.Result, []textBox, error) {
	host := newHost(width, height)
	res, err := gauge.New(surface, host, opts...).DrawContext(ctx, cfg, items)
	if err != nil {
		return nil, nil, err
	}
	return res, textBoxes(host), nil
}

// textBox is a placed text element resolved for output.
type textBox struct {
	Text     string
	Style    canvas.TextStyle
	X, Y     float64
	W, H     float64
	Baseline float64
	Rotation float64
}

func (b textBox) center() (float64, float64) { return b.X + b.W/2, b.Y + b.H/2 }

func textBoxes(host *canvas.MemoryHost) []textBox {
	elems := host.Elements()
	out := make([]textBox, 0, len(elems))
	for _, el := range elems {
		if el.Content == "" {
			continue
		}
		st := el.Resolved()
		w, h := el.Measure()
		out = append(out, textBox{
			Text:     el.Content,
			Style:    st,
			X:        el.Left,
			Y:        el.Top,
			W:        w,
			H:        h,
			Baseline: el.Top + fonts.Ascent(st.FontFamily, st.FontSize),
			Rotation: el.Rotation,
		})
	}
	return out
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// escapeXML escapes text for attribute values and character data.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
