package sink

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/gaugegrid/pkg/fonts"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gaugeOpts []gauge.Option
	title     string
	noFonts   bool
}

// WithSVGGaugeOptions passes options through to the render pass.
func WithSVGGaugeOptions(opts ...gauge.Option) SVGOption {
	return func(r *svgRenderer) { r.gaugeOpts = opts }
}

func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }
func WithoutEmbeddedFonts() SVGOption  { return func(r *svgRenderer) { r.noFonts = true } }

// RenderSVG runs a pass on a width x height canvas and returns it as a
// standalone SVG document.
func RenderSVG(ctx context.Context, width, height float64, cfg config.Config, items []series.Item, opts ...SVGOption) ([]byte, *gauge.Result, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	s := newSVGSurface()
	res, texts, err := draw(ctx, s, width, height, cfg, items, r.gaugeOpts)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	buf.WriteString("  <defs>\n")
	if !r.noFonts {
		writeFontFaces(&buf, texts)
	}
	buf.Write(s.defs.Bytes())
	buf.WriteString("  </defs>\n")
	buf.Write(s.body.Bytes())
	writeTexts(&buf, texts, !r.noFonts)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), res, nil
}

// svgState is the part of the surface state Save and Restore track. groups
// counts the clip groups opened since the matching Save.
type svgState struct {
	shadow canvas.Shadow
	groups int
}

// svgSurface emits SVG elements. Clips become nested groups referencing a
// clipPath, so Restore closes the groups its Save opened; shadows become a
// feDropShadow filter on each element drawn while they are set.
type svgSurface struct {
	body    bytes.Buffer
	defs    bytes.Buffer
	state   svgState
	stack   []svgState
	clips   int
	filters map[canvas.Shadow]string
}

func newSVGSurface() *svgSurface {
	return &svgSurface{filters: make(map[canvas.Shadow]string)}
}

func (s *svgSurface) Save() {
	s.stack = append(s.stack, s.state)
	s.state.groups = 0
}

func (s *svgSurface) Restore() {
	for i := 0; i < s.state.groups; i++ {
		s.body.WriteString("  </g>\n")
	}
	if n := len(s.stack); n > 0 {
		s.state = s.stack[n-1]
		s.stack = s.stack[:n-1]
		return
	}
	s.state = svgState{}
}

func (s *svgSurface) StrokeRect(r geom.Rect, st canvas.Stroke) {
	if st.Color == "" || st.Width <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.W), num(r.H), escapeXML(st.Color), num(st.Width), s.filter())
}

func (s *svgSurface) FillRect(r geom.Rect, color string) {
	if color == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.W), num(r.H), escapeXML(color), s.filter())
}

func (s *svgSurface) StrokePath(p geom.Path, st canvas.Stroke) {
	if len(p) == 0 || st.Color == "" || st.Width <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		p.SVG(), escapeXML(st.Color), num(st.Width), s.filter())
}

func (s *svgSurface) FillPath(p geom.Path, color string) {
	if len(p) == 0 || color == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"%s/>`+"\n", p.SVG(), escapeXML(color), s.filter())
}

func (s *svgSurface) Clip(p geom.Path) {
	id := fmt.Sprintf("clip-%d", s.clips)
	s.clips++
	fmt.Fprintf(&s.defs, `    <clipPath id="%s"><path d="%s"/></clipPath>`+"\n", id, p.SVG())
	fmt.Fprintf(&s.body, `  <g clip-path="url(#%s)">`+"\n", id)
	s.state.groups++
}

func (s *svgSurface) SetShadow(sh canvas.Shadow) { s.state.shadow = sh }

// filter returns the filter attribute for the current shadow, defining the
// filter on first use.
func (s *svgSurface) filter() string {
	sh := s.state.shadow
	if !sh.Enabled() {
		return ""
	}
	id, ok := s.filters[sh]
	if !ok {
		id = fmt.Sprintf("shadow-%d", len(s.filters))
		s.filters[sh] = id
		// Canvas blur is roughly twice the Gaussian deviation.
		fmt.Fprintf(&s.defs, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+
			`<feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s"/></filter>`+"\n",
			id, num(sh.OffsetX), num(sh.OffsetY), num(sh.Blur/2), escapeXML(sh.Color))
	}
	return fmt.Sprintf(` filter="url(#%s)"`, id)
}

func writeFontFaces(buf *bytes.Buffer, texts []textBox) {
	var families []string
	for _, t := range texts {
		if f := fonts.Resolve(t.Style.FontFamily); !slices.Contains(families, f) {
			families = append(families, f)
		}
	}
	if len(families) == 0 {
		return
	}
	slices.Sort(families)
	buf.WriteString("    <style>\n")
	for _, f := range families {
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			f, fonts.Base64(f))
	}
	buf.WriteString("    </style>\n")
}

func writeTexts(buf *bytes.Buffer, texts []textBox, embedded bool) {
	if len(texts) == 0 {
		return
	}
	buf.WriteString(`  <g class="gauge-text">` + "\n")
	for _, t := range texts {
		family := t.Style.FontFamily
		if embedded {
			family = fonts.CSSFamily(family)
		}
		if t.Rotation != 0 {
			cx, cy := t.center()
			fmt.Fprintf(buf, `    <g transform="rotate(%s %s %s)">`+"\n", num(t.Rotation), num(cx), num(cy))
		}
		if t.Style.Background != "" {
			opacity := ""
			if t.Style.Opacity > 0 && t.Style.Opacity < 1 {
				opacity = fmt.Sprintf(` fill-opacity="%s"`, num(t.Style.Opacity))
			}
			fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
				num(t.X), num(t.Y), num(t.W), num(t.H), escapeXML(t.Style.Background), opacity)
		}
		fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(t.X), num(t.Baseline), escapeXML(family), num(t.Style.FontSize), escapeXML(t.Style.Color), escapeXML(t.Text))
		if t.Rotation != 0 {
			buf.WriteString("    </g>\n")
		}
	}
	buf.WriteString("  </g>\n")
}
