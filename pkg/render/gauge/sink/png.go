package sink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/fonts"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// MaxShadowSteps caps the strokes used to approximate a blurred shadow.
const MaxShadowSteps = 8

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	gaugeOpts []gauge.Option
	scale     float64
}

// WithPNGGaugeOptions passes options through to the render pass.
func WithPNGGaugeOptions(opts ...gauge.Option) PNGOption {
	return func(r *pngRenderer) { r.gaugeOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG runs a pass on a width x height canvas and rasterizes it
// natively. The image is width*scale by height*scale pixels.
func RenderPNG(ctx context.Context, width, height float64, cfg config.Config, items []series.Item, opts ...PNGOption) ([]byte, *gauge.Result, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", r.scale)
	}
	if width <= 0 || height <= 0 {
		return nil, nil, errors.Layout("canvas must be positive, got %vx%v", width, height)
	}

	s := newPNGSurface(width, height, r.scale)
	res, texts, err := draw(ctx, s, width, height, cfg, items, r.gaugeOpts)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range texts {
		if err := s.text(t); err != nil {
			return nil, nil, err
		}
	}

	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), res, nil
}

// pngSurface draws onto a gg context. Coordinates are scaled here rather
// than through the context matrix since gg does not scale line widths.
//
// gg has no blur, so shadows are approximated: before the shape itself is
// drawn, its outline is stroked a few times in the shadow colour with
// growing width and fading alpha. Inside a clip only the inner half of
// those strokes shows, which reads as an inner shadow.
type pngSurface struct {
	dc     *gg.Context
	scale  float64
	shadow canvas.Shadow
	stack  []canvas.Shadow
}

func newPNGSurface(width, height, scale float64) *pngSurface {
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	return &pngSurface{dc: gg.NewContext(w, h), scale: scale}
}

func (s *pngSurface) Save() {
	s.dc.Push()
	s.stack = append(s.stack, s.shadow)
}

func (s *pngSurface) Restore() {
	s.dc.Pop()
	if n := len(s.stack); n > 0 {
		s.shadow = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *pngSurface) StrokeRect(r geom.Rect, st canvas.Stroke) {
	if st.Width <= 0 {
		return
	}
	s.paint(func() { s.rect(r) }, st.Color, st.Width, false)
}

func (s *pngSurface) FillRect(r geom.Rect, color string) {
	s.paint(func() { s.rect(r) }, color, 0, true)
}

func (s *pngSurface) StrokePath(p geom.Path, st canvas.Stroke) {
	if len(p) == 0 || st.Width <= 0 {
		return
	}
	s.paint(func() { s.path(p) }, st.Color, st.Width, false)
}

func (s *pngSurface) FillPath(p geom.Path, color string) {
	if len(p) == 0 {
		return
	}
	s.paint(func() { s.path(p) }, color, 0, true)
}

func (s *pngSurface) Clip(p geom.Path) {
	s.path(p)
	s.dc.Clip()
}

func (s *pngSurface) SetShadow(sh canvas.Shadow) { s.shadow = sh }

// paint traces the shape and fills or strokes it, casting the current
// shadow first.
func (s *pngSurface) paint(trace func(), col string, width float64, fill bool) {
	c, err := canvas.ParseColor(col)
	if err != nil || c.A == 0 {
		return
	}
	if s.shadow.Enabled() {
		s.castShadow(trace, width)
	}
	trace()
	s.dc.SetColor(c)
	if fill {
		s.dc.Fill()
		return
	}
	s.dc.SetLineWidth(width * s.scale)
	s.dc.Stroke()
}

func (s *pngSurface) castShadow(trace func(), width float64) {
	sh := s.shadow
	base := canvas.ParseColorOr(sh.Color, color.NRGBA{A: 255})
	steps := min(MaxShadowSteps, max(1, int(math.Ceil(sh.Blur/2))))

	for i := steps; i >= 1; i-- {
		s.dc.Push()
		s.dc.Translate(sh.OffsetX*s.scale, sh.OffsetY*s.scale)
		trace()
		c := base
		c.A = uint8(float64(base.A) * 0.3 * float64(steps-i+1) / float64(steps))
		s.dc.SetColor(c)
		s.dc.SetLineWidth((width + sh.Blur*float64(i)/float64(steps)) * s.scale)
		s.dc.Stroke()
		s.dc.Pop()
	}
}

func (s *pngSurface) rect(r geom.Rect) {
	k := s.scale
	s.dc.DrawRectangle(r.X*k, r.Y*k, r.W*k, r.H*k)
}

func (s *pngSurface) path(p geom.Path) {
	k := s.scale
	s.dc.NewSubPath()
	for _, seg := range p {
		switch seg.Kind {
		case geom.MoveTo:
			s.dc.MoveTo(seg.To.X*k, seg.To.Y*k)
		case geom.LineTo:
			s.dc.LineTo(seg.To.X*k, seg.To.Y*k)
		case geom.Arc:
			s.dc.DrawArc(seg.CX*k, seg.CY*k, seg.R*k, seg.Start, seg.End)
		case geom.Close:
			s.dc.ClosePath()
		}
	}
}

// text draws a placed element with a face sized for the output scale.
func (s *pngSurface) text(t textBox) error {
	k := s.scale
	face, err := fonts.NewFace(t.Style.FontFamily, t.Style.FontSize*k)
	if err != nil {
		return fmt.Errorf("load font %q: %w", t.Style.FontFamily, err)
	}

	s.dc.Push()
	defer s.dc.Pop()
	if t.Rotation != 0 {
		cx, cy := t.center()
		s.dc.RotateAbout(gg.Radians(t.Rotation), cx*k, cy*k)
	}
	if t.Style.Background != "" {
		if bg, err := canvas.ParseColor(t.Style.Background); err == nil {
			if t.Style.Opacity > 0 && t.Style.Opacity < 1 {
				bg.A = uint8(float64(bg.A) * t.Style.Opacity)
			}
			s.dc.DrawRectangle(t.X*k, t.Y*k, t.W*k, t.H*k)
			s.dc.SetColor(bg)
			s.dc.Fill()
		}
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(canvas.ParseColorOr(t.Style.Color, color.NRGBA{A: 255}))
	s.dc.DrawString(t.Text, t.X*k, t.Baseline*k)
	return nil
}
