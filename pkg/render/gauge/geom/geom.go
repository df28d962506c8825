// Package geom provides the angle and arc-path primitives shared by the gauge
// renderers.
//
// Angles follow screen conventions: 0 points along the positive x-axis and
// angles grow clockwise because y grows downwards. Configuration angles are
// expressed in degrees; paths carry radians.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Point is a position in canvas pixels.
type Point struct{ X, Y float64 }

// Polar returns the point at distance r from (cx, cy) in direction rad.
func Polar(cx, cy, r, rad float64) Point {
	return Point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}

// Rect is an axis-aligned rectangle.
type Rect struct{ X, Y, W, H float64 }

// SegmentKind identifies a path segment.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	Arc
	Close
)

// Segment is one path command. Arc segments sweep from Start to End (radians)
// around (CX, CY) at radius R; To holds the end point for every kind but Close.
type Segment struct {
	Kind       SegmentKind
	To         Point
	CX, CY, R  float64
	Start, End float64
}

// Path is a sequence of segments describing one closed or open outline.
type Path []Segment

// Ring builds the closed outline of an annular sector around (cx, cy).
//
// r is the centerline radius and w the ring thickness: the outer edge lies at
// r+w/2 and the inner edge at r-w/2 (floored at zero). The sector runs
// clockwise from a1 to a2 (radians). Ring returns nil when a1 == a2.
func Ring(cx, cy, r, w, a1, a2 float64) Path {
	if a1 == a2 {
		return nil
	}
	outer := r + w/2
	inner := math.Max(0, r-w/2)

	return Path{
		{Kind: MoveTo, To: Polar(cx, cy, outer, a1)},
		{Kind: Arc, To: Polar(cx, cy, outer, a2), CX: cx, CY: cy, R: outer, Start: a1, End: a2},
		{Kind: LineTo, To: Polar(cx, cy, inner, a2)},
		{Kind: Arc, To: Polar(cx, cy, inner, a1), CX: cx, CY: cy, R: inner, Start: a2, End: a1},
		{Kind: Close},
	}
}

// MaxSin samples sin over [startDeg, endDeg] in 100 equal steps plus the
// exact end angle and returns the largest value seen. It measures how far
// an arc over that span reaches below its horizontal diameter, as a fraction
// of the radius.
func MaxSin(startDeg, endDeg float64) float64 {
	const steps = 100
	best := -1.0
	d := (endDeg - startDeg) / steps
	if d > 0 {
		for i := 0; i < steps; i++ {
			best = math.Max(best, math.Sin(Radians(startDeg+d*float64(i))))
		}
	}
	return math.Max(best, math.Sin(Radians(endDeg)))
}

// SVG renders the path as SVG path data. Arcs are split into pieces of at
// most half a turn so every piece can be expressed with the small-arc flag.
func (p Path) SVG() string {
	var b strings.Builder
	for _, s := range p {
		switch s.Kind {
		case MoveTo:
			fmt.Fprintf(&b, "M%s,%s ", num(s.To.X), num(s.To.Y))
		case LineTo:
			fmt.Fprintf(&b, "L%s,%s ", num(s.To.X), num(s.To.Y))
		case Arc:
			writeArc(&b, s)
		case Close:
			b.WriteString("Z")
		}
	}
	return strings.TrimSpace(b.String())
}

func writeArc(b *strings.Builder, s Segment) {
	sweep := s.End - s.Start
	if sweep == 0 || s.R == 0 {
		fmt.Fprintf(b, "L%s,%s ", num(s.To.X), num(s.To.Y))
		return
	}
	flag := 1
	if sweep < 0 {
		flag = 0
	}
	pieces := int(math.Ceil(math.Abs(sweep) / math.Pi))
	for i := 1; i <= pieces; i++ {
		end := Polar(s.CX, s.CY, s.R, s.Start+sweep*float64(i)/float64(pieces))
		if i == pieces {
			end = s.To
		}
		fmt.Fprintf(b, "A%s,%s 0 0 %d %s,%s ", num(s.R), num(s.R), flag, num(end.X), num(end.Y))
	}
}

// num formats a coordinate with two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
