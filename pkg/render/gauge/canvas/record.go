package canvas

import (
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/geom"
)

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpSave       OpKind = "save"
	OpRestore    OpKind = "restore"
	OpStrokeRect OpKind = "strokeRect"
	OpFillRect   OpKind = "fillRect"
	OpStrokePath OpKind = "strokePath"
	OpFillPath   OpKind = "fillPath"
	OpClip       OpKind = "clip"
	OpShadow     OpKind = "shadow"
)

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Rect   geom.Rect
	Path   geom.Path
	Stroke Stroke
	Color  string
	Shadow Shadow
}

// Recorder is a [Surface] that records every call in order.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Save()    { r.Ops = append(r.Ops, Op{Kind: OpSave}) }
func (r *Recorder) Restore() { r.Ops = append(r.Ops, Op{Kind: OpRestore}) }

func (r *Recorder) StrokeRect(rect geom.Rect, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: rect, Stroke: s})
}

func (r *Recorder) FillRect(rect geom.Rect, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: color})
}

func (r *Recorder) StrokePath(p geom.Path, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePath, Path: p, Stroke: s})
}

func (r *Recorder) FillPath(p geom.Path, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPath, Path: p, Color: color})
}

func (r *Recorder) Clip(p geom.Path) { r.Ops = append(r.Ops, Op{Kind: OpClip, Path: p}) }

func (r *Recorder) SetShadow(s Shadow) { r.Ops = append(r.Ops, Op{Kind: OpShadow, Shadow: s}) }

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Balanced reports whether every Save has a matching Restore.
func (r *Recorder) Balanced() bool {
	depth := 0
	for _, op := range r.Ops {
		switch op.Kind {
		case OpSave:
			depth++
		case OpRestore:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// Reset discards recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
