package labels

import (
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
)

// Role is the part a text element plays in its gauge.
type Role string

const (
	RoleLabel     Role = "label"
	RoleValue     Role = "value"
	RoleThreshold Role = "threshold"
)

// Key identifies a text element across render passes. Marker distinguishes
// the threshold labels of one gauge and is empty for other roles.
type Key struct {
	Series int
	Role   Role
	Marker string
}

// Registry owns the text elements of one host and reuses them across
// passes, so a redraw updates text in place instead of stacking copies.
//
// A pass brackets its placements with [Registry.Begin] and [Registry.End];
// End removes every element the pass did not place, which covers series
// that disappeared and roles that were switched off.
type Registry struct {
	host  canvas.TextHost
	elems map[Key]canvas.Text
	seen  map[Key]bool
}

// NewRegistry returns an empty registry on host.
func NewRegistry(host canvas.TextHost) *Registry {
	return &Registry{
		host:  host,
		elems: make(map[Key]canvas.Text),
		seen:  make(map[Key]bool),
	}
}

// Host returns the text host elements are created on.
func (r *Registry) Host() canvas.TextHost { return r.host }

// Begin starts a pass.
func (r *Registry) Begin() { clear(r.seen) }

// End finishes a pass, removing elements it did not place. It returns the
// number removed.
func (r *Registry) End() int {
	n := 0
	for k, el := range r.elems {
		if !r.seen[k] {
			el.Remove()
			delete(r.elems, k)
			n++
		}
	}
	return n
}

// Len returns the number of live elements.
func (r *Registry) Len() int { return len(r.elems) }

// acquire returns the element for k, creating it on first use.
func (r *Registry) acquire(k Key) canvas.Text {
	r.seen[k] = true
	if el, ok := r.elems[k]; ok {
		return el
	}
	el := r.host.NewText()
	r.elems[k] = el
	return el
}
