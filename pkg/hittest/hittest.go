// Package hittest classifies pointer positions into drop zones over the
// boxes of rendered widgets.
package hittest

// Zone is the drop position relative to the hit box.
type Zone string

const (
	ZoneBefore Zone = "before"
	ZoneInside Zone = "inside"
	ZoneAfter  Zone = "after"
)

// Box is the axis-aligned bounds of a rendered node.
type Box struct {
	NodeID          string  `json:"node_id"`
	Slot            string  `json:"slot,omitempty"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	W               float64 `json:"w"`
	H               float64 `json:"h"`
	AcceptsChildren bool    `json:"accepts_children"`
}

// Contains reports whether (x, y) lies within the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Hit is the result of a successful hit test.
type Hit struct {
	Box  Box  `json:"box"`
	Zone Zone `json:"zone"`
}

// Engine holds boxes in registration order: outer before inner, back to front.
// It is not safe for concurrent use.
type Engine struct {
	boxes []Box
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Register appends a box.
func (e *Engine) Register(b Box) {
	e.boxes = append(e.boxes, b)
}

// Clear removes every box.
func (e *Engine) Clear() {
	e.boxes = e.boxes[:0]
}

// Len returns the number of registered boxes.
func (e *Engine) Len() int {
	return len(e.boxes)
}

// Hit returns the most recently registered box containing (x, y) and the
// drop zone within it.
func (e *Engine) Hit(x, y float64) (Hit, bool) {
	for i := len(e.boxes) - 1; i >= 0; i-- {
		b := e.boxes[i]
		if b.Contains(x, y) {
			return Hit{Box: b, Zone: classify(b, y)}, true
		}
	}
	return Hit{}, false
}

// classify splits the box vertically: top quarter is before, bottom quarter
// is after, the middle is inside for containers and after otherwise.
func classify(b Box, y float64) Zone {
	if b.H <= 0 {
		return ZoneBefore
	}
	rel := (y - b.Y) / b.H
	switch {
	case rel < 0.25:
		return ZoneBefore
	case rel > 0.75:
		return ZoneAfter
	case b.AcceptsChildren:
		return ZoneInside
	default:
		return ZoneAfter
	}
}
