package input

import (
	"time"

	"github.com/lixenwraith/tiltcard/parameter"
	"github.com/lixenwraith/tiltcard/render"
	"github.com/lixenwraith/tiltcard/spin"
)

// PointerSink receives routed pointer events, satisfied by *spin.Widget
type PointerSink interface {
	HandlePointer(ev spin.PointerEvent)
}

// Route reports where a mouse transition went
type Route uint8

const (
	RouteNone Route = iota
	RouteCard
	RouteClose
)

// Router hit-tests terminal mouse transitions against the unrotated card and implements pointer capture
// A captured pointer reaches the sink wherever it moves; an uncaptured move or release is dropped
type Router struct {
	sink     PointerSink
	layout   func() render.Layout
	onClose  func()
	captured map[spin.PointerID]struct{}
}

// NewRouter creates a router reading the current layout on every hit test
func NewRouter(layout func() render.Layout, onClose func()) *Router {
	if onClose == nil {
		onClose = func() {}
	}
	return &Router{
		layout:   layout,
		onClose:  onClose,
		captured: make(map[spin.PointerID]struct{}),
	}
}

// SetSink attaches the widget, which is built after the router since it needs the capturer
func (r *Router) SetSink(sink PointerSink) {
	r.sink = sink
}

// Capture implements spin.Capturer
func (r *Router) Capture(id spin.PointerID) {
	r.captured[id] = struct{}{}
}

// Release implements spin.Capturer
func (r *Router) Release(id spin.PointerID) {
	delete(r.captured, id)
}

// Captured reports whether id is currently captured
func (r *Router) Captured(id spin.PointerID) bool {
	_, ok := r.captured[id]
	return ok
}

// Mouse routes one local mouse transition at time t
func (r *Router) Mouse(tr Transition, t time.Time) Route {
	id := spin.PointerID(parameter.MousePointerID)
	l := r.layout()

	if r.Captured(id) {
		r.forward(spin.PointerEvent{ID: id, Kind: tr.Kind, Time: t}, tr, l)
		return RouteCard
	}

	if tr.Kind != spin.PointerPress {
		return RouteNone
	}

	switch {
	case l.Close.Contains(tr.X, tr.Y):
		r.onClose()
		return RouteClose
	case l.Card.Contains(tr.X, tr.Y):
		r.forward(spin.PointerEvent{ID: id, Kind: tr.Kind, Time: t}, tr, l)
		return RouteCard
	default:
		// Backdrop
		r.onClose()
		return RouteClose
	}
}

// Remote forwards a network pointer event, already in card pixels, without hit testing
func (r *Router) Remote(ev spin.PointerEvent) {
	if r.sink != nil {
		r.sink.HandlePointer(ev)
	}
}

// FocusLost delivers Leave to every captured pointer
func (r *Router) FocusLost(t time.Time) {
	for id := range r.captured {
		if r.sink != nil {
			r.sink.HandlePointer(spin.PointerEvent{ID: id, Kind: spin.PointerLeave, Time: t})
		}
	}
	clear(r.captured)
}

// forward converts cell coordinates to card pixels and hands the event to the sink
func (r *Router) forward(ev spin.PointerEvent, tr Transition, l render.Layout) {
	if r.sink == nil {
		return
	}
	sx, sy := CellScale(l.Card)
	ev.X = float64(tr.X) * sx
	ev.Y = float64(tr.Y) * sy
	r.sink.HandlePointer(ev)
}

// CellScale returns pixels per column and per row for a card rect
// Rows are CellAspect times taller than columns are wide
func CellScale(card render.Rect) (sx, sy float64) {
	if card.W <= 0 {
		return 1, parameter.CellAspect
	}
	sx = parameter.CardWidthPx / float64(card.W)
	return sx, sx * parameter.CellAspect
}
