package spin

import (
	"time"

	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/vmath"
)

// session is the bookkeeping for one drag
type session struct {
	id       PointerID
	lastX    float64
	lastY    float64
	lastTime time.Time
}

// Gesture turns raw pointer samples into drag, release and double-activation
type Gesture struct {
	cfg      *Config
	state    *State
	slot     *animSlot
	inertia  *Inertia
	reset    *Resetter
	capturer Capturer
	render   func()
	emit     func(event.EventType, PointerID)

	dragging bool
	session  session
	// Most recent drag-starting press, zero when none
	lastActivation time.Time
}

// Dragging reports whether a session is live
func (g *Gesture) Dragging() bool {
	return g.dragging
}

// Press handles activation-start: a second press inside the window resets, otherwise a drag begins
func (g *Gesture) Press(ev PointerEvent) {
	if !vmath.Finite(ev.X, ev.Y) {
		return
	}

	if g.isDouble(ev.Time) {
		g.abort()
		g.lastActivation = time.Time{}
		g.emit(event.EventDoubleActivation, ev.ID)
		g.reset.Start()
		g.emit(event.EventResetStarted, 0)
		return
	}

	g.lastActivation = ev.Time
	g.slot.cancel()
	// Re-entrant press restarts the session, a stale capture is handed back first
	if g.dragging && g.session.id != ev.ID {
		g.capturer.Release(g.session.id)
	}
	g.dragging = true
	g.session = session{id: ev.ID, lastX: ev.X, lastY: ev.Y, lastTime: ev.Time}
	g.capturer.Capture(ev.ID)
	g.emit(event.EventDragStarted, ev.ID)
}

// Move applies direct manipulation and samples velocity for the captured pointer
func (g *Gesture) Move(ev PointerEvent) {
	if !g.dragging || ev.ID != g.session.id {
		return
	}
	if !vmath.Finite(ev.X, ev.Y) {
		return
	}

	dx := ev.X - g.session.lastX
	dy := ev.Y - g.session.lastY
	dt := ev.Time.Sub(g.session.lastTime)
	if dt < g.cfg.MinSampleInterval {
		dt = g.cfg.MinSampleInterval
	}
	dtMs := float64(dt) / float64(time.Millisecond)

	g.state.RotY += dx * g.cfg.Sensitivity
	g.state.RotX -= dy * g.cfg.Sensitivity
	g.state.VelX = dx / dtMs * g.cfg.VelocityScale
	g.state.VelY = dy / dtMs * g.cfg.VelocityScale

	g.session.lastX = ev.X
	g.session.lastY = ev.Y
	g.session.lastTime = ev.Time

	g.render()
}

// End handles release, cancel and leave alike: inertia takes over from the last sample
func (g *Gesture) End(ev PointerEvent) {
	if !g.dragging || ev.ID != g.session.id {
		return
	}

	g.capturer.Release(g.session.id)
	g.dragging = false
	g.emit(event.EventDragEnded, ev.ID)

	g.inertia.Start(g.state.VelX, g.state.VelY)
	g.emit(event.EventInertiaStarted, 0)
}

// abort leaves Dragging without starting inertia
func (g *Gesture) abort() {
	if !g.dragging {
		return
	}
	g.capturer.Release(g.session.id)
	g.dragging = false
	g.emit(event.EventDragEnded, g.session.id)
}

// clear drops the session and activation history
func (g *Gesture) clear() {
	g.abort()
	g.session = session{}
	g.lastActivation = time.Time{}
}

// isDouble reports whether t falls inside the window after the last recorded activation
// A clock going backwards counts as inside, a zero window disables detection
func (g *Gesture) isDouble(t time.Time) bool {
	if g.lastActivation.IsZero() || g.cfg.DoubleActivationWindow <= 0 {
		return false
	}
	return t.Sub(g.lastActivation) < g.cfg.DoubleActivationWindow
}
