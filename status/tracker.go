package status

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/spin"
)

// Tracker feeds widget activity into a Registry and formats the status bar
type Tracker struct {
	reg *Registry

	frames      *atomic.Int64
	drags       *atomic.Int64
	doubles     *atomic.Int64
	resets      *atomic.Int64
	inertiaRuns *atomic.Int64
	rests       *atomic.Int64
	activations *atomic.Int64
	remote      *atomic.Int64

	rotX, rotY *Gauge
	velX, velY *Gauge

	mode      *Label
	lastEvent *Label
}

// NewTracker caches the widget metrics of reg
func NewTracker(reg *Registry) *Tracker {
	return &Tracker{
		reg:         reg,
		frames:      reg.Counters.Get(MetricFrames),
		drags:       reg.Counters.Get(MetricDrags),
		doubles:     reg.Counters.Get(MetricDoubles),
		resets:      reg.Counters.Get(MetricResets),
		inertiaRuns: reg.Counters.Get(MetricInertiaRuns),
		rests:       reg.Counters.Get(MetricRests),
		activations: reg.Counters.Get(MetricActivations),
		remote:      reg.Counters.Get(MetricRemoteClients),
		rotX:        reg.Gauges.Get(MetricRotX),
		rotY:        reg.Gauges.Get(MetricRotY),
		velX:        reg.Gauges.Get(MetricVelX),
		velY:        reg.Gauges.Get(MetricVelY),
		mode:        reg.Labels.Get(MetricMode),
		lastEvent:   reg.Labels.Get(MetricLastEvent),
	}
}

// Registry returns the underlying registry
func (t *Tracker) Registry() *Registry {
	return t.reg
}

// Attach subscribes the tracker to every widget event
func (t *Tracker) Attach(bus *event.Bus) {
	bus.Subscribe(t.handle)
}

func (t *Tracker) handle(ev event.Event) {
	switch ev.Type {
	case event.EventActivated:
		t.activations.Add(1)
	case event.EventDragStarted:
		t.drags.Add(1)
	case event.EventDoubleActivation:
		t.doubles.Add(1)
	case event.EventResetStarted:
		t.resets.Add(1)
	case event.EventInertiaStarted:
		t.inertiaRuns.Add(1)
	case event.EventInertiaRested:
		t.rests.Add(1)
	}
	t.lastEvent.Store(ev.Type.String())
}

// Observe records the per-frame widget snapshot
func (t *Tracker) Observe(mode spin.Mode, s spin.State, frames uint64, remote int) {
	t.mode.Store(mode.String())
	t.rotX.Set(s.RotX)
	t.rotY.Set(s.RotY)
	t.velX.Set(s.VelX)
	t.velY.Set(s.VelY)
	t.frames.Store(int64(frames))
	t.remote.Store(int64(remote))
}

// Line formats the status bar
func (t *Tracker) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-9s", t.mode.Load())
	fmt.Fprintf(&b, " │ pose %7.2f %7.2f", t.rotX.Get(), t.rotY.Get())
	fmt.Fprintf(&b, " │ vel %6.3f %6.3f", t.velX.Get(), t.velY.Get())
	fmt.Fprintf(&b, " │ frame %d", t.frames.Load())
	fmt.Fprintf(&b, " │ drags %d resets %d", t.drags.Load(), t.resets.Load())
	if n := t.remote.Load(); n > 0 {
		fmt.Fprintf(&b, " │ remote %d", n)
	}
	return b.String()
}
