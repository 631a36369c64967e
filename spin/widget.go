// Package spin implements the tilt/spin card interaction: drag rotation, post-release inertia,
// double-activation reset and pose projection. All methods must run on the frame loop goroutine.
package spin

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tiltcard/engine"
	"github.com/lixenwraith/tiltcard/event"
)

// Mode is the externally visible interaction state
type Mode uint8

const (
	ModeInactive Mode = iota
	ModeIdle
	ModeDragging
	ModeInertia
	ModeResetting
)

var modeNames = [...]string{
	ModeInactive:  "inactive",
	ModeIdle:      "idle",
	ModeDragging:  "dragging",
	ModeInertia:   "inertia",
	ModeResetting: "resetting",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Widget composes gesture, inertia, reset and rendering around one rotation state
type Widget struct {
	cfg      Config
	clock    engine.Clock
	renderer Renderer
	capturer Capturer
	bus      *event.Bus

	state   State
	slot    animSlot
	gesture Gesture
	inertia Inertia
	reset   Resetter
	active  bool
}

// New builds an inactive widget; call Activate to show it
func New(sched engine.FrameScheduler, clock engine.Clock, renderer Renderer, opts ...Option) (*Widget, error) {
	if sched == nil {
		return nil, errors.New("spin: nil frame scheduler")
	}
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}

	w := &Widget{
		cfg:      DefaultConfig(),
		clock:    clock,
		renderer: renderer,
		capturer: nopCapturer{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spin: %w", err)
	}

	w.slot.sched = sched
	w.inertia = Inertia{
		cfg:    &w.cfg,
		state:  &w.state,
		slot:   &w.slot,
		render: w.render,
		onRest: func() { w.emit(event.EventInertiaRested, 0) },
	}
	w.reset = Resetter{
		cfg:    &w.cfg,
		state:  &w.state,
		slot:   &w.slot,
		clock:  clock,
		render: w.render,
		onDone: func() { w.emit(event.EventResetFinished, 0) },
	}
	w.gesture = Gesture{
		cfg:      &w.cfg,
		state:    &w.state,
		slot:     &w.slot,
		inertia:  &w.inertia,
		reset:    &w.reset,
		capturer: w.capturer,
		render:   w.render,
		emit:     w.emit,
	}
	return w, nil
}

// Activate resets to the default pose, cancelling any stray animation or drag
func (w *Widget) Activate() {
	w.slot.cancel()
	w.gesture.clear()
	w.state = stateAt(w.cfg.DefaultPose)
	w.active = true
	w.render()
	w.emit(event.EventActivated, 0)
}

// Deactivate tears down animation and capture and discards the state, no-op when inactive
func (w *Widget) Deactivate() {
	if !w.active {
		return
	}
	w.slot.cancel()
	w.gesture.clear()
	w.state = State{}
	w.active = false
	w.emit(event.EventDeactivated, 0)
}

// HandlePointer dispatches a raw pointer sample, ignored while inactive
func (w *Widget) HandlePointer(ev PointerEvent) {
	if !w.active {
		return
	}
	switch ev.Kind {
	case PointerPress:
		w.gesture.Press(ev)
	case PointerMove:
		w.gesture.Move(ev)
	case PointerRelease, PointerCancel, PointerLeave:
		w.gesture.End(ev)
	}
}

// Reset starts the ease to the default pose directly, leaving any drag
func (w *Widget) Reset() {
	if !w.active {
		return
	}
	w.gesture.abort()
	w.reset.Start()
	w.emit(event.EventResetStarted, 0)
}

// StopAnimation cancels inertia or reset, leaving the pose where it is
func (w *Widget) StopAnimation() {
	w.inertia.Stop()
	w.reset.Stop()
}

// Mode reports the current interaction state
func (w *Widget) Mode() Mode {
	switch {
	case !w.active:
		return ModeInactive
	case w.gesture.Dragging():
		return ModeDragging
	case w.inertia.Running():
		return ModeInertia
	case w.reset.Running():
		return ModeResetting
	}
	return ModeIdle
}

func (w *Widget) State() State   { return w.state }
func (w *Widget) Pose() Pose     { return w.state.Pose() }
func (w *Widget) Active() bool   { return w.active }
func (w *Widget) Config() Config { return w.cfg }

// Inertia exposes the decay simulator
func (w *Widget) Inertia() *Inertia { return &w.inertia }

// Resetter exposes the reset animator
func (w *Widget) Resetter() *Resetter { return &w.reset }

func (w *Widget) render() {
	w.renderer.Render(w.state.Pose())
}

func (w *Widget) emit(t event.EventType, id PointerID) {
	w.bus.Publish(event.Event{
		Type:    t,
		Time:    w.clock.Now(),
		RotX:    w.state.RotX,
		RotY:    w.state.RotY,
		VelX:    w.state.VelX,
		VelY:    w.state.VelY,
		Pointer: int(id),
	})
}
