package spin

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/tiltcard/engine"
	"github.com/lixenwraith/tiltcard/event"
)

const eps = 1e-9

var epoch = time.Unix(1_700_000_000, 0)

type recordingCapturer struct {
	held map[PointerID]bool
	log  []string
}

func (c *recordingCapturer) Capture(id PointerID) {
	c.held[id] = true
	c.log = append(c.log, "capture")
}

func (c *recordingCapturer) Release(id PointerID) {
	delete(c.held, id)
	c.log = append(c.log, "release")
}

type harness struct {
	t       *testing.T
	sched   *engine.ManualScheduler
	clock   *engine.MockTimeProvider
	capture *recordingCapturer
	w       *Widget
	poses   []Pose
	events  []event.EventType
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		sched:   engine.NewManualScheduler(),
		clock:   engine.NewMockTimeProvider(epoch),
		capture: &recordingCapturer{held: make(map[PointerID]bool)},
	}
	bus := event.NewBus()
	bus.Subscribe(func(ev event.Event) { h.events = append(h.events, ev.Type) })

	opts = append([]Option{WithCapturer(h.capture), WithEvents(bus)}, opts...)
	w, err := New(h.sched, h.clock, RenderFunc(func(p Pose) { h.poses = append(h.poses, p) }), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.w = w
	w.Activate()
	return h
}

// at sets the mock clock to epoch+offset and returns it
func (h *harness) at(offset time.Duration) time.Time {
	now := epoch.Add(offset)
	h.clock.SetTime(now)
	return now
}

func (h *harness) pointer(kind PointerKind, id PointerID, x, y float64, offset time.Duration) {
	h.w.HandlePointer(PointerEvent{ID: id, Kind: kind, X: x, Y: y, Time: h.at(offset)})
}

// frame advances the clock by d and runs one frame
func (h *harness) frame(d time.Duration) int {
	return h.sched.Step(h.clock.Advance(d))
}

// settle runs 16ms frames until nothing is scheduled, returns frames run
func (h *harness) settle(limit int) int {
	h.t.Helper()
	n := 0
	for h.sched.Pending() > 0 {
		if n >= limit {
			h.t.Fatalf("animation still running after %d frames", limit)
		}
		h.frame(16 * time.Millisecond)
		n++
	}
	return n
}

func (h *harness) count(t event.EventType) int {
	n := 0
	for _, e := range h.events {
		if e == t {
			n++
		}
	}
	return n
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestActivateDefaultPose(t *testing.T) {
	h := newHarness(t)

	s := h.w.State()
	if s.RotX != 10 || s.RotY != -10 || s.VelX != 0 || s.VelY != 0 {
		t.Errorf("state after Activate = %+v, want (10,-10,0,0)", s)
	}
	if h.w.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", h.w.Mode())
	}
	if len(h.poses) != 1 || h.poses[0] != (Pose{X: 10, Y: -10}) {
		t.Errorf("rendered poses = %v, want one default pose", h.poses)
	}
}

func TestDragSumsContributions(t *testing.T) {
	h := newHarness(t)

	moves := []struct{ x, y float64 }{
		{3, 1}, {10, -4}, {10, -4}, {-7, 22}, {-7.5, 22.25}, {40, 0},
	}

	h.pointer(PointerPress, 1, 0, 0, 0)
	var sumDX, sumDY float64
	lastX, lastY := 0.0, 0.0
	for i, m := range moves {
		h.pointer(PointerMove, 1, m.x, m.y, time.Duration(i+1)*10*time.Millisecond)
		sumDX += m.x - lastX
		sumDY += m.y - lastY
		lastX, lastY = m.x, m.y
	}

	p := h.w.Pose()
	if !near(p.Y, -10+sumDX*0.8) {
		t.Errorf("RotY = %v, want %v", p.Y, -10+sumDX*0.8)
	}
	if !near(p.X, 10-sumDY*0.8) {
		t.Errorf("RotX = %v, want %v", p.X, 10-sumDY*0.8)
	}
	// Activate + one per move
	if got, want := len(h.poses), 1+len(moves); got != want {
		t.Errorf("render calls = %d, want %d", got, want)
	}
}

func TestDragReleaseInertiaScenario(t *testing.T) {
	h := newHarness(t)

	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 100, 0, 50*time.Millisecond)

	s := h.w.State()
	if !near(s.RotY, 70) {
		t.Errorf("RotY after drag = %v, want 70 (-10 + 80)", s.RotY)
	}
	if !near(s.VelX, 4) || s.VelY != 0 {
		t.Errorf("velocity after drag = (%v, %v), want (4, 0)", s.VelX, s.VelY)
	}

	h.pointer(PointerRelease, 1, 100, 0, 50*time.Millisecond)
	if h.w.Mode() != ModeInertia {
		t.Fatalf("Mode() after release = %v, want inertia", h.w.Mode())
	}
	if h.capture.held[1] {
		t.Error("pointer still captured after release")
	}

	h.frame(16 * time.Millisecond)
	s = h.w.State()
	if !near(s.VelX, 3.92) {
		t.Errorf("VelX after first frame = %v, want 3.92", s.VelX)
	}
	// Friction applies before displacement
	if !near(s.RotY, 70+3.92*16*0.8) {
		t.Errorf("RotY after first frame = %v, want %v", s.RotY, 70+3.92*16*0.8)
	}
	if s.RotX != 10 {
		t.Errorf("RotX moved to %v with zero vertical velocity", s.RotX)
	}
}

func TestMoveFloorsSampleInterval(t *testing.T) {
	tests := []struct {
		name  string
		dt    time.Duration
		wantV float64
	}{
		{"duplicate timestamp", 0, 10 / 1.0 * 2},
		{"sub-millisecond", 200 * time.Microsecond, 10 / 1.0 * 2},
		{"backwards", -5 * time.Millisecond, 10 / 1.0 * 2},
		{"normal", 4 * time.Millisecond, 10 / 4.0 * 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.pointer(PointerPress, 1, 0, 0, 100*time.Millisecond)
			h.pointer(PointerMove, 1, 10, 0, 100*time.Millisecond+tt.dt)

			if v := h.w.State().VelX; !near(v, tt.wantV) || math.IsInf(v, 0) {
				t.Errorf("VelX = %v, want %v", v, tt.wantV)
			}
		})
	}
}

func TestMoveIgnored(t *testing.T) {
	t.Run("not dragging", func(t *testing.T) {
		h := newHarness(t)
		h.pointer(PointerMove, 1, 50, 50, 10*time.Millisecond)
		if h.w.Pose() != (Pose{X: 10, Y: -10}) {
			t.Errorf("pose changed without drag: %v", h.w.Pose())
		}
	})

	t.Run("other pointer", func(t *testing.T) {
		h := newHarness(t)
		h.pointer(PointerPress, 1, 0, 0, 0)
		h.pointer(PointerMove, 2, 50, 50, 10*time.Millisecond)
		h.pointer(PointerRelease, 2, 50, 50, 20*time.Millisecond)
		if h.w.Pose() != (Pose{X: 10, Y: -10}) {
			t.Errorf("pose changed by foreign pointer: %v", h.w.Pose())
		}
		if h.w.Mode() != ModeDragging {
			t.Errorf("Mode() = %v, want dragging", h.w.Mode())
		}
	})

	t.Run("non-finite", func(t *testing.T) {
		h := newHarness(t)
		h.pointer(PointerPress, 1, 0, 0, 0)
		h.pointer(PointerMove, 1, math.NaN(), 0, 10*time.Millisecond)
		h.pointer(PointerMove, 1, 0, math.Inf(1), 20*time.Millisecond)
		s := h.w.State()
		if !vmathFinite(s) || s.RotX != 10 || s.RotY != -10 {
			t.Errorf("state after non-finite moves = %+v", s)
		}
		// Session kept its last good sample
		h.pointer(PointerMove, 1, 5, 0, 30*time.Millisecond)
		if !near(h.w.Pose().Y, -10+4) {
			t.Errorf("RotY = %v, want -6", h.w.Pose().Y)
		}
	})
}

func vmathFinite(s State) bool {
	for _, v := range []float64{s.RotX, s.RotY, s.VelX, s.VelY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestReleaseVariants(t *testing.T) {
	for _, kind := range []PointerKind{PointerRelease, PointerCancel, PointerLeave} {
		t.Run(kind.String(), func(t *testing.T) {
			h := newHarness(t)
			h.pointer(PointerPress, 7, 0, 0, 0)
			h.pointer(PointerMove, 7, 20, 0, 10*time.Millisecond)
			h.pointer(kind, 7, 20, 0, 12*time.Millisecond)

			if h.w.Mode() != ModeInertia {
				t.Errorf("Mode() = %v, want inertia", h.w.Mode())
			}
			if len(h.capture.held) != 0 {
				t.Errorf("captures still held: %v", h.capture.held)
			}

			// Second end is a no-op
			h.pointer(kind, 7, 20, 0, 14*time.Millisecond)
			if n := h.count(event.EventInertiaStarted); n != 1 {
				t.Errorf("inertia started %d times, want 1", n)
			}
		})
	}
}

func TestInertiaDecayTermination(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy float64
	}{
		{"scenario", 4, 0},
		{"both axes", -2.5, 1.25},
		{"slow", 0.0015, 0},
		{"vertical", 0, -0.75},
		{"fast", 40, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.w.Inertia().Start(tt.vx, tt.vy)

			v0 := math.Max(math.Abs(tt.vx), math.Abs(tt.vy))
			want := FramesToRest(v0, 0.98, 0.001)

			prev := h.w.State()
			frames := 0
			for h.sched.Pending() > 0 {
				if frames > want+1 {
					t.Fatalf("still running after %d frames, closed form %d", frames, want)
				}
				h.frame(16 * time.Millisecond)
				frames++

				s := h.w.State()
				if math.Abs(s.VelX) > math.Abs(prev.VelX) || math.Abs(s.VelY) > math.Abs(prev.VelY) {
					t.Fatalf("frame %d: |vel| grew from (%v,%v) to (%v,%v)", frames, prev.VelX, prev.VelY, s.VelX, s.VelY)
				}
				prev = s
			}

			if d := frames - want; d < -1 || d > 1 {
				t.Errorf("frames to rest = %d, closed form %d", frames, want)
			}
			if h.w.Mode() != ModeIdle {
				t.Errorf("Mode() at rest = %v, want idle", h.w.Mode())
			}
			if s := h.w.State(); s.VelX != 0 || s.VelY != 0 {
				t.Errorf("velocity at rest = (%v, %v), want zeroed", s.VelX, s.VelY)
			}
			if n := h.count(event.EventInertiaRested); n != 1 {
				t.Errorf("rested events = %d, want 1", n)
			}
		})
	}
}

func TestInertiaStopIdempotent(t *testing.T) {
	h := newHarness(t)

	// Stop when idle
	h.w.Inertia().Stop()
	if h.w.State() != stateAt(Pose{X: 10, Y: -10}) {
		t.Fatalf("Stop on idle changed state: %+v", h.w.State())
	}

	h.w.Inertia().Start(3, -1)
	h.frame(16 * time.Millisecond)
	h.frame(16 * time.Millisecond)

	h.w.Inertia().Stop()
	stopped := h.w.State()
	h.w.Inertia().Stop()

	for i := 0; i < 5; i++ {
		h.frame(16 * time.Millisecond)
	}
	if h.w.State() != stopped {
		t.Errorf("state moved after Stop: %+v -> %+v", stopped, h.w.State())
	}
	if h.sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", h.sched.Pending())
	}
	if h.w.Inertia().Running() {
		t.Error("Running() = true after Stop")
	}
}

func TestResetConvergence(t *testing.T) {
	starts := []Pose{
		{X: 10, Y: -10},
		{X: 0, Y: 0},
		{X: 725.5, Y: -1080},
		{X: -33, Y: 400},
		{X: 10, Y: 190},
	}
	target := Pose{X: 10, Y: -10}

	for _, start := range starts {
		t.Run(start.String(), func(t *testing.T) {
			h := newHarness(t)
			h.w.state = stateAt(start)
			h.w.state.VelX = 5

			h.w.Reset()
			if s := h.w.State(); s.VelX != 0 || s.VelY != 0 {
				t.Errorf("velocity not zeroed by reset: %+v", s)
			}

			prevDX := math.Abs(start.X - target.X)
			prevDY := math.Abs(start.Y - target.Y)
			frames := 0
			for h.sched.Pending() > 0 {
				h.frame(16 * time.Millisecond)
				frames++
				p := h.w.Pose()

				dX, dY := math.Abs(p.X-target.X), math.Abs(p.Y-target.Y)
				if dX > prevDX+eps || dY > prevDY+eps {
					t.Fatalf("frame %d: moved away from target: %v", frames, p)
				}
				if (p.X-target.X)*(start.X-target.X) < 0 || (p.Y-target.Y)*(start.Y-target.Y) < 0 {
					t.Fatalf("frame %d: overshot target: %v", frames, p)
				}
				prevDX, prevDY = dX, dY
			}

			if h.w.Pose() != target {
				t.Errorf("final pose = %v, want exactly %v", h.w.Pose(), target)
			}
			// 500ms at 16ms frames lands on frame 32
			if frames != 32 {
				t.Errorf("reset frames = %d, want 32", frames)
			}
			if h.w.Mode() != ModeIdle {
				t.Errorf("Mode() = %v, want idle", h.w.Mode())
			}
		})
	}
}

func TestResetUsesMeasuredTime(t *testing.T) {
	h := newHarness(t)
	h.w.state = stateAt(Pose{X: 90, Y: 90})
	h.w.Reset()

	// Two slow frames cover the whole duration
	h.frame(250 * time.Millisecond)
	if h.w.Mode() != ModeResetting {
		t.Fatalf("Mode() = %v after half duration, want resetting", h.w.Mode())
	}
	eased := 1 - math.Pow(0.5, 3)
	if want := 90 + (10-90)*eased; !near(h.w.Pose().X, want) {
		t.Errorf("RotX at half duration = %v, want %v", h.w.Pose().X, want)
	}

	h.frame(300 * time.Millisecond)
	if h.w.Pose() != (Pose{X: 10, Y: -10}) || h.w.Mode() != ModeIdle {
		t.Errorf("after full duration pose = %v mode = %v", h.w.Pose(), h.w.Mode())
	}
}

func TestResetStopIdempotent(t *testing.T) {
	h := newHarness(t)
	h.w.Resetter().Stop()

	h.w.state = stateAt(Pose{X: 100, Y: 100})
	h.w.Reset()
	h.frame(16 * time.Millisecond)
	h.w.Resetter().Stop()
	stopped := h.w.State()
	h.w.Resetter().Stop()
	h.frame(16 * time.Millisecond)

	if h.w.State() != stopped {
		t.Errorf("state moved after Stop: %+v -> %+v", stopped, h.w.State())
	}
	if h.w.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", h.w.Mode())
	}
}

func TestDoubleActivationWindow(t *testing.T) {
	tests := []struct {
		gap    time.Duration
		double bool
	}{
		{0, true},
		{200 * time.Millisecond, true},
		{299 * time.Millisecond, true},
		{300 * time.Millisecond, false},
		{450 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.gap.String(), func(t *testing.T) {
			h := newHarness(t)
			h.pointer(PointerPress, 1, 0, 0, 0)
			h.pointer(PointerRelease, 1, 0, 0, 0)
			h.pointer(PointerPress, 1, 0, 0, tt.gap)

			resets := h.count(event.EventResetStarted)
			drags := h.count(event.EventDragStarted)
			if tt.double {
				if resets != 1 || drags != 1 {
					t.Errorf("resets = %d drags = %d, want 1 and 1", resets, drags)
				}
				if h.w.Mode() != ModeResetting {
					t.Errorf("Mode() = %v, want resetting", h.w.Mode())
				}
				if len(h.capture.held) != 0 {
					t.Errorf("capture held after double: %v", h.capture.held)
				}
			} else {
				if resets != 0 || drags != 2 {
					t.Errorf("resets = %d drags = %d, want 0 and 2", resets, drags)
				}
				if h.w.Mode() != ModeDragging {
					t.Errorf("Mode() = %v, want dragging", h.w.Mode())
				}
			}
		})
	}
}

func TestDoubleActivationClockBackwards(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 100*time.Millisecond)
	h.pointer(PointerRelease, 1, 0, 0, 100*time.Millisecond)
	h.pointer(PointerPress, 1, 0, 0, 40*time.Millisecond)

	if h.w.Mode() != ModeResetting {
		t.Errorf("Mode() = %v, want resetting", h.w.Mode())
	}
}

func TestZeroDoubleWindowDisablesReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoubleActivationWindow = 0
	h := newHarness(t, WithConfig(cfg))
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerRelease, 1, 0, 0, 0)
	h.pointer(PointerPress, 1, 0, 0, 0)

	if n := h.count(event.EventResetStarted); n != 0 {
		t.Errorf("resets = %d, want 0", n)
	}
	if h.w.Mode() != ModeDragging {
		t.Errorf("Mode() = %v, want dragging", h.w.Mode())
	}
}

func TestDoubleActivationClearsHistory(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerRelease, 1, 0, 0, 10*time.Millisecond)
	h.pointer(PointerPress, 1, 0, 0, 200*time.Millisecond)
	h.pointer(PointerRelease, 1, 0, 0, 210*time.Millisecond)

	// Inside the window of the second press, but history was cleared
	h.pointer(PointerPress, 1, 0, 0, 350*time.Millisecond)
	if h.w.Mode() != ModeDragging {
		t.Errorf("Mode() = %v, want dragging", h.w.Mode())
	}
	if n := h.count(event.EventResetStarted); n != 1 {
		t.Errorf("resets = %d, want 1", n)
	}
}

func TestDoubleActivationWhileDragging(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 30, 10, 50*time.Millisecond)
	// Second pointer presses before the first released
	h.pointer(PointerPress, 2, 0, 0, 100*time.Millisecond)

	if h.w.Mode() != ModeResetting {
		t.Fatalf("Mode() = %v, want resetting", h.w.Mode())
	}
	if len(h.capture.held) != 0 {
		t.Errorf("capture held: %v", h.capture.held)
	}
	// Late release of the first pointer must not start inertia
	h.pointer(PointerRelease, 1, 30, 10, 120*time.Millisecond)
	if h.w.Mode() != ModeResetting {
		t.Errorf("Mode() after stale release = %v, want resetting", h.w.Mode())
	}
}

func TestDoubleActivationConvergesScenario(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 60, -25, 40*time.Millisecond)
	h.pointer(PointerRelease, 1, 60, -25, 40*time.Millisecond)
	for i := 0; i < 5; i++ {
		h.frame(16 * time.Millisecond)
	}

	h.pointer(PointerPress, 1, 0, 0, 200*time.Millisecond)

	deadline := epoch.Add(700 * time.Millisecond)
	for h.sched.Pending() > 0 {
		if h.clock.Now().After(deadline) {
			t.Fatalf("reset still running at %v after second activation", h.clock.Now().Sub(epoch.Add(200*time.Millisecond)))
		}
		h.frame(16 * time.Millisecond)
	}
	if h.w.Pose() != (Pose{X: 10, Y: -10}) {
		t.Errorf("pose = %v, want (10, -10)", h.w.Pose())
	}
}

func TestDragCancelsInertia(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 100, 0, 50*time.Millisecond)
	h.pointer(PointerRelease, 1, 100, 0, 50*time.Millisecond)
	h.frame(16 * time.Millisecond)

	h.pointer(PointerPress, 1, 5, 5, 500*time.Millisecond)
	if h.w.Mode() != ModeDragging {
		t.Fatalf("Mode() = %v, want dragging", h.w.Mode())
	}
	grabbed := h.w.State()
	if !near(grabbed.VelX, 3.92) || grabbed.VelY != 0 {
		t.Errorf("velocity after grab = (%v, %v), want caught (3.92, 0)", grabbed.VelX, grabbed.VelY)
	}

	for i := 0; i < 10; i++ {
		h.frame(16 * time.Millisecond)
	}
	if h.w.Pose() != grabbed.Pose() {
		t.Errorf("inertia mutated state after grab: %v -> %v", grabbed.Pose(), h.w.Pose())
	}
	if h.sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.sched.Pending())
	}
}

func TestCatchAndReleaseResumesInertia(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 100, 0, 50*time.Millisecond)
	h.pointer(PointerRelease, 1, 100, 0, 50*time.Millisecond)
	h.frame(16 * time.Millisecond)

	h.pointer(PointerPress, 1, 100, 0, 500*time.Millisecond)
	h.pointer(PointerRelease, 1, 100, 0, 520*time.Millisecond)
	if h.w.Mode() != ModeInertia {
		t.Fatalf("Mode() = %v, want inertia", h.w.Mode())
	}

	before := h.w.Pose()
	h.frame(16 * time.Millisecond)
	s := h.w.State()
	if want := 3.92 * 0.98; !near(s.VelX, want) {
		t.Errorf("VelX after first frame = %v, want %v", s.VelX, want)
	}
	if want := before.Y + 3.92*0.98*16*0.8; !near(s.RotY, want) {
		t.Errorf("RotY = %v, want %v", s.RotY, want)
	}

	limit := FramesToRest(3.92*0.98, 0.98, 0.001)
	if n := h.settle(limit + 2); n < 2 {
		t.Errorf("frames to rest = %d, want caught velocity to keep spinning", n)
	}
}

func TestPressReleaseWithoutMoveRests(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerRelease, 1, 0, 0, 20*time.Millisecond)

	if n := h.settle(2); n != 1 {
		t.Errorf("frames to rest = %d, want 1", n)
	}
	if h.w.Pose() != (Pose{X: 10, Y: -10}) {
		t.Errorf("pose = %v, want unchanged default", h.w.Pose())
	}
}

func TestResetPreemptsDragAndInertia(t *testing.T) {
	t.Run("dragging", func(t *testing.T) {
		h := newHarness(t)
		h.pointer(PointerPress, 1, 0, 0, 0)
		h.pointer(PointerMove, 1, 40, 0, 20*time.Millisecond)
		h.w.Reset()

		if h.w.Mode() != ModeResetting {
			t.Errorf("Mode() = %v, want resetting", h.w.Mode())
		}
		if len(h.capture.held) != 0 {
			t.Errorf("capture held: %v", h.capture.held)
		}
		h.settle(40)
		if h.w.Pose() != (Pose{X: 10, Y: -10}) {
			t.Errorf("pose = %v", h.w.Pose())
		}
	})

	t.Run("inertia", func(t *testing.T) {
		h := newHarness(t)
		h.w.Inertia().Start(10, 10)
		h.frame(16 * time.Millisecond)
		h.w.Reset()

		if h.w.Inertia().Running() {
			t.Error("inertia still running after reset")
		}
		h.settle(40)
		if s := h.w.State(); s != stateAt(Pose{X: 10, Y: -10}) {
			t.Errorf("state = %+v, want default at rest", s)
		}
	})
}

func TestReentrantPressRestartsSession(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 10, 0, 10*time.Millisecond)
	h.pointer(PointerPress, 2, 50, 50, 400*time.Millisecond)

	if h.capture.held[1] || !h.capture.held[2] {
		t.Errorf("capture = %v, want only pointer 2", h.capture.held)
	}

	before := h.w.Pose()
	h.pointer(PointerMove, 1, 90, 0, 410*time.Millisecond)
	if h.w.Pose() != before {
		t.Error("old session pointer still moves the card")
	}
	h.pointer(PointerMove, 2, 60, 50, 420*time.Millisecond)
	if !near(h.w.Pose().Y, before.Y+8) {
		t.Errorf("RotY = %v, want %v", h.w.Pose().Y, before.Y+8)
	}
}

func TestDeactivateTeardown(t *testing.T) {
	t.Run("during inertia", func(t *testing.T) {
		h := newHarness(t)
		h.w.Inertia().Start(4, 0)
		h.frame(16 * time.Millisecond)
		renders := len(h.poses)

		h.w.Deactivate()
		for i := 0; i < 5; i++ {
			h.frame(16 * time.Millisecond)
		}
		if len(h.poses) != renders {
			t.Errorf("rendered %d times after deactivate", len(h.poses)-renders)
		}
		if h.sched.Pending() != 0 {
			t.Errorf("Pending() = %d, want 0", h.sched.Pending())
		}
		if h.w.Mode() != ModeInactive {
			t.Errorf("Mode() = %v, want inactive", h.w.Mode())
		}
	})

	t.Run("during drag", func(t *testing.T) {
		h := newHarness(t)
		h.pointer(PointerPress, 3, 0, 0, 0)
		h.w.Deactivate()

		if len(h.capture.held) != 0 {
			t.Errorf("capture held after deactivate: %v", h.capture.held)
		}
		h.pointer(PointerMove, 3, 50, 0, 10*time.Millisecond)
		h.pointer(PointerRelease, 3, 50, 0, 20*time.Millisecond)
		if h.sched.Pending() != 0 {
			t.Error("inactive widget scheduled animation")
		}
	})

	t.Run("twice", func(t *testing.T) {
		h := newHarness(t)
		h.w.Deactivate()
		h.w.Deactivate()
		if n := h.count(event.EventDeactivated); n != 1 {
			t.Errorf("deactivated events = %d, want 1", n)
		}
	})
}

func TestReactivateClearsHistory(t *testing.T) {
	h := newHarness(t)
	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 80, 0, 10*time.Millisecond)
	h.w.Deactivate()
	h.w.Activate()

	if h.w.Pose() != (Pose{X: 10, Y: -10}) {
		t.Errorf("pose = %v, want default", h.w.Pose())
	}
	h.pointer(PointerPress, 1, 0, 0, 100*time.Millisecond)
	if h.w.Mode() != ModeDragging {
		t.Errorf("Mode() = %v, want dragging after reactivation", h.w.Mode())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Friction = 1

	_, err := New(engine.NewManualScheduler(), nil, nil, WithConfig(cfg))
	if err == nil {
		t.Fatal("New() accepted friction 1")
	}

	if _, err := New(nil, nil, nil); err == nil {
		t.Error("New() accepted nil scheduler")
	}
}

func TestCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sensitivity = 0.5
	cfg.DefaultPose = Pose{X: 0, Y: 0}
	h := newHarness(t, WithConfig(cfg))

	h.pointer(PointerPress, 1, 0, 0, 0)
	h.pointer(PointerMove, 1, 10, 20, 10*time.Millisecond)
	if p := h.w.Pose(); p != (Pose{X: -10, Y: 5}) {
		t.Errorf("pose = %v, want (-10, 5)", p)
	}
}
