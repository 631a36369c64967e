package spin

import (
	"math"
	"time"

	"github.com/lixenwraith/tiltcard/vmath"
)

// Inertia advances the pose from a release velocity, one friction step per frame
// Displacement uses the nominal frame step, not measured time
type Inertia struct {
	cfg    *Config
	state  *State
	slot   *animSlot
	render func()
	onRest func()
}

// Start claims the animation slot and begins decaying from (vx, vy)
// Non-finite components are treated as zero
func (in *Inertia) Start(vx, vy float64) {
	if !vmath.Finite(vx) {
		vx = 0
	}
	if !vmath.Finite(vy) {
		vy = 0
	}

	in.slot.begin(animInertia)
	in.state.VelX = vx
	in.state.VelY = vy
	in.slot.next(in.step)
}

// Stop cancels a running decay, idempotent
func (in *Inertia) Stop() {
	in.slot.cancelKind(animInertia)
}

// Running reports whether inertia holds the animation slot
func (in *Inertia) Running() bool {
	return in.slot.running() == animInertia
}

func (in *Inertia) step(time.Time) {
	s := in.state
	s.VelX *= in.cfg.Friction
	s.VelY *= in.cfg.Friction

	if math.Abs(s.VelX) < in.cfg.RestThreshold && math.Abs(s.VelY) < in.cfg.RestThreshold {
		// At rest where it stands, no snapping
		s.VelX, s.VelY = 0, 0
		in.slot.finish()
		if in.onRest != nil {
			in.onRest()
		}
		return
	}

	stepMs := float64(in.cfg.NominalFrame) / float64(time.Millisecond)
	s.RotY += s.VelX * stepMs * in.cfg.Sensitivity
	s.RotX -= s.VelY * stepMs * in.cfg.Sensitivity
	in.render()

	in.slot.next(in.step)
}

// FramesToRest returns the closed-form frame count for |v0| to decay below threshold
// The final frame stops without displacement
func FramesToRest(v0, friction, threshold float64) int {
	v := math.Abs(v0)
	if v <= threshold {
		// First frame only decays further and stops
		return 1
	}
	return int(math.Ceil(math.Log(threshold/v) / math.Log(friction)))
}
