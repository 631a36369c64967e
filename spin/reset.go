package spin

import (
	"time"

	"github.com/lixenwraith/tiltcard/engine"
	"github.com/lixenwraith/tiltcard/vmath"
)

// Resetter eases the pose back to the default over a fixed duration
// Progress uses measured elapsed time so the ease length is independent of frame rate
type Resetter struct {
	cfg    *Config
	state  *State
	slot   *animSlot
	clock  engine.Clock
	render func()
	onDone func()

	from  Pose
	start time.Time
}

// Start claims the animation slot, zeroes velocity and begins the ease from the current pose
func (r *Resetter) Start() {
	r.slot.begin(animReset)
	r.state.VelX, r.state.VelY = 0, 0
	r.from = r.state.Pose()
	r.start = r.clock.Now()
	r.slot.next(r.step)
}

// Stop cancels a running ease, idempotent; the pose stays where it was
func (r *Resetter) Stop() {
	r.slot.cancelKind(animReset)
}

// Running reports whether the reset holds the animation slot
func (r *Resetter) Running() bool {
	return r.slot.running() == animReset
}

func (r *Resetter) step(time.Time) {
	target := r.cfg.DefaultPose
	elapsed := r.clock.Now().Sub(r.start)
	progress := vmath.Clamp01(float64(elapsed) / float64(r.cfg.ResetDuration))

	if progress >= 1 {
		// Land exactly, no float residue from the ease
		r.state.RotX = target.X
		r.state.RotY = target.Y
		r.render()
		r.slot.finish()
		if r.onDone != nil {
			r.onDone()
		}
		return
	}

	eased := vmath.EaseOutCubic(progress)
	r.state.RotX = vmath.LerpF(r.from.X, target.X, eased)
	r.state.RotY = vmath.LerpF(r.from.Y, target.Y, eased)
	r.render()

	r.slot.next(r.step)
}
