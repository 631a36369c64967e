package spin

import (
	"time"

	"github.com/lixenwraith/tiltcard/engine"
)

// animKind tags the animation occupying the slot
type animKind uint8

const (
	animNone animKind = iota
	animInertia
	animReset
)

// animSlot is the single animation slot shared by inertia and reset
// Beginning one animation cancels whatever held the slot, so two writers never overlap
type animSlot struct {
	sched  engine.FrameScheduler
	handle engine.Handle
	kind   animKind
	gen    uint64 // Bumped on every begin/cancel/finish; stale callbacks compare and bail
}

// begin claims the slot for kind, cancelling the previous holder
func (s *animSlot) begin(kind animKind) {
	s.cancel()
	s.kind = kind
}

// next schedules fn for the following frame under the current claim
func (s *animSlot) next(fn engine.FrameFunc) {
	gen := s.gen
	s.handle = s.sched.RequestFrame(func(now time.Time) {
		if s.gen != gen {
			return
		}
		s.handle = 0
		fn(now)
	})
}

// cancel drops whatever holds the slot, no-op when empty
func (s *animSlot) cancel() {
	if s.handle != 0 {
		s.sched.CancelFrame(s.handle)
		s.handle = 0
	}
	s.kind = animNone
	s.gen++
}

// cancelKind cancels only if kind holds the slot
func (s *animSlot) cancelKind(kind animKind) {
	if s.kind == kind {
		s.cancel()
	}
}

// finish releases the slot from inside the holder's final frame
func (s *animSlot) finish() {
	s.handle = 0
	s.kind = animNone
	s.gen++
}

func (s *animSlot) running() animKind {
	return s.kind
}
