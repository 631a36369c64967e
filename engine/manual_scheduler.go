package engine

import "time"

// ManualScheduler is a FrameScheduler advanced explicitly by the caller
// Used for deterministic, time-controlled tests
type ManualScheduler struct {
	queue  frameQueue
	frames uint64
}

// NewManualScheduler creates an idle manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame implements FrameScheduler
func (s *ManualScheduler) RequestFrame(fn FrameFunc) Handle {
	return s.queue.request(fn)
}

// CancelFrame implements FrameScheduler
func (s *ManualScheduler) CancelFrame(h Handle) {
	s.queue.cancel(h)
}

// Step runs one frame at the given time and returns the number of callbacks fired
func (s *ManualScheduler) Step(now time.Time) int {
	s.frames++
	return s.queue.run(now)
}

// Pending returns the number of live callbacks waiting for the next Step
func (s *ManualScheduler) Pending() int {
	return s.queue.size()
}

// Frames returns how many times Step was called
func (s *ManualScheduler) Frames() uint64 {
	return s.frames
}
