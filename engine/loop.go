package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tiltcard/parameter"
)

// Loop is the single goroutine that owns all widget mutation
// Input producers hand work over with Post; animations schedule themselves with RequestFrame
// RequestFrame and CancelFrame must only be called from inside the loop (posted funcs or frame callbacks)
type Loop struct {
	clock    Clock
	interval time.Duration

	frames    frameQueue
	posts     chan func()
	presenter []func(now time.Time)

	frameCount atomic.Uint64
	running    atomic.Bool

	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewLoop creates a loop ticking at interval, falling back to parameter.FrameInterval
func NewLoop(clock Clock, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	if clock == nil {
		clock = NewTimeProvider()
	}
	return &Loop{
		clock:    clock,
		interval: interval,
		posts:    make(chan func(), parameter.PostQueueSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// RequestFrame implements FrameScheduler
func (l *Loop) RequestFrame(fn FrameFunc) Handle {
	return l.frames.request(fn)
}

// CancelFrame implements FrameScheduler
func (l *Loop) CancelFrame(h Handle) {
	l.frames.cancel(h)
}

// OnFrame registers a hook run after the frame callbacks of every tick, must be called before Run
func (l *Loop) OnFrame(fn func(now time.Time)) {
	l.presenter = append(l.presenter, fn)
}

// Post queues fn for execution on the loop goroutine
// Blocks while the queue is full; returns false once the loop has stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopCh:
		return false
	default:
	}

	select {
	case l.posts <- fn:
		return true
	case <-l.stopCh:
		return false
	}
}

// Run processes posted work and frames until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer close(l.doneCh)

	nextDeadline := l.clock.Now().Add(l.interval)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()

		case <-l.stopCh:
			return nil

		case fn := <-l.posts:
			fn()

		case <-timer.C:
			now := l.clock.Now()
			l.tick(now)

			// Drift correction: skip ahead instead of bursting when far behind
			nextDeadline = nextDeadline.Add(l.interval)
			if now.Sub(nextDeadline) > l.interval*2 {
				nextDeadline = now.Add(l.interval)
			}
			sleep := nextDeadline.Sub(l.clock.Now())
			if sleep < 0 {
				sleep = 0
			}
			timer.Reset(sleep)
		}
	}
}

// tick runs one frame: scheduled callbacks first, presenters after
func (l *Loop) tick(now time.Time) {
	l.frames.run(now)
	for _, fn := range l.presenter {
		fn(now)
	}
	l.frameCount.Add(1)
}

// Stop halts the loop, safe to call multiple times and from any goroutine
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// Done is closed once Run has returned
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// Frames returns the number of frames processed
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

// Pending returns the number of live frame callbacks, loop goroutine only
func (l *Loop) Pending() int {
	return l.frames.size()
}
