package engine

import "time"

// Handle identifies a scheduled frame callback
// Zero is never issued and is safe to cancel
type Handle uint64

// FrameFunc runs once on the next display frame with that frame's timestamp
type FrameFunc func(now time.Time)

// FrameScheduler is the "run on next frame" capability animations are built on
// Callbacks requested while a frame is running execute on the following frame
// Cancelling an unknown, fired, or already cancelled handle is a no-op
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) Handle
	CancelFrame(h Handle)
}

type frameEntry struct {
	handle Handle
	fn     FrameFunc
}

// frameQueue is the single-goroutine bookkeeping shared by Loop and ManualScheduler
type frameQueue struct {
	next    Handle
	pending []frameEntry
	spare   []frameEntry
	live    map[Handle]struct{}
}

func (q *frameQueue) request(fn FrameFunc) Handle {
	if q.live == nil {
		q.live = make(map[Handle]struct{})
	}
	q.next++
	h := q.next
	q.pending = append(q.pending, frameEntry{handle: h, fn: fn})
	q.live[h] = struct{}{}
	return h
}

// cancel invalidates the handle; the stale entry is skipped lazily on the next run
func (q *frameQueue) cancel(h Handle) {
	if h == 0 || q.live == nil {
		return
	}
	delete(q.live, h)
}

// run executes the batch pending at call time and returns how many callbacks fired
func (q *frameQueue) run(now time.Time) int {
	if len(q.pending) == 0 {
		return 0
	}

	batch := q.pending
	q.pending = q.spare[:0]

	fired := 0
	for i := range batch {
		e := batch[i]
		batch[i] = frameEntry{}
		if _, ok := q.live[e.handle]; !ok {
			continue
		}
		delete(q.live, e.handle)
		e.fn(now)
		fired++
	}

	q.spare = batch[:0]
	return fired
}

// size returns the number of live callbacks waiting for a frame
func (q *frameQueue) size() int {
	return len(q.live)
}
