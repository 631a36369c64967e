package parameter

import "time"

// Audio Cues
const (
	// CueSampleRate is the speaker sample rate
	CueSampleRate = 44100

	// CueBufferDuration sizes the speaker buffer
	CueBufferDuration = 100 * time.Millisecond

	// CueGrabDuration is the length of the grab click
	CueGrabDuration = 30 * time.Millisecond

	// CueResetDuration is the length of the reset sweep
	CueResetDuration = 180 * time.Millisecond

	// CueRestDuration is the length of the soft rest tick
	CueRestDuration = 40 * time.Millisecond

	// CueDefaultVolume is the linear gain applied to every cue
	CueDefaultVolume = 0.25
)
