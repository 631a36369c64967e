package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/parameter"
)

// Cue is a short sound tied to a widget event
type Cue int

const (
	CueGrab Cue = iota
	CueReset
	CueRest
)

var cueNames = [...]string{
	CueGrab:  "grab",
	CueReset: "reset",
	CueRest:  "rest",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// cueForEvent maps widget events to cues
var cueForEvent = map[event.EventType]Cue{
	event.EventDragStarted:   CueGrab,
	event.EventResetStarted:  CueReset,
	event.EventInertiaRested: CueRest,
}

// NewCue builds the streamer for c at rate, scaled by gain
func NewCue(c Cue, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueGrab:
		// Square click with a fast decay
		d := parameter.CueGrabDuration
		s = newShape(newTone(1400, 900, d, WaveSquare, rate), d, d/10, d*7/10, rate)
		gain *= 0.5
	case CueReset:
		// Upward sine sweep
		d := parameter.CueResetDuration
		s = newShape(newTone(330, 880, d, WaveSine, rate), d, d/6, d/3, rate)
	case CueRest:
		// Soft triangle tick
		d := parameter.CueRestDuration
		s = newShape(newTone(660, 660, d, WaveTriangle, rate), d, d/8, d/2, rate)
		gain *= 0.6
	default:
		return nil
	}
	return withGain(s, gain)
}
