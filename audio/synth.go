package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// tone is an oscillator gliding linearly from one frequency to another over its length
type tone struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	length   int
	pos      int
	phase    float64
}

// newTone returns a streamer of exactly rate.N(d) samples
func newTone(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) *tone {
	return &tone{from: from, to: to, wave: wave, rate: rate, length: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.length {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.length {
			break
		}
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		progress := float64(t.pos) / float64(t.length)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release to a finite streamer of total samples
type shape struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func newShape(src beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) *shape {
	return &shape{
		src:     src,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(total),
	}
}

func (s *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if s.pos < s.attack {
			gain = float64(s.pos) / float64(s.attack)
		}
		if left := s.total - s.pos; left < s.release {
			gain = min(gain, float64(left)/float64(s.release))
		}
		gain = max(gain, 0)
		samples[i][0] *= gain
		samples[i][1] *= gain
		s.pos++
	}
	return n, ok
}

func (s *shape) Err() error { return s.src.Err() }

// withGain scales a streamer by a linear factor through beep's logarithmic volume
// Log2(0) is -Inf, so zero gain becomes Silent
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
