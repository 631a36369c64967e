package audio

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/parameter"
)

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // linear gain, 0 silences
	SampleRate int
	Buffer     time.Duration
}

// DefaultConfig returns the audio defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Volume:     parameter.CueDefaultVolume,
		SampleRate: parameter.CueSampleRate,
		Buffer:     parameter.CueBufferDuration,
	}
}

// Player plays widget cues through the speaker
// A disabled or unstarted player drops every cue
type Player struct {
	mu      sync.Mutex
	logger  *slog.Logger
	config  *Config
	mixer   *beep.Mixer
	started bool

	muted  atomic.Bool
	played atomic.Int64
}

// NewPlayer creates a player with default config
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger: logger,
		config: DefaultConfig(),
		mixer:  &beep.Mixer{},
	}
}

// Name implements service.Service
func (p *Player) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (p *Player) Dependencies() []string {
	return nil
}

// Optional implements service.Optional, a missing device leaves the program silent
func (p *Player) Optional() bool {
	return true
}

// Init implements service.Service, accepts *Config
func (p *Player) Init(args ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, arg := range args {
		if cfg, ok := arg.(*Config); ok && cfg != nil {
			c := *cfg
			if c.SampleRate <= 0 {
				c.SampleRate = parameter.CueSampleRate
			}
			if c.Buffer <= 0 {
				c.Buffer = parameter.CueBufferDuration
			}
			if c.Volume < 0 {
				return errors.New("audio volume must not be negative")
			}
			p.config = &c
		}
	}
	return nil
}

// Start implements service.Service, opening the speaker when enabled
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || !p.config.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(p.config.Buffer)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	p.logger.Info("audio started", "sample_rate", p.config.SampleRate)
	return nil
}

// Stop implements service.Service
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
	return nil
}

// Attach plays cues for widget events
func (p *Player) Attach(bus *event.Bus) {
	types := make([]event.EventType, 0, len(cueForEvent))
	for t := range cueForEvent {
		types = append(types, t)
	}
	bus.Subscribe(func(ev event.Event) {
		p.Play(cueForEvent[ev.Type])
	}, types...)
}

// Play mixes c into the output, returns false when dropped
func (p *Player) Play(c Cue) bool {
	if p.muted.Load() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return false
	}

	s := NewCue(c, beep.SampleRate(p.config.SampleRate), p.config.Volume)
	if s == nil {
		return false
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
	return true
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Running reports whether the speaker is open
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Played returns the number of cues mixed
func (p *Player) Played() int64 {
	return p.played.Load()
}
