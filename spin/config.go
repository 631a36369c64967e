package spin

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/tiltcard/event"
	"github.com/lixenwraith/tiltcard/parameter"
	"github.com/lixenwraith/tiltcard/vmath"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid spin config")

// Config holds the interaction constants, all overridable for tests and tuning
type Config struct {
	Sensitivity            float64       // Degrees per pointer unit
	Friction               float64       // Per-frame velocity multiplier, (0,1)
	VelocityScale          float64       // Multiplier on the instantaneous velocity sample
	NominalFrame           time.Duration // Inertia displacement step
	RestThreshold          float64       // Inertia stops when both |vel| components are below
	MinSampleInterval      time.Duration // Floor on dt between pointer samples
	DoubleActivationWindow time.Duration
	ResetDuration          time.Duration
	DefaultPose            Pose
}

// DefaultConfig returns the stock interaction constants
func DefaultConfig() Config {
	return Config{
		Sensitivity:            parameter.SpinSensitivity,
		Friction:               parameter.SpinFriction,
		VelocityScale:          parameter.SpinVelocityScale,
		NominalFrame:           parameter.SpinNominalFrame,
		RestThreshold:          parameter.SpinRestThreshold,
		MinSampleInterval:      parameter.SpinMinSampleInterval,
		DoubleActivationWindow: parameter.SpinDoubleActivationWindow,
		ResetDuration:          parameter.SpinResetDuration,
		DefaultPose:            Pose{X: parameter.SpinDefaultRotX, Y: parameter.SpinDefaultRotY},
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case !vmath.Finite(c.Sensitivity) || c.Sensitivity == 0:
		return fmt.Errorf("%w: sensitivity %v", ErrInvalidConfig, c.Sensitivity)
	case !(c.Friction > 0 && c.Friction < 1):
		// Friction of 1 or more never reaches rest
		return fmt.Errorf("%w: friction %v outside (0,1)", ErrInvalidConfig, c.Friction)
	case !vmath.Finite(c.VelocityScale) || c.VelocityScale < 0:
		return fmt.Errorf("%w: velocity scale %v", ErrInvalidConfig, c.VelocityScale)
	case c.NominalFrame <= 0:
		return fmt.Errorf("%w: nominal frame %v", ErrInvalidConfig, c.NominalFrame)
	case !(c.RestThreshold > 0) || math.IsInf(c.RestThreshold, 0):
		return fmt.Errorf("%w: rest threshold %v", ErrInvalidConfig, c.RestThreshold)
	case c.MinSampleInterval <= 0:
		return fmt.Errorf("%w: min sample interval %v", ErrInvalidConfig, c.MinSampleInterval)
	case c.DoubleActivationWindow < 0:
		return fmt.Errorf("%w: double activation window %v", ErrInvalidConfig, c.DoubleActivationWindow)
	case c.ResetDuration <= 0:
		return fmt.Errorf("%w: reset duration %v", ErrInvalidConfig, c.ResetDuration)
	case !vmath.Finite(c.DefaultPose.X, c.DefaultPose.Y):
		return fmt.Errorf("%w: default pose %v", ErrInvalidConfig, c.DefaultPose)
	}
	return nil
}

// Option customizes a Widget at construction
type Option func(*Widget)

// WithConfig replaces the interaction constants
func WithConfig(cfg Config) Option {
	return func(w *Widget) {
		w.cfg = cfg
	}
}

// WithCapturer installs the pointer capture sink
func WithCapturer(c Capturer) Option {
	return func(w *Widget) {
		if c != nil {
			w.capturer = c
		}
	}
}

// WithEvents publishes lifecycle events to bus
func WithEvents(bus *event.Bus) Option {
	return func(w *Widget) {
		w.bus = bus
	}
}
