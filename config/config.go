// Package config loads tiltcard settings from defaults, an optional TOML file and TILTCARD_ environment variables
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/lixenwraith/tiltcard/audio"
	"github.com/lixenwraith/tiltcard/network"
	"github.com/lixenwraith/tiltcard/parameter"
	"github.com/lixenwraith/tiltcard/render"
	"github.com/lixenwraith/tiltcard/spin"
)

// EnvPrefix prefixes environment overrides, TILTCARD_SPIN_FRICTION sets spin.friction
const EnvPrefix = "TILTCARD"

// Config holds application configuration
type Config struct {
	Spin    SpinConfig    `mapstructure:"spin" toml:"spin"`
	Render  RenderConfig  `mapstructure:"render" toml:"render"`
	Audio   AudioConfig   `mapstructure:"audio" toml:"audio"`
	Network NetworkConfig `mapstructure:"network" toml:"network"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// SpinConfig holds the interaction constants, durations in milliseconds
type SpinConfig struct {
	Sensitivity     float64 `mapstructure:"sensitivity" toml:"sensitivity"`
	Friction        float64 `mapstructure:"friction" toml:"friction"`
	VelocityScale   float64 `mapstructure:"velocity_scale" toml:"velocity_scale"`
	NominalFrameMs  float64 `mapstructure:"nominal_frame_ms" toml:"nominal_frame_ms"`
	RestThreshold   float64 `mapstructure:"rest_threshold" toml:"rest_threshold"`
	MinSampleMs     float64 `mapstructure:"min_sample_ms" toml:"min_sample_ms"`
	DoubleWindowMs  float64 `mapstructure:"double_window_ms" toml:"double_window_ms"`
	ResetDurationMs float64 `mapstructure:"reset_duration_ms" toml:"reset_duration_ms"`
	DefaultRotX     float64 `mapstructure:"default_rot_x" toml:"default_rot_x"`
	DefaultRotY     float64 `mapstructure:"default_rot_y" toml:"default_rot_y"`
}

// RenderConfig holds presentation settings
type RenderConfig struct {
	FPS         int      `mapstructure:"fps" toml:"fps"`
	Perspective float64  `mapstructure:"perspective" toml:"perspective"`
	Title       string   `mapstructure:"title" toml:"title"`
	Lines       []string `mapstructure:"lines" toml:"lines"`
	Image       string   `mapstructure:"image" toml:"image"`
	StatusBar   bool     `mapstructure:"status_bar" toml:"status_bar"`
}

// AudioConfig holds cue settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
	Volume  float64 `mapstructure:"volume" toml:"volume"`
}

// NetworkConfig holds pose broadcast settings
type NetworkConfig struct {
	Enabled   bool   `mapstructure:"enabled" toml:"enabled"`
	Listen    string `mapstructure:"listen" toml:"listen"`
	Path      string `mapstructure:"path" toml:"path"`
	MaxPeers  int    `mapstructure:"max_peers" toml:"max_peers"`
	SendQueue int    `mapstructure:"send_queue" toml:"send_queue"`
}

// LogConfig holds logger settings, an empty file discards logs
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

// Default returns the built-in configuration
func Default() Config {
	sc := spin.DefaultConfig()
	nc := network.DefaultConfig()
	return Config{
		Spin: SpinConfig{
			Sensitivity:     sc.Sensitivity,
			Friction:        sc.Friction,
			VelocityScale:   sc.VelocityScale,
			NominalFrameMs:  millis(sc.NominalFrame),
			RestThreshold:   sc.RestThreshold,
			MinSampleMs:     millis(sc.MinSampleInterval),
			DoubleWindowMs:  millis(sc.DoubleActivationWindow),
			ResetDurationMs: millis(sc.ResetDuration),
			DefaultRotX:     sc.DefaultPose.X,
			DefaultRotY:     sc.DefaultPose.Y,
		},
		Render: RenderConfig{
			FPS:         parameter.FrameRate,
			Perspective: parameter.Perspective,
			Title:       parameter.CardTitle,
			Lines:       []string{parameter.CardSubtitle},
			StatusBar:   true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.CueDefaultVolume,
		},
		Network: NetworkConfig{
			Enabled:   nc.Enabled,
			Listen:    nc.Address,
			Path:      nc.Path,
			MaxPeers:  nc.MaxPeers,
			SendQueue: nc.SendQueueSize,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is the config file read when neither an explicit path nor TILTCARD_CONFIG is given
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", "tiltcard", "config.toml")
}

// Load reads configuration from defaults, file and env
// An explicit path (argument or TILTCARD_CONFIG) must exist; the default path is optional
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("toml")

	explicit := path
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// setDefaults registers every key so env overrides apply to keys absent from the file
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("spin.sensitivity", d.Spin.Sensitivity)
	v.SetDefault("spin.friction", d.Spin.Friction)
	v.SetDefault("spin.velocity_scale", d.Spin.VelocityScale)
	v.SetDefault("spin.nominal_frame_ms", d.Spin.NominalFrameMs)
	v.SetDefault("spin.rest_threshold", d.Spin.RestThreshold)
	v.SetDefault("spin.min_sample_ms", d.Spin.MinSampleMs)
	v.SetDefault("spin.double_window_ms", d.Spin.DoubleWindowMs)
	v.SetDefault("spin.reset_duration_ms", d.Spin.ResetDurationMs)
	v.SetDefault("spin.default_rot_x", d.Spin.DefaultRotX)
	v.SetDefault("spin.default_rot_y", d.Spin.DefaultRotY)

	v.SetDefault("render.fps", d.Render.FPS)
	v.SetDefault("render.perspective", d.Render.Perspective)
	v.SetDefault("render.title", d.Render.Title)
	v.SetDefault("render.lines", d.Render.Lines)
	v.SetDefault("render.image", d.Render.Image)
	v.SetDefault("render.status_bar", d.Render.StatusBar)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("network.enabled", d.Network.Enabled)
	v.SetDefault("network.listen", d.Network.Listen)
	v.SetDefault("network.path", d.Network.Path)
	v.SetDefault("network.max_peers", d.Network.MaxPeers)
	v.SetDefault("network.send_queue", d.Network.SendQueue)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// WriteDefault emits the default configuration as TOML
func WriteDefault(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(Default()); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return nil
}

// SpinConfig converts and validates the interaction constants
func (c Config) SpinConfig() (spin.Config, error) {
	sc := spin.Config{
		Sensitivity:   c.Spin.Sensitivity,
		Friction:      c.Spin.Friction,
		VelocityScale: c.Spin.VelocityScale,
		RestThreshold: c.Spin.RestThreshold,
		DefaultPose:   spin.Pose{X: c.Spin.DefaultRotX, Y: c.Spin.DefaultRotY},
	}
	for _, f := range []struct {
		key string
		ms  float64
		dst *time.Duration
	}{
		{"nominal_frame_ms", c.Spin.NominalFrameMs, &sc.NominalFrame},
		{"min_sample_ms", c.Spin.MinSampleMs, &sc.MinSampleInterval},
		{"double_window_ms", c.Spin.DoubleWindowMs, &sc.DoubleActivationWindow},
		{"reset_duration_ms", c.Spin.ResetDurationMs, &sc.ResetDuration},
	} {
		d, err := duration(f.ms)
		if err != nil {
			return spin.Config{}, fmt.Errorf("config [spin] %s: %w", f.key, err)
		}
		*f.dst = d
	}
	if err := sc.Validate(); err != nil {
		return spin.Config{}, fmt.Errorf("config [spin]: %w", err)
	}
	return sc, nil
}

// FrameInterval converts render.fps, falling back to the fixed default interval
func (c Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return parameter.FrameInterval
	}
	return time.Second / time.Duration(c.Render.FPS)
}

// CardConfig returns the card presentation options
func (c Config) CardConfig() render.CardConfig {
	cc := render.DefaultCardConfig()
	if c.Render.Perspective > 0 {
		cc.Perspective = c.Render.Perspective
	}
	cc.ShowStatus = c.Render.StatusBar
	return cc
}

// AudioConfig returns the cue player settings
func (c Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.Volume = c.Audio.Volume
	return ac
}

// NetworkConfig returns the broadcast endpoint settings
func (c Config) NetworkConfig() *network.Config {
	nc := network.DefaultConfig()
	nc.Enabled = c.Network.Enabled
	if c.Network.Listen != "" {
		nc.Address = c.Network.Listen
	}
	if c.Network.Path != "" {
		nc.Path = c.Network.Path
	}
	if c.Network.MaxPeers > 0 {
		nc.MaxPeers = c.Network.MaxPeers
	}
	if c.Network.SendQueue > 0 {
		nc.SendQueueSize = c.Network.SendQueue
	}
	return nc
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// maxMillis is the largest millisecond count a time.Duration holds
const maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// duration converts a millisecond setting, rejecting NaN, infinities and values past the int64 range
func duration(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxMillis {
		return 0, fmt.Errorf("%w: %v ms out of range", spin.ErrInvalidConfig, ms)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}
