package network

import (
	"time"

	"github.com/lixenwraith/tiltcard/parameter"
)

// Config holds pose broadcast configuration
type Config struct {
	// Enabled starts the WebSocket endpoint; disabled service is a no-op renderer
	Enabled bool

	// Address to bind, ":0" picks a free port
	Address string

	// Path of the WebSocket endpoint
	Path string

	// Connection limits
	MaxPeers int

	// Timing
	WriteTimeout time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration

	// Buffer sizes
	SendQueueSize int
	ReadLimit     int64

	// PointerBase offsets remote pointer ids so they never collide with the local mouse
	PointerBase int
}

// DefaultConfig returns the disabled default
func DefaultConfig() *Config {
	return &Config{
		Enabled:       false,
		Address:       "127.0.0.1:7788",
		Path:          parameter.BroadcastPath,
		MaxPeers:      16,
		WriteTimeout:  parameter.BroadcastWriteTimeout,
		PingInterval:  20 * time.Second,
		PongTimeout:   30 * time.Second,
		SendQueueSize: parameter.BroadcastSendQueue,
		ReadLimit:     parameter.BroadcastReadLimit,
		PointerBase:   parameter.BroadcastPointerBase,
	}
}
