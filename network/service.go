package network

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/tiltcard/engine"
	"github.com/lixenwraith/tiltcard/spin"
)

// PointerSink receives remote pointer samples on the network goroutine
// The receiver hands them over to the frame loop
type PointerSink func(ev spin.PointerEvent)

// Service wraps Transport as a hub-managed service and a pose renderer
type Service struct {
	config    *Config
	transport *Transport
	logger    *slog.Logger
	clock     engine.Clock
	sink      PointerSink

	seq  atomic.Uint64
	mu   sync.Mutex
	pose spin.Pose // Last rendered pose, replayed in the greeting

	disabled atomic.Bool
}

// NewService creates a network service (disabled until Init with an enabled config)
func NewService(logger *slog.Logger, clock engine.Clock, sink PointerSink) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	s := &Service{
		config: DefaultConfig(),
		logger: logger,
		clock:  clock,
		sink:   sink,
	}
	s.disabled.Store(true)
	return s
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	if !s.config.Enabled {
		s.disabled.Store(true)
		return nil
	}
	if s.config.Path == "" || s.config.Path[0] != '/' {
		return fmt.Errorf("network path must start with '/': %q", s.config.Path)
	}

	s.transport = NewTransport(s.config)
	s.transport.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	s.disabled.Store(false)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.transport == nil {
		return nil
	}
	if err := s.transport.Start(); err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.logger.Info("pose broadcast listening", "addr", s.transport.Addr().String(), "path", s.config.Path)
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.transport != nil {
		return s.transport.Stop()
	}
	return nil
}

// Render implements spin.Renderer, broadcasting every pose
func (s *Service) Render(p spin.Pose) {
	s.mu.Lock()
	s.pose = p
	s.mu.Unlock()

	if s.disabled.Load() || s.transport == nil || s.transport.PeerCount() == 0 {
		return
	}

	frame, err := EncodePose(s.seq.Add(1), p)
	if err != nil {
		s.logger.Warn("pose encode failed", "error", err)
		return
	}
	s.transport.Broadcast(frame)
}

// onConnect greets the client with its id and the current pose
func (s *Service) onConnect(p *Peer) {
	s.mu.Lock()
	pose := s.pose
	s.mu.Unlock()

	frame, err := EncodeHello(p.UUID, s.pointerID(p), pose)
	if err != nil {
		s.logger.Warn("hello encode failed", "error", err)
		return
	}
	p.Send(frame)
	s.logger.Info("remote client connected", "client", p.UUID, "addr", p.Addr, "clients", s.PeerCount())
}

// onDisconnect cancels any drag the client left behind
func (s *Service) onDisconnect(p *Peer) {
	s.logger.Info("remote client disconnected", "client", p.UUID, "dropped", p.Dropped())
	if s.sink == nil {
		return
	}
	s.sink(spin.PointerEvent{
		ID:   spin.PointerID(s.pointerID(p)),
		Kind: spin.PointerCancel,
		Time: s.clock.Now(),
	})
}

// onMessage decodes a pointer sample, stamps it with the receive time and forwards it
func (s *Service) onMessage(p *Peer, data []byte) {
	kind, x, y, err := DecodePointer(data)
	if err != nil {
		s.logger.Debug("remote message dropped", "client", p.UUID, "error", err)
		return
	}
	if s.sink == nil {
		return
	}
	s.sink(spin.PointerEvent{
		ID:   spin.PointerID(s.pointerID(p)),
		Kind: kind,
		X:    x,
		Y:    y,
		Time: s.clock.Now(),
	})
}

func (s *Service) pointerID(p *Peer) int {
	return s.config.PointerBase + int(p.ID)
}

// PeerCount returns connected client count
func (s *Service) PeerCount() int {
	if s.transport == nil {
		return 0
	}
	return s.transport.PeerCount()
}

// Addr returns the bound address, empty when not listening
func (s *Service) Addr() string {
	if s.transport == nil || s.transport.Addr() == nil {
		return ""
	}
	return s.transport.Addr().String()
}

// IsRunning returns true if the endpoint is serving
func (s *Service) IsRunning() bool {
	return s.transport != nil && s.transport.IsRunning()
}
