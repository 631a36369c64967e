package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/tiltcard/core"
)

// Transport serves the WebSocket endpoint and owns the peer set
type Transport struct {
	config   *Config
	listener net.Listener
	server   *http.Server
	peers    *PeerManager
	upgrader websocket.Upgrader

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config: cfg,
		peers:  NewPeerManager(cfg),
		upgrader: websocket.Upgrader{
			// Local observer pages are served from anywhere, the endpoint binds loopback by default
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetHandlers configures message and connection callbacks
func (t *Transport) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, []byte),
) {
	t.peers.SetHandlers(onConnect, onDisconnect, onMessage)
}

// Start binds the listener and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc(t.config.Path, t.handleUpgrade)
	t.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	t.wg.Add(1)
	core.Go(func() {
		defer t.wg.Done()
		t.server.Serve(ln)
	})

	return nil
}

// handleUpgrade upgrades the request and registers the peer
// Peer loops are not tied to the request context, net/http cancels it when the handler returns
func (t *Transport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if t.peers.PeerCount() >= t.config.MaxPeers {
		http.Error(w, errMaxPeers.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	t.peers.AddConnection(conn, r.RemoteAddr)
}

// Stop shuts the server down and disconnects all peers
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
	defer cancel()

	// Hijacked connections are not tracked by Shutdown, peers are closed separately
	err := t.server.Shutdown(ctx)
	t.peers.Close()
	t.wg.Wait()

	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(frame []byte) {
	t.peers.Broadcast(frame)
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

// Addr returns the bound address, nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
