package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/tiltcard/core"
)

// PeerID is the per-process connection sequence number
type PeerID uint32

var errMaxPeers = errors.New("max peers reached")

// Peer represents a connected WebSocket client
type Peer struct {
	ID       PeerID
	UUID     string
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn *websocket.Conn

	// Send queue; full queue drops the oldest frame, pose frames supersede each other
	sendCh  chan []byte
	sendMu  sync.Mutex
	dropped atomic.Uint64

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, addr string, sendQueueSize int) *Peer {
	if sendQueueSize < 1 {
		sendQueueSize = 1
	}
	p := &Peer{
		ID:      id,
		UUID:    uuid.NewString(),
		Addr:    addr,
		conn:    conn,
		sendCh:  make(chan []byte, sendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues a frame, evicting the oldest queued frame when full
// Returns false once the peer is closed
func (p *Peer) Send(frame []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	for {
		select {
		case p.sendCh <- frame:
			return true
		default:
		}
		select {
		case <-p.sendCh:
			p.dropped.Add(1)
		default:
		}
	}
}

// Dropped returns the number of frames evicted by newer ones
func (p *Peer) Dropped() uint64 {
	return p.dropped.Load()
}

// Close initiates shutdown, safe to call multiple times
// The write loop sends the close frame and releases the connection
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
	})
}

// Done is closed when the peer shuts down
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop reads frames until the connection fails
func (p *Peer) readLoop(cfg *Config, handler func(*Peer, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(cfg.ReadLimit)
	p.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		msgType, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))

		if msgType != websocket.TextMessage {
			continue
		}
		handler(p, data)
	}
}

// writeLoop sends queued frames and keepalive pings
func (p *Peer) writeLoop(cfg *Config) {
	defer func() {
		p.Close()
		p.conn.Close()
	}()

	ticker := time.NewTicker(cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.closeCh:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			p.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case frame := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager handles multiple peer connections
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID atomic.Uint32
	config *Config
	wg     sync.WaitGroup

	// Callbacks
	onConnect    func(*Peer)
	onDisconnect func(*Peer)
	onMessage    func(*Peer, []byte)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:  make(map[PeerID]*Peer),
		config: cfg,
	}
}

// SetHandlers configures event callbacks
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, []byte),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers an upgraded connection and starts its I/O loops
func (pm *PeerManager) AddConnection(conn *websocket.Conn, addr string) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.config.MaxPeers {
		pm.mu.Unlock()
		conn.Close()
		return nil, errMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, addr, pm.config.SendQueueSize)
	pm.peers[id] = peer
	pm.mu.Unlock()

	// Greeting is queued before the write loop starts so it is always the first frame
	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	pm.wg.Add(3)
	core.Go(func() {
		defer pm.wg.Done()
		peer.readLoop(pm.config, pm.handleMessage)
	})
	core.Go(func() {
		defer pm.wg.Done()
		peer.writeLoop(pm.config)
	})
	core.Go(func() {
		defer pm.wg.Done()
		pm.monitorPeer(peer)
	})

	return peer, nil
}

func (pm *PeerManager) handleMessage(p *Peer, data []byte) {
	if pm.onMessage != nil {
		pm.onMessage(p, data)
	}
}

// monitorPeer removes the peer once it closes
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer)
	}
}

// Broadcast queues a frame to all connected peers
func (pm *PeerManager) Broadcast(frame []byte) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	for _, peer := range pm.peers {
		peer.Send(frame)
	}
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers and waits for their loops
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, peer := range pm.peers {
		peers = append(peers, peer)
	}
	pm.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
	pm.wg.Wait()
}
