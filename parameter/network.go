package parameter

import "time"

// Pose Broadcast
const (
	// BroadcastPath is the default WebSocket endpoint
	BroadcastPath = "/pose"

	// BroadcastSendQueue is the per-client buffered frame count before frames are coalesced
	BroadcastSendQueue = 16

	// BroadcastWriteTimeout bounds a single frame write
	BroadcastWriteTimeout = 2 * time.Second

	// BroadcastReadLimit caps inbound message size
	BroadcastReadLimit = 4096

	// BroadcastPointerBase offsets remote pointer ids from local mouse ids
	BroadcastPointerBase = 1000
)
