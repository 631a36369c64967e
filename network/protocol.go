package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/tiltcard/render"
	"github.com/lixenwraith/tiltcard/spin"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Outbound
	MsgHello MessageType = "hello" // First frame to a new client, carries its id and the current pose
	MsgPose  MessageType = "pose"  // Pose after every mutation

	// Inbound
	MsgPointer MessageType = "pointer" // Remote pointer sample
)

var ErrUnknownMessage = errors.New("unknown message type")

// envelope is decoded first to dispatch on type
type envelope struct {
	Type MessageType `json:"type"`
}

// HelloMessage greets a newly connected client
type HelloMessage struct {
	Type      MessageType `json:"type"`
	Client    string      `json:"client"`
	Pointer   int         `json:"pointer"`
	RotX      float64     `json:"rotX"`
	RotY      float64     `json:"rotY"`
	Transform string      `json:"transform"`
}

// PoseMessage is broadcast for each rendered pose
type PoseMessage struct {
	Type      MessageType `json:"type"`
	Seq       uint64      `json:"seq"`
	RotX      float64     `json:"rotX"`
	RotY      float64     `json:"rotY"`
	Transform string      `json:"transform"`
}

// PointerMessage is a remote pointer sample in card-local units
type PointerMessage struct {
	Type MessageType `json:"type"`
	Kind string      `json:"kind"`
	X    float64     `json:"x"`
	Y    float64     `json:"y"`
}

// EncodePose serializes a pose frame
func EncodePose(seq uint64, p spin.Pose) ([]byte, error) {
	return json.Marshal(PoseMessage{
		Type:      MsgPose,
		Seq:       seq,
		RotX:      p.X,
		RotY:      p.Y,
		Transform: render.Transform(p),
	})
}

// EncodeHello serializes the greeting for client
func EncodeHello(client string, pointer int, p spin.Pose) ([]byte, error) {
	return json.Marshal(HelloMessage{
		Type:      MsgHello,
		Client:    client,
		Pointer:   pointer,
		RotX:      p.X,
		RotY:      p.Y,
		Transform: render.Transform(p),
	})
}

// DecodePointer parses an inbound frame into a pointer kind and position
func DecodePointer(data []byte) (spin.PointerKind, float64, float64, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, 0, 0, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type != MsgPointer {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrUnknownMessage, env.Type)
	}

	var msg PointerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return 0, 0, 0, fmt.Errorf("decode pointer: %w", err)
	}
	kind, ok := spin.ParsePointerKind(msg.Kind)
	if !ok {
		return 0, 0, 0, fmt.Errorf("unknown pointer kind %q", msg.Kind)
	}
	return kind, msg.X, msg.Y, nil
}
