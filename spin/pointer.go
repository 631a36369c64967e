package spin

import "time"

// PointerID identifies one pointer stream; capture is keyed by it
type PointerID int

// PointerKind is the raw pointer transition
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
	PointerCancel
	PointerLeave
)

var pointerKindNames = [...]string{
	PointerPress:   "press",
	PointerMove:    "move",
	PointerRelease: "release",
	PointerCancel:  "cancel",
	PointerLeave:   "leave",
}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// ParsePointerKind maps a wire name back to its kind
func ParsePointerKind(s string) (PointerKind, bool) {
	for i, name := range pointerKindNames {
		if name == s {
			return PointerKind(i), true
		}
	}
	return 0, false
}

// PointerEvent is one raw pointer sample in host coordinates
type PointerEvent struct {
	ID   PointerID
	Kind PointerKind
	X, Y float64
	Time time.Time
}

// Capturer grants exclusive routing of a pointer to the widget while dragging
type Capturer interface {
	Capture(id PointerID)
	Release(id PointerID)
}

type nopCapturer struct{}

func (nopCapturer) Capture(PointerID) {}
func (nopCapturer) Release(PointerID) {}
