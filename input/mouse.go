package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiltcard/spin"
)

// Transition is a pointer edge derived from successive mouse reports
type Transition struct {
	Kind spin.PointerKind
	X, Y int
}

// MouseTracker derives press/move/release from tcell button masks
// Terminals report state, not edges: a press is the primary button appearing, a release its disappearance
type MouseTracker struct {
	down    bool
	lastX   int
	lastY   int
	hasLast bool
}

// Translate returns the transitions implied by a mouse report, at most two (release then press never occurs)
func (m *MouseTracker) Translate(x, y int, buttons tcell.ButtonMask) []Transition {
	primary := buttons&tcell.ButtonPrimary != 0
	moved := !m.hasLast || x != m.lastX || y != m.lastY
	m.lastX, m.lastY, m.hasLast = x, y, true

	switch {
	case primary && !m.down:
		m.down = true
		return []Transition{{Kind: spin.PointerPress, X: x, Y: y}}

	case primary && m.down:
		if !moved {
			return nil
		}
		return []Transition{{Kind: spin.PointerMove, X: x, Y: y}}

	case !primary && m.down:
		m.down = false
		// Final position may differ from the last drag report
		if moved {
			return []Transition{
				{Kind: spin.PointerMove, X: x, Y: y},
				{Kind: spin.PointerRelease, X: x, Y: y},
			}
		}
		return []Transition{{Kind: spin.PointerRelease, X: x, Y: y}}
	}
	return nil
}

// Down reports whether the primary button is held
func (m *MouseTracker) Down() bool {
	return m.down
}

// Reset forgets button state, used after focus loss
func (m *MouseTracker) Reset() {
	m.down = false
	m.hasLast = false
}
