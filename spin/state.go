package spin

import "fmt"

// Pose is the two-axis orientation handed to renderers, in degrees
type Pose struct {
	X float64 // rotateX
	Y float64 // rotateY
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// State is the mutable rotation record
// RotX/RotY are unbounded; VelX/VelY are in input units per millisecond, pre-scaled
type State struct {
	RotX float64
	RotY float64
	VelX float64
	VelY float64
}

// Pose returns the orientation part of the state
func (s State) Pose() Pose {
	return Pose{X: s.RotX, Y: s.RotY}
}

func stateAt(p Pose) State {
	return State{RotX: p.X, RotY: p.Y}
}
