package render

import (
	"strconv"

	"github.com/lixenwraith/tiltcard/spin"
	"github.com/lixenwraith/tiltcard/vmath"
)

// Transform formats a pose as a CSS transform, X rotation applied outermost
func Transform(p spin.Pose) string {
	return "rotateX(" + strconv.FormatFloat(p.X, 'g', -1, 64) + "deg) rotateY(" +
		strconv.FormatFloat(p.Y, 'g', -1, 64) + "deg)"
}

// Basis is the rotated card frame: right, down and the face normal toward the viewer
type Basis struct {
	Right  vmath.Vec3F
	Down   vmath.Vec3F
	Normal vmath.Vec3F
}

// BasisFor derives the card frame fresh from the absolute pose
func BasisFor(p spin.Pose) Basis {
	return Basis{
		Right:  vmath.RotateXY(vmath.AxisX, p.X, p.Y),
		Down:   vmath.RotateXY(vmath.AxisY, p.X, p.Y),
		Normal: vmath.RotateXY(vmath.AxisZ, p.X, p.Y),
	}
}

// Project casts the ray from the eye at (0,0,d) through screen point (sx,sy,0) onto the card plane
// Returns card-local (u,v) and whether the front face is the one seen
func (b Basis) Project(sx, sy, d float64) (u, v float64, front, hit bool) {
	eye := vmath.Vec3F{Z: d}
	dir := vmath.Vec3F{X: sx, Y: sy, Z: -d}

	denom := vmath.V3FDot(b.Normal, dir)
	if denom > -1e-9 && denom < 1e-9 {
		// Card seen edge-on
		return 0, 0, false, false
	}
	t := -vmath.V3FDot(b.Normal, eye) / denom
	if t <= 0 {
		return 0, 0, false, false
	}

	p := vmath.V3FAdd(eye, vmath.V3FScale(dir, t))
	u = vmath.V3FDot(p, b.Right)
	v = vmath.V3FDot(p, b.Down)
	front = vmath.V3FDot(b.Normal, vmath.V3FSub(eye, p)) > 0
	return u, v, front, true
}
