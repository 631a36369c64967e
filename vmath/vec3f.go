package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used by the card projection
// Screen convention: X right, Y down, Z toward the viewer
type Vec3F struct {
	X, Y, Z float64
}

// Basis vectors of the unrotated card
var (
	AxisX = Vec3F{1, 0, 0}
	AxisY = Vec3F{0, 1, 0}
	AxisZ = Vec3F{0, 0, 1}
)

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return V3FDot(v, v)
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// RotateXDeg rotates v about the X axis, matching CSS rotateX in a Y-down frame
func RotateXDeg(v Vec3F, deg float64) Vec3F {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec3F{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateYDeg rotates v about the Y axis, matching CSS rotateY in a Y-down frame
func RotateYDeg(v Vec3F, deg float64) Vec3F {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec3F{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateXY applies "rotateX(rx) rotateY(ry)": the Y rotation acts on the point first
func RotateXY(v Vec3F, rx, ry float64) Vec3F {
	return RotateXDeg(RotateYDeg(v, ry), rx)
}
