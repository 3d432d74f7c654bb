package world

import (
	"fmt"
	"math"
)

// Vec2 is a screen-space position or delta in pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Vec3 is a world-space position. Z is carried for depth-aware hosts but
// every position produced by this package has Z == 0.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v-o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product of v and o
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Flat drops the depth component.
func (v Vec3) Flat() Vec3 {
	return Vec3{v.X, v.Y, 0}
}

// IsZero reports whether all components are zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// DistSq returns the squared planar distance between v and o (Z ignored)
func (v Vec3) DistSq(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Split separates v into its integer part (floored) and the non-negative
// fractional remainder.
func (v Vec3) Split() (CellIndex, Vec3) {
	fx, fy, fz := math.Floor(v.X), math.Floor(v.Y), math.Floor(v.Z)
	return CellIndex{X: int(fx), Y: int(fy)}, Vec3{v.X - fx, v.Y - fy, v.Z - fz}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
