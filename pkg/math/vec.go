// Package math provides the vector, quaternion and matrix types used by the rig.
package math

import "math"

// Vec2 is a 2D vector: texture coordinates, normal scales and the
// normalized pointer.
type Vec2 struct {
	X, Y float32
}

// Clamp limits both components to [lo, hi].
func (v Vec2) Clamp(lo, hi float32) Vec2 {
	return Vec2{X: Clamp(v.X, lo, hi), Y: Clamp(v.Y, lo, hi)}
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// World axes.
var (
	Up   = Vec3{Y: 1}
	Down = Vec3{Y: -1}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }

// Mul is the component-wise product, used to tint colors.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the right-handed cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Normalize returns v scaled to unit length; the zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
	}
	return Vec3{}
}

// Distance returns the length of v - o.
func (v Vec3) Distance(o Vec3) float32 { return v.Sub(o).Length() }

// Lerp moves each component towards o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t), Z: Lerp(v.Z, o.Z, t)}
}

// Array is the GL upload layout.
func (v Vec3) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }
