package math

import "math"

// Euler holds intrinsic rotation angles in radians, applied in X, Y, Z order.
// Bones expose yaw/pitch directly this way, which is what the aim controller drives.
type Euler struct {
	X, Y, Z float32
}

// Quat converts the angles to a quaternion.
func (e Euler) Quat() Quat {
	c1 := float32(math.Cos(float64(e.X / 2)))
	c2 := float32(math.Cos(float64(e.Y / 2)))
	c3 := float32(math.Cos(float64(e.Z / 2)))
	s1 := float32(math.Sin(float64(e.X / 2)))
	s2 := float32(math.Sin(float64(e.Y / 2)))
	s3 := float32(math.Sin(float64(e.Z / 2)))

	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}
