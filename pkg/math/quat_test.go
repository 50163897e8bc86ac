package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	got := q.Rotate(Vec3{1, 0, 0})
	// 90 degrees about Y takes +X to -Z
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("Rotate: got %v, want (0, 0, -1)", got)
	}
}

func TestEulerMatchesAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		euler Euler
		axis  Vec3
		angle float32
	}{
		{"pitch", Euler{X: 0.4}, Vec3{1, 0, 0}, 0.4},
		{"yaw", Euler{Y: -0.7}, Vec3{0, 1, 0}, -0.7},
		{"roll", Euler{Z: 1.1}, Vec3{0, 0, 1}, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.euler.Quat()
			want := QuatFromAxisAngle(tt.axis, tt.angle)
			if abs(got.X-want.X) > 1e-5 || abs(got.Y-want.Y) > 1e-5 || abs(got.Z-want.Z) > 1e-5 || abs(got.W-want.W) > 1e-5 {
				t.Errorf("Euler%v.Quat() = %v, want %v", tt.euler, got, want)
			}
		})
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}
