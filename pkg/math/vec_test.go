package math

import (
	"testing"
)

func TestVec2Clamp(t *testing.T) {
	v := Vec2{-3, 0.5}
	got := v.Clamp(-1, 1)
	want := Vec2{-1, 0.5}
	if got != want {
		t.Errorf("Vec2.Clamp() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, -6}
	got := a.Lerp(b, 0.5)
	want := Vec3{1, 2, -3}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"below", -1, 0},
		{"lower edge", 0, 0},
		{"middle", 0.5, 0.5},
		{"upper edge", 1, 1},
		{"above", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(0, 1, tt.x); abs(got-tt.want) > 1e-6 {
				t.Errorf("Smoothstep(0, 1, %v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestMod(t *testing.T) {
	if got := Mod(2.25, 1); abs(got-0.25) > 1e-6 {
		t.Errorf("Mod(2.25, 1) = %v, want 0.25", got)
	}
	if got := Mod(-0.25, 1); abs(got-0.75) > 1e-6 {
		t.Errorf("Mod(-0.25, 1) = %v, want 0.75", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
