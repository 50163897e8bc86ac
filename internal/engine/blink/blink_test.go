package blink

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

func TestWeight(t *testing.T) {
	tests := []struct {
		elapsed float32
		want    float32
	}{
		{0, 0},
		{0.0835, 0.5},
		{0.167, 1},
		{0.2085, 0.5},
		{0.25, 0},
		{0.6, 0},
		{0.999, 0},
		{3.0835, 0.5}, // later cycles repeat
	}
	for _, tt := range tests {
		got := Weight(tt.elapsed)
		if gomath.Abs(float64(got-tt.want)) > 1e-3 {
			t.Errorf("Weight(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestWeightRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		w := Weight(float32(i) * 0.0037)
		if w < 0 || w > 1 {
			t.Fatalf("Weight out of range at step %d: %v", i, w)
		}
	}
}

func eyeGeometry() *scene.Geometry {
	return &scene.Geometry{
		Positions:    []math.Vec3{{}, {X: 1}, {Y: 1}},
		Indices:      []uint32{0, 1, 2},
		MorphTargets: [][]math.Vec3{{{}, {}, {Y: -0.5}}},
	}
}

func TestAnimatorUpdatesEyes(t *testing.T) {
	g := scene.NewGraph()
	root := g.Add(scene.NoHandle, scene.NewGroup("root", math.Vec3{}))
	left := g.Add(root, scene.NewMesh("eye_L", eyeGeometry()))
	right := g.Add(root, scene.NewMesh("eye_R", eyeGeometry()))
	g.Add(root, scene.NewMesh("Eye_upper", eyeGeometry()))        // case differs
	g.Add(root, scene.NewMesh("eyebrow_flat", &scene.Geometry{})) // no morphs
	mouth := g.Add(root, scene.NewMesh("mouth", eyeGeometry()))

	a := New(config.Default().Blink)
	if n := a.Bind(g); n != 2 {
		t.Fatalf("Bind() found %d eyes, want 2", n)
	}

	a.Update(g, 0.167)
	for _, h := range []scene.Handle{left, right} {
		if w := g.Node(h).MorphInfluences[0]; gomath.Abs(float64(w-1)) > 1e-4 {
			t.Errorf("%s weight = %v, want 1", g.Node(h).Name, w)
		}
	}
	if w := g.Node(mouth).MorphInfluences[0]; w != 0 {
		t.Errorf("mouth weight = %v, want 0", w)
	}
}

func TestAnimatorDisabled(t *testing.T) {
	g := scene.NewGraph()
	eye := g.Add(scene.NoHandle, scene.NewMesh("eye", eyeGeometry()))

	cfg := config.Default().Blink
	cfg.Enabled = false
	a := New(cfg)
	a.Bind(g)
	a.Update(g, 0.1)
	if w := g.Node(eye).MorphInfluences[0]; w != 0 {
		t.Errorf("disabled animator wrote %v", w)
	}
}
