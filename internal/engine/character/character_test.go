package character

import (
	"testing"

	"github.com/Faultbox/toonrig/internal/assets"
	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/material"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

const frame = float32(1.0 / 60)

func TestDiscoverDemoCharacter(t *testing.T) {
	c := New(config.Default(), nil)
	stats := c.Discover(assets.BuildCharacter())

	// 3 per 8-bone side/front chain (5..7), 5 in the tail (2..6), 3 ribbons.
	want := Stats{SpringBones: 17, CollisionMeshes: 4, Eyes: 2, Neck: true}
	if stats != want {
		t.Errorf("Discover() = %+v, want %+v", stats, want)
	}
}

func TestDiscoverEmptyGraph(t *testing.T) {
	c := New(config.Default(), nil)
	g := scene.NewGraph()
	g.Add(scene.NoHandle, scene.NewGroup("empty", math.Vec3{}))

	if stats := c.Discover(g); stats != (Stats{}) {
		t.Errorf("Discover(empty) = %+v", stats)
	}
	c.Update(Frame{Elapsed: 1, Delta: frame, Pointer: math.Vec2{X: 1}})
}

func TestConvertMaterials(t *testing.T) {
	g := assets.BuildCharacter()
	c := New(config.Default(), toon.NewGradientCache(nil, nil))
	c.Discover(g)

	want := 0
	g.Walk(func(_ scene.Handle, n *scene.Node) {
		if n.Kind == scene.KindMesh && !material.IsEyeSurface(n) {
			want += len(n.Materials)
		}
	})

	if got := c.ConvertMaterials(); got != want {
		t.Fatalf("ConvertMaterials() = %d, want %d", got, want)
	}
	if got := c.ConvertMaterials(); got != 0 {
		t.Errorf("second ConvertMaterials() = %d, want 0", got)
	}

	g.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			_, isToon := m.(*toon.Material)
			if material.IsEyeSurface(n) == isToon {
				t.Errorf("%s: material %T", n.Name, m)
			}
		}
	})

	shoes := g.Node(g.Named()[assets.ShoesMesh]).Materials[0].(*toon.Material)
	if shoes.Descriptor.Color != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("black shoes should turn white, got %v", shoes.Descriptor.Color)
	}
}

func TestUpdateRunsSubsystems(t *testing.T) {
	g := assets.BuildCharacter()
	c := New(config.Default(), nil)
	c.Discover(g)

	named := g.Named()
	ribbon := named["bake5"]
	rest := g.Node(ribbon).Position

	g.Node(named["hips"]).Position.X += 0.2
	c.Update(Frame{Elapsed: 0.167, Delta: frame, Pointer: math.Vec2{X: 1}})

	if g.Node(ribbon).Position == rest {
		t.Error("ribbon should lag behind the hips")
	}
	if yaw := g.Node(named[assets.NeckBone]).Rotation.Y; yaw <= 0 {
		t.Errorf("neck yaw = %v, want > 0", yaw)
	}
	for _, eye := range []string{"eye_L", "eye_R"} {
		if w := g.Node(named[eye]).MorphInfluences[0]; w < 0.999 {
			t.Errorf("%s blink weight = %v, want 1", eye, w)
		}
	}

	for i := 0; i < 300; i++ {
		c.Update(Frame{Elapsed: float32(i) * frame, Delta: frame})
	}
	if d := g.Node(ribbon).Position.Distance(rest); d > 1e-3 {
		t.Errorf("ribbon did not settle, %v from rest", d)
	}
}

func TestSetSystems(t *testing.T) {
	g := assets.BuildCharacter()
	c := New(config.Default(), nil)
	c.Discover(g)
	c.SetSystems(Systems{Blink: true})

	named := g.Named()
	ribbon := named["bake5"]
	rest := g.Node(ribbon).Position

	g.Node(named["hips"]).Position.X += 0.2
	c.Update(Frame{Elapsed: 0.167, Delta: frame, Pointer: math.Vec2{X: 1}})

	if g.Node(ribbon).Position != rest {
		t.Error("springs ran while disabled")
	}
	if yaw := g.Node(named[assets.NeckBone]).Rotation.Y; yaw != 0 {
		t.Errorf("neck yaw = %v while aim is disabled", yaw)
	}
	if w := g.Node(named["eye_L"]).MorphInfluences[0]; w < 0.999 {
		t.Errorf("blink weight = %v, want 1", w)
	}
	if c.Systems() != (Systems{Blink: true}) {
		t.Errorf("Systems() = %+v", c.Systems())
	}
}

func TestMaterials(t *testing.T) {
	c := New(config.Default(), nil)
	if c.Materials() != nil {
		t.Error("Materials() without a graph should be nil")
	}
	c.Discover(assets.BuildCharacter())
	if len(c.Materials()) != 0 {
		t.Error("materials before conversion should not be toon")
	}
	c.ConvertMaterials()

	ms := c.Materials()
	if len(ms) == 0 {
		t.Fatal("no toon materials after conversion")
	}
	seen := make(map[*toon.Material]bool)
	for _, m := range ms {
		if seen[m] {
			t.Errorf("material %s listed twice", m.Name)
		}
		seen[m] = true
	}
}

func TestSharedSourcesConvertOnce(t *testing.T) {
	g := assets.BuildCharacter()
	sources := make(map[scene.Material]bool)
	g.Walk(func(_ scene.Handle, n *scene.Node) {
		if n.Kind != scene.KindMesh || material.IsEyeSurface(n) {
			return
		}
		for _, m := range n.Materials {
			sources[m] = true
		}
	})

	c := New(config.Default(), nil)
	c.Discover(g)
	c.ConvertMaterials()

	if got := len(c.Materials()); got != len(sources) {
		t.Errorf("distinct toon materials = %d, want %d distinct sources", got, len(sources))
	}
}

func TestRediscoverDisposesPreviousGraph(t *testing.T) {
	first := assets.BuildCharacter()
	c := New(config.Default(), nil)
	c.Discover(first)

	named := first.Named()
	ribbon := named["bake5"]
	rest := first.Node(ribbon).Position
	first.Node(named["hips"]).Position.Z += 0.3
	c.Update(Frame{Delta: frame})
	c.Update(Frame{Delta: frame})

	second := assets.BuildCharacter()
	stats := c.Discover(second)
	if got := first.Node(ribbon).Position; got != rest {
		t.Errorf("old graph ribbon left at %v, want rest %v", got, rest)
	}
	if stats.SpringBones != 17 || c.Springs().Len() != 17 {
		t.Errorf("rediscover registered %d bones", c.Springs().Len())
	}
	if c.Graph() != second {
		t.Error("Graph() should return the new graph")
	}
}

func TestCloseAndNilGraph(t *testing.T) {
	c := New(config.Default(), nil)
	c.Update(Frame{Delta: frame})
	if c.ConvertMaterials() != 0 {
		t.Error("ConvertMaterials without a graph should do nothing")
	}

	c.Discover(assets.BuildCharacter())
	c.Close()
	if c.Springs().Len() != 0 || c.Graph() != nil {
		t.Error("Close should drop all state")
	}
	c.Update(Frame{Delta: frame})
}
