package scene

import (
	"testing"

	"github.com/Faultbox/toonrig/pkg/math"
)

func buildChain(t *testing.T) (*Graph, Handle, Handle, Handle) {
	t.Helper()
	g := NewGraph()
	root := g.Add(NoHandle, NewGroup("root", math.Vec3{X: 1}))
	head := g.Add(root, NewBone("Head", math.Vec3{Y: 2}))
	tip := g.Add(head, NewBone("hairFront5", math.Vec3{Z: -0.5}))
	return g, root, head, tip
}

func TestAddLinksParentAndChildren(t *testing.T) {
	g, root, head, tip := buildChain(t)

	if got := g.Node(head).Parent; got != root {
		t.Errorf("head parent = %v, want %v", got, root)
	}
	if children := g.Node(head).Children; len(children) != 1 || children[0] != tip {
		t.Errorf("head children = %v, want [%v]", children, tip)
	}
	if roots := g.Roots(); len(roots) != 1 || roots[0] != root {
		t.Errorf("roots = %v", roots)
	}
	if _, ok := g.Parent(root); ok {
		t.Error("root should have no parent")
	}
}

func TestWorldPosition(t *testing.T) {
	g, _, head, tip := buildChain(t)

	if got, want := g.WorldPosition(tip), (math.Vec3{X: 1, Y: 2, Z: -0.5}); got.Distance(want) > 1e-5 {
		t.Errorf("tip world position = %v, want %v", got, want)
	}

	// Yaw the head 90 degrees: the tip swings from -Z to -X.
	g.Node(head).Rotation = math.Euler{Y: math.Pi / 2}
	if got, want := g.WorldPosition(tip), (math.Vec3{X: 0.5, Y: 2, Z: 0}); got.Distance(want) > 1e-4 {
		t.Errorf("rotated tip world position = %v, want %v", got, want)
	}
}

func TestWorldToLocal(t *testing.T) {
	g, _, head, _ := buildChain(t)
	g.Node(head).Scale = math.Vec3{X: 2, Y: 2, Z: 2}

	world := math.Vec3{X: 1, Y: 3, Z: 0}
	local := g.WorldToLocal(head, world)
	if want := (math.Vec3{Y: 0.5}); local.Distance(want) > 1e-5 {
		t.Errorf("WorldToLocal = %v, want %v", local, want)
	}
}

func TestFindBone(t *testing.T) {
	g, _, head, tip := buildChain(t)
	g.Add(tip, NewBone("hairFront6", math.Vec3{}))

	if got := g.FindBone("head", true); got != head {
		t.Errorf("exact lookup should be case-insensitive, got %v", got)
	}
	if got := g.FindBone("hea", true); got.Valid() {
		t.Errorf("exact lookup should not match a prefix, got %v", got)
	}
	// Substring matches both hair bones; the later one wins.
	got := g.FindBone("hairfront", false)
	if n := g.Node(got); n == nil || n.Name != "hairFront6" {
		t.Errorf("substring lookup = %v, want hairFront6", n)
	}
	if got := g.FindBone("root", true); got.Valid() {
		t.Error("groups are not bones")
	}
}

func TestResetInvalidatesHandles(t *testing.T) {
	g, _, head, _ := buildChain(t)
	g.Reset()

	if g.Node(head) != nil {
		t.Error("handle from before Reset should not resolve")
	}
	if g.Len() != 0 || len(g.Named()) != 0 {
		t.Error("Reset should clear nodes and names")
	}

	fresh := g.Add(NoHandle, NewBone("Head", math.Vec3{}))
	if fresh == head {
		t.Error("new handle should differ from the stale one")
	}
	if g.Node(head) != nil {
		t.Error("stale handle should stay dead even when the slot is reused")
	}
}

func TestNamedFirstWins(t *testing.T) {
	g := NewGraph()
	first := g.Add(NoHandle, NewGroup("dup", math.Vec3{}))
	g.Add(NoHandle, NewGroup("dup", math.Vec3{}))
	if got := g.Named()["dup"]; got != first {
		t.Errorf("Named()[dup] = %v, want first %v", got, first)
	}
}

func TestMorphed(t *testing.T) {
	geom := &Geometry{
		Positions:    []math.Vec3{{}, {X: 1}},
		MorphTargets: [][]math.Vec3{{{Y: -1}, {Y: -2}}},
	}
	if got := geom.Morphed([]float32{0}); &got[0] != &geom.Positions[0] {
		t.Error("inactive morph should return the base positions")
	}
	got := geom.Morphed([]float32{0.5})
	if got[0] != (math.Vec3{Y: -0.5}) || got[1] != (math.Vec3{X: 1, Y: -1}) {
		t.Errorf("Morphed = %v", got)
	}
	if geom.Positions[1] != (math.Vec3{X: 1}) {
		t.Error("Morphed must not modify base positions")
	}
}

func TestNewMeshAllocatesInfluences(t *testing.T) {
	geom := &Geometry{MorphTargets: make([][]math.Vec3, 2)}
	n := NewMesh("eye_L", geom)
	if len(n.MorphInfluences) != 2 {
		t.Errorf("expected 2 morph influences, got %d", len(n.MorphInfluences))
	}
}
