package collision

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/picking"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

// floor returns a horizontal quad at local y=0. It is lopsided so the shared
// diagonal does not pass through the origin where the test rays land.
func floor() *scene.Geometry {
	return &scene.Geometry{
		Positions: []math.Vec3{{X: -1, Z: -1}, {X: 1.5, Z: -1}, {X: 1.5, Z: 1}, {X: -1, Z: 1}},
		Indices:   []uint32{0, 2, 1, 0, 3, 2},
	}
}

func addFloor(g *scene.Graph, name string, y float32) scene.Handle {
	n := scene.NewMesh(name, floor())
	n.Position = math.Vec3{Y: y}
	return g.Add(scene.NoHandle, n)
}

func testConfig() config.CollisionConfig {
	return config.Default().Collision
}

func TestResolveMeshes(t *testing.T) {
	g := scene.NewGraph()
	root := g.Add(scene.NoHandle, scene.NewGroup("root", math.Vec3{}))
	hairCap := g.Add(root, scene.NewMesh("Hair_cap", floor()))
	g.Add(root, scene.NewBone("hairSide0", math.Vec3{})) // bones never collide
	cloth := g.Add(root, scene.NewMesh("cloth_shape_0008", floor()))
	shoes := g.Add(root, scene.NewMesh("shoes_mesh_shape_mesh015", floor()))
	hairBack := g.Add(root, scene.NewMesh("hairBack", floor()))
	g.Add(root, scene.NewMesh("body", floor()))

	cfg := testConfig()
	got := ResolveMeshes(g, cfg.MeshNames, cfg.MeshPrefix)
	want := []scene.Handle{shoes, cloth, hairCap, hairBack}
	if len(got) != len(want) {
		t.Fatalf("ResolveMeshes() returned %d meshes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mesh %d = %s, want %s", i, g.Node(got[i]).Name, g.Node(want[i]).Name)
		}
	}

	// A fixed name that also matches the prefix is listed once.
	got = ResolveMeshes(g, []string{"hairBack"}, "hair")
	if len(got) != 2 || got[0] != hairBack || got[1] != hairCap {
		t.Errorf("dedup failed: %v", got)
	}
}

func TestResolveClampsTowardSurface(t *testing.T) {
	g := scene.NewGraph()
	mesh := addFloor(g, "cloth_shape_0008", 0)
	parent := g.Add(scene.NoHandle, scene.NewBone("parent", math.Vec3{}))
	bone := g.Add(parent, scene.NewBone("hairSide5", math.Vec3{Y: 0.01}))

	r := NewResolver(testConfig())
	r.SetMeshes(g, []scene.Handle{mesh})

	if n := r.Resolve(g, []scene.Handle{bone}); n != 1 {
		t.Fatalf("Resolve() adjusted %d bones, want 1", n)
	}
	// target 0.00+0.02, lerp 0.3 from 0.01
	if got := g.Node(bone).Position.Y; !approx(got, 0.013) {
		t.Errorf("Y = %v, want 0.013", got)
	}
}

func TestResolveInParentSpace(t *testing.T) {
	g := scene.NewGraph()
	mesh := addFloor(g, "cloth_shape_0008", 0.49)

	// The parent hangs upside down, so its local +Y points at the floor: the
	// bone sits at local Y=0 and the surface is at local Y=0.01.
	parentNode := scene.NewBone("parent", math.Vec3{Y: 0.5})
	parentNode.Rotation = math.Euler{X: gomath.Pi}
	parent := g.Add(scene.NoHandle, parentNode)
	bone := g.Add(parent, scene.NewBone("hairSide5", math.Vec3{}))

	cfg := testConfig()
	r := NewResolver(cfg)
	r.SetMeshes(g, []scene.Handle{mesh})
	r.Resolve(g, []scene.Handle{bone})

	target := float32(0.03)
	got := g.Node(bone).Position.Y
	if got <= 0 || got >= target {
		t.Fatalf("Y = %v, want strictly between 0 and %v", got, target)
	}
	if !approx(got, target*cfg.LerpFactor) {
		t.Errorf("Y = %v, want %v", got, target*cfg.LerpFactor)
	}
}

func TestResolveIgnoresFarHits(t *testing.T) {
	g := scene.NewGraph()
	far := addFloor(g, "shoes_mesh_shape_mesh015", -1)
	near := addFloor(g, "cloth_shape_0008", -0.01)
	parent := g.Add(scene.NoHandle, scene.NewBone("parent", math.Vec3{}))
	bone := g.Add(parent, scene.NewBone("hairSide5", math.Vec3{}))

	// The far mesh is registered first and ends the search.
	r := NewResolver(testConfig())
	r.SetMeshes(g, []scene.Handle{far, near})
	if n := r.Resolve(g, []scene.Handle{bone}); n != 0 {
		t.Errorf("Resolve() adjusted %d bones, want 0", n)
	}
	if y := g.Node(bone).Position.Y; y != 0 {
		t.Errorf("Y = %v, want unchanged 0", y)
	}

	// Once the first mesh misses, the next one is tried.
	g.Node(far).Position.X = 10
	if n := r.Resolve(g, []scene.Handle{bone}); n != 1 {
		t.Errorf("Resolve() adjusted %d bones, want 1", n)
	}
}

func TestResolveNeverPushesDown(t *testing.T) {
	g := scene.NewGraph()
	mesh := addFloor(g, "cloth_shape_0008", 0)
	parent := g.Add(scene.NoHandle, scene.NewBone("parent", math.Vec3{}))
	bone := g.Add(parent, scene.NewBone("hairSide5", math.Vec3{Y: 0.025}))

	r := NewResolver(testConfig())
	r.SetMeshes(g, []scene.Handle{mesh})
	r.Resolve(g, []scene.Handle{bone})

	if got := g.Node(bone).Position.Y; got != 0.025 {
		t.Errorf("Y = %v, want 0.025", got)
	}
}

func TestResolveNoOps(t *testing.T) {
	g := scene.NewGraph()
	mesh := addFloor(g, "cloth_shape_0008", 0)
	orphan := g.Add(scene.NoHandle, scene.NewBone("orphan", math.Vec3{Y: 0.01}))

	r := NewResolver(testConfig())
	if n := r.Resolve(g, []scene.Handle{orphan}); n != 0 {
		t.Errorf("empty mesh set adjusted %d bones", n)
	}

	r.SetMeshes(g, []scene.Handle{mesh})
	if n := r.Resolve(g, []scene.Handle{orphan}); n != 0 {
		t.Errorf("parentless bone adjusted")
	}
	if y := g.Node(orphan).Position.Y; y != 0.01 {
		t.Errorf("orphan moved to %v", y)
	}
}

func TestRaycastDescendants(t *testing.T) {
	g := scene.NewGraph()
	group := g.Add(scene.NoHandle, scene.NewGroup("cloth", math.Vec3{}))
	part := scene.NewMesh("cloth_part", floor())
	part.Position = math.Vec3{Y: 0.3}
	g.Add(group, part)

	r := NewResolver(testConfig())
	r.SetMeshes(g, []scene.Handle{group})

	hit, ok := r.Raycast(g, group, picking.Ray{Origin: math.Vec3{Y: 1}, Direction: math.Down})
	if !ok {
		t.Fatal("expected a hit on the child mesh")
	}
	if !approx(hit.Distance, 0.7) {
		t.Errorf("distance = %v, want 0.7", hit.Distance)
	}
}

func TestSimplifyPlane(t *testing.T) {
	// 8x8 grid of quads on y=0.
	const n = 8
	geom := &scene.Geometry{}
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			geom.Positions = append(geom.Positions, math.Vec3{X: float32(x), Z: float32(z)})
		}
	}
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := uint32(z*(n+1) + x)
			geom.Indices = append(geom.Indices, i, i+n+1, i+1, i+1, i+n+1, i+n+2)
		}
	}

	out := Simplify(geom, 0.25)
	if out.TriangleCount() == 0 || out.TriangleCount() >= geom.TriangleCount() {
		t.Fatalf("triangles %d -> %d, want a reduction", geom.TriangleCount(), out.TriangleCount())
	}
	for _, p := range out.Positions {
		if !approx(p.Y, 0) {
			t.Errorf("vertex left the plane: %v", p)
		}
	}

	if Simplify(geom, 0) != geom || Simplify(geom, 1) != geom {
		t.Error("factors outside (0,1) should return the input")
	}
}
