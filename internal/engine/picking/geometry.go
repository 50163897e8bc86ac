package picking

import "github.com/Faultbox/toonrig/pkg/math"

// Hit describes the nearest intersection of a ray with some geometry.
type Hit struct {
	Distance float32
	Point    math.Vec3 // world space
}

// IntersectTriangles casts a world-space ray against an indexed triangle list
// whose positions are in a local space mapped to world by world. Returns the
// nearest hit. A bounding box check runs first.
func IntersectTriangles(r Ray, positions []math.Vec3, indices []uint32, bounds AABB, world math.Mat4) (Hit, bool) {
	local := r.Transform(world.Inverse())
	if _, ok := local.IntersectAABB(bounds); !ok {
		return Hit{}, false
	}

	best := float32(-1)
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		if int(ia) >= len(positions) || int(ib) >= len(positions) || int(ic) >= len(positions) {
			continue
		}
		t, ok := local.IntersectTriangle(positions[ia], positions[ib], positions[ic])
		if ok && (best < 0 || t < best) {
			best = t
		}
	}
	if best < 0 {
		return Hit{}, false
	}

	// World direction is unit length, so the shared parameter is the distance.
	return Hit{Distance: best, Point: r.At(best)}, true
}
