package collision

import (
	"github.com/fogleman/simplify"

	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Simplify returns a decimated copy of geom keeping roughly factor of its
// triangles. Only positions and indices survive; the result is meant for ray
// queries, not drawing. Factors outside (0,1) return geom unchanged.
func Simplify(geom *scene.Geometry, factor float64) *scene.Geometry {
	if geom == nil || factor <= 0 || factor >= 1 || geom.TriangleCount() == 0 {
		return geom
	}

	tris := make([]*simplify.Triangle, 0, geom.TriangleCount())
	for i := 0; i+2 < len(geom.Indices); i += 3 {
		a, b, c := geom.Indices[i], geom.Indices[i+1], geom.Indices[i+2]
		if int(a) >= len(geom.Positions) || int(b) >= len(geom.Positions) || int(c) >= len(geom.Positions) {
			continue
		}
		tris = append(tris, simplify.NewTriangle(
			toVector(geom.Positions[a]),
			toVector(geom.Positions[b]),
			toVector(geom.Positions[c]),
		))
	}

	reduced := simplify.NewMesh(tris).Simplify(factor)

	out := &scene.Geometry{}
	lookup := make(map[simplify.Vector]uint32)
	vertex := func(v simplify.Vector) uint32 {
		if i, ok := lookup[v]; ok {
			return i
		}
		i := uint32(len(out.Positions))
		lookup[v] = i
		out.Positions = append(out.Positions, math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)})
		return i
	}
	for _, t := range reduced.Triangles {
		out.Indices = append(out.Indices, vertex(t.V1), vertex(t.V2), vertex(t.V3))
	}
	return out
}

func toVector(v math.Vec3) simplify.Vector {
	return simplify.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
