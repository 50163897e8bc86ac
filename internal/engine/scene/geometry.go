package scene

import "github.com/Faultbox/toonrig/pkg/math"

// Geometry is an indexed triangle list in the owning node's local space.
type Geometry struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32

	// MorphTargets hold per-vertex position deltas, one slice per target.
	MorphTargets [][]math.Vec3
}

// Bounds returns the local axis-aligned bounding box of the positions.
func (g *Geometry) Bounds() (min, max math.Vec3) {
	if len(g.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min, max = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Morphed returns positions with the weighted morph deltas applied.
// Returns Positions unchanged when no influence is active.
func (g *Geometry) Morphed(influences []float32) []math.Vec3 {
	active := false
	for i, w := range influences {
		if w != 0 && i < len(g.MorphTargets) {
			active = true
			break
		}
	}
	if !active {
		return g.Positions
	}

	out := make([]math.Vec3, len(g.Positions))
	copy(out, g.Positions)
	for i, w := range influences {
		if w == 0 || i >= len(g.MorphTargets) {
			continue
		}
		for v, d := range g.MorphTargets[i] {
			if v < len(out) {
				out[v] = out[v].Add(d.Scale(w))
			}
		}
	}
	return out
}
