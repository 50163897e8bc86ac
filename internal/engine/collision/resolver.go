// Package collision keeps spring bones from sinking into the character's
// clothes and hair by raycasting straight down against a fixed mesh set.
package collision

import (
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/picking"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/pkg/math"
)

// proxy is the ray-query form of one mesh geometry.
type proxy struct {
	positions []math.Vec3
	indices   []uint32
	bounds    picking.AABB
}

// Resolver clamps bones against the registered collision meshes.
type Resolver struct {
	cfg     config.CollisionConfig
	meshes  []scene.Handle
	proxies map[*scene.Geometry]*proxy
}

// NewResolver creates a resolver with no meshes; Resolve is a no-op until SetMeshes.
func NewResolver(cfg config.CollisionConfig) *Resolver {
	return &Resolver{cfg: cfg, proxies: make(map[*scene.Geometry]*proxy)}
}

// SetMeshes replaces the collision set and prepares query geometry for each
// mesh node and its mesh descendants.
func (r *Resolver) SetMeshes(g *scene.Graph, meshes []scene.Handle) {
	r.meshes = meshes
	r.proxies = make(map[*scene.Geometry]*proxy)

	triangles := 0
	for _, m := range meshes {
		g.Traverse(m, func(_ scene.Handle, n *scene.Node) {
			if !n.IsMesh() {
				return
			}
			if _, ok := r.proxies[n.Geometry]; ok {
				return
			}
			geom := Simplify(n.Geometry, r.cfg.SimplifyFactor)
			lo, hi := geom.Bounds()
			r.proxies[n.Geometry] = &proxy{
				positions: geom.Positions,
				indices:   geom.Indices,
				bounds:    picking.NewAABB(lo, hi),
			}
			triangles += geom.TriangleCount()
		})
	}

	logger.Debug("collision meshes set",
		zap.Int("meshes", len(meshes)),
		zap.Int("triangles", triangles))
}

// Meshes returns the collision set in registration order.
func (r *Resolver) Meshes() []scene.Handle { return r.meshes }

// Raycast intersects ray with mesh node m and its mesh descendants, returning the nearest hit.
func (r *Resolver) Raycast(g *scene.Graph, m scene.Handle, ray picking.Ray) (picking.Hit, bool) {
	var best picking.Hit
	found := false
	g.Traverse(m, func(h scene.Handle, n *scene.Node) {
		if !n.IsMesh() {
			return
		}
		p, ok := r.proxies[n.Geometry]
		if !ok {
			return
		}
		hit, ok := picking.IntersectTriangles(ray, p.positions, p.indices, p.bounds, g.WorldMatrix(h))
		if ok && (!found || hit.Distance < best.Distance) {
			best = hit
			found = true
		}
	})
	return best, found
}

// Resolve casts a ray down from each bone. The first mesh the ray hits ends
// the search for that bone; if the hit is within the distance threshold the
// bone's local Y is eased toward the hit height plus the offset, measured in
// the parent's space. The bone is never pushed down. Returns the number of
// bones adjusted.
func (r *Resolver) Resolve(g *scene.Graph, bones []scene.Handle) int {
	if len(r.meshes) == 0 {
		return 0
	}

	adjusted := 0
	for _, b := range bones {
		n := g.Node(b)
		if n == nil {
			continue
		}
		parent, ok := g.Parent(b)
		if !ok {
			continue
		}

		ray := picking.Ray{Origin: g.WorldPosition(b), Direction: math.Down}
		for _, m := range r.meshes {
			hit, ok := r.Raycast(g, m, ray)
			if !ok {
				continue
			}
			if hit.Distance < r.cfg.DistanceThreshold {
				local := g.WorldToLocal(parent, hit.Point)
				targetY := local.Y + r.cfg.OffsetY
				y := n.Position.Y
				n.Position.Y = math.Lerp(y, math.Max(y, targetY), r.cfg.LerpFactor)
				adjusted++
			}
			break
		}
	}
	return adjusted
}
