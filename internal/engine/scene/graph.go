package scene

import (
	"strings"

	"github.com/Faultbox/toonrig/pkg/math"
)

// Handle is an opaque reference into a Graph. Handles carry the generation of
// the graph that issued them; after Reset they no longer resolve, so subsystem
// state left over from a previous load cannot touch the rebuilt tree.
type Handle struct {
	index int32
	gen   uint32
}

// NoHandle is the invalid handle (e.g. the parent of a root).
var NoHandle = Handle{index: -1}

// Valid reports whether h was issued by some graph. It does not check staleness; use Graph.Node.
func (h Handle) Valid() bool { return h.index >= 0 && h.gen != 0 }

// Graph owns the nodes of one loaded character.
type Graph struct {
	nodes []*Node
	roots []Handle
	named map[string]Handle
	gen   uint32
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{named: make(map[string]Handle), gen: 1}
}

// Reset drops every node and invalidates all outstanding handles.
func (g *Graph) Reset() {
	g.nodes = nil
	g.roots = nil
	g.named = make(map[string]Handle)
	g.gen++
}

// Add inserts n under parent and returns its handle. An unresolvable parent makes n a root.
func (g *Graph) Add(parent Handle, n *Node) Handle {
	h := Handle{index: int32(len(g.nodes)), gen: g.gen}
	g.nodes = append(g.nodes, n)
	n.Children = nil

	if p := g.Node(parent); p != nil {
		n.Parent = parent
		p.Children = append(p.Children, h)
	} else {
		n.Parent = NoHandle
		g.roots = append(g.roots, h)
	}

	if _, exists := g.named[n.Name]; !exists && n.Name != "" {
		g.named[n.Name] = h
	}
	return h
}

// Node resolves h, returning nil for invalid or stale handles.
func (g *Graph) Node(h Handle) *Node {
	if h.gen != g.gen || h.index < 0 || int(h.index) >= len(g.nodes) {
		return nil
	}
	return g.nodes[h.index]
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Roots returns the root handles in insertion order.
func (g *Graph) Roots() []Handle { return g.roots }

// Named returns the name -> handle table. The first node registered under a name wins.
func (g *Graph) Named() map[string]Handle { return g.named }

// Traverse visits h and its descendants depth-first, parents before children.
func (g *Graph) Traverse(h Handle, fn func(Handle, *Node)) {
	n := g.Node(h)
	if n == nil {
		return
	}
	fn(h, n)
	for _, c := range n.Children {
		g.Traverse(c, fn)
	}
}

// Walk traverses every root in order.
func (g *Graph) Walk(fn func(Handle, *Node)) {
	for _, r := range g.roots {
		g.Traverse(r, fn)
	}
}

// Bones returns every bone in traversal order.
func (g *Graph) Bones() []Handle {
	var bones []Handle
	g.Walk(func(h Handle, n *Node) {
		if n.IsBone() {
			bones = append(bones, h)
		}
	})
	return bones
}

// FindBone looks a bone up by name, case-insensitively. With exact false the
// name only has to be contained in the bone name. When several bones match,
// the last one in traversal order wins.
func (g *Graph) FindBone(name string, exact bool) Handle {
	want := strings.ToLower(name)
	found := NoHandle
	g.Walk(func(h Handle, n *Node) {
		if !n.IsBone() {
			return
		}
		got := strings.ToLower(n.Name)
		if (exact && got == want) || (!exact && strings.Contains(got, want)) {
			found = h
		}
	})
	return found
}

// WorldMatrix returns the accumulated transform from h's local space to world space.
// Stale handles yield the identity.
func (g *Graph) WorldMatrix(h Handle) math.Mat4 {
	n := g.Node(h)
	if n == nil {
		return math.Identity()
	}
	local := n.LocalMatrix()
	if g.Node(n.Parent) == nil {
		return local
	}
	return g.WorldMatrix(n.Parent).Mul(local)
}

// WorldPosition returns the world-space origin of h.
func (g *Graph) WorldPosition(h Handle) math.Vec3 {
	return g.WorldMatrix(h).Translation()
}

// WorldToLocal converts a world-space point into h's local space.
func (g *Graph) WorldToLocal(h Handle, p math.Vec3) math.Vec3 {
	return g.WorldMatrix(h).Inverse().TransformPoint(p)
}

// Parent returns the parent handle of h and whether it resolves.
func (g *Graph) Parent(h Handle) (Handle, bool) {
	n := g.Node(h)
	if n == nil || g.Node(n.Parent) == nil {
		return NoHandle, false
	}
	return n.Parent, true
}
