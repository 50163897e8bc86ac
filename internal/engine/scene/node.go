// Package scene holds the hierarchical transform tree the rig operates on:
// bones, mesh nodes carrying geometry and materials, and name lookup.
package scene

import "github.com/Faultbox/toonrig/pkg/math"

// Kind distinguishes node roles in the graph.
type Kind uint8

const (
	KindGroup Kind = iota
	KindBone
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindBone:
		return "bone"
	case KindMesh:
		return "mesh"
	default:
		return "group"
	}
}

// Material is anything a mesh can be drawn with. Dispose releases GPU-side
// program state only; textures are shared and outlive any one material.
type Material interface {
	MaterialName() string
	Dispose()
}

// Node is one entry of the transform tree.
type Node struct {
	Name string
	Kind Kind

	// Local transform relative to Parent.
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3

	Parent   Handle
	Children []Handle

	// Mesh nodes only.
	Geometry        *Geometry
	Materials       []Material
	MorphInfluences []float32
}

// NewGroup creates an empty transform node.
func NewGroup(name string, position math.Vec3) *Node {
	return &Node{Name: name, Kind: KindGroup, Position: position, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// NewBone creates a bone at the given local position.
func NewBone(name string, position math.Vec3) *Node {
	return &Node{Name: name, Kind: KindBone, Position: position, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// NewMesh creates a mesh node. One morph influence slot is allocated per morph target.
func NewMesh(name string, geom *Geometry, materials ...Material) *Node {
	n := &Node{
		Name:      name,
		Kind:      KindMesh,
		Scale:     math.Vec3{X: 1, Y: 1, Z: 1},
		Geometry:  geom,
		Materials: materials,
	}
	if geom != nil && len(geom.MorphTargets) > 0 {
		n.MorphInfluences = make([]float32, len(geom.MorphTargets))
	}
	return n
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation.Quat(), n.Scale)
}

// IsBone reports whether the node is a bone.
func (n *Node) IsBone() bool { return n.Kind == KindBone }

// IsMesh reports whether the node is a mesh with geometry.
func (n *Node) IsMesh() bool { return n.Kind == KindMesh && n.Geometry != nil }
