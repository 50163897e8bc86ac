// Package assets builds the demo character procedurally and caches the
// images its materials use.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/Faultbox/toonrig/internal/engine/material"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Names of nodes the rig looks for.
const (
	HeadBone    = "head"
	NeckBone    = "neck"
	ClothMesh   = "cloth_shape_0008"
	SkirtMesh   = "cloth_shape_0008_1"
	ShoesMesh   = "shoes_mesh_shape_mesh015"
	HairCapMesh = "hair_cap"
)

// chain describes one numbered hair chain below the head.
type chain struct {
	prefix string
	root   math.Vec3 // offset of bone 0 from the head
	step   math.Vec3 // offset of each further bone from its parent
	length int
}

var hairChains = []chain{
	{"hairFront", math.Vec3{Y: 0.12, Z: 0.1}, math.Vec3{Y: -0.035, Z: 0.012}, 8},
	{"hairSide", math.Vec3{X: 0.12, Y: 0.08}, math.Vec3{X: 0.01, Y: -0.045}, 8},
	{"hairSideR", math.Vec3{X: -0.12, Y: 0.08}, math.Vec3{X: -0.01, Y: -0.045}, 8},
	{"hairTail", math.Vec3{Y: 0.1, Z: -0.13}, math.Vec3{Y: -0.06, Z: -0.02}, 7},
}

// BuildCharacter returns the demo character: a bone hierarchy with hair
// chains and ribbons, rigid mesh parts parented to bones and source
// materials the rig converts at load.
func BuildCharacter() *scene.Graph {
	g := scene.NewGraph()
	skin := standard("skin", math.Vec3{X: 1, Y: 0.86, Z: 0.78})
	cloth := standard("cloth", math.Vec3{X: 0.32, Y: 0.38, Z: 0.72})
	hair := standard("hair", math.Vec3{X: 0.42, Y: 0.3, Z: 0.24})
	ribbon := &material.Basic{Name: "ribbon", BaseColor: math.Vec3{X: 0.8, Y: 0.2, Z: 0.2}}
	// Baked black; the converter turns it white.
	shoes := standard("shoes", math.Vec3{})
	eye := standard("eye", math.Vec3{X: 0.1, Y: 0.08, Z: 0.12})

	root := g.Add(scene.NoHandle, scene.NewGroup("character", math.Vec3{}))
	armature := g.Add(root, scene.NewGroup("Armature", math.Vec3{}))

	hips := g.Add(armature, scene.NewBone("hips", math.Vec3{Y: 0.85}))
	spine := g.Add(hips, scene.NewBone("spine", math.Vec3{Y: 0.15}))
	chest := g.Add(spine, scene.NewBone("chest", math.Vec3{Y: 0.18}))
	neck := g.Add(chest, scene.NewBone(NeckBone, math.Vec3{Y: 0.17}))
	head := g.Add(neck, scene.NewBone(HeadBone, math.Vec3{Y: 0.08}))

	// Body parts.
	addMesh(g, spine, ClothMesh, Cylinder(0.13, 0.11, 0.36, 24), math.Vec3{Y: 0.05}, cloth)
	addMesh(g, hips, SkirtMesh, Cylinder(0.11, 0.26, 0.3, 24), math.Vec3{Y: -0.1}, cloth)
	addMesh(g, neck, "neck_mesh", Cylinder(0.04, 0.045, 0.1, 12), math.Vec3{Y: 0.03}, skin)
	addMesh(g, head, "face", Sphere(math.Vec3{X: 0.13, Y: 0.14, Z: 0.13}, 24, 16), math.Vec3{Y: 0.12}, skin)
	addMesh(g, head, HairCapMesh, Sphere(math.Vec3{X: 0.145, Y: 0.15, Z: 0.145}, 24, 16), math.Vec3{Y: 0.15, Z: -0.01}, hair)

	for _, side := range []struct {
		suffix string
		x      float32
	}{{"L", 0.045}, {"R", -0.045}} {
		geom := Sphere(math.Vec3{X: 0.022, Y: 0.03, Z: 0.01}, 12, 8)
		geom.MorphTargets = [][]math.Vec3{squashMorph(geom, 0.9)}
		addMesh(g, head, "eye_"+side.suffix, geom, math.Vec3{X: side.x, Y: 0.12, Z: 0.125}, eye)
	}

	// Legs and shoes.
	for i, side := range []struct {
		suffix string
		x      float32
	}{{"L", 0.08}, {"R", -0.08}} {
		leg := g.Add(hips, scene.NewBone("leg_"+side.suffix, math.Vec3{X: side.x}))
		addMesh(g, leg, "leg_mesh_"+side.suffix, Cylinder(0.05, 0.035, 0.75, 12), math.Vec3{Y: -0.4}, skin)
		foot := g.Add(leg, scene.NewBone("foot_"+side.suffix, math.Vec3{Y: -0.8}))
		name := ShoesMesh
		if i > 0 {
			name = fmt.Sprintf("%s_%d", ShoesMesh, i)
		}
		addMesh(g, foot, name, Box(math.Vec3{X: 0.08, Y: 0.06, Z: 0.16}), math.Vec3{Y: -0.02, Z: 0.03}, shoes)
	}

	// Hair chains: bone 0 hangs off the head, each strand bone carries a bead.
	for _, c := range hairChains {
		parent := head
		for i := 0; i < c.length; i++ {
			offset := c.step
			if i == 0 {
				offset = c.root
			}
			b := g.Add(parent, scene.NewBone(fmt.Sprintf("%s%d", c.prefix, i), offset))
			r := 0.03 - 0.003*float32(i)
			addMesh(g, b, fmt.Sprintf("strand_%s%d", c.prefix, i), Sphere(math.Vec3{X: r, Y: r * 1.4, Z: r}, 10, 6), math.Vec3{}, hair)
			parent = b
		}
	}

	// Ribbons on the back and the skirt.
	bake1 := g.Add(chest, scene.NewBone("bake1", math.Vec3{Y: 0.05, Z: -0.13}))
	addMesh(g, bake1, "ribbon_back", Box(math.Vec3{X: 0.14, Y: 0.06, Z: 0.02}), math.Vec3{}, ribbon)
	bake4 := g.Add(hips, scene.NewBone("bake4", math.Vec3{Y: -0.05, Z: -0.2}))
	addMesh(g, bake4, "ribbon_tail_a", Box(math.Vec3{X: 0.04, Y: 0.16, Z: 0.01}), math.Vec3{Y: -0.08}, ribbon)
	bake5 := g.Add(bake4, scene.NewBone("bake5", math.Vec3{Y: -0.16}))
	addMesh(g, bake5, "ribbon_tail_b", Box(math.Vec3{X: 0.04, Y: 0.16, Z: 0.01}), math.Vec3{Y: -0.08}, ribbon)

	return g
}

func standard(name string, color math.Vec3) *material.Standard {
	m := material.NewStandard(name)
	m.BaseColor = color
	return m
}

func addMesh(g *scene.Graph, parent scene.Handle, name string, geom *scene.Geometry, offset math.Vec3, mat scene.Material) scene.Handle {
	n := scene.NewMesh(name, geom, mat)
	n.Position = offset
	return g.Add(parent, n)
}

// Images is a cache of generated material images keyed by material name.
type Images struct {
	data map[string]image.Image
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewImages creates an empty image cache.
func NewImages() *Images {
	return &Images{data: make(map[string]image.Image)}
}

// Get returns the image for a material, generating it on first use.
// Materials without a generated image return nil.
func (c *Images) Get(name string) image.Image {
	c.mu.RLock()
	img, ok := c.data[name]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return img
	}

	img = generate(name)
	c.mu.Lock()
	c.misses++
	if img != nil {
		c.data[name] = img
	}
	c.mu.Unlock()
	return img
}

// Clear drops every cached image.
func (c *Images) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]image.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Images) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// occlusionSuffix names the ambient occlusion image of a material.
const occlusionSuffix = "_ao"

func generate(name string) image.Image {
	switch name {
	case "cloth":
		return texture.Checker(64, 8, color.RGBA{255, 255, 255, 255}, color.RGBA{200, 210, 235, 255})
	case "cloth" + occlusionSuffix:
		return texture.Checker(32, 4, color.RGBA{255, 255, 255, 255}, color.RGBA{170, 170, 170, 255})
	case "ribbon":
		return texture.Checker(16, 4, color.RGBA{255, 255, 255, 255}, color.RGBA{230, 180, 180, 255})
	default:
		return nil
	}
}

// AttachTextures uploads generated images for every source material in g
// with upload and stores the handles as diffuse maps, plus occlusion maps on
// Standard materials. Each material is uploaded once even when shared by
// several meshes. Returns the handles created, for the caller to release.
func AttachTextures(g *scene.Graph, images *Images, upload func(image.Image) texture.Handle) []texture.Handle {
	var handles []texture.Handle
	done := make(map[scene.Material]bool)
	g.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			if done[m] {
				continue
			}
			done[m] = true
			if std, ok := m.(*material.Standard); ok {
				if img := images.Get(m.MaterialName() + occlusionSuffix); img != nil {
					std.Occlusion = upload(img)
					handles = append(handles, std.Occlusion)
				}
			}
			img := images.Get(m.MaterialName())
			if img == nil {
				continue
			}
			h := upload(img)
			switch src := m.(type) {
			case *material.Standard:
				src.ColorMap = h
			case *material.Basic:
				src.ColorMap = h
			}
			handles = append(handles, h)
		}
	})
	return handles
}
