package toon

import (
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Descriptor is everything a toon material is built from.
type Descriptor struct {
	Color       math.Vec3
	Map         texture.Handle
	NormalMap   texture.Handle
	NormalScale math.Vec2
	Gradient    *Gradient // nil selects the shared default

	Emissive          math.Vec3
	EmissiveIntensity float32
	EmissiveMap       texture.Handle
	Opacity           float32
	AlphaMap          texture.Handle // green channel scales opacity
	Transparent       bool

	AOMap          texture.Handle // red channel darkens ambient light
	AOMapIntensity float32

	Params Params
}

// NewDescriptor returns a white, opaque descriptor with unit normal scale,
// unit intensities and no maps.
func NewDescriptor() Descriptor {
	return Descriptor{
		Color:             math.Vec3{X: 1, Y: 1, Z: 1},
		NormalScale:       math.Vec2{X: 1, Y: 1},
		Opacity:           1,
		EmissiveIntensity: 1,
		AOMapIntensity:    1,
	}
}

// Material is the enhanced toon material. Both faces are drawn.
type Material struct {
	Name       string
	Descriptor Descriptor
	Gradient   *Gradient // resolved gradient, may still be nil headless
	Program    *Program
	Resolved   Resolved

	disposed bool
}

var _ scene.Material = (*Material)(nil)

// NewMaterial builds and enhances a toon material from d. The descriptor is
// kept as given, unset parameters included; the program carries the
// resolved values. cache may be nil.
func NewMaterial(name string, d Descriptor, cache *GradientCache) *Material {
	m := &Material{
		Name:       name,
		Descriptor: d,
		Gradient:   d.Gradient,
		Program:    NewBaseProgram(),
	}
	if m.Gradient == nil && cache != nil {
		m.Gradient = cache.Default()
	}
	m.Resolved = Enhance(m.Program, d.Params)
	return m
}

// Retune re-enhances the program with params and records them in the
// descriptor. A disposed material is left alone.
func (m *Material) Retune(params Params) {
	if m.disposed {
		return
	}
	m.Descriptor.Params = params
	m.Resolved = Enhance(m.Program, params)
}

// MaterialName implements scene.Material.
func (m *Material) MaterialName() string { return m.Name }

// Dispose releases the program. Textures and the gradient are shared and stay alive.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.Program.Release()
}

// Disposed reports whether Dispose was called.
func (m *Material) Disposed() bool { return m.disposed }
