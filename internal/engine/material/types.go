package material

import (
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Standard is a physically based source material as delivered by an
// importer. Its textures are shared and survive Dispose.
type Standard struct {
	Name          string
	BaseColor     math.Vec3
	ColorMap      texture.Handle
	NormalTexture texture.Handle
	NormalFactor  math.Vec2
	Alpha         float32
	AlphaTexture  texture.Handle
	Blend         bool
	Glow          math.Vec3
	GlowStrength  float32
	GlowTexture   texture.Handle
	Occlusion     texture.Handle
	OcclusionMix  float32

	disposed bool
}

// NewStandard returns an opaque white Standard material.
func NewStandard(name string) *Standard {
	return &Standard{
		Name:         name,
		BaseColor:    math.Vec3{X: 1, Y: 1, Z: 1},
		NormalFactor: math.Vec2{X: 1, Y: 1},
		Alpha:        1,
		GlowStrength: 1,
		OcclusionMix: 1,
	}
}

// MaterialName implements scene.Material.
func (s *Standard) MaterialName() string { return s.Name }

// Color returns the base color.
func (s *Standard) Color() math.Vec3 { return s.BaseColor }

// DiffuseMap returns the color texture.
func (s *Standard) DiffuseMap() texture.Handle { return s.ColorMap }

// NormalMap returns the tangent-space normal texture.
func (s *Standard) NormalMap() texture.Handle { return s.NormalTexture }

// NormalScale returns the normal map strength per axis.
func (s *Standard) NormalScale() math.Vec2 { return s.NormalFactor }

// Opacity returns the constant alpha.
func (s *Standard) Opacity() float32 { return s.Alpha }

// Transparent reports whether the material blends.
func (s *Standard) Transparent() bool { return s.Blend }

// AlphaMap returns the opacity texture.
func (s *Standard) AlphaMap() texture.Handle { return s.AlphaTexture }

// Emissive returns the glow color.
func (s *Standard) Emissive() math.Vec3 { return s.Glow }

// EmissiveIntensity returns the glow multiplier.
func (s *Standard) EmissiveIntensity() float32 { return s.GlowStrength }

// EmissiveMap returns the glow texture.
func (s *Standard) EmissiveMap() texture.Handle { return s.GlowTexture }

// AOMap returns the ambient occlusion texture.
func (s *Standard) AOMap() texture.Handle { return s.Occlusion }

// AOMapIntensity returns how strongly occlusion applies.
func (s *Standard) AOMapIntensity() float32 { return s.OcclusionMix }

// Dispose marks the material unusable. Textures are untouched.
func (s *Standard) Dispose() { s.disposed = true }

// Disposed reports whether Dispose was called.
func (s *Standard) Disposed() bool { return s.disposed }

// Basic is an unlit source material with only a color and an optional map.
type Basic struct {
	Name      string
	BaseColor math.Vec3
	ColorMap  texture.Handle

	disposed bool
}

// MaterialName implements scene.Material.
func (b *Basic) MaterialName() string { return b.Name }

// Color returns the base color.
func (b *Basic) Color() math.Vec3 { return b.BaseColor }

// DiffuseMap returns the color texture.
func (b *Basic) DiffuseMap() texture.Handle { return b.ColorMap }

// Dispose marks the material unusable.
func (b *Basic) Dispose() { b.disposed = true }

// Disposed reports whether Dispose was called.
func (b *Basic) Disposed() bool { return b.disposed }
