// Package material converts the materials a character arrives with into
// enhanced toon materials.
package material

import (
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Colored materials have a base color.
type Colored interface {
	Color() math.Vec3
}

// DiffuseMapped materials have a diffuse texture.
type DiffuseMapped interface {
	DiffuseMap() texture.Handle
}

// NormalMapped materials have a normal map.
type NormalMapped interface {
	NormalMap() texture.Handle
}

// NormalScaled materials scale their normal map.
type NormalScaled interface {
	NormalScale() math.Vec2
}

// Translucent materials carry opacity.
type Translucent interface {
	Opacity() float32
	Transparent() bool
}

// Emitting materials add a constant emissive color scaled by an intensity.
type Emitting interface {
	Emissive() math.Vec3
	EmissiveIntensity() float32
}

// AlphaMapped materials modulate opacity with a texture.
type AlphaMapped interface {
	AlphaMap() texture.Handle
}

// Occluded materials darken ambient light with an occlusion map.
type Occluded interface {
	AOMap() texture.Handle
	AOMapIntensity() float32
}

// EmissiveMapped materials modulate emission with a texture.
type EmissiveMapped interface {
	EmissiveMap() texture.Handle
}

// Capabilities is what a source material offers, probed once.
type Capabilities struct {
	Name string

	HasColor bool
	Color    math.Vec3

	HasDiffuseMap bool
	DiffuseMap    texture.Handle

	HasNormalMap bool
	NormalMap    texture.Handle

	HasNormalScale bool
	NormalScale    math.Vec2

	HasOpacity  bool
	Opacity     float32
	Transparent bool

	HasEmissive       bool
	Emissive          math.Vec3
	EmissiveIntensity float32

	HasAlphaMap bool
	AlphaMap    texture.Handle

	HasAOMap       bool
	AOMap          texture.Handle
	AOMapIntensity float32

	HasEmissiveMap bool
	EmissiveMap    texture.Handle
}

// Probe inspects src for every optional capability. Materials offering none
// of them yield only a name.
func Probe(src scene.Material) Capabilities {
	caps := Capabilities{Name: src.MaterialName()}
	if c, ok := src.(Colored); ok {
		caps.HasColor = true
		caps.Color = c.Color()
	}
	if m, ok := src.(DiffuseMapped); ok {
		caps.DiffuseMap = m.DiffuseMap()
		caps.HasDiffuseMap = caps.DiffuseMap.Valid()
	}
	if m, ok := src.(NormalMapped); ok {
		caps.NormalMap = m.NormalMap()
		caps.HasNormalMap = caps.NormalMap.Valid()
	}
	if s, ok := src.(NormalScaled); ok {
		caps.HasNormalScale = true
		caps.NormalScale = s.NormalScale()
	}
	if t, ok := src.(Translucent); ok {
		caps.HasOpacity = true
		caps.Opacity = t.Opacity()
		caps.Transparent = t.Transparent()
	}
	if e, ok := src.(Emitting); ok {
		caps.HasEmissive = true
		caps.Emissive = e.Emissive()
		caps.EmissiveIntensity = e.EmissiveIntensity()
	}
	if m, ok := src.(AlphaMapped); ok {
		caps.AlphaMap = m.AlphaMap()
		caps.HasAlphaMap = caps.AlphaMap.Valid()
	}
	if o, ok := src.(Occluded); ok {
		caps.AOMap = o.AOMap()
		caps.HasAOMap = caps.AOMap.Valid()
		caps.AOMapIntensity = o.AOMapIntensity()
	}
	if m, ok := src.(EmissiveMapped); ok {
		caps.EmissiveMap = m.EmissiveMap()
		caps.HasEmissiveMap = caps.EmissiveMap.Valid()
	}
	return caps
}
