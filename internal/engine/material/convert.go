package material

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/pkg/math"
)

// LuminanceThreshold is the brightness a base color must exceed to be kept.
// Darker colors come out white so baked near-black materials stay visible.
const LuminanceThreshold = 0.01

// eyeToken marks surfaces left on their original material.
const eyeToken = "eye"

// Luminance returns the Rec. 601 luma of c.
func Luminance(c math.Vec3) float32 {
	return 0.299*c.X + 0.587*c.Y + 0.114*c.Z
}

// Extract builds a toon descriptor from probed capabilities. Shading
// parameters are left unset.
func Extract(caps Capabilities) toon.Descriptor {
	d := toon.NewDescriptor()
	if caps.HasColor && Luminance(caps.Color) > LuminanceThreshold {
		d.Color = caps.Color
	}
	if caps.HasDiffuseMap {
		d.Map = caps.DiffuseMap
	}
	if caps.HasNormalMap {
		d.NormalMap = caps.NormalMap
	}
	if caps.HasNormalScale {
		d.NormalScale = caps.NormalScale
	}
	if caps.HasOpacity {
		d.Opacity = caps.Opacity
		d.Transparent = caps.Transparent
	}
	if caps.HasEmissive {
		d.Emissive = caps.Emissive
		d.EmissiveIntensity = caps.EmissiveIntensity
	}
	if caps.HasAlphaMap {
		d.AlphaMap = caps.AlphaMap
	}
	if caps.HasAOMap {
		d.AOMap = caps.AOMap
		d.AOMapIntensity = caps.AOMapIntensity
	}
	if caps.HasEmissiveMap {
		d.EmissiveMap = caps.EmissiveMap
	}
	return d
}

// IsToon reports whether m is already an enhanced toon material.
func IsToon(m scene.Material) bool {
	_, ok := m.(*toon.Material)
	return ok
}

func isEyeName(name string) bool {
	return strings.Contains(strings.ToLower(name), eyeToken)
}

// IsEyeSurface reports whether the mesh or any of its materials is named as an eye.
func IsEyeSurface(n *scene.Node) bool {
	if isEyeName(n.Name) {
		return true
	}
	for _, m := range n.Materials {
		if m != nil && isEyeName(m.MaterialName()) {
			return true
		}
	}
	return false
}

// Converter turns source materials into toon materials sharing one gradient cache.
// A source shared by several slots is converted once and every slot gets the
// same toon material.
type Converter struct {
	cache     *toon.GradientCache
	converted map[scene.Material]*toon.Material
}

// NewConverter creates a converter. cache may be nil for headless use.
func NewConverter(cache *toon.GradientCache) *Converter {
	return &Converter{
		cache:     cache,
		converted: make(map[scene.Material]*toon.Material),
	}
}

// Convert returns the toon replacement for src and true, disposing src the
// first time it is seen. Toon materials and eye materials are returned
// unchanged with false. Textures referenced by src are handed over, never
// released. src must be comparable; pointer types are.
func (c *Converter) Convert(src scene.Material) (scene.Material, bool) {
	if src == nil || IsToon(src) || isEyeName(src.MaterialName()) {
		return src, false
	}
	if m, ok := c.converted[src]; ok {
		return m, true
	}

	caps := Probe(src)
	d := Extract(caps)
	src.Dispose()

	m := toon.NewMaterial(caps.Name, d, c.cache)
	c.converted[src] = m
	logger.Debug("material converted",
		zap.String("material", caps.Name),
		zap.Bool("color", caps.HasColor),
		zap.Bool("map", caps.HasDiffuseMap),
		zap.Bool("normalMap", caps.HasNormalMap))
	return m, true
}

// Len returns how many distinct sources were converted since the last Reset.
func (c *Converter) Len() int { return len(c.converted) }

// Reset forgets every conversion. Call it when the materials of a new graph
// are about to be converted.
func (c *Converter) Reset() {
	clear(c.converted)
}

// ConvertMesh converts every material slot of a mesh node in place and
// returns how many slots changed. Eye surfaces are skipped. Running it again
// on the same node changes nothing.
func (c *Converter) ConvertMesh(n *scene.Node) int {
	if n == nil || n.Kind != scene.KindMesh || IsEyeSurface(n) {
		return 0
	}
	converted := 0
	for i, m := range n.Materials {
		out, ok := c.Convert(m)
		if ok {
			n.Materials[i] = out
			converted++
		}
	}
	return converted
}
