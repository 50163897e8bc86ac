package toon

import "github.com/Faultbox/toonrig/pkg/math"

// FallbackLightDirection stands in for the light when none is present.
var FallbackLightDirection = math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()

// Light is a directional light. Direction points from the surface toward the light.
type Light struct {
	Direction math.Vec3
	Color     math.Vec3 // color times intensity
}

// Surface is one shaded point. View points from the surface toward the eye.
type Surface struct {
	Normal math.Vec3
	View   math.Vec3
}

// Intensity holds the three enhancement terms before strengths are applied.
type Intensity struct {
	Specular  float32
	Specular2 float32
	Rim       float32
}

func specularThreshold(glossiness float32) float32 {
	return 1 - 1/math.Max(glossiness, 1)
}

// RimEdge returns the half-width of the rim smoothstep band.
func RimEdge(sharpness float32) float32 {
	return 0.01 + (1-sharpness)*0.15
}

// Terms evaluates the enhancement terms the same way the fragment shader
// does. Only the first light contributes.
func Terms(r Resolved, s Surface, lights []Light) Intensity {
	dir := FallbackLightDirection
	var lightColor math.Vec3
	if len(lights) > 0 {
		dir = lights[0].Direction
		lightColor = lights[0].Color
	}

	ndotl := s.Normal.Dot(dir)
	magnitude := lightColor.Length()

	t1 := specularThreshold(r.Glossiness)
	t2 := specularThreshold(r.Glossiness2)

	rim := (1 - s.View.Dot(s.Normal)) * math.Max(0, ndotl)
	edge := RimEdge(r.RimSharpness)

	return Intensity{
		Specular:  math.Smoothstep(t1-0.05, t1+0.05, ndotl) * magnitude,
		Specular2: math.Smoothstep(t2-0.01, t2+0.01, ndotl) * magnitude,
		Rim:       math.Smoothstep(r.RimWidth-edge, r.RimWidth+edge, rim),
	}
}

// Apply scales c by each term in order.
func (i Intensity) Apply(r Resolved, c math.Vec3) math.Vec3 {
	c = c.Scale(1 + i.Specular*r.SpecularStrength)
	c = c.Scale(1 + i.Specular2*r.SpecularStrength2)
	return c.Scale(1 + i.Rim*r.RimStrength)
}

// Shade computes the full toon color of a surface point on the CPU: ambient,
// gradient-quantized diffuse per light, emissive, then the enhancement terms.
// Texture maps are not sampled.
func Shade(d Descriptor, r Resolved, s Surface, lights []Light, ambient math.Vec3) math.Vec3 {
	out := ambient.Mul(d.Color)
	for _, l := range lights {
		ndotl := s.Normal.Dot(l.Direction)
		var tone float32
		if d.Gradient != nil {
			tone = d.Gradient.Sample(ndotl)
		} else if ndotl*0.5+0.5 >= 0.7 {
			tone = 1
		} else {
			tone = 0.7
		}
		out = out.Add(l.Color.Scale(tone).Mul(d.Color))
	}
	out = out.Add(d.Emissive.Scale(d.EmissiveIntensity))
	return Terms(r, s, lights).Apply(r, out)
}
