// Package lighting holds the viewer's light rig: one directional light and an
// ambient term, in the form both the GL renderer and the CPU shader consume.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Directional is a light shining from Position toward the origin.
type Directional struct {
	Position  math.Vec3
	Color     math.Vec3
	Intensity float32
}

// Direction returns the unit vector from the lit point toward the light.
// A light placed at the origin falls back to the toon default direction.
func (d Directional) Direction() math.Vec3 {
	if d.Position.Length() == 0 {
		return toon.FallbackLightDirection
	}
	return d.Position.Normalize()
}

// Radiance returns color scaled by intensity.
func (d Directional) Radiance() math.Vec3 {
	return d.Color.Scale(d.Intensity)
}

// Rig is the complete lighting of a scene.
type Rig struct {
	Sun     Directional
	Ambient math.Vec3
}

// FromConfig builds the rig described by cfg.
func FromConfig(cfg config.LightConfig) Rig {
	return Rig{
		Sun: Directional{
			Position:  vec(cfg.Position),
			Color:     vec(cfg.Color),
			Intensity: cfg.Intensity,
		},
		Ambient: vec(cfg.Ambient),
	}
}

// Count returns the number of active directional lights. A light with no
// intensity is left out entirely.
func (r Rig) Count() int {
	if r.Sun.Intensity <= 0 {
		return 0
	}
	return 1
}

// Lights returns the active lights in world space.
func (r Rig) Lights() []toon.Light {
	if r.Count() == 0 {
		return nil
	}
	return []toon.Light{{Direction: r.Sun.Direction(), Color: r.Sun.Radiance()}}
}

// ViewLights returns the active lights with directions in the view space of view.
func (r Rig) ViewLights(view math.Mat4) []toon.Light {
	lights := r.Lights()
	for i := range lights {
		lights[i].Direction = view.TransformDirection(lights[i].Direction).Normalize()
	}
	return lights
}

// SunDirection converts azimuth (around Y, degrees) and elevation above the
// horizon (degrees) to a unit direction toward the light.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180
	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// SunAngles returns the sun's azimuth and elevation in degrees, the inverse
// of SunDirection.
func (r Rig) SunAngles() (azimuth, elevation float32) {
	d := r.Sun.Direction()
	az := gomath.Atan2(float64(d.X), float64(d.Z)) * 180 / gomath.Pi
	el := gomath.Asin(float64(math.Clamp(d.Y, -1, 1))) * 180 / gomath.Pi
	return float32(az), float32(el)
}

// PlaceSun moves the sun to the given angles, keeping its distance from the
// origin (1 if it sat at the origin).
func (r *Rig) PlaceSun(azimuth, elevation float32) {
	dist := r.Sun.Position.Length()
	if dist == 0 {
		dist = 1
	}
	r.Sun.Position = SunDirection(azimuth, elevation).Scale(dist)
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
