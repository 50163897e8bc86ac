// Package camera provides the viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/pkg/math"
)

// OrbitCamera looks at Target from a point on a sphere around it.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	FOV       float32 // vertical, degrees
	Near, Far float32

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// FromConfig places the camera at cfg.Position looking at cfg.Target.
func FromConfig(cfg config.CameraConfig) *OrbitCamera {
	target := math.Vec3{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]}
	pos := math.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]}
	offset := pos.Sub(target)

	c := &OrbitCamera{
		Target:          target,
		FOV:             cfg.FOV,
		Near:            cfg.Near,
		Far:             cfg.Far,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.Distance = offset.Length()
	if c.Distance > 0 {
		c.RotationX = float32(gomath.Asin(float64(offset.Y / c.Distance)))
		c.RotationY = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	}
	c.MinDistance = c.Distance * 0.2
	c.MaxDistance = c.Distance * 5
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}
