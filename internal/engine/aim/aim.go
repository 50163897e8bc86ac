// Package aim turns the neck bone toward the pointer.
package aim

import (
	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Controller eases the neck's yaw and pitch toward a pointer-derived target.
// The easing is applied once per frame with a fixed factor, so it runs faster
// at higher frame rates.
type Controller struct {
	cfg  config.AimConfig
	neck scene.Handle
}

// New creates a controller with no neck bound.
func New(cfg config.AimConfig) *Controller {
	return &Controller{cfg: cfg, neck: scene.NoHandle}
}

// Bind finds the neck bone in g by substring match. Returns false if there is none.
func (c *Controller) Bind(g *scene.Graph) bool {
	c.neck = g.FindBone(c.cfg.NeckBone, false)
	return c.neck.Valid()
}

// Neck returns the bound bone, or an invalid handle.
func (c *Controller) Neck() scene.Handle { return c.neck }

// Target returns the yaw and pitch for a normalized pointer position.
func (c *Controller) Target(pointer math.Vec2) (yaw, pitch float32) {
	yaw = pointer.X * c.cfg.MaxAngle
	pitch = -pointer.Y * c.cfg.MaxAngle * c.cfg.VerticalScale
	return yaw, pitch
}

// Update moves the neck one smoothing step toward pointer, given in [-1,1] with +Y up.
func (c *Controller) Update(g *scene.Graph, pointer math.Vec2) {
	if !c.cfg.Enabled {
		return
	}
	n := g.Node(c.neck)
	if n == nil {
		return
	}
	yaw, pitch := c.Target(pointer)
	n.Rotation.Y = math.Lerp(n.Rotation.Y, yaw, c.cfg.Smoothing)
	n.Rotation.X = math.Lerp(n.Rotation.X, pitch, c.cfg.Smoothing)
}

// NormalizePointer maps window pixel coordinates (origin top-left) to
// [-1,1] on both axes with +Y up. A degenerate window yields the center.
func NormalizePointer(px, py, width, height int) math.Vec2 {
	if width <= 0 || height <= 0 {
		return math.Vec2{}
	}
	p := math.Vec2{
		X: 2*float32(px)/float32(width) - 1,
		Y: 1 - 2*float32(py)/float32(height),
	}
	return p.Clamp(-1, 1)
}
