// Package character runs the per-frame rig of a loaded character: spring
// bones, their collision clamp, neck aim and blink. It also owns the one-time
// material conversion.
package character

import (
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/aim"
	"github.com/Faultbox/toonrig/internal/engine/blink"
	"github.com/Faultbox/toonrig/internal/engine/collision"
	"github.com/Faultbox/toonrig/internal/engine/material"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/spring"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Frame is the input of one update.
type Frame struct {
	Elapsed float32   // seconds since start, drives blink
	Delta   float32   // seconds since the previous frame, drives springs
	Pointer math.Vec2 // normalized to [-1,1], +Y up
}

// Stats summarizes what Discover found.
type Stats struct {
	SpringBones     int
	CollisionMeshes int
	Eyes            int
	Neck            bool
}

// Systems selects which rig systems Update runs.
type Systems struct {
	Springs bool // includes the collision clamp
	Aim     bool
	Blink   bool
}

// AllSystems enables everything.
func AllSystems() Systems {
	return Systems{Springs: true, Aim: true, Blink: true}
}

// Character binds the rig subsystems to one scene graph.
type Character struct {
	cfg       *config.Config
	graph     *scene.Graph
	springs   *spring.Solver
	collider  *collision.Resolver
	aim       *aim.Controller
	blink     *blink.Animator
	converter *material.Converter
	systems   Systems
	log       *zap.Logger
}

// New creates a character with no graph bound. cache may be nil headless.
func New(cfg *config.Config, cache *toon.GradientCache) *Character {
	return &Character{
		cfg:       cfg,
		springs:   spring.NewSolver(cfg.Spring),
		collider:  collision.NewResolver(cfg.Collision),
		aim:       aim.New(cfg.Aim),
		blink:     blink.New(cfg.Blink),
		converter: material.NewConverter(cache),
		systems:   AllSystems(),
		log:       logger.Named("character"),
	}
}

// Discover binds c to g, replacing any previous graph. Spring state from the
// previous graph is disposed before anything is looked up in g; this must
// happen on every reload.
func (c *Character) Discover(g *scene.Graph) Stats {
	if c.graph != nil {
		c.springs.Dispose(c.graph)
	}
	c.graph = g
	c.converter.Reset()

	meshes := collision.ResolveMeshes(g, c.cfg.Collision.MeshNames, c.cfg.Collision.MeshPrefix)
	c.collider.SetMeshes(g, meshes)

	stats := Stats{
		CollisionMeshes: len(meshes),
		Neck:            c.aim.Bind(g),
		Eyes:            c.blink.Bind(g),
		SpringBones:     c.springs.Scan(g),
	}

	c.log.Info("character discovered",
		zap.Int("nodes", g.Len()),
		zap.Int("springBones", stats.SpringBones),
		zap.Int("collisionMeshes", stats.CollisionMeshes),
		zap.Int("eyes", stats.Eyes),
		zap.Bool("neck", stats.Neck))
	if !stats.Neck {
		c.log.Debug("no neck bone, aim disabled", zap.String("bone", c.cfg.Aim.NeckBone))
	}
	if stats.CollisionMeshes == 0 {
		c.log.Debug("no collision meshes, collision disabled")
	}
	return stats
}

// ConvertMaterials replaces the materials of every mesh in the bound graph
// with toon materials. Safe to call more than once. Returns the number of
// material slots converted.
func (c *Character) ConvertMaterials() int {
	if c.graph == nil {
		return 0
	}
	converted := 0
	c.graph.Walk(func(_ scene.Handle, n *scene.Node) {
		converted += c.converter.ConvertMesh(n)
	})
	c.log.Info("materials converted",
		zap.Int("slots", converted),
		zap.Int("distinct", c.converter.Len()))
	return converted
}

// Update advances the rig by one frame: springs, then their collision clamp,
// then aim and blink.
func (c *Character) Update(f Frame) {
	g := c.graph
	if g == nil {
		return
	}

	if c.systems.Springs {
		c.springs.Update(g, f.Delta)
		if c.collider.Resolve(g, c.springs.Bones()) > 0 {
			c.springs.Sync(g)
		}
	}
	if c.systems.Aim {
		c.aim.Update(g, f.Pointer)
	}
	if c.systems.Blink {
		c.blink.Update(g, f.Elapsed)
	}
}

// SetSystems changes which systems later updates run. A disabled system
// leaves its bones where it last put them.
func (c *Character) SetSystems(s Systems) { c.systems = s }

// Systems returns the enabled systems.
func (c *Character) Systems() Systems { return c.systems }

// Materials returns the distinct toon materials of the bound graph.
func (c *Character) Materials() []*toon.Material {
	if c.graph == nil {
		return nil
	}
	var out []*toon.Material
	seen := make(map[*toon.Material]bool)
	c.graph.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			if tm, ok := m.(*toon.Material); ok && !seen[tm] {
				seen[tm] = true
				out = append(out, tm)
			}
		}
	})
	return out
}

// Graph returns the bound graph or nil.
func (c *Character) Graph() *scene.Graph { return c.graph }

// Springs exposes the spring solver for inspection.
func (c *Character) Springs() *spring.Solver { return c.springs }

// Neck returns the aimed neck bone, NoHandle when none was found.
func (c *Character) Neck() scene.Handle { return c.aim.Neck() }

// Eyes returns the blinking eye meshes.
func (c *Character) Eyes() []scene.Handle { return c.blink.Eyes() }

// Collider exposes the collision resolver for inspection.
func (c *Character) Collider() *collision.Resolver { return c.collider }

// Close disposes the spring state and unbinds the graph.
func (c *Character) Close() {
	if c.graph != nil {
		c.springs.Dispose(c.graph)
	}
	c.graph = nil
}
