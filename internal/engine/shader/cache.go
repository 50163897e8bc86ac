package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/internal/logger"
)

// compiled is the GL side of one toon.Program.
type compiled struct {
	id        uint32
	version   uint64
	dirLights int
	locations map[string]int32
}

func (c *compiled) location(name string) int32 {
	if loc, ok := c.locations[name]; ok {
		return loc
	}
	loc := GetUniform(c.id, name)
	c.locations[name] = loc
	return loc
}

// stale reports whether c no longer matches p compiled for dirLights.
func stale(c *compiled, p *toon.Program, dirLights int) bool {
	return c == nil || p.NeedsUpdate || c.version != p.Version || c.dirLights != dirLights
}

// Cache compiles toon programs on demand. Programs are shared between
// materials, so the cache is keyed by program identity.
type Cache struct {
	programs map[*toon.Program]*compiled
	log      *zap.Logger
}

// NewCache creates an empty cache. Requires a current GL context for use.
func NewCache() *Cache {
	return &Cache{
		programs: make(map[*toon.Program]*compiled),
		log:      logger.Named("shader"),
	}
}

// Use makes p current, recompiling it when its source changed or the light
// count differs from the last compile, and uploads its float uniforms.
func (c *Cache) Use(p *toon.Program, dirLights int) (uint32, error) {
	entry := c.programs[p]
	if stale(entry, p, dirLights) {
		id, err := CompileProgram(p.VertexSource(), p.FragmentSource(dirLights))
		if err != nil {
			return 0, fmt.Errorf("compile %s v%d: %w", p.Name, p.Version, err)
		}
		if entry != nil {
			gl.DeleteProgram(entry.id)
		}
		entry = &compiled{id: id, version: p.Version, dirLights: dirLights, locations: make(map[string]int32)}
		c.programs[p] = entry
		p.NeedsUpdate = false
		c.log.Debug("program compiled",
			zap.String("name", p.Name),
			zap.Uint64("version", p.Version),
			zap.Int("dirLights", dirLights),
			zap.Uint32("id", id))
	}

	gl.UseProgram(entry.id)
	for _, u := range p.Uniforms() {
		if loc := entry.location(u.Name); loc >= 0 {
			gl.Uniform1f(loc, u.Value)
		}
	}
	return entry.id, nil
}

// Location returns the uniform location of name in the compiled form of p,
// or -1 when p has not been compiled or has no such uniform.
func (c *Cache) Location(p *toon.Program, name string) int32 {
	entry := c.programs[p]
	if entry == nil {
		return -1
	}
	return entry.location(name)
}

// Collect deletes the GL programs of released toon programs and returns how many went.
func (c *Cache) Collect() int {
	n := 0
	for p, entry := range c.programs {
		if p.Released() {
			gl.DeleteProgram(entry.id)
			delete(c.programs, p)
			n++
		}
	}
	if n > 0 {
		c.log.Debug("released programs deleted", zap.Int("count", n))
	}
	return n
}

// Len returns the number of compiled programs.
func (c *Cache) Len() int { return len(c.programs) }

// Close deletes every compiled program.
func (c *Cache) Close() {
	for p, entry := range c.programs {
		gl.DeleteProgram(entry.id)
		delete(c.programs, p)
	}
}
