package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/engine/lighting"
	"github.com/Faultbox/toonrig/internal/engine/material"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Texture units used by the toon fragment shader.
const (
	unitMap = iota
	unitNormalMap
	unitGradient
	unitAlphaMap
	unitAOMap
	unitEmissiveMap
)

// View is the camera and lighting for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Lights     lighting.Rig
}

// surface is what one mesh is drawn with.
type surface struct {
	program    *toon.Program
	descriptor toon.Descriptor
	gradient   *toon.Gradient
}

// surfaceOf picks the program and inputs for m. Toon materials draw with
// their own enhanced program; anything else falls back to base with a
// descriptor extracted from its capabilities.
func surfaceOf(m scene.Material, base *toon.Program) surface {
	if t, ok := m.(*toon.Material); ok {
		return surface{program: t.Program, descriptor: t.Descriptor, gradient: t.Gradient}
	}
	return surface{program: base, descriptor: material.Extract(material.Probe(m))}
}

// DrawGraph draws every mesh node of g.
func (r *Renderer) DrawGraph(g *scene.Graph, v View) {
	if g == nil {
		return
	}
	lights := v.Lights.ViewLights(v.View)
	g.Walk(func(h scene.Handle, n *scene.Node) {
		if !n.IsMesh() || len(n.Materials) == 0 {
			return
		}
		geom := n.Geometry
		if len(geom.Positions) == 0 || len(geom.Indices) == 0 {
			return
		}
		r.drawMesh(n, g.WorldMatrix(h), v, lights)
	})
}

func (r *Renderer) drawMesh(n *scene.Node, model math.Mat4, v View, lights []toon.Light) {
	buf := r.meshes[n]
	if buf == nil || buf.geometry != n.Geometry {
		if buf != nil {
			buf.release()
		}
		buf = newMeshBuffers(n.Geometry)
		r.meshes[n] = buf
	}
	buf.lastFrame = r.frame
	buf.updatePositions(n.MorphInfluences)

	// Geometry carries no material groups, the first slot covers the mesh.
	s := surfaceOf(n.Materials[0], r.base)
	if _, err := r.programs.Use(s.program, len(lights)); err != nil {
		r.log.Error("cannot draw mesh", zap.String("mesh", n.Name), zap.Error(err))
		return
	}

	p := s.program
	r.setMatrix(p, "uModel", model)
	r.setMatrix(p, "uView", v.View)
	r.setMatrix(p, "uProjection", v.Projection)

	d := s.descriptor
	r.setVec3(p, "diffuse", d.Color)
	r.setVec3(p, "emissive", d.Emissive)
	gl.Uniform1f(r.programs.Location(p, "emissiveIntensity"), d.EmissiveIntensity)
	gl.Uniform1f(r.programs.Location(p, "opacity"), d.Opacity)
	gl.Uniform1f(r.programs.Location(p, "aoMapIntensity"), d.AOMapIntensity)
	r.setVec3(p, "ambientLightColor", v.Lights.Ambient)
	gl.Uniform2f(r.programs.Location(p, "normalScale"), d.NormalScale.X, d.NormalScale.Y)
	for i, l := range lights {
		prefix := fmt.Sprintf("directionalLights[%d]", i)
		r.setVec3(p, prefix+".direction", l.Direction)
		r.setVec3(p, prefix+".color", l.Color)
	}

	r.bindTexture(p, "map", "useMap", unitMap, d.Map)
	r.bindTexture(p, "normalMap", "useNormalMap", unitNormalMap, d.NormalMap)
	r.bindTexture(p, "alphaMap", "useAlphaMap", unitAlphaMap, d.AlphaMap)
	r.bindTexture(p, "aoMap", "useAoMap", unitAOMap, d.AOMap)
	r.bindTexture(p, "emissiveMap", "useEmissiveMap", unitEmissiveMap, d.EmissiveMap)
	gradient := texture.None
	if s.gradient != nil {
		gradient = s.gradient.Texture
	}
	r.bindTexture(p, "gradientMap", "useGradientMap", unitGradient, gradient)

	if d.Transparent {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
	}
	buf.draw()
	if d.Transparent {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
}

func (r *Renderer) setMatrix(p *toon.Program, name string, m math.Mat4) {
	gl.UniformMatrix4fv(r.programs.Location(p, name), 1, false, m.Ptr())
}

func (r *Renderer) setVec3(p *toon.Program, name string, v math.Vec3) {
	gl.Uniform3f(r.programs.Location(p, name), v.X, v.Y, v.Z)
}

// bindTexture binds h to unit and sets the matching sampler and flag uniforms.
func (r *Renderer) bindTexture(p *toon.Program, sampler, flag string, unit uint32, h texture.Handle) {
	texture.Bind(unit, h)
	gl.Uniform1i(r.programs.Location(p, sampler), int32(unit))
	use := int32(0)
	if h.Valid() {
		use = 1
	}
	gl.Uniform1i(r.programs.Location(p, flag), use)
}
