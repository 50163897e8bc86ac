package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Attribute locations, matching the toon vertex shader.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
)

// meshBuffers is the GPU copy of one mesh node. Positions live in their own
// buffer so morphed meshes can re-upload them without touching the rest.
type meshBuffers struct {
	vao        uint32
	positions  uint32
	attributes uint32 // interleaved normal + uv
	indices    uint32
	count      int32

	geometry  *scene.Geometry
	morphed   bool // positions currently hold morphed data
	lastFrame uint64
}

// packAttributes interleaves normals and texture coordinates, five floats
// per vertex. Missing data is zero filled.
func packAttributes(g *scene.Geometry) []float32 {
	out := make([]float32, 0, len(g.Positions)*5)
	for i := range g.Positions {
		var n math.Vec3
		var uv math.Vec2
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		if i < len(g.TexCoords) {
			uv = g.TexCoords[i]
		}
		out = append(out, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}

func flatten(positions []math.Vec3) []float32 {
	out := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func newMeshBuffers(g *scene.Geometry) *meshBuffers {
	m := &meshBuffers{geometry: g, count: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	pos := flatten(g.Positions)
	gl.GenBuffers(1, &m.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(pos)*4, gl.Ptr(pos), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(attribPosition)

	attrs := packAttributes(g)
	gl.GenBuffers(1, &m.attributes)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.attributes)
	gl.BufferData(gl.ARRAY_BUFFER, len(attrs)*4, gl.Ptr(attrs), gl.STATIC_DRAW)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(attribUV)

	gl.GenBuffers(1, &m.indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// updatePositions re-uploads positions when morph influences are active, and
// once more when they return to rest.
func (m *meshBuffers) updatePositions(influences []float32) {
	positions := m.geometry.Morphed(influences)
	active := len(m.geometry.Positions) > 0 && &positions[0] != &m.geometry.Positions[0]
	if !active && !m.morphed {
		return
	}
	m.morphed = active

	data := flatten(positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.positions)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *meshBuffers) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *meshBuffers) release() {
	buffers := []uint32{m.positions, m.attributes, m.indices}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &m.vao)
}
