package toon

import (
	"fmt"
	"strings"
)

// Point is a named place in the fragment stage where code can be inserted.
type Point int

const (
	// PointDeclarations follows the base uniform and helper declarations.
	PointDeclarations Point = iota
	// PointBeforeOutput runs inside main after outgoingLight is final and
	// before the fragment color is written.
	PointBeforeOutput
)

func (p Point) String() string {
	switch p {
	case PointDeclarations:
		return "declarations"
	case PointBeforeOutput:
		return "before-output"
	default:
		return fmt.Sprintf("point(%d)", int(p))
	}
}

// Chunk is a named piece of GLSL at an insertion point.
type Chunk struct {
	Name string
	Code string
}

// Uniform is a float uniform owned by the program.
type Uniform struct {
	Name  string
	Value float32
}

// Program is a toon shading program kept as parts rather than text. Source
// composes the final GLSL, so inserted chunks never depend on markers in the
// base source.
type Program struct {
	Name string

	Vertex       string
	Declarations string // fragment globals
	Main         string // fragment main body, leaves outgoingLight and diffuseColor
	Output       string // final statement writing the fragment color

	chunks   map[Point][]Chunk
	uniforms []Uniform

	// NeedsUpdate is set whenever the composed source or uniforms change
	// and cleared by whoever compiles the program.
	NeedsUpdate bool
	// Version increases with every change.
	Version uint64

	released bool
}

// Insert places code at point p under name. Inserting an existing name
// replaces its code in place, keeping the order.
func (p *Program) Insert(pt Point, name, code string) {
	if p.chunks == nil {
		p.chunks = make(map[Point][]Chunk)
	}
	list := p.chunks[pt]
	for i := range list {
		if list[i].Name == name {
			list[i].Code = code
			p.Invalidate()
			return
		}
	}
	p.chunks[pt] = append(list, Chunk{Name: name, Code: code})
	p.Invalidate()
}

// Has reports whether a chunk called name exists at any point.
func (p *Program) Has(name string) bool {
	for _, list := range p.chunks {
		for _, c := range list {
			if c.Name == name {
				return true
			}
		}
	}
	return false
}

// Chunks returns the chunks at pt in insertion order.
func (p *Program) Chunks(pt Point) []Chunk {
	return p.chunks[pt]
}

// SetUniform sets or adds a float uniform.
func (p *Program) SetUniform(name string, v float32) {
	for i := range p.uniforms {
		if p.uniforms[i].Name == name {
			p.uniforms[i].Value = v
			return
		}
	}
	p.uniforms = append(p.uniforms, Uniform{Name: name, Value: v})
}

// Uniform returns the value of a float uniform.
func (p *Program) Uniform(name string) (float32, bool) {
	for _, u := range p.uniforms {
		if u.Name == name {
			return u.Value, true
		}
	}
	return 0, false
}

// Uniforms returns all float uniforms in the order they were added.
func (p *Program) Uniforms() []Uniform {
	return p.uniforms
}

// Invalidate marks the program for recompilation.
func (p *Program) Invalidate() {
	p.NeedsUpdate = true
	p.Version++
}

// Release marks the program as no longer used by any material, so the
// compiled GL program can be deleted.
func (p *Program) Release() { p.released = true }

// Released reports whether Release was called.
func (p *Program) Released() bool { return p.released }

// VertexSource returns the complete vertex shader.
func (p *Program) VertexSource() string {
	return glslVersion + p.Vertex
}

// FragmentSource returns the complete fragment shader for the given number
// of directional lights.
func (p *Program) FragmentSource(numDirLights int) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	fmt.Fprintf(&b, "#define NUM_DIR_LIGHTS %d\n\n", numDirLights)

	b.WriteString(p.Declarations)
	for _, c := range p.chunks[PointDeclarations] {
		fmt.Fprintf(&b, "\n// %s\n%s", c.Name, c.Code)
	}

	b.WriteString("\nvoid main() {\n")
	b.WriteString(p.Main)
	for _, c := range p.chunks[PointBeforeOutput] {
		// Scoped so chunk locals cannot collide.
		fmt.Fprintf(&b, "\n// %s\n{\n%s}\n", c.Name, c.Code)
	}
	b.WriteString(p.Output)
	b.WriteString("}\n")
	return b.String()
}
