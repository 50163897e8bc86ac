package toon

import _ "embed"

const glslVersion = "#version 410 core\n\n"

//go:embed shaders/toon.vert
var vertexShader string

//go:embed shaders/toon_decl.frag
var fragmentDeclarations string

//go:embed shaders/toon_main.frag
var fragmentMain string

//go:embed shaders/enhance_decl.glsl
var enhanceDeclarations string

//go:embed shaders/enhance_terms.glsl
var enhanceTerms string

const fragmentOutput = "fragColor = vec4(outgoingLight, diffuseColor.a);\n"

// NewBaseProgram returns the plain toon program: diffuse quantized through
// the tone gradient, no specular or rim.
func NewBaseProgram() *Program {
	p := &Program{
		Name:         "toon",
		Vertex:       vertexShader,
		Declarations: fragmentDeclarations,
		Main:         fragmentMain,
		Output:       fragmentOutput,
	}
	p.Invalidate()
	return p
}
