package toon

// Chunk names used by Enhance.
const (
	ChunkEnhanceUniforms = "toon.enhance.uniforms"
	ChunkEnhanceTerms    = "toon.enhance.terms"
)

// Enhance adds the primary specular, secondary specular and rim terms to p
// and writes the resolved parameters as uniforms. Enhancing an already
// enhanced program only refreshes the uniforms. Either way p is marked for
// recompilation. Returns the values written.
func Enhance(p *Program, params Params) Resolved {
	r := Resolve(params)
	for _, u := range r.uniforms() {
		p.SetUniform(u.Name, u.Value)
	}
	if !p.Has(ChunkEnhanceTerms) {
		p.Insert(PointDeclarations, ChunkEnhanceUniforms, enhanceDeclarations)
		p.Insert(PointBeforeOutput, ChunkEnhanceTerms, enhanceTerms)
	}
	p.Invalidate()
	return r
}

// Enhanced reports whether Enhance has been applied to p.
func Enhanced(p *Program) bool {
	return p != nil && p.Has(ChunkEnhanceTerms)
}
