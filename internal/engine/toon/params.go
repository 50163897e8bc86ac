package toon

// Param is an optional shading parameter. The zero Param is unset.
type Param struct {
	Value float32
	Valid bool
}

// Set returns a Param holding v.
func Set(v float32) Param {
	return Param{Value: v, Valid: true}
}

// Or returns the value if set, otherwise def.
func (p Param) Or(def float32) float32 {
	if p.Valid {
		return p.Value
	}
	return def
}

// Params are the enhancer inputs as authored. Unset entries stay unset
// until Resolve.
type Params struct {
	Glossiness        Param
	SpecularStrength  Param
	Glossiness2       Param
	SpecularStrength2 Param
	RimStrength       Param
	RimWidth          Param
	RimSharpness      Param
}

// Defaults for unset parameters.
const (
	DefaultGlossiness        = 20
	DefaultSpecularStrength  = 0.5
	DefaultGlossiness2       = 80
	DefaultSpecularStrength2 = 0.3
	DefaultRimStrength       = 0.6
	DefaultRimWidth          = 0.6
	DefaultRimSharpness      = 1.0
)

// Resolved holds concrete parameter values.
type Resolved struct {
	Glossiness        float32
	SpecularStrength  float32
	Glossiness2       float32
	SpecularStrength2 float32
	RimStrength       float32
	RimWidth          float32
	RimSharpness      float32
}

// Resolve fills unset parameters with the defaults. It is the only place defaults apply.
func Resolve(p Params) Resolved {
	return Resolved{
		Glossiness:        p.Glossiness.Or(DefaultGlossiness),
		SpecularStrength:  p.SpecularStrength.Or(DefaultSpecularStrength),
		Glossiness2:       p.Glossiness2.Or(DefaultGlossiness2),
		SpecularStrength2: p.SpecularStrength2.Or(DefaultSpecularStrength2),
		RimStrength:       p.RimStrength.Or(DefaultRimStrength),
		RimWidth:          p.RimWidth.Or(DefaultRimWidth),
		RimSharpness:      p.RimSharpness.Or(DefaultRimSharpness),
	}
}

// Uniform names written by Enhance.
const (
	UniformGlossiness        = "uGlossiness"
	UniformSpecularStrength  = "uSpecularStrength"
	UniformGlossiness2       = "uGlossiness2"
	UniformSpecularStrength2 = "uSpecularStrength2"
	UniformRimStrength       = "uRimStrength"
	UniformRimWidth          = "uRimWidth"
	UniformRimSharpness      = "uRimSharpness"
)

// uniforms lists r in declaration order.
func (r Resolved) uniforms() []Uniform {
	return []Uniform{
		{Name: UniformGlossiness, Value: r.Glossiness},
		{Name: UniformSpecularStrength, Value: r.SpecularStrength},
		{Name: UniformGlossiness2, Value: r.Glossiness2},
		{Name: UniformSpecularStrength2, Value: r.SpecularStrength2},
		{Name: UniformRimStrength, Value: r.RimStrength},
		{Name: UniformRimWidth, Value: r.RimWidth},
		{Name: UniformRimSharpness, Value: r.RimSharpness},
	}
}

// Params returns r with every entry set.
func (r Resolved) Params() Params {
	return Params{
		Glossiness:        Set(r.Glossiness),
		SpecularStrength:  Set(r.SpecularStrength),
		Glossiness2:       Set(r.Glossiness2),
		SpecularStrength2: Set(r.SpecularStrength2),
		RimStrength:       Set(r.RimStrength),
		RimWidth:          Set(r.RimWidth),
		RimSharpness:      Set(r.RimSharpness),
	}
}
