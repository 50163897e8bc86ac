package material

import (
	"testing"

	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

// opaque offers no capabilities beyond the scene.Material contract.
type opaque struct {
	name     string
	disposed bool
}

func (o *opaque) MaterialName() string { return o.name }
func (o *opaque) Dispose()             { o.disposed = true }

var white = math.Vec3{X: 1, Y: 1, Z: 1}

func TestConvertRoundTrip(t *testing.T) {
	src := NewStandard("cloth")
	src.BaseColor = math.Vec3{X: 0.8, Y: 0.2, Z: 0.2}
	src.ColorMap = texture.Handle(5)

	out, ok := NewConverter(nil).Convert(src)
	if !ok {
		t.Fatal("Convert() skipped a standard material")
	}
	m, isToon := out.(*toon.Material)
	if !isToon {
		t.Fatalf("Convert() returned %T", out)
	}

	d := m.Descriptor
	if d.Color != src.BaseColor {
		t.Errorf("color = %v, want %v", d.Color, src.BaseColor)
	}
	if d.Map != 5 {
		t.Errorf("map = %d, want 5", d.Map)
	}
	if d.NormalMap.Valid() {
		t.Errorf("normal map = %d, want none", d.NormalMap)
	}
	if d.NormalScale != (math.Vec2{X: 1, Y: 1}) {
		t.Errorf("normal scale = %v", d.NormalScale)
	}
	if d.Params != (toon.Params{}) {
		t.Errorf("params should all be unset, got %+v", d.Params)
	}
	if m.MaterialName() != "cloth" {
		t.Errorf("name = %q", m.MaterialName())
	}

	if !src.Disposed() {
		t.Error("source material was not disposed")
	}
	if src.ColorMap != 5 {
		t.Error("source texture reference was dropped")
	}
}

func TestExtractLuminance(t *testing.T) {
	tests := []struct {
		name  string
		color math.Vec3
		want  math.Vec3
	}{
		{"black", math.Vec3{}, white},
		{"below threshold", math.Vec3{X: 0.009, Y: 0.009, Z: 0.009}, white},
		{"dark red kept", math.Vec3{X: 0.05}, math.Vec3{X: 0.05}},
		{"mid grey", math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Extract(Capabilities{HasColor: true, Color: tt.color})
			if d.Color != tt.want {
				t.Errorf("color = %v, want %v", d.Color, tt.want)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	basic := &Basic{Name: "flat", BaseColor: math.Vec3{X: 0.3}, ColorMap: 2}
	caps := Probe(basic)
	if !caps.HasColor || !caps.HasDiffuseMap || caps.HasNormalMap || caps.HasNormalScale || caps.HasOpacity {
		t.Errorf("Probe(Basic) = %+v", caps)
	}

	std := NewStandard("skin")
	std.NormalTexture = 9
	std.NormalFactor = math.Vec2{X: 0.5, Y: -0.5}
	caps = Probe(std)
	if caps.HasDiffuseMap {
		t.Error("an empty color map should not count as a diffuse map")
	}
	if !caps.HasNormalMap || caps.NormalMap != 9 || caps.NormalScale != std.NormalFactor {
		t.Errorf("normal capabilities = %+v", caps)
	}

	caps = Probe(&opaque{name: "mystery"})
	if caps != (Capabilities{Name: "mystery"}) {
		t.Errorf("Probe(opaque) = %+v", caps)
	}
}

func TestExtractCarriesExtraMaps(t *testing.T) {
	std := NewStandard("visor")
	std.AlphaTexture = 3
	std.Occlusion = 4
	std.OcclusionMix = 0.5
	std.Glow = math.Vec3{X: 0.1, Y: 0.2}
	std.GlowStrength = 3
	std.GlowTexture = 6

	d := Extract(Probe(std))
	if d.AlphaMap != 3 || d.AOMap != 4 || d.EmissiveMap != 6 {
		t.Errorf("maps = alpha %d, ao %d, emissive %d", d.AlphaMap, d.AOMap, d.EmissiveMap)
	}
	if d.AOMapIntensity != 0.5 || d.EmissiveIntensity != 3 || d.Emissive != std.Glow {
		t.Errorf("intensities = ao %v, emissive %v x%v", d.AOMapIntensity, d.Emissive, d.EmissiveIntensity)
	}

	// Without the capabilities the descriptor keeps unit intensities and no maps.
	d = Extract(Probe(&Basic{Name: "flat", BaseColor: white}))
	if d.AlphaMap.Valid() || d.AOMap.Valid() || d.EmissiveMap.Valid() {
		t.Errorf("basic material gained maps: %+v", d)
	}
	if d.AOMapIntensity != 1 || d.EmissiveIntensity != 1 {
		t.Errorf("default intensities = ao %v, emissive %v", d.AOMapIntensity, d.EmissiveIntensity)
	}
}

func TestConvertUnrecognized(t *testing.T) {
	src := &opaque{name: "mystery"}
	out, ok := NewConverter(nil).Convert(src)
	if !ok {
		t.Fatal("unrecognized material should still convert")
	}
	d := out.(*toon.Material).Descriptor
	if d.Color != white || d.Map.Valid() || d.NormalMap.Valid() {
		t.Errorf("descriptor = %+v, want white with no maps", d)
	}
	if !src.disposed {
		t.Error("source not disposed")
	}
}

func TestConvertMeshIdempotent(t *testing.T) {
	a, b := NewStandard("body"), &Basic{Name: "trim", BaseColor: white}
	n := scene.NewMesh("body_mesh", &scene.Geometry{}, a, b)
	c := NewConverter(toon.NewGradientCache(nil, nil))

	if got := c.ConvertMesh(n); got != 2 {
		t.Fatalf("first ConvertMesh() = %d, want 2", got)
	}
	first := append([]scene.Material(nil), n.Materials...)

	if got := c.ConvertMesh(n); got != 0 {
		t.Errorf("second ConvertMesh() = %d, want 0", got)
	}
	for i := range first {
		if n.Materials[i] != first[i] {
			t.Errorf("slot %d replaced on second conversion", i)
		}
		if first[i].(*toon.Material).Disposed() {
			t.Errorf("slot %d disposed on second conversion", i)
		}
	}
}

func TestConvertSharedSource(t *testing.T) {
	shared := &counting{Standard: NewStandard("cloth")}
	top := scene.NewMesh("top", &scene.Geometry{}, shared)
	skirt := scene.NewMesh("skirt", &scene.Geometry{}, shared, NewStandard("trim"))
	c := NewConverter(nil)

	if got := c.ConvertMesh(top) + c.ConvertMesh(skirt); got != 3 {
		t.Fatalf("slots converted = %d, want 3", got)
	}
	if top.Materials[0] != skirt.Materials[0] {
		t.Error("slots sharing a source got different toon materials")
	}
	if shared.disposals != 1 {
		t.Errorf("shared source disposed %d times, want 1", shared.disposals)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct sources", c.Len())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d", c.Len())
	}
}

// counting records how often Dispose runs.
type counting struct {
	*Standard
	disposals int
}

func (c *counting) Dispose() {
	c.disposals++
	c.Standard.Dispose()
}

func TestConvertSkipsEyes(t *testing.T) {
	c := NewConverter(nil)

	eyeMat := NewStandard("iris")
	eyeMesh := scene.NewMesh("Eye_L", &scene.Geometry{}, eyeMat)
	if got := c.ConvertMesh(eyeMesh); got != 0 || eyeMesh.Materials[0] != eyeMat || eyeMat.Disposed() {
		t.Error("mesh named as an eye was converted")
	}

	sclera := NewStandard("EyeWhite")
	skin := NewStandard("skin")
	face := scene.NewMesh("face", &scene.Geometry{}, skin, sclera)
	if got := c.ConvertMesh(face); got != 0 || skin.Disposed() {
		t.Error("mesh with an eye material was converted")
	}

	if _, ok := c.Convert(NewStandard("eyelash")); ok {
		t.Error("eye material converted on its own")
	}
}

func TestConvertMeshIgnoresNonMeshes(t *testing.T) {
	bone := scene.NewBone("head", math.Vec3{})
	if got := NewConverter(nil).ConvertMesh(bone); got != 0 {
		t.Errorf("ConvertMesh(bone) = %d", got)
	}
}
