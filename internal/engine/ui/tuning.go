package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/toonrig/internal/engine/toon"
)

// Slider is one tunable toon parameter.
type Slider struct {
	Label    string
	Value    *float32
	Min, Max float32
	Format   string
}

// Tuning holds the toon parameters edited in the tuner and the rig toggles.
type Tuning struct {
	Values toon.Resolved

	Springs bool
	Aim     bool
	Blink   bool
	Paused  bool

	SunAzimuth   float32 // degrees
	SunElevation float32 // degrees
	Volume       float32
	WebP         bool // screenshot encoding
}

// NewTuning starts from the enhancer defaults with every rig system on.
func NewTuning() *Tuning {
	return &Tuning{
		Values:  toon.Resolve(toon.Params{}),
		Springs: true,
		Aim:     true,
		Blink:   true,
	}
}

// Sliders lists the parameters in panel order.
func (t *Tuning) Sliders() []Slider {
	v := &t.Values
	return []Slider{
		{"Glossiness", &v.Glossiness, 1, 200, "%.0f"},
		{"Specular", &v.SpecularStrength, 0, 2, "%.2f"},
		{"Glossiness 2", &v.Glossiness2, 1, 200, "%.0f"},
		{"Specular 2", &v.SpecularStrength2, 0, 2, "%.2f"},
		{"Rim strength", &v.RimStrength, 0, 2, "%.2f"},
		{"Rim width", &v.RimWidth, 0, 1, "%.2f"},
		{"Rim sharpness", &v.RimSharpness, 0, 1, "%.2f"},
	}
}

// Apply retunes every material with the current values. Returns how many
// were changed.
func (t *Tuning) Apply(materials []*toon.Material) int {
	params := t.Values.Params()
	n := 0
	for _, m := range materials {
		if m.Disposed() || m.Resolved == t.Values {
			continue
		}
		m.Retune(params)
		n++
	}
	return n
}

// Reset restores the enhancer defaults.
func (t *Tuning) Reset() {
	t.Values = toon.Resolve(toon.Params{})
}

// Panel draws the controls. Reports whether a parameter changed this frame.
func (t *Tuning) Panel(materials int) bool {
	changed := false

	imgui.Text(fmt.Sprintf("Toon materials: %d", materials))
	imgui.Separator()
	for _, s := range t.Sliders() {
		if imgui.SliderFloatV(s.Label, s.Value, s.Min, s.Max, s.Format, imgui.SliderFlagsNone) {
			changed = true
		}
	}
	if imgui.Button("Defaults") {
		t.Reset()
		changed = true
	}

	imgui.Separator()
	imgui.Checkbox("Spring bones", &t.Springs)
	imgui.Checkbox("Neck aim", &t.Aim)
	imgui.Checkbox("Blink", &t.Blink)
	imgui.Checkbox("Pause", &t.Paused)

	imgui.Separator()
	imgui.SliderFloatV("Sun azimuth", &t.SunAzimuth, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Sun elevation", &t.SunElevation, -10, 90, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Volume", &t.Volume, 0, 1, "%.2f", imgui.SliderFlagsNone)
	imgui.Checkbox("WebP screenshots", &t.WebP)

	return changed
}
