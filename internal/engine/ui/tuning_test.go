package ui

import (
	"testing"

	"github.com/Faultbox/toonrig/internal/engine/toon"
)

func TestSlidersEditValues(t *testing.T) {
	tn := NewTuning()
	sliders := tn.Sliders()
	if len(sliders) != 7 {
		t.Fatalf("got %d sliders, want 7", len(sliders))
	}
	for _, s := range sliders {
		if *s.Value < s.Min || *s.Value > s.Max {
			t.Errorf("%s default %v outside [%v, %v]", s.Label, *s.Value, s.Min, s.Max)
		}
	}

	*sliders[5].Value = 0.25
	if tn.Values.RimWidth != 0.25 {
		t.Errorf("RimWidth = %v, want 0.25", tn.Values.RimWidth)
	}
	tn.Reset()
	if tn.Values.RimWidth != toon.DefaultRimWidth {
		t.Errorf("Reset left RimWidth = %v", tn.Values.RimWidth)
	}
}

func TestApply(t *testing.T) {
	tn := NewTuning()
	a := toon.NewMaterial("a", toon.NewDescriptor(), nil)
	b := toon.NewMaterial("b", toon.NewDescriptor(), nil)
	gone := toon.NewMaterial("gone", toon.NewDescriptor(), nil)
	gone.Dispose()
	materials := []*toon.Material{a, b, gone}

	if n := tn.Apply(materials); n != 0 {
		t.Errorf("Apply() with defaults changed %d materials, want 0", n)
	}

	tn.Values.Glossiness = 64
	if n := tn.Apply(materials); n != 2 {
		t.Errorf("Apply() changed %d materials, want 2", n)
	}
	if g, _ := a.Program.Uniform(toon.UniformGlossiness); g != 64 {
		t.Errorf("glossiness uniform = %v, want 64", g)
	}
	if gone.Resolved.Glossiness == 64 {
		t.Error("disposed material was retuned")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name           string
		availW, availH float32
		width, height  float32
		wantW, wantH   float32
	}{
		{"wide region", 800, 300, 400, 300, 400, 300},
		{"tall region", 200, 600, 400, 300, 200, 150},
		{"upscale", 800, 600, 400, 300, 800, 600},
		{"empty", 0, 600, 400, 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.availW, tt.availH, tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Fit() = %v x %v, want %v x %v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
