package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New(1.5)
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
	if m.Volume() != 1 {
		t.Errorf("Volume() = %v, want clamped 1", m.Volume())
	}
	m.SetVolume(0.25)
	if m.Volume() != 0.25 {
		t.Errorf("Volume() = %v, want 0.25", m.Volume())
	}

	// Playing before Init is silently ignored.
	m.Play(CueShutter)
	if err := m.PlayWAV(nil); err == nil {
		t.Error("PlayWAV before Init should fail")
	}
}

// drain streams s to the end and returns the samples.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestCueLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		cue  Cue
		want time.Duration
	}{
		{CueShutter, 60 * time.Millisecond},
		{CueReload, 180 * time.Millisecond},
	}
	for _, tt := range tests {
		got := len(drain(tt.cue.Streamer(rate)))
		if got != rate.N(tt.want) {
			t.Errorf("%v: %d samples, want %d", tt.cue, got, rate.N(tt.want))
		}
	}
}

func TestCueEnvelope(t *testing.T) {
	samples := drain(CueReload.Streamer(beep.SampleRate(8000)))
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want silent attack start", samples[0][0])
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v, want mono within [-1,1]", i, s)
		}
	}
}

func TestWithVolumeSilent(t *testing.T) {
	s := withVolume(CueShutter.Streamer(beep.SampleRate(8000)), 0)
	for _, v := range drain(s) {
		if v[0] != 0 {
			t.Fatal("zero volume produced sound")
		}
	}
}
