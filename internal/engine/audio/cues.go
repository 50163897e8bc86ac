package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep/v2"
)

// Cue is a synthesized viewer sound.
type Cue int

const (
	// CueShutter is a short noise burst played when a screenshot is saved.
	CueShutter Cue = iota
	// CueReload is a rising two-note chime played when the character is rebuilt.
	CueReload
)

func (c Cue) String() string {
	switch c {
	case CueShutter:
		return "shutter"
	case CueReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Streamer synthesizes c at the given sample rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueShutter:
		d := 60 * time.Millisecond
		return envelope(oscillate(0, d, waveNoise, rate), d, 2*time.Millisecond, 50*time.Millisecond, rate)
	case CueReload:
		d := 90 * time.Millisecond
		note := func(freq float64) beep.Streamer {
			return envelope(oscillate(freq, d, waveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
		}
		return beep.Seq(note(660), note(990))
	default:
		return beep.Silence(0)
	}
}

type wave int

const (
	waveSine wave = iota
	waveNoise
)

// oscillator generates a fixed number of samples of one wave shape.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     wave
	rate     beep.SampleRate
}

func oscillate(freq float64, d time.Duration, w wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(d), wave: w, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelopeStreamer applies a linear attack and release.
type envelopeStreamer struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelopeStreamer{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

// gain returns the envelope level at sample p.
func (e *envelopeStreamer) gain(p int) float64 {
	if e.attack > 0 && p < e.attack {
		return float64(p) / float64(e.attack)
	}
	if e.release > 0 && p >= e.total-e.release {
		return math.Max(0, float64(e.total-p)/float64(e.release))
	}
	return 1
}

func (e *envelopeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelopeStreamer) Err() error { return e.streamer.Err() }
