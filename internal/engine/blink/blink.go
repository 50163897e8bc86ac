// Package blink drives the eyelid morph target of the eye meshes.
package blink

import (
	"strings"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Waveform is one blink cycle. CloseEnd and OpenEnd are fractions of Period:
// the lid closes over [0, CloseEnd), opens over [CloseEnd, OpenEnd) and stays
// open for the rest of the cycle.
type Waveform struct {
	Period   float32
	CloseEnd float32
	OpenEnd  float32
}

// DefaultWaveform is a one-second cycle with a 10 frame close and 5 frame open at 60 fps.
var DefaultWaveform = Waveform{Period: 1, CloseEnd: 0.167, OpenEnd: 0.25}

// Weight returns the blink weight in [0,1] at the given elapsed time.
func (w Waveform) Weight(elapsed float32) float32 {
	if w.Period <= 0 {
		return 0
	}
	c := math.Mod(elapsed, w.Period) / w.Period
	switch {
	case c < w.CloseEnd:
		return c / w.CloseEnd
	case c < w.OpenEnd:
		return math.Clamp(1-(c-w.CloseEnd)/(w.OpenEnd-w.CloseEnd), 0, 1)
	default:
		return 0
	}
}

// Weight evaluates DefaultWaveform.
func Weight(elapsed float32) float32 {
	return DefaultWaveform.Weight(elapsed)
}

// Animator writes the blink weight into morph channel 0 of every eye mesh.
type Animator struct {
	cfg  config.BlinkConfig
	wave Waveform
	eyes []scene.Handle
}

// New creates an animator with no eyes bound.
func New(cfg config.BlinkConfig) *Animator {
	return &Animator{
		cfg:  cfg,
		wave: Waveform{Period: cfg.Period, CloseEnd: cfg.CloseEnd, OpenEnd: cfg.OpenEnd},
	}
}

// FindEyes returns the mesh nodes of g that have morph targets and whose name
// contains token. The match is case-sensitive.
func FindEyes(g *scene.Graph, token string) []scene.Handle {
	var eyes []scene.Handle
	g.Walk(func(h scene.Handle, n *scene.Node) {
		if n.Kind == scene.KindMesh && len(n.MorphInfluences) > 0 && strings.Contains(n.Name, token) {
			eyes = append(eyes, h)
		}
	})
	return eyes
}

// Bind looks up the eye meshes in g and returns how many were found.
func (a *Animator) Bind(g *scene.Graph) int {
	a.eyes = FindEyes(g, a.cfg.EyeToken)
	return len(a.eyes)
}

// Eyes returns the bound eye meshes.
func (a *Animator) Eyes() []scene.Handle { return a.eyes }

// Update sets every eye to the weight at elapsed seconds.
func (a *Animator) Update(g *scene.Graph, elapsed float32) {
	if !a.cfg.Enabled {
		return
	}
	w := a.wave.Weight(elapsed)
	for _, h := range a.eyes {
		n := g.Node(h)
		if n == nil || len(n.MorphInfluences) == 0 {
			continue
		}
		n.MorphInfluences[0] = w
	}
}
