// Package spring drives hair and ribbon bones with damped springs so they
// trail behind the motion of their parents.
package spring

import (
	gomath "math"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/logger"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Params are the coefficients of one spring. Both must be > 0.
type Params struct {
	Damping   float32
	Stiffness float32
}

// State is the simulation state of one bone.
type State struct {
	Bone      scene.Handle
	Damping   float32
	Stiffness float32
	Velocity  math.Vec3 // world space
	Position  math.Vec3 // simulated world position
	Rest      math.Vec3 // local position captured at registration
}

// Solver owns one State per registered bone.
type Solver struct {
	cfg    config.SpringConfig
	states []*State
	index  map[scene.Handle]int
}

// NewSolver creates an empty solver.
func NewSolver(cfg config.SpringConfig) *Solver {
	return &Solver{cfg: cfg, index: make(map[scene.Handle]int)}
}

// Rules returns the eligibility rules from the solver config.
func (s *Solver) Rules() Rules {
	return Rules{Default: s.cfg.MinBoneNumber, Families: s.cfg.Families}
}

// Register attaches a spring to bone h, capturing its current local position
// as the rest pose. Registering a bone again replaces its state and zeroes the
// velocity. Returns nil if h does not resolve.
func (s *Solver) Register(g *scene.Graph, h scene.Handle, p Params) *State {
	n := g.Node(h)
	if n == nil {
		return nil
	}
	st := &State{
		Bone:      h,
		Damping:   p.Damping,
		Stiffness: p.Stiffness,
		Position:  g.WorldPosition(h),
		Rest:      n.Position,
	}
	if i, ok := s.index[h]; ok {
		s.states[i] = st
		return st
	}
	s.index[h] = len(s.states)
	s.states = append(s.states, st)
	return st
}

// Scan registers every eligible bone of g: numbered bones below the hair roots
// with the hair coefficients, then the configured extra bones with theirs.
//
// Scan disposes all existing state first. Callers rebuilding a scene must
// still go through Scan (or Dispose) before the old graph is reset, otherwise
// the rest poses are never restored.
func (s *Solver) Scan(g *scene.Graph) int {
	s.Dispose(g)

	hair := Params{Damping: s.cfg.Hair.Damping, Stiffness: s.cfg.Hair.Stiffness}
	extra := Params{Damping: s.cfg.Extra.Damping, Stiffness: s.cfg.Extra.Stiffness}
	rules := s.Rules()

	roots := HairRoots(g, s.cfg.HeadBone)
	for _, root := range roots {
		g.Traverse(root, func(h scene.Handle, n *scene.Node) {
			if n.IsBone() && Eligible(n.Name, rules) {
				s.Register(g, h, hair)
			}
		})
	}
	hairCount := len(s.states)

	for _, h := range g.Bones() {
		if _, ok := s.index[h]; ok {
			continue
		}
		n := g.Node(h)
		if matchesExtra(n.Name, s.cfg.ExtraBones) {
			s.Register(g, h, extra)
		}
	}

	logger.Debug("spring bones registered",
		zap.Int("hairRoots", len(roots)),
		zap.Int("hair", hairCount),
		zap.Int("extra", len(s.states)-hairCount))
	return len(s.states)
}

func matchesExtra(name string, extras []config.ExtraBone) bool {
	lower := strings.ToLower(name)
	for _, e := range extras {
		want := strings.ToLower(e.Name)
		if want == "" {
			continue
		}
		if (e.Exact && lower == want) || (!e.Exact && strings.Contains(lower, want)) {
			return true
		}
	}
	return false
}

// Update advances every spring by dt seconds and writes the result into the
// bones' local positions. Large steps are clamped to MaxDelta and split into
// substeps no longer than MaxSubstep.
func (s *Solver) Update(g *scene.Graph, dt float32) {
	if len(s.states) == 0 || dt <= 0 {
		return
	}
	if s.cfg.MaxDelta > 0 && dt > s.cfg.MaxDelta {
		dt = s.cfg.MaxDelta
	}
	steps := 1
	if s.cfg.MaxSubstep > 0 {
		steps = int(gomath.Ceil(float64(dt / s.cfg.MaxSubstep)))
	}
	h := dt / float32(steps)

	// States are in traversal order, so a parent chain bone is written before
	// its children read their parent's world matrix.
	for _, st := range s.states {
		n := g.Node(st.Bone)
		if n == nil {
			continue
		}
		parent, ok := g.Parent(st.Bone)
		if !ok {
			continue
		}
		parentWorld := g.WorldMatrix(parent)
		target := parentWorld.TransformPoint(st.Rest)

		for i := 0; i < steps; i++ {
			accel := target.Sub(st.Position).Scale(st.Stiffness).Sub(st.Velocity.Scale(st.Damping))
			st.Velocity = st.Velocity.Add(accel.Scale(h))
			st.Position = st.Position.Add(st.Velocity.Scale(h))
		}

		n.Position = parentWorld.Inverse().TransformPoint(st.Position)
	}
}

// Sync re-reads each bone's local position into the simulated world position
// after something else (the collision pass) moved the bone.
func (s *Solver) Sync(g *scene.Graph) {
	for _, st := range s.states {
		if g.Node(st.Bone) != nil {
			st.Position = g.WorldPosition(st.Bone)
		}
	}
}

// Dispose restores every still-resolvable bone to its rest pose and drops all state.
func (s *Solver) Dispose(g *scene.Graph) {
	for _, st := range s.states {
		if n := g.Node(st.Bone); n != nil {
			n.Position = st.Rest
		}
	}
	s.states = nil
	s.index = make(map[scene.Handle]int)
}

// Bones returns the handles of all registered bones in registration order.
func (s *Solver) Bones() []scene.Handle {
	out := make([]scene.Handle, len(s.states))
	for i, st := range s.states {
		out[i] = st.Bone
	}
	return out
}

// State returns the spring attached to h.
func (s *Solver) State(h scene.Handle) (*State, bool) {
	i, ok := s.index[h]
	if !ok {
		return nil, false
	}
	return s.states[i], true
}

// Len returns the number of registered springs.
func (s *Solver) Len() int { return len(s.states) }
