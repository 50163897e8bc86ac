package main

import (
	"flag"
	"fmt"
	"io"
	gomath "math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/toonrig/internal/assets"
	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/blink"
	"github.com/Faultbox/toonrig/internal/engine/character"
	"github.com/Faultbox/toonrig/internal/engine/lighting"
	"github.com/Faultbox/toonrig/internal/engine/preview"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

// loadCharacter builds the demo character and binds a rig to it.
func loadCharacter(cfg *config.Config) (*character.Character, character.Stats) {
	c := character.New(cfg, toon.NewGradientCache(nil, nil))
	stats := c.Discover(assets.BuildCharacter())
	return c, stats
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "Path to config file")
	return fs, path
}

func cmdBones(w io.Writer, args []string) error {
	fs, path := newFlagSet("bones")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}

	c, stats := loadCharacter(cfg)
	defer c.Close()
	g := c.Graph()

	fmt.Fprintf(w, "Nodes:            %d\n", g.Len())
	fmt.Fprintf(w, "Spring bones:     %d\n", stats.SpringBones)
	fmt.Fprintf(w, "Collision meshes: %d\n", stats.CollisionMeshes)
	fmt.Fprintf(w, "Eyes:             %d\n", stats.Eyes)
	fmt.Fprintf(w, "Neck:             %v\n", stats.Neck)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Spring bones:")
	for _, h := range c.Springs().Bones() {
		st, _ := c.Springs().State(h)
		fmt.Fprintf(w, "  %-14s damping=%-6g stiffness=%g\n", g.Node(h).Name, st.Damping, st.Stiffness)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Collision meshes:")
	for _, h := range c.Collider().Meshes() {
		n := g.Node(h)
		tris := 0
		if n.Geometry != nil {
			tris = n.Geometry.TriangleCount()
		}
		fmt.Fprintf(w, "  %-26s %d triangles\n", n.Name, tris)
	}

	fmt.Fprintln(w)
	if n := g.Node(c.Neck()); n != nil {
		fmt.Fprintf(w, "Neck bone: %s\n", n.Name)
	}
	fmt.Fprintln(w, "Eyes:")
	for _, h := range c.Eyes() {
		fmt.Fprintf(w, "  %s\n", g.Node(h).Name)
	}
	return nil
}

// parsePointer reads "x,y" in normalized pointer coordinates.
func parsePointer(s string) (math.Vec2, error) {
	if s == "" {
		return math.Vec2{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return math.Vec2{}, fmt.Errorf("pointer %q: want x,y", s)
	}
	var out [2]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec2{}, fmt.Errorf("pointer %q: %w", s, err)
		}
		out[i] = float32(v)
	}
	return math.Vec2{X: out[0], Y: out[1]}.Clamp(-1, 1), nil
}

// boneMotion is how far one spring bone moved from its rest position.
type boneMotion struct {
	name   string
	offset float32
}

func cmdSimulate(w io.Writer, args []string) error {
	fs, path := newFlagSet("simulate")
	frames := fs.Int("frames", 120, "Number of frames to simulate")
	dt := fs.Float64("dt", 1.0/60, "Seconds per frame")
	pointerFlag := fs.String("pointer", "", "Normalized pointer x,y in [-1,1]")
	top := fs.Int("n", 10, "Show the N bones that moved most (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}
	pointer, err := parsePointer(*pointerFlag)
	if err != nil {
		return err
	}

	c, _ := loadCharacter(cfg)
	defer c.Close()
	g := c.Graph()

	rest := make(map[scene.Handle]math.Vec3)
	for _, h := range c.Springs().Bones() {
		st, _ := c.Springs().State(h)
		rest[h] = st.Rest
	}

	// Sway the root so the springs have something to follow.
	root := g.Roots()[0]
	base := g.Node(root).Position
	elapsed := float32(0)
	for i := 0; i < *frames; i++ {
		elapsed += float32(*dt)
		g.Node(root).Position = base.Add(math.Vec3{X: 0.05 * sin(elapsed*3)})
		c.Update(character.Frame{Elapsed: elapsed, Delta: float32(*dt), Pointer: pointer})
	}

	motions := make([]boneMotion, 0, len(rest))
	for h, r := range rest {
		motions = append(motions, boneMotion{name: g.Node(h).Name, offset: g.Node(h).Position.Distance(r)})
	}
	sort.Slice(motions, func(i, j int) bool {
		if motions[i].offset != motions[j].offset {
			return motions[i].offset > motions[j].offset
		}
		return motions[i].name < motions[j].name
	})
	if *top > 0 && len(motions) > *top {
		motions = motions[:*top]
	}

	fmt.Fprintf(w, "Simulated %d frames (%.3fs)\n\n", *frames, elapsed)
	fmt.Fprintln(w, "Bone offsets from rest:")
	for _, m := range motions {
		fmt.Fprintf(w, "  %-14s %.4f\n", m.name, m.offset)
	}

	if neck := g.FindBone(cfg.Aim.NeckBone, false); g.Node(neck) != nil {
		r := g.Node(neck).Rotation
		fmt.Fprintf(w, "\nNeck rotation: yaw=%.4f pitch=%.4f\n", r.Y, r.X)
	}
	for _, h := range blink.FindEyes(g, cfg.Blink.EyeToken) {
		n := g.Node(h)
		fmt.Fprintf(w, "Eye %s blink weight: %.3f\n", n.Name, n.MorphInfluences[0])
	}
	return nil
}

func cmdShader(w io.Writer, args []string) error {
	fs, path := newFlagSet("shader")
	lights := fs.Int("lights", -1, "Directional light count (-1 = from config)")
	vertex := fs.Bool("vertex", false, "Print the vertex shader instead")
	base := fs.Bool("base", false, "Print the toon program without the enhancer terms")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}

	n := *lights
	if n < 0 {
		n = lighting.FromConfig(cfg.Light).Count()
	}

	p := toon.NewMaterial("preview", toon.NewDescriptor(), nil).Program
	if *base {
		p = toon.NewBaseProgram()
	}
	if *vertex {
		fmt.Fprint(w, p.VertexSource())
		return nil
	}
	fmt.Fprint(w, p.FragmentSource(n))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "// enhanced: %v\n", toon.Enhanced(p))
	fmt.Fprintln(w, "// uniforms")
	for _, u := range p.Uniforms() {
		fmt.Fprintf(w, "// %s = %g\n", u.Name, u.Value)
	}
	return nil
}

// materials returns the distinct toon materials of g in walk order.
func materials(g *scene.Graph) []*toon.Material {
	var out []*toon.Material
	seen := make(map[*toon.Material]bool)
	g.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			if t, ok := m.(*toon.Material); ok && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	})
	return out
}

func cmdSwatch(w io.Writer, args []string) error {
	fs, path := newFlagSet("swatch")
	out := fs.String("o", "swatch.webp", "Output file (.webp or .png)")
	size := fs.Int("size", 256, "Swatch edge in pixels")
	ss := fs.Int("ss", 4, "Supersampling factor")
	all := fs.Bool("all", false, "Render every material of the demo character")
	columns := fs.Int("columns", 4, "Columns of the -all sheet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}

	rig := lighting.FromConfig(cfg.Light)
	opts := preview.Options{Size: *size, Supersample: *ss}

	if !*all {
		m := toon.NewMaterial("swatch", toon.NewDescriptor(), toon.NewGradientCache(nil, nil))
		if err := texture.Save(*out, preview.Sphere(m, rig, opts)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s (%dx%d)\n", *out, *size, *size)
		return nil
	}

	c, _ := loadCharacter(cfg)
	defer c.Close()
	c.ConvertMaterials()
	mats := materials(c.Graph())
	if len(mats) == 0 {
		return fmt.Errorf("no toon materials on the demo character")
	}
	sheet := preview.Sheet(mats, rig, opts, *columns)
	if err := texture.Save(*out, sheet); err != nil {
		return err
	}
	b := sheet.Bounds()
	fmt.Fprintf(w, "Wrote %s (%d materials, %dx%d)\n", *out, len(mats), b.Dx(), b.Dy())
	for i, m := range mats {
		fmt.Fprintf(w, "  %2d %s\n", i, m.Name)
	}
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	fs, path := newFlagSet("config")
	out := fs.String("o", "", "Write to file instead of stdout")
	install := fs.Bool("install", false, "Write to the user config directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}
	if *install {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}
	if *out != "" {
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *out)
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func sin(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}
