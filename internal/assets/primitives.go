package assets

import (
	gomath "math"

	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Sphere builds a UV sphere of the given radii centered on the origin.
// Passing different radii gives an ellipsoid.
func Sphere(radius math.Vec3, widthSegments, heightSegments int) *scene.Geometry {
	g := &scene.Geometry{}
	for y := 0; y <= heightSegments; y++ {
		v := float64(y) / float64(heightSegments)
		theta := v * gomath.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float64(x) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			n := math.Vec3{
				X: float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				Y: float32(gomath.Cos(theta)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			g.Positions = append(g.Positions, n.Mul(radius))
			g.Normals = append(g.Normals, n)
			g.TexCoords = append(g.TexCoords, math.Vec2{X: float32(u), Y: float32(1 - v)})
		}
	}

	stride := uint32(widthSegments + 1)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*stride + uint32(x)
			b := a + stride
			if y != 0 {
				g.Indices = append(g.Indices, a, b, a+1)
			}
			if y != heightSegments-1 {
				g.Indices = append(g.Indices, a+1, b, b+1)
			}
		}
	}
	return g
}

// Box builds an axis-aligned box of the given size centered on the origin.
func Box(size math.Vec3) *scene.Geometry {
	h := size.Scale(0.5)
	g := &scene.Geometry{}

	faces := []struct {
		normal, u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.normal.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1]))
			g.Positions = append(g.Positions, p.Mul(h))
			g.Normals = append(g.Normals, f.normal)
			g.TexCoords = append(g.TexCoords, math.Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Cylinder builds an open tube along Y from -height/2 to +height/2. Different
// radii give a cone frustum.
func Cylinder(radiusTop, radiusBottom, height float32, segments int) *scene.Geometry {
	g := &scene.Geometry{}
	slope := (radiusBottom - radiusTop) / height

	for row := 0; row <= 1; row++ {
		y := height/2 - float32(row)*height
		r := radiusTop
		if row == 1 {
			r = radiusBottom
		}
		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			a := u * 2 * gomath.Pi
			sin, cos := float32(gomath.Sin(a)), float32(gomath.Cos(a))
			g.Positions = append(g.Positions, math.Vec3{X: r * sin, Y: y, Z: r * cos})
			g.Normals = append(g.Normals, math.Vec3{X: sin, Y: slope, Z: cos}.Normalize())
			g.TexCoords = append(g.TexCoords, math.Vec2{X: float32(u), Y: float32(1 - row)})
		}
	}

	stride := uint32(segments + 1)
	for s := uint32(0); s < uint32(segments); s++ {
		a, b := s, s+stride
		g.Indices = append(g.Indices, a, b, a+1, a+1, b, b+1)
	}
	return g
}

// squashMorph returns a morph target that flattens geometry onto its
// equator, used as the blink shape of an eye.
func squashMorph(g *scene.Geometry, amount float32) []math.Vec3 {
	deltas := make([]math.Vec3, len(g.Positions))
	for i, p := range g.Positions {
		deltas[i] = math.Vec3{Y: -p.Y * amount}
	}
	return deltas
}
