package viewer

import (
	"testing"

	"github.com/Faultbox/toonrig/internal/assets"
	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/character"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/toon"
)

func TestDisposeMaterials(t *testing.T) {
	g := assets.BuildCharacter()
	c := character.New(config.Default(), nil)
	c.Discover(g)
	c.ConvertMaterials()

	disposeMaterials(g)

	g.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			if tm, ok := m.(*toon.Material); ok && !tm.Program.Released() {
				t.Errorf("%s: program not released", n.Name)
			}
		}
	})
}
