package shader

import (
	"testing"

	"github.com/Faultbox/toonrig/internal/engine/toon"
)

func TestStale(t *testing.T) {
	p := toon.NewBaseProgram()
	if !stale(nil, p, 1) {
		t.Fatal("uncompiled program must be stale")
	}

	c := &compiled{version: p.Version, dirLights: 1}
	if !stale(c, p, 1) {
		t.Error("NeedsUpdate set by construction, want stale")
	}

	p.NeedsUpdate = false
	if stale(c, p, 1) {
		t.Error("matching version and light count reported stale")
	}
	if !stale(c, p, 0) {
		t.Error("light count change not detected")
	}

	toon.Enhance(p, toon.Params{})
	p.NeedsUpdate = false
	if !stale(c, p, 1) {
		t.Error("version change not detected")
	}
}

func TestLocationUncompiled(t *testing.T) {
	c := &Cache{programs: make(map[*toon.Program]*compiled)}
	if loc := c.Location(toon.NewBaseProgram(), "diffuse"); loc != -1 {
		t.Errorf("Location() = %d, want -1", loc)
	}
}
