package collision

import (
	"strings"

	"github.com/Faultbox/toonrig/internal/engine/scene"
)

// ResolveMeshes builds the collision mesh set of g: nodes registered under one
// of names (in the given order), then every mesh node whose name starts with
// prefix, ignoring case, in graph order. Missing names are skipped and each
// node appears once.
func ResolveMeshes(g *scene.Graph, names []string, prefix string) []scene.Handle {
	var out []scene.Handle
	seen := make(map[scene.Handle]bool)

	named := g.Named()
	for _, name := range names {
		h, ok := named[name]
		if !ok || seen[h] || g.Node(h) == nil {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}

	if prefix == "" {
		return out
	}
	want := strings.ToLower(prefix)
	g.Walk(func(h scene.Handle, n *scene.Node) {
		if seen[h] || n.Kind != scene.KindMesh {
			return
		}
		if strings.HasPrefix(strings.ToLower(n.Name), want) {
			seen[h] = true
			out = append(out, h)
		}
	})
	return out
}
