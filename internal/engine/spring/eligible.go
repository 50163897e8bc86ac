package spring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Faultbox/toonrig/internal/engine/scene"
)

var trailingNumber = regexp.MustCompile(`(\d+)$`)

// Rules decide which numbered bones in a hair chain take part in the simulation.
// A bone qualifies when its name ends in a number >= the applicable minimum.
type Rules struct {
	Default  int            // minimum for names without a family tag
	Families map[string]int // lower-case tag contained in the name -> minimum
}

// Min returns the minimum suffix number that applies to name. When several
// family tags match, the lowest minimum wins.
func (r Rules) Min(name string) int {
	lower := strings.ToLower(name)
	min := r.Default
	matched := false
	for tag, n := range r.Families {
		if tag == "" || !strings.Contains(lower, tag) {
			continue
		}
		if !matched || n < min {
			min = n
			matched = true
		}
	}
	return min
}

// Eligible reports whether name ends in a decimal number that meets the rules.
func Eligible(name string, r Rules) bool {
	m := trailingNumber.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Absurdly long digit runs overflow int; they are not chain indices.
		return false
	}
	return n >= r.Min(name)
}

// HairRoots returns the bone children of the head bone whose names end in "0".
// The head is matched exactly, ignoring case. A missing head yields nil.
func HairRoots(g *scene.Graph, head string) []scene.Handle {
	h := g.FindBone(head, true)
	n := g.Node(h)
	if n == nil {
		return nil
	}

	var roots []scene.Handle
	for _, c := range n.Children {
		child := g.Node(c)
		if child == nil || !child.IsBone() {
			continue
		}
		if strings.HasSuffix(child.Name, "0") {
			roots = append(roots, c)
		}
	}
	return roots
}
