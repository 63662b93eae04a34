package subsume

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/vhavlena/refute/pkg/env"
)

// solveSAT decides the alt-choice problem with a CDCL solver: one boolean
// choice literal b_ij per alt, at-least-one and at-most-one constraints per
// side literal, at-most-one per main literal (injectivity), and a binary
// conflict clause per pair of alts whose matchers disagree on some
// variable.
func solveSAT(alts [][]alt, mainLen int, flag *env.AbortFlag) bool {
	if flag.Aborted() {
		return false
	}
	g := gini.New()

	type choice struct {
		lit z.Lit
		a   *alt
	}
	var all []choice
	vars := make([][]z.Lit, len(alts))
	perMain := make([][]z.Lit, mainLen)

	for i := range alts {
		vars[i] = make([]z.Lit, len(alts[i]))
		for k := range alts[i] {
			m := g.Lit()
			vars[i][k] = m
			a := &alts[i][k]
			all = append(all, choice{lit: m, a: a})
			perMain[a.j] = append(perMain[a.j], m)
		}
	}

	// Exactly one alt per side literal.
	for i := range vars {
		for _, m := range vars[i] {
			g.Add(m)
		}
		g.Add(z.LitNull)
		addAtMostOne(g, vars[i])
	}

	// Each main literal is used at most once; this also makes the two
	// orientations of one equality against the same main literal
	// mutually exclusive.
	for _, ms := range perMain {
		addAtMostOne(g, ms)
	}

	// Conflicting matchers cannot be chosen together.
	for x := 0; x < len(all); x++ {
		for y := x + 1; y < len(all); y++ {
			if !compatible(all[x].a.bindings, all[y].a.bindings) {
				g.Add(all[x].lit.Not())
				g.Add(all[y].lit.Not())
				g.Add(z.LitNull)
			}
		}
	}

	if flag.Aborted() {
		return false
	}
	return g.Solve() == 1
}

// addAtMostOne adds pairwise at-most-one constraints over the literals.
func addAtMostOne(g *gini.Gini, ms []z.Lit) {
	for x := 0; x < len(ms); x++ {
		for y := x + 1; y < len(ms); y++ {
			g.Add(ms[x].Not())
			g.Add(ms[y].Not())
			g.Add(z.LitNull)
		}
	}
}
