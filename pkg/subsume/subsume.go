// Package subsume implements the subsumption engine: given a side premise C
// and a main premise D, it decides whether some substitution theta makes
// C theta a sub-multiset of D. Two interchangeable engines are provided, a
// backtracking search and a SAT encoding.
package subsume

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

// alt is one possible match of a side literal against a main literal:
// the main literal's index, the variable bindings the match requires, and
// whether a commutative literal was matched with reversed arguments. The
// two orientations of one equality against the same main literal are
// distinct alts; the injectivity constraint on the main index makes them
// mutually exclusive in any solution.
type alt struct {
	j        int
	reversed bool
	bindings map[int]*term.Term
}

// Engine answers subsumption queries. It consults the options bundle for
// the engine selection and reports into the statistics sink.
type Engine struct {
	env *env.Environment
}

// NewEngine creates the engine over an environment.
func NewEngine(e *env.Environment) *Engine {
	return &Engine{env: e}
}

// Subsumes decides whether side subsumes main: there is a substitution
// theta with side*theta a sub-multiset of main's literals. The backtracking
// engine consults the flag at backtrack points; the SAT engine checks it
// before and after building its encoding.
func (e *Engine) Subsumes(side, main *clause.Clause, flag *env.AbortFlag) bool {
	e.env.Stats.SubsumptionChecks++
	if !e.colorCompatible(side, main) {
		return false
	}
	if side.IsEmpty() {
		e.env.Stats.SubsumptionHits++
		return true
	}
	alts, ok := e.computeAlts(side, main)
	if !ok {
		return false
	}
	var res bool
	if e.env.Options.Subsumption == env.SubsumptionSAT {
		res = solveSAT(alts, main.Len(), flag)
	} else {
		_, res = solveBacktracking(alts, main.Len(), flag)
	}
	if res {
		e.env.Stats.SubsumptionHits++
	}
	return res
}

// SubsumesWith is Subsumes returning the witness substitution as a mapping
// from side variables to main terms. The witness is computed by the
// backtracking engine regardless of the configured engine.
func (e *Engine) SubsumesWith(side, main *clause.Clause, flag *env.AbortFlag) (map[int]*term.Term, bool) {
	e.env.Stats.SubsumptionChecks++
	if !e.colorCompatible(side, main) {
		return nil, false
	}
	if side.IsEmpty() {
		e.env.Stats.SubsumptionHits++
		return map[int]*term.Term{}, true
	}
	alts, ok := e.computeAlts(side, main)
	if !ok {
		return nil, false
	}
	witness, res := solveBacktracking(alts, main.Len(), flag)
	if res {
		e.env.Stats.SubsumptionHits++
	}
	return witness, res
}

// colorCompatible checks the ordering-theoretic color compatibility of the
// two premises.
func (e *Engine) colorCompatible(side, main *clause.Clause) bool {
	cs, ok := side.Color(e.env.Sig)
	if !ok {
		return false
	}
	cm, ok := main.Color(e.env.Sig)
	if !ok {
		return false
	}
	_, ok = cs.Combine(cm)
	return ok
}

// computeAlts pre-matches every side literal against every main literal.
// Equalities contribute both orientations. Returns false when some side
// literal has no match at all.
func (e *Engine) computeAlts(side, main *clause.Clause) ([][]alt, bool) {
	alts := make([][]alt, side.Len())
	for i := 0; i < side.Len(); i++ {
		base := side.Lit(i)
		for j := 0; j < main.Len(); j++ {
			inst := main.Lit(j)
			if !term.HeadersMatch(base, inst) {
				continue
			}
			if m, ok := matchLiteral(base, inst, false); ok {
				alts[i] = append(alts[i], alt{j: j, bindings: m})
			}
			if base.Commutative() {
				if m, ok := matchLiteral(base, inst, true); ok {
					alts[i] = append(alts[i], alt{j: j, reversed: true, bindings: m})
				}
			}
		}
		if len(alts[i]) == 0 {
			return nil, false
		}
	}
	return alts, true
}

// matchLiteral computes the one-sided match of base against inst, binding
// base variables to inst subterms. inst variables behave as constants.
func matchLiteral(base, inst *term.Literal, reversed bool) (map[int]*term.Term, bool) {
	bindings := make(map[int]*term.Term)
	n := base.NArgs()
	for i := 0; i < n; i++ {
		j := i
		if reversed {
			j = n - 1 - i
		}
		if !matchTerm(base.Arg(i), inst.Arg(j), bindings) {
			return nil, false
		}
	}
	return bindings, true
}

func matchTerm(pattern, subject *term.Term, bindings map[int]*term.Term) bool {
	if pattern.IsVar() {
		if bound, ok := bindings[pattern.Var()]; ok {
			return bound == subject
		}
		bindings[pattern.Var()] = subject
		return true
	}
	if subject.IsVar() || pattern.Fn() != subject.Fn() {
		return false
	}
	for i := range pattern.Args() {
		if !matchTerm(pattern.Arg(i), subject.Arg(i), bindings) {
			return false
		}
	}
	return true
}

// compatible reports whether an alt's bindings agree with the globally
// accumulated substitution.
func compatible(global, local map[int]*term.Term) bool {
	for v, t := range local {
		if bound, ok := global[v]; ok && bound != t {
			return false
		}
	}
	return true
}

// solveBacktracking searches for a total choice of alts, one per side
// literal, such that the union of the matchers is a well-defined
// substitution and no main literal is used twice. The abort flag is tested
// at every backtrack point.
func solveBacktracking(alts [][]alt, mainLen int, flag *env.AbortFlag) (map[int]*term.Term, bool) {
	used := make([]bool, mainLen)
	global := make(map[int]*term.Term)

	var search func(i int) bool
	search = func(i int) bool {
		if flag.Aborted() {
			return false
		}
		if i == len(alts) {
			return true
		}
		for _, a := range alts[i] {
			if used[a.j] || !compatible(global, a.bindings) {
				continue
			}
			var added []int
			for v, t := range a.bindings {
				if _, ok := global[v]; !ok {
					global[v] = t
					added = append(added, v)
				}
			}
			used[a.j] = true
			if search(i + 1) {
				return true
			}
			used[a.j] = false
			for _, v := range added {
				delete(global, v)
			}
		}
		return false
	}

	if !search(0) {
		return nil, false
	}
	return global, true
}
