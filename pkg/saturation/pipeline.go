// Package saturation provides the cooperative driver around the inference
// core: simplification to a fixed point followed by generating inferences,
// and a minimal given-clause loop used by the command layer and integration
// tests. The outer loop owns clause selection; the core only promises that
// simplifying rules are monotone and that generating rules exhaust their
// sequences in bounded time per pull.
package saturation

import (
	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/inference"
	"github.com/vhavlena/refute/pkg/order"
	"github.com/vhavlena/refute/pkg/subsume"
)

// Pipeline pushes clauses through the simplifying rules to a fixed point
// and then through the generating rules. It is abortable between top-level
// iterations via the abort flag passed to New; no partial results are
// published.
type Pipeline struct {
	env         *env.Environment
	selector    *order.Selector
	simplifiers []inference.SimplifyingRule
	generators  []inference.GeneratingRule
	subsumer    *subsume.Engine
	flag        *env.AbortFlag
	activeSet   []*clause.Clause
}

// New assembles the standard pipeline over an environment: Gaussian
// variable elimination, distinct-equality simplification and interpreted
// evaluation as simplifiers; equality resolution and induction as
// generators.
func New(e *env.Environment, flag *env.AbortFlag) *Pipeline {
	ord := order.NewKBO(e.Sig)
	selector := order.NewSelector(ord, order.SelectAll)
	return &Pipeline{
		env:      e,
		selector: selector,
		simplifiers: []inference.SimplifyingRule{
			inference.NewGaussianVariableElimination(e),
			inference.NewDistinctEqualitySimplifier(e),
			inference.NewInterpretedEvaluation(e),
		},
		generators: []inference.GeneratingRule{
			inference.NewEqualityResolution(e, ord, selector.BGComplete()),
			inference.NewInduction(e),
		},
		subsumer: subsume.NewEngine(e),
		flag:     flag,
	}
}

// Simplify applies the simplifying rules to a fixed point. Returns nil
// when some rule discarded the clause as redundant.
func (p *Pipeline) Simplify(c *clause.Clause) *clause.Clause {
	for {
		changed := false
		for _, rule := range p.simplifiers {
			if p.flag.Aborted() {
				return c
			}
			next := rule.Simplify(c)
			if next == nil {
				return nil
			}
			if next != c {
				c = next
				changed = true
			}
		}
		if !changed {
			return c
		}
	}
}

// Generate selects literals of the clause and drains every generating
// rule's sequence. An abort while draining discards the children collected
// so far.
func (p *Pipeline) Generate(c *clause.Clause) []*clause.Clause {
	p.selector.Select(c)
	var out []*clause.Clause
	for _, rule := range p.generators {
		it := rule.Generate(c)
		for child, ok := it.Next(); ok; child, ok = it.Next() {
			if p.flag.Aborted() {
				return nil
			}
			out = append(out, child)
		}
	}
	return out
}

// Result reports the outcome of a saturation run.
type Result struct {
	// Refutation is the empty clause when one was derived.
	Refutation *clause.Clause
	// Derived holds every clause the run retained, inputs included.
	Derived []*clause.Clause
	// Saturated is true when the run exhausted its queue without
	// deriving the empty clause.
	Saturated bool
}

// Saturate runs a minimal given-clause loop: each queued clause is
// simplified to a fixed point, checked for redundancy by forward
// subsumption against the retained set, and its generated children are
// queued. maxIterations bounds the number of given clauses; 0 means no
// bound.
func (p *Pipeline) Saturate(inputs []*clause.Clause, maxIterations int) Result {
	var result Result
	queue := make([]*clause.Clause, len(inputs))
	copy(queue, inputs)
	age := 0

	for len(queue) > 0 {
		if p.flag.Aborted() {
			return result
		}
		if maxIterations != 0 && age >= maxIterations {
			return result
		}
		given := queue[0]
		queue = queue[1:]

		given = p.Simplify(given)
		if given == nil {
			continue
		}
		if given.IsEmpty() {
			result.Refutation = given
			result.Derived = append(result.Derived, given)
			return result
		}
		if p.redundant(given) {
			continue
		}
		age++
		given.SetAge(age)
		result.Derived = append(result.Derived, given)

		queue = append(queue, p.Generate(given)...)
	}
	result.Saturated = true
	return result
}

// redundant reports whether a retained clause subsumes the given clause.
func (p *Pipeline) redundant(given *clause.Clause) bool {
	for _, kept := range p.activeSet {
		if p.subsumer.Subsumes(kept, given, p.flag) {
			return true
		}
	}
	p.activeSet = append(p.activeSet, given)
	return false
}
