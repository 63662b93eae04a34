package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/term"
)

func proxyInput(e *env.Environment) []*clause.Clause {
	sig, bank := e.Sig, e.Bank
	f, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	a, _ := sig.AddFunction("a", nil, term.SortIndividual)
	p, _ := sig.AddPredicate("p", []term.Sort{term.SortIndividual})

	fa := bank.App(f, []*term.Term{bank.Const(a)})
	return []*clause.Clause{
		clause.New([]*term.Literal{
			bank.Equality(term.SortIndividual, true, fa, bank.Const(a)),
			bank.Literal(p, true, []*term.Term{fa}),
		}, clause.Axiom, clause.InputInference()),
	}
}

func TestEqualityProxyOff(t *testing.T) {
	e := env.New(nil)
	in := proxyInput(e)
	out := NewEqualityProxy(e).Apply(in)
	assert.Len(t, out, len(in))
}

func TestEqualityProxyReflexivityOnly(t *testing.T) {
	opts := env.DefaultOptions()
	opts.EqualityProxy = env.EqualityProxyR
	e := env.New(opts)
	in := proxyInput(e)
	out := NewEqualityProxy(e).Apply(in)
	require.Len(t, out, len(in)+1)

	refl := out[len(out)-1]
	require.Equal(t, 1, refl.Len())
	lit := refl.Lit(0)
	assert.True(t, lit.IsEquality() && lit.Positive())
	assert.Same(t, lit.Arg(0), lit.Arg(1), "reflexivity relates a variable to itself")
	assert.Equal(t, clause.RuleEqualityProxy, refl.Inference().Rule)
}

func TestEqualityProxyRST(t *testing.T) {
	opts := env.DefaultOptions()
	opts.EqualityProxy = env.EqualityProxyRST
	e := env.New(opts)
	in := proxyInput(e)
	out := NewEqualityProxy(e).Apply(in)
	// Reflexivity, symmetry and transitivity for one equality sort.
	require.Len(t, out, len(in)+3)
	assert.Equal(t, 3, e.Stats.EqualityProxyAxioms)
}

func TestEqualityProxyCongruence(t *testing.T) {
	opts := env.DefaultOptions()
	opts.EqualityProxy = env.EqualityProxyRSTC
	e := env.New(opts)
	in := proxyInput(e)
	out := NewEqualityProxy(e).Apply(in)
	// R, S, T for the sort plus congruence for f and for p.
	require.Len(t, out, len(in)+5)

	var sawFuncCong, sawPredCong bool
	for _, c := range out[len(in):] {
		last := c.Lit(c.Len() - 1)
		if last.IsEquality() && c.Len() == 2 && !last.Arg(0).IsVar() {
			sawFuncCong = true
		}
		if !last.IsEquality() && last.Positive() && c.Len() == 3 {
			sawPredCong = true
		}
	}
	assert.True(t, sawFuncCong, "missing function congruence axiom")
	assert.True(t, sawPredCong, "missing predicate congruence axiom")
}
