// Command refute is a small demonstration driver around the inference
// core: it builds example problems programmatically through the formula
// builder, pushes them through the simplification and generation pipeline
// and prints the derived clauses.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/env"
	"github.com/vhavlena/refute/pkg/inference"
	"github.com/vhavlena/refute/pkg/order"
	"github.com/vhavlena/refute/pkg/saturation"
	"github.com/vhavlena/refute/pkg/subsume"
	"github.com/vhavlena/refute/pkg/term"
)

func main() {
	var optionsFile string
	var verbose bool

	root := &cobra.Command{
		Use:   "refute",
		Short: "saturation prover inference core demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := env.DefaultOptions()
			if optionsFile != "" {
				loaded, err := env.LoadOptions(optionsFile)
				if err != nil {
					return err
				}
				opts = loaded
			}
			e := env.New(opts)
			if verbose {
				e.Log.SetLevel(logrus.InfoLevel)
			}
			runDemo(e)
			return nil
		},
	}
	root.Flags().StringVar(&optionsFile, "options", "", "YAML options bundle")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log rule activity")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runDemo exercises each rule family on a tiny example and prints the
// results.
func runDemo(e *env.Environment) {
	bank := e.Bank
	sig := e.Sig

	fID, _ := sig.AddFunction("f", []term.Sort{term.SortIndividual}, term.SortIndividual)
	aID, _ := sig.AddFunction("a", nil, term.SortIndividual)
	pID, _ := sig.AddPredicate("p", []term.Sort{term.SortIndividual})
	qID, _ := sig.AddPredicate("q", []term.Sort{term.SortInteger, term.SortInteger})
	sID, _ := sig.AddPredicate("s", []term.Sort{term.SortIndividual})

	x := bank.Var(0)
	y := bank.Var(1)
	a := bank.Const(aID)

	// Equality resolution: f(x) != f(a) | p(x) yields p(a).
	c1 := clause.New([]*term.Literal{
		bank.Equality(term.SortIndividual, false, bank.App(fID, []*term.Term{x}), bank.App(fID, []*term.Term{a})),
		bank.Literal(pID, true, []*term.Term{x}),
	}, clause.Axiom, clause.InputInference())
	c1.SelectAll()

	ord := order.NewKBO(sig)
	eqres := inference.NewEqualityResolution(e, ord, true)
	fmt.Println("equality resolution on", c1.String(sig))
	for _, child := range inference.Drain(eqres.Generate(c1)) {
		fmt.Println("  =>", child.String(sig))
	}

	// Gaussian elimination: x + 1 != y | q(x, y) yields q(y - 1, y).
	sum := sig.InterpretedFunction(term.IntPlus)
	c2 := clause.New([]*term.Literal{
		bank.Equality(term.SortInteger, false, bank.App(sum, []*term.Term{x, bank.Int(1)}), y),
		bank.Literal(qID, true, []*term.Term{x, y}),
	}, clause.Axiom, clause.InputInference())
	gauss := inference.NewGaussianVariableElimination(e)
	fmt.Println("gaussian elimination on", c2.String(sig))
	fmt.Println("  =>", gauss.Simplify(c2).String(sig))

	// Interpreted evaluation: 2 + 3 < 4 | s(x) yields s(x).
	less := sig.InterpretedPredicate(term.IntLess)
	c3 := clause.New([]*term.Literal{
		bank.Literal(less, true, []*term.Term{bank.App(sum, []*term.Term{bank.Int(2), bank.Int(3)}), bank.Int(4)}),
		bank.Literal(sID, true, []*term.Term{x}),
	}, clause.Axiom, clause.InputInference())
	eval := inference.NewInterpretedEvaluation(e)
	fmt.Println("interpreted evaluation on", c3.String(sig))
	fmt.Println("  =>", eval.Simplify(c3).String(sig))

	// Subsumption: p(x) | q(x, y) subsumes p(a) | q(a, b) | r.
	bID, _ := sig.AddFunction("b", nil, term.SortInteger)
	aIntID, _ := sig.AddFunction("ai", nil, term.SortInteger)
	rID, _ := sig.AddPredicate("r", nil)
	pIntID, _ := sig.AddPredicate("pi", []term.Sort{term.SortInteger})
	side := clause.New([]*term.Literal{
		bank.Literal(pIntID, true, []*term.Term{x}),
		bank.Literal(qID, true, []*term.Term{x, y}),
	}, clause.Axiom, clause.InputInference())
	mainCl := clause.New([]*term.Literal{
		bank.Literal(pIntID, true, []*term.Term{bank.Const(aIntID)}),
		bank.Literal(qID, true, []*term.Term{bank.Const(aIntID), bank.Const(bID)}),
		bank.Literal(rID, true, nil),
	}, clause.Axiom, clause.InputInference())
	engine := subsume.NewEngine(e)
	fmt.Printf("subsumes(%s, %s) = %v\n", side.String(sig), mainCl.String(sig),
		engine.Subsumes(side, mainCl, nil))

	// A short saturation round over the demo clauses; the pipeline
	// simplifies each one itself.
	flag := &env.AbortFlag{}
	pipe := saturation.New(e, flag)
	res := pipe.Saturate([]*clause.Clause{c1, c2, c3}, 100)
	fmt.Println("retained after saturation:")
	for _, c := range res.Derived {
		fmt.Println("  ", c.String(sig))
	}

	e.Log.WithFields(logrus.Fields(toFields(e.Stats.Snapshot()))).Info("statistics")
}

func toFields(m map[string]int) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
