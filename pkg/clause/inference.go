package clause

// Rule identifies the inference rule that produced a clause.
type Rule int

const (
	RuleInput Rule = iota
	RuleEqualityResolution
	RuleGaussianVariableElimination
	RuleDistinctEqualityRemoval
	RuleInterpretedEvaluation
	RuleInductionAxiom
	RuleGenInductionAxiom
	RuleResolution
	RuleClausify
	RuleEqualityProxy
)

var ruleNames = map[Rule]string{
	RuleInput:                       "input",
	RuleEqualityResolution:          "equality_resolution",
	RuleGaussianVariableElimination: "gaussian_variable_elimination",
	RuleDistinctEqualityRemoval:     "distinct_equality_removal",
	RuleInterpretedEvaluation:       "interpreted_evaluation",
	RuleInductionAxiom:              "induction_axiom",
	RuleGenInductionAxiom:           "gen_induction_axiom",
	RuleResolution:                  "resolution",
	RuleClausify:                    "clausify",
	RuleEqualityProxy:               "equality_proxy",
}

// String returns the rule's display name.
func (r Rule) String() string {
	if n, ok := ruleNames[r]; ok {
		return n
	}
	return "unknown"
}

// Inference records the provenance of a clause: the rule applied, the
// parent clauses, and the induction depth (the number of induction axioms
// above the clause in the proof DAG). Parents of input clauses are empty,
// which keeps the record an acyclic DAG rooted at the input.
type Inference struct {
	Rule           Rule
	Parents        []*Clause
	InductionDepth int
}

// InputInference is the provenance of an input clause.
func InputInference() Inference {
	return Inference{Rule: RuleInput}
}

// Derived builds the provenance of a clause derived from parents; the
// induction depth is the maximum over the parents.
func Derived(rule Rule, parents ...*Clause) Inference {
	depth := 0
	for _, p := range parents {
		if p.inf.InductionDepth > depth {
			depth = p.inf.InductionDepth
		}
	}
	return Inference{Rule: rule, Parents: parents, InductionDepth: depth}
}

// DerivedDeeper is Derived with the induction depth incremented, used by
// the induction axiom generators.
func DerivedDeeper(rule Rule, parents ...*Clause) Inference {
	inf := Derived(rule, parents...)
	inf.InductionDepth++
	return inf
}
