// Package env holds the run-wide environment of the inference core: the
// signature and term bank, the options bundle, the statistics sink and the
// logger. The environment is constructed before any rule runs and passed
// explicitly to every rule entry point; tests may hold several independent
// environments in one process.
package env

import (
	"os"

	"sigs.k8s.io/yaml"

	verr "github.com/vhavlena/refute/pkg/err"
	"github.com/vhavlena/refute/pkg/subst"
)

// InductionMode selects which induction families run.
type InductionMode string

const (
	InductionNone         InductionMode = "none"
	InductionStructural   InductionMode = "structural"
	InductionMathematical InductionMode = "mathematical"
	InductionBoth         InductionMode = "both"
)

// SchemeSet selects which schemes of an induction family run.
type SchemeSet string

const (
	SchemeOne   SchemeSet = "one"
	SchemeTwo   SchemeSet = "two"
	SchemeThree SchemeSet = "three"
	SchemeAll   SchemeSet = "all"
)

// Has reports whether the set includes the given scheme.
func (s SchemeSet) Has(scheme SchemeSet) bool {
	return s == scheme || s == SchemeAll
}

// InductionChoice gates which terms are eligible induction targets.
type InductionChoice string

const (
	InductionChoiceAll      InductionChoice = "all"
	InductionChoiceGoal     InductionChoice = "goal"
	InductionChoiceGoalPlus InductionChoice = "goal_plus"
)

// EqualityProxyMode selects which equality axioms the proxy axiomatizer
// emits.
type EqualityProxyMode string

const (
	EqualityProxyOff  EqualityProxyMode = "off"
	EqualityProxyR    EqualityProxyMode = "R"
	EqualityProxyRST  EqualityProxyMode = "RST"
	EqualityProxyRSTC EqualityProxyMode = "RSTC"
)

// SubsumptionEngine selects the subsumption decision procedure.
type SubsumptionEngine string

const (
	SubsumptionBacktracking SubsumptionEngine = "backtracking"
	SubsumptionSAT          SubsumptionEngine = "sat"
)

// Options is the recognised configuration bundle of the inference core.
// Field tags follow the JSON-compatible YAML convention so the bundle can
// be loaded from a YAML file.
type Options struct {
	Induction       InductionMode   `json:"induction"`
	StructInduction SchemeSet       `json:"struct_induction"`
	MathInduction   SchemeSet       `json:"math_induction"`
	InductionChoice InductionChoice `json:"induction_choice"`

	InductionUnitOnly       bool `json:"induction_unit_only"`
	InductionNegOnly        bool `json:"induction_neg_only"`
	InductionOnComplexTerms bool `json:"induction_on_complex_terms"`
	InductionGen            bool `json:"induction_gen"`

	MaxInductionDepth         int `json:"max_induction_depth"`
	MaxInductionGenSubsetSize int `json:"max_induction_gen_subset_size"`

	UnificationWithAbstraction  subst.AbstractionPolicy `json:"unification_with_abstraction"`
	EqualityProxy               EqualityProxyMode       `json:"equality_proxy"`
	LiteralMaximalityAftercheck bool                    `json:"literal_maximality_aftercheck"`

	Subsumption SubsumptionEngine `json:"subsumption"`

	TraceInduction bool `json:"trace_induction"`
	TraceGauss     bool `json:"trace_gauss"`
}

// DefaultOptions returns the bundle with every option at its default.
func DefaultOptions() *Options {
	return &Options{
		Induction:                  InductionNone,
		StructInduction:            SchemeOne,
		MathInduction:              SchemeOne,
		InductionChoice:            InductionChoiceAll,
		MaxInductionGenSubsetSize:  3,
		UnificationWithAbstraction: subst.AbstractionOff,
		EqualityProxy:              EqualityProxyOff,
		Subsumption:                SubsumptionBacktracking,
	}
}

// ParseOptions decodes an options bundle from YAML bytes on top of the
// defaults and validates it.
//
// Parameters:
//
//	data []byte: YAML document.
//
// Returns:
//
//	*Options: The decoded bundle.
//	error: Decoding or validation failure.
func ParseOptions(data []byte) (*Options, error) {
	o := DefaultOptions()
	if err := yaml.Unmarshal(data, o); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// LoadOptions reads and decodes an options bundle from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOptions(data)
}

// Validate checks every enumeration field against its recognised values.
func (o *Options) Validate() error {
	switch o.Induction {
	case InductionNone, InductionStructural, InductionMathematical, InductionBoth:
	default:
		return verr.ErrBadOption("induction", string(o.Induction))
	}
	switch o.StructInduction {
	case SchemeOne, SchemeTwo, SchemeThree, SchemeAll:
	default:
		return verr.ErrBadOption("struct_induction", string(o.StructInduction))
	}
	switch o.MathInduction {
	case SchemeOne, SchemeTwo, SchemeAll:
	default:
		return verr.ErrBadOption("math_induction", string(o.MathInduction))
	}
	switch o.InductionChoice {
	case InductionChoiceAll, InductionChoiceGoal, InductionChoiceGoalPlus:
	default:
		return verr.ErrBadOption("induction_choice", string(o.InductionChoice))
	}
	switch o.UnificationWithAbstraction {
	case subst.AbstractionOff, subst.AbstractionGround, subst.AbstractionFull:
	default:
		return verr.ErrBadOption("unification_with_abstraction", string(o.UnificationWithAbstraction))
	}
	switch o.EqualityProxy {
	case EqualityProxyOff, EqualityProxyR, EqualityProxyRST, EqualityProxyRSTC:
	default:
		return verr.ErrBadOption("equality_proxy", string(o.EqualityProxy))
	}
	switch o.Subsumption {
	case SubsumptionBacktracking, SubsumptionSAT:
	default:
		return verr.ErrBadOption("subsumption", string(o.Subsumption))
	}
	return nil
}

// StructuralEnabled reports whether structural induction runs.
func (o *Options) StructuralEnabled() bool {
	return o.Induction == InductionStructural || o.Induction == InductionBoth
}

// MathematicalEnabled reports whether mathematical induction runs.
func (o *Options) MathematicalEnabled() bool {
	return o.Induction == InductionMathematical || o.Induction == InductionBoth
}
