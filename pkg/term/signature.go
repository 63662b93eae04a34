package term

import (
	"fmt"
	"math/big"
)

// Signature is the process-wide registry of sorts and symbols for one run.
// It is appendable-only: symbols and sorts are never removed or mutated
// after registration, so identifiers handed out stay valid for the whole
// run.
type Signature struct {
	funcs []*Symbol
	preds []*Symbol

	funcIndex map[string]FunctionID
	predIndex map[string]PredicateID

	sortNames []string
	algebras  map[Sort]*TermAlgebra

	interpFuncs map[Interpretation]FunctionID
	interpPreds map[Interpretation]PredicateID
	numerals    map[string]FunctionID

	distinctGroups int
	freshCounter   int
}

// NewSignature creates an empty signature with the builtin sorts and the
// equality predicate registered.
func NewSignature() *Signature {
	sig := &Signature{
		funcIndex:   make(map[string]FunctionID),
		predIndex:   make(map[string]PredicateID),
		sortNames:   []string{"$i", "$o", "$int", "$rat", "$real"},
		algebras:    make(map[Sort]*TermAlgebra),
		interpFuncs: make(map[Interpretation]FunctionID),
		interpPreds: make(map[Interpretation]PredicateID),
		numerals:    make(map[string]FunctionID),
	}
	// Predicate 0 is equality; its argument sort is carried per literal.
	sig.preds = append(sig.preds, &Symbol{Name: "=", Arity: 2, Weight: 1})
	return sig
}

func symbolKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// AddSort registers a user sort and returns its identifier. Registering the
// same name twice returns the existing sort.
func (sig *Signature) AddSort(name string) Sort {
	for i, n := range sig.sortNames {
		if n == name {
			return Sort(i)
		}
	}
	sig.sortNames = append(sig.sortNames, name)
	return Sort(len(sig.sortNames) - 1)
}

// SortName returns the declared name of a sort.
func (sig *Signature) SortName(s Sort) string {
	if s == SortNone {
		return "$none"
	}
	return sig.sortNames[int(s)]
}

// AddFunction registers a function symbol and returns its identifier. A
// symbol with the same name and arity is returned as-is; added reports
// whether a new symbol was created.
//
// Parameters:
//
//	name string: Symbol name.
//	argSorts []Sort: Argument sorts; their count is the arity.
//	result Sort: Result sort.
//
// Returns:
//
//	FunctionID: The identifier of the (new or existing) symbol.
//	bool: True if the symbol was newly created.
func (sig *Signature) AddFunction(name string, argSorts []Sort, result Sort) (FunctionID, bool) {
	key := symbolKey(name, len(argSorts))
	if id, ok := sig.funcIndex[key]; ok {
		return id, false
	}
	id := FunctionID(len(sig.funcs))
	sig.funcs = append(sig.funcs, &Symbol{
		Name:     name,
		Arity:    len(argSorts),
		ArgSorts: argSorts,
		Result:   result,
		Weight:   1,
	})
	sig.funcIndex[key] = id
	return id, true
}

// AddPredicate registers a predicate symbol, analogous to AddFunction.
func (sig *Signature) AddPredicate(name string, argSorts []Sort) (PredicateID, bool) {
	key := symbolKey(name, len(argSorts))
	if id, ok := sig.predIndex[key]; ok {
		return id, false
	}
	id := PredicateID(len(sig.preds))
	sig.preds = append(sig.preds, &Symbol{
		Name:     name,
		Arity:    len(argSorts),
		ArgSorts: argSorts,
		Weight:   1,
	})
	sig.predIndex[key] = id
	return id, true
}

// AddFreshFunction registers a new function symbol under a name that no
// symbol registered so far uses. A later AddFunction call with that name and
// arity returns this symbol.
func (sig *Signature) AddFreshFunction(prefix string, argSorts []Sort, result Sort) FunctionID {
	for {
		sig.freshCounter++
		name := fmt.Sprintf("%s_%d", prefix, sig.freshCounter)
		if id, added := sig.AddFunction(name, argSorts, result); added {
			return id
		}
	}
}

// AddFreshPredicate registers a predicate symbol with a fresh name.
func (sig *Signature) AddFreshPredicate(prefix string, argSorts []Sort) PredicateID {
	for {
		sig.freshCounter++
		name := fmt.Sprintf("%s_%d", prefix, sig.freshCounter)
		if id, added := sig.AddPredicate(name, argSorts); added {
			return id
		}
	}
}

// AddSkolemFunction registers a fresh skolem function and marks it as such.
func (sig *Signature) AddSkolemFunction(argSorts []Sort, result Sort) FunctionID {
	id := sig.AddFreshFunction("sk", argSorts, result)
	sig.Function(id).Skolem = true
	return id
}

// Function returns the symbol registered under a function identifier.
func (sig *Signature) Function(id FunctionID) *Symbol {
	return sig.funcs[int(id)]
}

// Predicate returns the symbol registered under a predicate identifier.
func (sig *Signature) Predicate(id PredicateID) *Symbol {
	return sig.preds[int(id)]
}

// NumFunctions returns the number of registered function symbols.
func (sig *Signature) NumFunctions() int { return len(sig.funcs) }

// NumPredicates returns the number of registered predicate symbols.
func (sig *Signature) NumPredicates() int { return len(sig.preds) }

// interpName maps interpretations to their canonical symbol names.
var interpName = map[Interpretation]string{
	IntUnaryMinus: "$uminus", IntSuccessor: "$succ", IntPlus: "$sum",
	IntMinus: "$difference", IntMul: "$product", IntDiv: "$quotient_e",
	IntMod: "$remainder_e", IntLess: "$less", IntLessEq: "$lesseq",
	IntGreater: "$greater", IntGreaterEq: "$greatereq", IntDivides: "$divides",

	RatUnaryMinus: "$uminus", RatPlus: "$sum", RatMinus: "$difference",
	RatMul: "$product", RatDiv: "$quotient", RatLess: "$less",
	RatLessEq: "$lesseq", RatGreater: "$greater", RatGreaterEq: "$greatereq",
	RatIsInt: "$is_int",

	RealUnaryMinus: "$uminus", RealPlus: "$sum", RealMinus: "$difference",
	RealMul: "$product", RealDiv: "$quotient", RealLess: "$less",
	RealLessEq: "$lesseq", RealGreater: "$greater", RealGreaterEq: "$greatereq",
	RealIsInt: "$is_int", RealIsRat: "$is_rat",
}

func interpArity(i Interpretation) int {
	switch i {
	case IntUnaryMinus, IntSuccessor, RatUnaryMinus, RealUnaryMinus,
		RatIsInt, RealIsInt, RealIsRat:
		return 1
	}
	return 2
}

// InterpretedFunction returns the function symbol carrying the given theory
// interpretation, creating it on first use.
func (sig *Signature) InterpretedFunction(i Interpretation) FunctionID {
	if id, ok := sig.interpFuncs[i]; ok {
		return id
	}
	srt := i.OperationSort()
	argSorts := make([]Sort, interpArity(i))
	for j := range argSorts {
		argSorts[j] = srt
	}
	name := fmt.Sprintf("%s@%s", interpName[i], sig.SortName(srt))
	id, _ := sig.AddFunction(name, argSorts, srt)
	sig.Function(id).Interp = i
	sig.interpFuncs[i] = id
	return id
}

// InterpretedPredicate returns the predicate symbol carrying the given
// theory interpretation, creating it on first use.
func (sig *Signature) InterpretedPredicate(i Interpretation) PredicateID {
	if id, ok := sig.interpPreds[i]; ok {
		return id
	}
	srt := i.OperationSort()
	argSorts := make([]Sort, interpArity(i))
	for j := range argSorts {
		argSorts[j] = srt
	}
	name := fmt.Sprintf("%s@%s", interpName[i], sig.SortName(srt))
	id, _ := sig.AddPredicate(name, argSorts)
	sig.Predicate(id).Interp = i
	sig.interpPreds[i] = id
	return id
}

// Numeral returns the nullary symbol representing an exact numeric constant
// of the given arithmetic sort, creating it on first use. For SortInteger
// the value must be an integer.
func (sig *Signature) Numeral(sort Sort, v *big.Rat) FunctionID {
	key := fmt.Sprintf("%d:%s", sort, v.RatString())
	if id, ok := sig.numerals[key]; ok {
		return id
	}
	id := FunctionID(len(sig.funcs))
	sig.funcs = append(sig.funcs, &Symbol{
		Name:    v.RatString(),
		Result:  sort,
		Numeral: new(big.Rat).Set(v),
		Weight:  1,
	})
	sig.numerals[key] = id
	return id
}

// IsInterpretedFunction reports whether a function symbol has a theory
// interpretation, numerals included.
func (sig *Signature) IsInterpretedFunction(id FunctionID) bool {
	sym := sig.Function(id)
	return sym.Interp != Uninterpreted || sym.Numeral != nil
}

// IsInterpretedPredicate reports whether a predicate symbol has a theory
// interpretation. Equality is reported as interpreted.
func (sig *Signature) IsInterpretedPredicate(id PredicateID) bool {
	return id == EqualityPredicate || sig.Predicate(id).Interp != Uninterpreted
}

// AddDistinctGroup allocates a new distinct group id.
func (sig *Signature) AddDistinctGroup() int {
	sig.distinctGroups++
	return sig.distinctGroups - 1
}

// AddToDistinctGroup records membership of a constant in a distinct group.
func (sig *Signature) AddToDistinctGroup(id FunctionID, group int) {
	sym := sig.Function(id)
	sym.distinctGroups = append(sym.distinctGroups, group)
}

// DeclareTermAlgebra registers an inductively defined sort with its
// constructors, marks the constructor symbols and returns the declaration.
//
// Parameters:
//
//	sort Sort: The algebra's sort.
//	cons []*Constructor: Constructors with their destructor symbols.
//
// Returns:
//
//	*TermAlgebra: The registered declaration.
func (sig *Signature) DeclareTermAlgebra(sort Sort, cons []*Constructor) *TermAlgebra {
	ta := &TermAlgebra{Sort: sort, Constructors: cons}
	for _, c := range cons {
		sig.Function(c.Fn).TermAlgebraCons = true
	}
	sig.algebras[sort] = ta
	return ta
}

// TermAlgebraOf returns the term algebra declared for a sort, if any.
func (sig *Signature) TermAlgebraOf(sort Sort) (*TermAlgebra, bool) {
	ta, ok := sig.algebras[sort]
	return ta, ok
}

// IsTermAlgebraSort reports whether a sort was declared as a term algebra.
func (sig *Signature) IsTermAlgebraSort(sort Sort) bool {
	_, ok := sig.algebras[sort]
	return ok
}
