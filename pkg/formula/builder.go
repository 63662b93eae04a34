package formula

import (
	"unicode"

	"github.com/vhavlena/refute/pkg/clause"
	verr "github.com/vhavlena/refute/pkg/err"
	"github.com/vhavlena/refute/pkg/term"
)

// Builder is the validated construction surface for clients that build
// problems programmatically. Function and predicate names must start with a
// lowercase letter (the TPTP convention); variables are scoped to one
// builder and may not be re-quantified. Construction errors are reported
// synchronously and the offending formula is never produced.
type Builder struct {
	sig        *term.Signature
	bank       *term.Bank
	checkNames bool

	varNames map[string]int
	varSorts map[int]term.Sort
	names    []string
	nextVar  int
}

// NewBuilder creates a builder over an environment's signature and bank.
//
// Parameters:
//
//	bank *term.Bank: The term bank constructions go through.
//	checkNames bool: Enforce the lowercase-initial name convention.
//
// Returns:
//
//	*Builder: The builder.
func NewBuilder(bank *term.Bank, checkNames bool) *Builder {
	return &Builder{
		sig:        bank.Signature(),
		bank:       bank,
		checkNames: checkNames,
		varNames:   make(map[string]int),
		varSorts:   make(map[int]term.Sort),
	}
}

// Var returns the variable named varName, creating it with the individual
// sort on first use.
func (b *Builder) Var(varName string) int {
	return b.VarOfSort(varName, term.SortIndividual)
}

// VarOfSort returns the variable named varName with the given sort,
// creating it on first use.
func (b *Builder) VarOfSort(varName string, sort term.Sort) int {
	if v, ok := b.varNames[varName]; ok {
		return v
	}
	v := b.nextVar
	b.nextVar++
	b.varNames[varName] = v
	b.varSorts[v] = sort
	b.names = append(b.names, varName)
	return v
}

// VarName returns the declared name of a builder variable.
func (b *Builder) VarName(v int) (string, bool) {
	if v < 0 || v >= len(b.names) {
		return "", false
	}
	return b.names[v], true
}

// VarSorts returns the sort assignment of the builder's variables, as
// consumed by the clausifier.
func (b *Builder) VarSorts() map[int]term.Sort { return b.varSorts }

// VarTerm returns the term for a builder variable.
func (b *Builder) VarTerm(v int) *term.Term {
	return b.bank.Var(v)
}

// Namer returns a term.VarNamer rendering the builder's variables under
// their declared names, for canonical printing.
func (b *Builder) Namer() term.VarNamer {
	return func(v int) (string, bool) {
		return b.VarName(v)
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		return unicode.IsLower(r)
	}
	return false
}

// Function registers a function symbol after validating its name.
//
// Parameters:
//
//	name string: Symbol name; must start with a lowercase letter.
//	result term.Sort: Result sort.
//	argSorts ...term.Sort: Argument sorts.
//
// Returns:
//
//	term.FunctionID: The symbol.
//	error: ErrInvalidName on a bad name.
func (b *Builder) Function(name string, result term.Sort, argSorts ...term.Sort) (term.FunctionID, error) {
	if b.checkNames && !validName(name) {
		return 0, verr.ErrBadName("function", name)
	}
	id, _ := b.sig.AddFunction(name, argSorts, result)
	return id, nil
}

// Predicate registers a predicate symbol after validating its name.
func (b *Builder) Predicate(name string, argSorts ...term.Sort) (term.PredicateID, error) {
	if b.checkNames && !validName(name) {
		return 0, verr.ErrBadName("predicate", name)
	}
	id, _ := b.sig.AddPredicate(name, argSorts)
	return id, nil
}

// Term applies a function symbol to argument terms.
func (b *Builder) Term(f term.FunctionID, args ...*term.Term) (*term.Term, error) {
	sym := b.sig.Function(f)
	if len(args) != sym.Arity {
		return nil, verr.ErrArity(sym.Name, sym.Arity, len(args))
	}
	return b.bank.App(f, args), nil
}

// Atom creates an atomic formula from a predicate application.
func (b *Builder) Atom(p term.PredicateID, positive bool, args ...*term.Term) (*Formula, error) {
	sym := b.sig.Predicate(p)
	if len(args) != sym.Arity {
		return nil, verr.ErrArity(sym.Name, sym.Arity, len(args))
	}
	f := NewAtom(b.bank.Literal(p, positive, args))
	f.owner = b
	return f, nil
}

// Equality creates an equality atom. The argument sort is taken from the
// first non-variable argument; an equality between two bare variables gets
// the sort recorded for the left variable.
func (b *Builder) Equality(l, r *term.Term, positive bool) *Formula {
	sort := l.Sort()
	if sort == term.SortNone {
		sort = r.Sort()
	}
	if sort == term.SortNone {
		if s, ok := b.varSorts[l.Var()]; ok {
			sort = s
		} else {
			sort = term.SortIndividual
		}
	}
	f := NewAtom(b.bank.Equality(sort, positive, l, r))
	f.owner = b
	return f
}

// TrueFormula returns the true constant.
func (b *Builder) TrueFormula() *Formula {
	f := NewTrue()
	f.owner = b
	return f
}

// FalseFormula returns the false constant.
func (b *Builder) FalseFormula() *Formula {
	f := NewFalse()
	f.owner = b
	return f
}

func (b *Builder) checkOwner(fs ...*Formula) error {
	for _, f := range fs {
		if f.owner != nil && f.owner != b {
			return verr.ErrForeignFormula
		}
	}
	return nil
}

func (b *Builder) own(f *Formula) *Formula {
	f.owner = b
	return f
}

// Not negates a formula.
func (b *Builder) Not(f *Formula) (*Formula, error) {
	if err := b.checkOwner(f); err != nil {
		return nil, err
	}
	return b.own(NewNot(f)), nil
}

// And conjoins formulas.
func (b *Builder) And(fs ...*Formula) (*Formula, error) {
	if err := b.checkOwner(fs...); err != nil {
		return nil, err
	}
	return b.own(NewJunction(And, fs...)), nil
}

// Or disjoins formulas.
func (b *Builder) Or(fs ...*Formula) (*Formula, error) {
	if err := b.checkOwner(fs...); err != nil {
		return nil, err
	}
	return b.own(NewJunction(Or, fs...)), nil
}

// Implies builds an implication.
func (b *Builder) Implies(l, r *Formula) (*Formula, error) {
	if err := b.checkOwner(l, r); err != nil {
		return nil, err
	}
	return b.own(NewBinary(Implies, l, r)), nil
}

// Iff builds an equivalence.
func (b *Builder) Iff(l, r *Formula) (*Formula, error) {
	if err := b.checkOwner(l, r); err != nil {
		return nil, err
	}
	return b.own(NewBinary(Iff, l, r)), nil
}

// Xor builds an exclusive disjunction.
func (b *Builder) Xor(l, r *Formula) (*Formula, error) {
	if err := b.checkOwner(l, r); err != nil {
		return nil, err
	}
	return b.own(NewBinary(Xor, l, r)), nil
}

// Ite builds if cond then thn else els.
func (b *Builder) Ite(cond, thn, els *Formula) (*Formula, error) {
	if err := b.checkOwner(cond, thn, els); err != nil {
		return nil, err
	}
	return b.own(NewConditional(cond, thn, els)), nil
}

// ForallVars universally quantifies the formula over vars. Quantifying over
// a variable already bound inside f is a construction error.
func (b *Builder) ForallVars(f *Formula, vars ...int) (*Formula, error) {
	return b.quantified(Forall, f, vars)
}

// ExistsVars existentially quantifies the formula over vars.
func (b *Builder) ExistsVars(f *Formula, vars ...int) (*Formula, error) {
	return b.quantified(Exists, f, vars)
}

func (b *Builder) quantified(q Quantifier, f *Formula, vars []int) (*Formula, error) {
	if err := b.checkOwner(f); err != nil {
		return nil, err
	}
	for _, v := range vars {
		if f.BindsVar(v) {
			name, _ := b.VarName(v)
			return nil, verr.ErrRebound(name)
		}
	}
	return b.own(NewQuantified(q, vars, f)), nil
}

// Unit is an annotated formula.
type Unit struct {
	F     *Formula
	Input clause.InputType
	Name  string
}

// Annotated tags a formula as axiom, assumption, lemma or conjecture. A
// conjecture is universally closed over its free variables and negated, so
// its clausal form refutes the conjecture.
func (b *Builder) Annotated(f *Formula, input clause.InputType, name string) (*Unit, error) {
	if err := b.checkOwner(f); err != nil {
		return nil, err
	}
	if input == clause.Conjecture {
		f = b.own(NewNot(Quantify(f)))
	}
	return &Unit{F: f, Input: input, Name: name}, nil
}

// Clausify converts an annotated formula into clauses.
func (b *Builder) Clausify(u *Unit) []*clause.Clause {
	c := NewClausifier(b.bank, b.varSorts)
	return c.Clausify(u.F, u.Input, clause.InputInference())
}
