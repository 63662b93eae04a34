// Package term implements the shared term universe of the prover: sorts,
// symbols, the signature registry, and hash-consed terms and literals.
package term

// Sort names a type of terms. Sorts are small integers handed out by the
// signature and compared by identity.
type Sort int

// Builtin sorts. User-declared and term-algebra sorts get indices past
// SortReal from Signature.AddSort.
const (
	SortIndividual Sort = iota
	SortBool
	SortInteger
	SortRational
	SortReal

	firstUserSort
)

// SortNone marks expressions whose sort is not fixed by construction,
// i.e. bare variables.
const SortNone Sort = -1

// IsNumeric returns true for the three arithmetic sorts.
func (s Sort) IsNumeric() bool {
	return s == SortInteger || s == SortRational || s == SortReal
}

// IsFractional returns true for the sorts whose multiplication admits exact
// division, i.e. rationals and reals.
func (s Sort) IsFractional() bool {
	return s == SortRational || s == SortReal
}

// Constructor describes one constructor of a term-algebra sort together with
// its destructor symbols (one per argument).
type Constructor struct {
	Fn          FunctionID
	Destructors []FunctionID
}

// TermAlgebra is the declaration of an inductively defined sort: the sort
// itself plus its constructors.
type TermAlgebra struct {
	Sort         Sort
	Constructors []*Constructor
}

// Recursive reports whether the i-th constructor mentions the algebra's own
// sort among its argument sorts.
//
// Parameters:
//
//	sig *Signature: The signature that owns the constructor symbols.
//	i int: Constructor index.
//
// Returns:
//
//	bool: True if any argument of the constructor has the algebra's sort.
func (ta *TermAlgebra) Recursive(sig *Signature, i int) bool {
	con := sig.Function(ta.Constructors[i].Fn)
	for _, as := range con.ArgSorts {
		if as == ta.Sort {
			return true
		}
	}
	return false
}
