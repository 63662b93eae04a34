// Package err defines common errors for the refute prover core.
package err

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName     = errors.New("invalid symbol name")
	ErrVariableRebound = errors.New("variable is already bound")
	ErrForeignFormula  = errors.New("formula was built by a different builder")
	ErrArityMismatch   = errors.New("wrong number of arguments")
)

// ErrBadName returns an error for a symbol name that violates the TPTP
// convention of a lowercase initial letter.
//
// Parameters:
//
//	kind string: Either "function" or "predicate".
//	name string: The offending name.
//
// Returns:
//
//	error: The formatted error, wrapping ErrInvalidName.
func ErrBadName(kind, name string) error {
	return fmt.Errorf("%w: %s name %q must start with a lowercase letter", ErrInvalidName, kind, name)
}

// ErrRebound returns an error for quantification over a variable that is
// already bound inside the quantified formula.
//
// Parameters:
//
//	name string: The variable name.
//
// Returns:
//
//	error: The formatted error, wrapping ErrVariableRebound.
func ErrRebound(name string) error {
	return fmt.Errorf("%w: %s", ErrVariableRebound, name)
}

// ErrArity returns an error for a symbol applied to the wrong number of
// arguments.
func ErrArity(name string, want, got int) error {
	return fmt.Errorf("%w: %s expects %d arguments, got %d", ErrArityMismatch, name, want, got)
}
