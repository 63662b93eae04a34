package err

import (
	"errors"
	"fmt"
)

// Rule and configuration errors.
var (
	ErrUnknownOption     = errors.New("options: unrecognised value")
	ErrEmptySidePremise  = errors.New("subsumption: side premise must be non-empty")
	ErrResourcesExceeded = errors.New("resource limit exceeded")
)

// ErrBadOption reports an option field holding a value outside its
// recognised set.
func ErrBadOption(field, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrUnknownOption, field, value)
}

// ErrRuleAbort returns the user-visible error reported when a rule hard
// aborts the run. It carries the rule name, the clause id and the original
// construction site error.
//
// Parameters:
//
//	rule string: The rule name.
//	clauseNum int: The number of the clause being processed.
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrRuleAbort(rule string, clauseNum int, cause error) error {
	return fmt.Errorf("rule %s aborted on clause %d: %w", rule, clauseNum, cause)
}
