package env

import (
	"github.com/sirupsen/logrus"

	"github.com/vhavlena/refute/pkg/clause"
	"github.com/vhavlena/refute/pkg/term"
)

// Statistics counts rule activity for one run.
type Statistics struct {
	EqualityResolutions           int
	InferencesBlockedByAftercheck int
	GaussianEliminations          int
	DistinctEqualityRemovals      int
	EvaluationSimplifications     int
	InductionApplications         int
	GeneralizedInduction          int
	SubsumptionChecks             int
	SubsumptionHits               int
	EqualityProxyAxioms           int
}

// Snapshot returns the counters keyed by name for reporting.
func (s *Statistics) Snapshot() map[string]int {
	return map[string]int{
		"equality_resolutions":             s.EqualityResolutions,
		"inferences_blocked_by_aftercheck": s.InferencesBlockedByAftercheck,
		"gaussian_eliminations":            s.GaussianEliminations,
		"distinct_equality_removals":       s.DistinctEqualityRemovals,
		"evaluation_simplifications":       s.EvaluationSimplifications,
		"induction_applications":           s.InductionApplications,
		"generalized_induction":            s.GeneralizedInduction,
		"subsumption_checks":               s.SubsumptionChecks,
		"subsumption_hits":                 s.SubsumptionHits,
		"equality_proxy_axioms":            s.EqualityProxyAxioms,
	}
}

// Environment bundles the process-wide state of one run: signature, term
// bank, options, statistics and logger. Initialise once, pass explicitly,
// tear down with the run.
type Environment struct {
	Sig     *term.Signature
	Bank    *term.Bank
	Options *Options
	Stats   *Statistics
	Log     *logrus.Logger

	groupPremises map[int]*clause.Clause
}

// New creates an environment with a fresh signature and bank over the given
// options. The logger defaults to warn level so the core stays quiet under
// the saturation loop.
func New(opts *Options) *Environment {
	if opts == nil {
		opts = DefaultOptions()
	}
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	sig := term.NewSignature()
	return &Environment{
		Sig:           sig,
		Bank:          term.NewBank(sig),
		Options:       opts,
		Stats:         &Statistics{},
		Log:           log,
		groupPremises: make(map[int]*clause.Clause),
	}
}

// SetDistinctGroupPremise records the unit clause justifying a distinct
// group's pairwise disequalities.
func (e *Environment) SetDistinctGroupPremise(group int, c *clause.Clause) {
	e.groupPremises[group] = c
}

// DistinctGroupPremise returns the premise unit of a distinct group, if one
// was recorded.
func (e *Environment) DistinctGroupPremise(group int) (*clause.Clause, bool) {
	c, ok := e.groupPremises[group]
	return c, ok
}

// AbortFlag is the cooperative cancellation token observed by rules between
// top-level iterations. The core is single-threaded, so a plain bool
// suffices.
type AbortFlag struct {
	aborted bool
}

// Abort raises the flag.
func (f *AbortFlag) Abort() { f.aborted = true }

// Aborted reports whether the flag was raised. A nil flag never aborts.
func (f *AbortFlag) Aborted() bool {
	return f != nil && f.aborted
}
