package power

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Options configures a power evaluation. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// Alpha is the significance level of the Wald test.
	Alpha float64
	// TargetPower is the power, in percent, the design should reach.
	TargetPower float64
	// TwoSided selects a two-sided test; the effective per-tail level
	// is then Alpha/2.
	TwoSided bool
	// FindMinN asks for the minimum subject count reaching the required
	// RSE. When false the sample-size searcher is never consulted.
	FindMinN bool

	// FIM, when non-nil, is used directly and the FIM-computation
	// collaborator is bypassed. Takes precedence over Precomputed.FIM.
	FIM *mat.SymDense
	// Precomputed carries a result bundle from an earlier evaluation of
	// the same design; its FIM is reused when no explicit FIM is given.
	Precomputed *Evaluation

	// Extra is forwarded verbatim to the FIM, RSE and sample-size
	// collaborators.
	Extra map[string]any
}

// DefaultOptions returns the conventional evaluation settings: a two-sided
// test at the 5% level, an 80% power target, and a minimum-N search.
func DefaultOptions() Options {
	return Options{
		Alpha:       0.05,
		TargetPower: 80,
		TwoSided:    true,
		FindMinN:    true,
	}
}

// Validate checks the numeric ranges of the options.
func (o Options) Validate() error {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return fmt.Errorf("alpha must lie in (0,1), got %g", o.Alpha)
	}
	if o.TargetPower <= 0 || o.TargetPower >= 100 {
		return fmt.Errorf("target power must lie in (0,100), got %g", o.TargetPower)
	}
	return nil
}
