package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Usage errors: the caller asked for something the design cannot answer.
	ErrNoParameterSelection = errors.New("no population parameters selected")
	ErrParameterOutOfRange  = errors.New("parameter index outside the population parameter vector")
	ErrFixedParameter       = errors.New("selected parameter is fixed")
	ErrZeroParameterValue   = errors.New("selected parameter has a true value of zero")
	ErrInvalidDesign        = errors.New("invalid design database")

	// Numeric-domain errors: the requested computation has no valid answer.
	ErrUnattainablePower = errors.New("target power unattainable at the chosen significance level")
	ErrSingularFIM       = errors.New("Fisher information matrix is singular")
	ErrInfeasibleDesign  = errors.New("no subject count achieves the required precision")

	// Collaborator failures, wrapped unchanged around the cause.
	ErrFIMComputation = errors.New("FIM computation failed")
	ErrRSEDerivation  = errors.New("RSE derivation failed")
	ErrSampleSearch   = errors.New("minimum sample size search failed")
)

// Error constructors with context
func NewFixedParameterError(index int) error {
	return fmt.Errorf("%w: bpop[%d]", ErrFixedParameter, index)
}

func NewOutOfRangeError(index, size int) error {
	return fmt.Errorf("%w: index %d, vector length %d", ErrParameterOutOfRange, index, size)
}

func NewZeroValueError(index int) error {
	return fmt.Errorf("%w: bpop[%d]; a Wald test for non-zero-ness has no power there", ErrZeroParameterValue, index)
}

func NewDesignError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDesign, reason)
}

// Error checking helpers
func IsUsageError(err error) bool {
	return errors.Is(err, ErrNoParameterSelection) ||
		errors.Is(err, ErrParameterOutOfRange) ||
		errors.Is(err, ErrFixedParameter) ||
		errors.Is(err, ErrZeroParameterValue) ||
		errors.Is(err, ErrInvalidDesign)
}

func IsNumericDomainError(err error) bool {
	return errors.Is(err, ErrUnattainablePower) ||
		errors.Is(err, ErrSingularFIM) ||
		errors.Is(err, ErrInfeasibleDesign)
}

func IsCollaboratorError(err error) bool {
	return errors.Is(err, ErrFIMComputation) ||
		errors.Is(err, ErrRSEDerivation) ||
		errors.Is(err, ErrSampleSearch)
}
