package ports

import (
	"context"

	"github.com/giulialestini/PopED/domain/design"

	"gonum.org/v1/gonum/mat"
)

// FIMComputer produces a Fisher information matrix for a design. The matrix
// covers the free parameters of the design, in free order; its conditioning
// is the implementation's responsibility.
type FIMComputer interface {
	// ComputeFIM evaluates the design and returns its information matrix.
	// extra carries implementation-specific options forwarded verbatim
	// from the caller.
	ComputeFIM(ctx context.Context, db *design.Database, extra map[string]any) (*mat.SymDense, error)
}

// RSEDeriver converts a Fisher information matrix into relative standard
// errors, in percent, one per free parameter of the design, in free order.
type RSEDeriver interface {
	DeriveRSE(ctx context.Context, fim *mat.SymDense, db *design.Database, extra map[string]any) ([]float64, error)
}

// SampleSizeSearcher finds the smallest subject count at which the design's
// achieved RSE for the selected parameters meets or beats requiredRSE,
// keeping the design's other properties. Implementations report
// non-convergence or infeasibility as an error; callers do not mask it.
type SampleSizeSearcher interface {
	SearchMinimumN(ctx context.Context, db *design.Database, indices []int, requiredRSE float64, extra map[string]any) (int, error)
}
