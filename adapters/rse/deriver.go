// Package rse derives relative standard errors from a Fisher information
// matrix by inverting it: the inverse FIM approximates the covariance of the
// parameter estimator, so the RSE of free parameter k is the square root of
// diagonal element k, expressed as a percentage of the parameter's point
// value.
package rse

import (
	"context"
	"fmt"
	"math"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"

	"gonum.org/v1/gonum/mat"
)

// Deriver implements ports.RSEDeriver via direct inversion of the FIM.
type Deriver struct{}

// NewDeriver creates an inversion-based RSE deriver.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// DeriveRSE returns one RSE percentage per free parameter of db, in free
// order. A free parameter with a zero point value gets +Inf: its standard
// error is finite but has no meaningful relative scale. extra is unused.
func (d *Deriver) DeriveRSE(ctx context.Context, fim *mat.SymDense, db *design.Database, extra map[string]any) ([]float64, error) {
	free := db.FreeIndices()
	n, c := fim.Dims()
	if n != c || n != len(free) {
		return nil, fmt.Errorf("FIM is %dx%d for %d free parameters", n, c, len(free))
	}

	var cov mat.Dense
	if err := cov.Inverse(fim); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSingularFIM, err)
	}

	out := make([]float64, len(free))
	for k, idx := range free {
		v := cov.At(k, k)
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: negative variance for bpop[%d]", core.ErrSingularFIM, idx)
		}
		se := math.Sqrt(v)
		if db.Bpop[idx] == 0 {
			out[k] = math.Inf(1)
			continue
		}
		out[k] = 100 * se / math.Abs(db.Bpop[idx])
	}
	return out, nil
}
