// Package scaling implements the minimum sample size search through the
// linearity of information in subject count: doubling every group doubles
// the FIM, so achieved RSE falls as 1/sqrt(N). That gives a closed-form
// candidate N which is then verified, and nudged, against the scaled FIM.
package scaling

import (
	"context"
	"fmt"
	"math"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"
	"github.com/giulialestini/PopED/ports"

	"gonum.org/v1/gonum/mat"
)

// maxSubjects bounds the upward verification walk; a design needing more
// than this many subjects is reported as non-convergent.
const maxSubjects = 1 << 20

// Searcher implements ports.SampleSizeSearcher by scaling the design's FIM.
type Searcher struct {
	fim ports.FIMComputer
	rse ports.RSEDeriver
}

// NewSearcher creates a scaling-based sample size searcher.
func NewSearcher(fim ports.FIMComputer, rse ports.RSEDeriver) *Searcher {
	return &Searcher{fim: fim, rse: rse}
}

// SearchMinimumN returns the smallest subject count at which every selected
// parameter's RSE meets or beats requiredRSE, keeping the design's other
// properties fixed.
func (s *Searcher) SearchMinimumN(ctx context.Context, db *design.Database, indices []int, requiredRSE float64, extra map[string]any) (int, error) {
	if requiredRSE <= 0 || math.IsNaN(requiredRSE) || math.IsInf(requiredRSE, 0) {
		return 0, fmt.Errorf("%w: required RSE %g", core.ErrInfeasibleDesign, requiredRSE)
	}

	baseFIM, err := s.fim.ComputeFIM(ctx, db, extra)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrFIMComputation, err)
	}

	worst, err := s.worstSelectedRSE(ctx, baseFIM, db, indices, extra)
	if err != nil {
		return 0, err
	}
	if math.IsInf(worst, 0) {
		return 0, fmt.Errorf("%w: selected parameter has unbounded RSE", core.ErrInfeasibleDesign)
	}

	baseN := db.TotalSubjects()

	// RSE ∝ 1/sqrt(N), so the candidate is the smallest integer with
	// worst*sqrt(baseN/N) <= requiredRSE.
	ratio := worst / requiredRSE
	candidate := int(math.Ceil(float64(baseN) * ratio * ratio))
	if candidate < 1 {
		candidate = 1
	}

	meets := func(n int) (bool, error) {
		scaled := scaleFIM(baseFIM, float64(n)/float64(baseN))
		achieved, err := s.worstSelectedRSE(ctx, scaled, db, indices, extra)
		if err != nil {
			return false, err
		}
		return achieved <= requiredRSE, nil
	}

	// The closed form is exact up to rounding; the walks below absorb it.
	for {
		ok, err := meets(candidate)
		if err != nil {
			return 0, err
		}
		if ok {
			break
		}
		candidate++
		if candidate > maxSubjects {
			return 0, fmt.Errorf("%w: exceeded %d subjects", core.ErrSampleSearch, maxSubjects)
		}
	}
	for candidate > 1 {
		ok, err := meets(candidate - 1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		candidate--
	}

	return candidate, nil
}

// worstSelectedRSE derives the RSE vector from fim and returns the largest
// RSE among the selected full-vector indices.
func (s *Searcher) worstSelectedRSE(ctx context.Context, fim *mat.SymDense, db *design.Database, indices []int, extra map[string]any) (float64, error) {
	rse, err := s.rse.DeriveRSE(ctx, fim, db, extra)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrRSEDerivation, err)
	}
	worst := 0.0
	for _, idx := range indices {
		pos, err := db.FreePosition(idx)
		if err != nil {
			return 0, err
		}
		if rse[pos] > worst {
			worst = rse[pos]
		}
	}
	return worst, nil
}

func scaleFIM(fim *mat.SymDense, factor float64) *mat.SymDense {
	n := fim.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, factor*fim.At(i, j))
		}
	}
	return out
}
