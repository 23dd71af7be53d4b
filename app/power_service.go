package app

import (
	"context"
	"fmt"
	"math"

	"github.com/giulialestini/PopED/domain/design"
	"github.com/giulialestini/PopED/domain/power"
	"github.com/giulialestini/PopED/ports"

	"gonum.org/v1/gonum/mat"
)

// PowerService evaluates the power to detect that selected population
// parameters are non-zero, via a linear Wald test on each parameter's
// relative standard error. It runs three stages in order: input validation,
// power/RSE calculation, and an optional minimum-N search delegated to the
// sample-size collaborator. The service holds no state between calls.
type PowerService struct {
	fim    ports.FIMComputer
	rse    ports.RSEDeriver
	search ports.SampleSizeSearcher
}

// NewPowerService creates a power evaluation service. fim and search may be
// nil when every caller supplies a precomputed FIM and never asks for a
// minimum-N search; rse is required.
func NewPowerService(fim ports.FIMComputer, rse ports.RSEDeriver, search ports.SampleSizeSearcher) *PowerService {
	return &PowerService{fim: fim, rse: rse, search: search}
}

// EvaluatePower computes, for each parameter index in indices, the predicted
// power of the Wald test that the parameter is non-zero, the RSE required to
// reach the target power, and (when opts.FindMinN is set) the minimum subject
// count achieving that RSE. Indices address the full bpop vector; each must
// name a free parameter with a non-zero point value.
func (s *PowerService) EvaluatePower(ctx context.Context, db *design.Database, indices []int, opts power.Options) (*power.Evaluation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := power.ValidateSelection(db, indices); err != nil {
		return nil, err
	}

	z, err := power.CriticalValue(opts.Alpha, opts.TwoSided)
	if err != nil {
		return nil, err
	}

	fim, err := s.resolveFIM(ctx, db, opts)
	if err != nil {
		return nil, err
	}

	eval := power.NewEvaluation(db, opts.Alpha, opts.TwoSided)
	eval.FIM = fim

	rse, err := s.rse.DeriveRSE(ctx, fim, db, opts.Extra)
	if err != nil {
		return nil, fmt.Errorf("deriving RSE: %w", err)
	}
	if len(rse) != db.FreeCount() {
		return nil, fmt.Errorf("RSE vector has %d entries for %d free parameters", len(rse), db.FreeCount())
	}
	eval.RSE = rse

	needRSE, err := power.RequiredRSE(z, opts.TargetPower)
	if err != nil {
		return nil, err
	}

	eval.Rows = make([]power.Row, 0, len(indices))
	for _, idx := range indices {
		pos, err := db.FreePosition(idx)
		if err != nil {
			return nil, err
		}
		r := rse[pos]
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("RSE for bpop[%d] is %g; cannot evaluate power", idx, r)
		}
		eval.Rows = append(eval.Rows, power.Row{
			ParameterIndex: idx,
			Value:          db.Bpop[idx],
			RSE:            r,
			PredictedPower: power.PredictedPower(z, r),
			TargetPower:    opts.TargetPower,
			RequiredRSE:    needRSE,
		})
	}

	if opts.FindMinN {
		if s.search == nil {
			return nil, fmt.Errorf("minimum-N search requested but no sample size searcher configured")
		}
		minN, err := s.search.SearchMinimumN(ctx, db, indices, needRSE, opts.Extra)
		if err != nil {
			return nil, fmt.Errorf("searching minimum N: %w", err)
		}
		for i := range eval.Rows {
			eval.Rows[i].MinN = &minN
		}
	}

	return eval, nil
}

// resolveFIM picks the Fisher information matrix for this call. An explicit
// opts.FIM wins over one carried inside a precomputed result bundle; only
// when neither is present is the FIM-computation collaborator invoked.
func (s *PowerService) resolveFIM(ctx context.Context, db *design.Database, opts power.Options) (*mat.SymDense, error) {
	if opts.FIM != nil {
		return opts.FIM, nil
	}
	if opts.Precomputed != nil && opts.Precomputed.FIM != nil {
		return opts.Precomputed.FIM, nil
	}
	if s.fim == nil {
		return nil, fmt.Errorf("no FIM supplied and no FIM computer configured")
	}
	fim, err := s.fim.ComputeFIM(ctx, db, opts.Extra)
	if err != nil {
		return nil, fmt.Errorf("computing FIM: %w", err)
	}
	return fim, nil
}
