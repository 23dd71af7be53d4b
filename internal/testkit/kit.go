// Package testkit provides fixtures and canned collaborators for testing the
// power evaluation pipeline without a real FIM engine.
package testkit

import (
	"context"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"

	"gonum.org/v1/gonum/mat"
)

// NewOneCompartmentDesign returns a small oral one-compartment design:
// CL, V and KA estimated, bioavailability fixed at 1, two groups of 20.
func NewOneCompartmentDesign() *design.Database {
	return &design.Database{
		ID:        core.DesignID("design-1cpt-oral"),
		Name:      "one-compartment oral",
		Bpop:      []float64{0.15, 8, 1.0, 1.0},
		NotFixed:  []bool{true, true, true, false},
		GroupSize: []int{20, 20},
	}
}

// DiagonalFIM builds a diagonal symmetric FIM from the given entries.
func DiagonalFIM(diag ...float64) *mat.SymDense {
	fim := mat.NewSymDense(len(diag), nil)
	for i, v := range diag {
		fim.SetSym(i, i, v)
	}
	return fim
}

// StaticFIMComputer implements ports.FIMComputer with a canned matrix.
type StaticFIMComputer struct {
	FIM   *mat.SymDense
	Err   error
	Calls int
}

func (s *StaticFIMComputer) ComputeFIM(ctx context.Context, db *design.Database, extra map[string]any) (*mat.SymDense, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.FIM, nil
}

// StaticRSEDeriver implements ports.RSEDeriver with a canned vector and
// records the FIM it was handed, for precedence assertions.
type StaticRSEDeriver struct {
	RSE     []float64
	Err     error
	LastFIM *mat.SymDense
	Calls   int
}

func (s *StaticRSEDeriver) DeriveRSE(ctx context.Context, fim *mat.SymDense, db *design.Database, extra map[string]any) ([]float64, error) {
	s.Calls++
	s.LastFIM = fim
	if s.Err != nil {
		return nil, s.Err
	}
	return s.RSE, nil
}

// StaticSearcher implements ports.SampleSizeSearcher with a canned count.
type StaticSearcher struct {
	N     int
	Err   error
	Calls int
}

func (s *StaticSearcher) SearchMinimumN(ctx context.Context, db *design.Database, indices []int, requiredRSE float64, extra map[string]any) (int, error) {
	s.Calls++
	if s.Err != nil {
		return 0, s.Err
	}
	return s.N, nil
}
