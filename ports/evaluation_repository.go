package ports

import (
	"context"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/power"
)

// EvaluationRepository persists power evaluation result tables. The core
// never persists anything itself; this port serves the surrounding
// design-evaluation workflow.
type EvaluationRepository interface {
	// Save stores the evaluation and its rows.
	Save(ctx context.Context, eval *power.Evaluation) error

	// GetByID loads a stored evaluation with its rows.
	GetByID(ctx context.Context, id core.EvaluationID) (*power.Evaluation, error)

	// ListByDesign returns the stored evaluations of one design, newest
	// first.
	ListByDesign(ctx context.Context, designID core.DesignID) ([]*power.Evaluation, error)
}
