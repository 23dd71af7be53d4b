package app

import (
	"context"

	"github.com/giulialestini/PopED/domain/design"
	"github.com/giulialestini/PopED/domain/power"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one design evaluation in a batch run.
type BatchItem struct {
	Design  *design.Database
	Indices []int
	Options power.Options
}

// BatchEvaluator runs power evaluations for several candidate designs
// concurrently. Each evaluation is itself synchronous; only the fan-out
// across designs is parallel. The first failure cancels the batch.
type BatchEvaluator struct {
	service *PowerService
	limit   int
}

// NewBatchEvaluator creates a batch evaluator running at most limit
// evaluations at once; limit <= 0 means unbounded.
func NewBatchEvaluator(service *PowerService, limit int) *BatchEvaluator {
	return &BatchEvaluator{service: service, limit: limit}
}

// EvaluateAll evaluates every item and returns results in input order.
func (b *BatchEvaluator) EvaluateAll(ctx context.Context, items []BatchItem) ([]*power.Evaluation, error) {
	results := make([]*power.Evaluation, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}
	for i, item := range items {
		g.Go(func() error {
			eval, err := b.service.EvaluatePower(gctx, item.Design, item.Indices, item.Options)
			if err != nil {
				return err
			}
			results[i] = eval
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
