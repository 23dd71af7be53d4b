package ports

import (
	"context"

	"github.com/giulialestini/PopED/domain/power"
)

// ReportWriter exports a power evaluation table to an external document.
type ReportWriter interface {
	WritePowerTable(ctx context.Context, eval *power.Evaluation, path string) error
}
