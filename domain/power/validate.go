package power

import (
	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"
)

// ValidateSelection confirms that a parameter index set names a legal,
// statistically well-posed Wald test against db. The first violation aborts
// the whole evaluation; no partial result is ever produced.
func ValidateSelection(db *design.Database, indices []int) error {
	if err := db.Validate(); err != nil {
		return err
	}
	if len(indices) == 0 {
		return core.ErrNoParameterSelection
	}
	for _, idx := range indices {
		// FreePosition rejects out-of-range and fixed indices.
		if _, err := db.FreePosition(idx); err != nil {
			return err
		}
		if db.Bpop[idx] == 0 {
			return core.NewZeroValueError(idx)
		}
	}
	return nil
}
