package design

import (
	"github.com/giulialestini/PopED/domain/core"
)

// Index remapping between the full parameter vector and the free-parameter
// subset. RSE vectors (and the FIM they come from) cover only the parameters
// being estimated, so a caller-facing full-vector index has to be translated
// to its position among the free parameters before either can be read.

// FreePosition maps a full-vector index to its position within the
// free-parameter subset. Fails if the index is out of range or names a
// fixed parameter.
func (d *Database) FreePosition(index int) (int, error) {
	if index < 0 || index >= len(d.Bpop) {
		return 0, core.NewOutOfRangeError(index, len(d.Bpop))
	}
	if !d.NotFixed[index] {
		return 0, core.NewFixedParameterError(index)
	}
	pos := 0
	for i := 0; i < index; i++ {
		if d.NotFixed[i] {
			pos++
		}
	}
	return pos, nil
}

// FreeIndices returns the full-vector indices of the free parameters, in
// order. Position k of the result is the full index of free parameter k,
// i.e. the inverse of FreePosition.
func (d *Database) FreeIndices() []int {
	indices := make([]int, 0, d.FreeCount())
	for i, free := range d.NotFixed {
		if free {
			indices = append(indices, i)
		}
	}
	return indices
}
