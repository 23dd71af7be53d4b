package design

import (
	"github.com/giulialestini/PopED/domain/core"
)

// Database is the read-only design description the evaluation works from:
// the population parameter point values (bpop), the parallel fixed/free
// flags, and the group structure of the study. It carries no behaviour
// beyond validation and index bookkeeping; everything that mutates a design
// lives outside this package.
type Database struct {
	ID   core.DesignID `json:"id" yaml:"id"`
	Name string        `json:"name" yaml:"name"`

	// Bpop holds the point value of every population parameter, fixed or not.
	Bpop []float64 `json:"bpop" yaml:"bpop"`

	// NotFixed marks, positionally, which entries of Bpop are estimated.
	NotFixed []bool `json:"not_fixed" yaml:"not_fixed"`

	// GroupSize is the number of subjects in each design group.
	GroupSize []int `json:"group_size" yaml:"group_size"`
}

// Validate checks the structural invariants of the database.
func (d *Database) Validate() error {
	if len(d.Bpop) == 0 {
		return core.NewDesignError("empty population parameter vector")
	}
	if len(d.NotFixed) != len(d.Bpop) {
		return core.NewDesignError("not_fixed flags do not align with bpop")
	}
	if len(d.GroupSize) == 0 {
		return core.NewDesignError("no design groups")
	}
	for _, n := range d.GroupSize {
		if n <= 0 {
			return core.NewDesignError("non-positive group size")
		}
	}
	return nil
}

// TotalSubjects returns the subject count summed across groups.
func (d *Database) TotalSubjects() int {
	total := 0
	for _, n := range d.GroupSize {
		total += n
	}
	return total
}

// FreeCount returns the number of parameters flagged as estimated.
func (d *Database) FreeCount() int {
	count := 0
	for _, free := range d.NotFixed {
		if free {
			count++
		}
	}
	return count
}

// Scaled returns a copy of the database with every group size multiplied by
// factor, rounding to the nearest subject. Used by sample-size searches that
// grow or shrink the study while keeping its other properties.
func (d *Database) Scaled(factor float64) *Database {
	scaled := &Database{
		ID:        d.ID,
		Name:      d.Name,
		Bpop:      append([]float64(nil), d.Bpop...),
		NotFixed:  append([]bool(nil), d.NotFixed...),
		GroupSize: make([]int, len(d.GroupSize)),
	}
	for i, n := range d.GroupSize {
		scaled.GroupSize[i] = int(float64(n)*factor + 0.5)
		if scaled.GroupSize[i] < 1 {
			scaled.GroupSize[i] = 1
		}
	}
	return scaled
}
