package design

import (
	"errors"
	"math"
	"testing"

	"github.com/giulialestini/PopED/domain/core"
)

func TestValidate(t *testing.T) {
	valid := testDatabase()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid database rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Database)
	}{
		{"empty bpop", func(d *Database) { d.Bpop = nil; d.NotFixed = nil }},
		{"misaligned flags", func(d *Database) { d.NotFixed = d.NotFixed[:2] }},
		{"no groups", func(d *Database) { d.GroupSize = nil }},
		{"zero group size", func(d *Database) { d.GroupSize = []int{0} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testDatabase()
			tc.mutate(db)
			if err := db.Validate(); !errors.Is(err, core.ErrInvalidDesign) {
				t.Fatalf("got %v, want ErrInvalidDesign", err)
			}
		})
	}
}

func TestTotalSubjects(t *testing.T) {
	db := testDatabase()
	db.GroupSize = []int{20, 20, 5}
	if got := db.TotalSubjects(); got != 45 {
		t.Fatalf("TotalSubjects = %d, want 45", got)
	}
}

func TestScaled(t *testing.T) {
	db := testDatabase()
	db.GroupSize = []int{20, 10}

	doubled := db.Scaled(2)
	if doubled.GroupSize[0] != 40 || doubled.GroupSize[1] != 20 {
		t.Fatalf("Scaled(2) group sizes = %v", doubled.GroupSize)
	}
	// Shrinking never drops a group below one subject.
	tiny := db.Scaled(0.01)
	for _, n := range tiny.GroupSize {
		if n < 1 {
			t.Fatalf("Scaled(0.01) produced group of %d subjects", n)
		}
	}
	// The original is untouched.
	if db.GroupSize[0] != 20 {
		t.Fatalf("Scaled mutated the source design")
	}
}

func TestSummarizeSkipsInvalidEntries(t *testing.T) {
	s := Summarize([]float64{10, 20, math.Inf(1), math.NaN(), 30})
	if s.Mean != 20 || s.Median != 20 || s.Min != 10 || s.Max != 30 {
		t.Fatalf("unexpected summary: %+v", s)
	}

	empty := Summarize([]float64{math.Inf(1)})
	if empty != (VectorSummary{}) {
		t.Fatalf("all-invalid vector should give the zero summary, got %+v", empty)
	}
}
