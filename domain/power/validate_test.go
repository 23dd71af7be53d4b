package power

import (
	"errors"
	"testing"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"
)

func validationFixture() *design.Database {
	return &design.Database{
		ID:        "d1",
		Bpop:      []float64{0.15, 8, 0, 1.0},
		NotFixed:  []bool{true, true, true, false},
		GroupSize: []int{20},
	}
}

func TestValidateSelection(t *testing.T) {
	db := validationFixture()

	cases := []struct {
		name    string
		indices []int
		wantErr error
	}{
		{name: "valid single", indices: []int{0}},
		{name: "valid pair", indices: []int{0, 1}},
		{name: "empty selection", indices: nil, wantErr: core.ErrNoParameterSelection},
		{name: "fixed parameter", indices: []int{3}, wantErr: core.ErrFixedParameter},
		{name: "out of range", indices: []int{4}, wantErr: core.ErrParameterOutOfRange},
		{name: "zero true value", indices: []int{2}, wantErr: core.ErrZeroParameterValue},
		{name: "zero hidden behind valid", indices: []int{0, 2}, wantErr: core.ErrZeroParameterValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSelection(db, tc.indices)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
			if !core.IsUsageError(err) {
				t.Fatalf("%v should classify as a usage error", err)
			}
		})
	}
}

func TestValidateSelectionRejectsBrokenDesign(t *testing.T) {
	db := validationFixture()
	db.NotFixed = db.NotFixed[:2]
	if err := ValidateSelection(db, []int{0}); !errors.Is(err, core.ErrInvalidDesign) {
		t.Fatalf("got %v, want ErrInvalidDesign", err)
	}
}
