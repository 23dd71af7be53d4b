package design

import (
	"errors"
	"testing"

	"github.com/giulialestini/PopED/domain/core"
)

func testDatabase() *Database {
	return &Database{
		ID:        "d1",
		Name:      "mapping fixture",
		Bpop:      []float64{0.15, 8, 1.0, 1.0, 0.5},
		NotFixed:  []bool{true, false, true, false, true},
		GroupSize: []int{10},
	}
}

func TestFreePosition(t *testing.T) {
	db := testDatabase()

	cases := []struct {
		name    string
		index   int
		wantPos int
		wantErr error
	}{
		{name: "first free", index: 0, wantPos: 0},
		{name: "free after fixed", index: 2, wantPos: 1},
		{name: "last free", index: 4, wantPos: 2},
		{name: "fixed parameter", index: 1, wantErr: core.ErrFixedParameter},
		{name: "fixed parameter later", index: 3, wantErr: core.ErrFixedParameter},
		{name: "negative index", index: -1, wantErr: core.ErrParameterOutOfRange},
		{name: "past the end", index: 5, wantErr: core.ErrParameterOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := db.FreePosition(tc.index)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("index %d: got err %v, want %v", tc.index, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("index %d: unexpected error %v", tc.index, err)
			}
			if pos != tc.wantPos {
				t.Fatalf("index %d: got position %d, want %d", tc.index, pos, tc.wantPos)
			}
		})
	}
}

func TestFreeIndicesInvertsFreePosition(t *testing.T) {
	db := testDatabase()

	free := db.FreeIndices()
	if len(free) != db.FreeCount() {
		t.Fatalf("FreeIndices returned %d entries, FreeCount is %d", len(free), db.FreeCount())
	}
	for pos, idx := range free {
		got, err := db.FreePosition(idx)
		if err != nil {
			t.Fatalf("FreePosition(%d): %v", idx, err)
		}
		if got != pos {
			t.Fatalf("FreePosition(%d) = %d, want %d", idx, got, pos)
		}
	}
}
