package rse

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/internal/testkit"

	"gonum.org/v1/gonum/mat"
)

func TestDeriveRSE(t *testing.T) {
	db := testkit.NewOneCompartmentDesign()
	fim := testkit.DiagonalFIM(100, 4, 25)

	rse, err := NewDeriver().DeriveRSE(context.Background(), fim, db, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rse) != 3 {
		t.Fatalf("got %d RSEs for 3 free parameters", len(rse))
	}

	// cov = diag(0.01, 0.25, 0.04); bpop = (0.15, 8, 1).
	want := []float64{100 * 0.1 / 0.15, 6.25, 20}
	for i := range want {
		if math.Abs(rse[i]-want[i]) > 1e-6 {
			t.Fatalf("rse[%d] = %v, want %v", i, rse[i], want[i])
		}
	}
}

func TestDeriveRSEOffDiagonal(t *testing.T) {
	db := testkit.NewOneCompartmentDesign()
	db.Bpop = []float64{1, 1, 1, 1}

	fim := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 4, 0,
		0, 0, 1,
	})

	rse, err := NewDeriver().DeriveRSE(context.Background(), fim, db, nil)
	if err != nil {
		t.Fatal(err)
	}
	// inverse of [[4,1],[1,4]] has diagonal 4/15.
	if math.Abs(rse[0]-100*math.Sqrt(4.0/15.0)) > 1e-6 {
		t.Fatalf("rse[0] = %v", rse[0])
	}
	if math.Abs(rse[2]-100) > 1e-6 {
		t.Fatalf("rse[2] = %v, want 100", rse[2])
	}
}

func TestDeriveRSESingularFIM(t *testing.T) {
	db := testkit.NewOneCompartmentDesign()
	fim := testkit.DiagonalFIM(1, 1, 0)

	_, err := NewDeriver().DeriveRSE(context.Background(), fim, db, nil)
	if !errors.Is(err, core.ErrSingularFIM) {
		t.Fatalf("got %v, want ErrSingularFIM", err)
	}
}

func TestDeriveRSEDimensionMismatch(t *testing.T) {
	db := testkit.NewOneCompartmentDesign()
	fim := testkit.DiagonalFIM(1, 1)

	if _, err := NewDeriver().DeriveRSE(context.Background(), fim, db, nil); err == nil {
		t.Fatal("2x2 FIM accepted for 3 free parameters")
	}
}

func TestDeriveRSEZeroValuedFreeParameter(t *testing.T) {
	db := testkit.NewOneCompartmentDesign()
	db.Bpop[1] = 0

	rse, err := NewDeriver().DeriveRSE(context.Background(), testkit.DiagonalFIM(100, 4, 25), db, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(rse[1], 1) {
		t.Fatalf("rse of zero-valued parameter = %v, want +Inf", rse[1])
	}
}
