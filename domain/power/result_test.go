package power

import (
	"strings"
	"testing"

	"github.com/giulialestini/PopED/domain/design"
)

func TestEvaluationString(t *testing.T) {
	db := &design.Database{
		ID:        "d1",
		Bpop:      []float64{0.15, 8},
		NotFixed:  []bool{true, true},
		GroupSize: []int{20},
	}
	eval := NewEvaluation(db, 0.05, true)
	minN := 66
	eval.RSE = []float64{12.5, 40}
	eval.Rows = []Row{
		{ParameterIndex: 0, Value: 0.15, RSE: 12.5, PredictedPower: 100, TargetPower: 80, RequiredRSE: 35.69, MinN: &minN},
		{ParameterIndex: 1, Value: 8, RSE: 40, PredictedPower: 71.2, TargetPower: 80, RequiredRSE: 35.69, MinN: &minN},
	}

	out := eval.String()
	for _, want := range []string{"bpop[0]", "bpop[1]", "NeedRSE(%)", "MinN", "66"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestEvaluationSummaries(t *testing.T) {
	eval := &Evaluation{
		RSE: []float64{10, 30},
		Rows: []Row{
			{PredictedPower: 60},
			{PredictedPower: 100},
		},
	}

	if got := eval.PowerSummary().Mean; got != 80 {
		t.Fatalf("power mean = %v, want 80", got)
	}
	if got := eval.RSESummary().Max; got != 30 {
		t.Fatalf("RSE max = %v, want 30", got)
	}
}
