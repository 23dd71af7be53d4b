package power

import (
	"fmt"
	"strings"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"

	"gonum.org/v1/gonum/mat"
)

// Row is the power evaluation of one selected population parameter.
type Row struct {
	// ParameterIndex is the index into the full bpop vector.
	ParameterIndex int     `json:"parameter_index" db:"parameter_index"`
	Value          float64 `json:"value" db:"value"`
	RSE            float64 `json:"rse" db:"rse"`
	PredictedPower float64 `json:"predicted_power" db:"predicted_power"`
	TargetPower    float64 `json:"target_power" db:"target_power"`
	RequiredRSE    float64 `json:"required_rse" db:"required_rse"`
	// MinN is the smallest subject count reaching RequiredRSE; nil when
	// the search was not requested.
	MinN *int `json:"min_n,omitempty" db:"min_n"`
}

// Evaluation is the result bundle of one power evaluation: the resolved FIM,
// the RSE vector it yielded, and one row per selected parameter. It is built
// fresh on every call and never mutated afterwards.
type Evaluation struct {
	ID        core.EvaluationID `json:"id"`
	DesignID  core.DesignID     `json:"design_id"`
	CreatedAt core.Timestamp    `json:"created_at"`

	Alpha    float64 `json:"alpha"`
	TwoSided bool    `json:"two_sided"`

	// FIM is the Fisher information matrix the RSEs were derived from,
	// over free parameters in free order. May be nil on a bundle loaded
	// from storage.
	FIM *mat.SymDense `json:"-"`

	// RSE holds one relative standard error, in percent, per free
	// parameter of the design, in free order.
	RSE []float64 `json:"rse"`

	Rows []Row `json:"rows"`
}

// NewEvaluation starts a result bundle for one evaluation of db.
func NewEvaluation(db *design.Database, alpha float64, twoSided bool) *Evaluation {
	return &Evaluation{
		ID:        core.EvaluationID(core.NewID()),
		DesignID:  db.ID,
		CreatedAt: core.Now(),
		Alpha:     alpha,
		TwoSided:  twoSided,
	}
}

// PowerSummary condenses the predicted power column across rows.
func (e *Evaluation) PowerSummary() design.VectorSummary {
	powers := make([]float64, len(e.Rows))
	for i, r := range e.Rows {
		powers[i] = r.PredictedPower
	}
	return design.Summarize(powers)
}

// RSESummary condenses the RSE vector across free parameters.
func (e *Evaluation) RSESummary() design.VectorSummary {
	return design.Summarize(e.RSE)
}

// String renders the evaluation as an aligned text table, one row per
// selected parameter.
func (e *Evaluation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %12s %10s %12s %12s %12s", "Parameter", "Value", "RSE(%)", "Power(%)", "Target(%)", "NeedRSE(%)")
	withMinN := len(e.Rows) > 0 && e.Rows[0].MinN != nil
	if withMinN {
		fmt.Fprintf(&b, " %8s", "MinN")
	}
	b.WriteString("\n")
	for _, r := range e.Rows {
		fmt.Fprintf(&b, "%-10s %12.5g %10.2f %12.1f %12.1f %12.2f",
			fmt.Sprintf("bpop[%d]", r.ParameterIndex),
			r.Value, r.RSE, r.PredictedPower, r.TargetPower, r.RequiredRSE)
		if r.MinN != nil {
			fmt.Fprintf(&b, " %8d", *r.MinN)
		}
		b.WriteString("\n")
	}
	return b.String()
}
