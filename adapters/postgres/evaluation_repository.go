package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/power"
	"github.com/giulialestini/PopED/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Schema holds the DDL for the evaluation tables. Applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS power_evaluations (
	id         UUID PRIMARY KEY,
	design_id  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	alpha      DOUBLE PRECISION NOT NULL,
	two_sided  BOOLEAN NOT NULL,
	rse        DOUBLE PRECISION[] NOT NULL
);

CREATE TABLE IF NOT EXISTS power_evaluation_rows (
	evaluation_id   UUID NOT NULL REFERENCES power_evaluations(id) ON DELETE CASCADE,
	parameter_index INTEGER NOT NULL,
	value           DOUBLE PRECISION NOT NULL,
	rse             DOUBLE PRECISION NOT NULL,
	predicted_power DOUBLE PRECISION NOT NULL,
	target_power    DOUBLE PRECISION NOT NULL,
	required_rse    DOUBLE PRECISION NOT NULL,
	min_n           INTEGER,
	PRIMARY KEY (evaluation_id, parameter_index)
);

CREATE INDEX IF NOT EXISTS idx_power_evaluations_design
	ON power_evaluations(design_id, created_at DESC);
`

// EvaluationRepositoryImpl implements EvaluationRepository for PostgreSQL
type EvaluationRepositoryImpl struct {
	db *sqlx.DB
}

// NewEvaluationRepository creates a new PostgreSQL evaluation repository
func NewEvaluationRepository(db *sqlx.DB) ports.EvaluationRepository {
	return &EvaluationRepositoryImpl{db: db}
}

// Migrate applies the evaluation schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

type evaluationRecord struct {
	ID        string          `db:"id"`
	DesignID  string          `db:"design_id"`
	CreatedAt time.Time       `db:"created_at"`
	Alpha     float64         `db:"alpha"`
	TwoSided  bool            `db:"two_sided"`
	RSE       pq.Float64Array `db:"rse"`
}

type rowRecord struct {
	EvaluationID   string  `db:"evaluation_id"`
	ParameterIndex int     `db:"parameter_index"`
	Value          float64 `db:"value"`
	RSE            float64 `db:"rse"`
	PredictedPower float64 `db:"predicted_power"`
	TargetPower    float64 `db:"target_power"`
	RequiredRSE    float64 `db:"required_rse"`
	MinN           *int    `db:"min_n"`
}

// Save stores the evaluation and its rows in one transaction. The FIM is not
// persisted; a bundle loaded back from storage carries a nil FIM.
func (r *EvaluationRepositoryImpl) Save(ctx context.Context, eval *power.Evaluation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rec := evaluationRecord{
		ID:        eval.ID.String(),
		DesignID:  eval.DesignID.String(),
		CreatedAt: eval.CreatedAt.Time(),
		Alpha:     eval.Alpha,
		TwoSided:  eval.TwoSided,
		RSE:       pq.Float64Array(eval.RSE),
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO power_evaluations (id, design_id, created_at, alpha, two_sided, rse)
		VALUES (:id, :design_id, :created_at, :alpha, :two_sided, :rse)
	`, rec)
	if err != nil {
		return fmt.Errorf("inserting evaluation: %w", err)
	}

	for _, row := range eval.Rows {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO power_evaluation_rows (
				evaluation_id, parameter_index, value, rse,
				predicted_power, target_power, required_rse, min_n
			) VALUES (
				:evaluation_id, :parameter_index, :value, :rse,
				:predicted_power, :target_power, :required_rse, :min_n
			)
		`, rowRecord{
			EvaluationID:   eval.ID.String(),
			ParameterIndex: row.ParameterIndex,
			Value:          row.Value,
			RSE:            row.RSE,
			PredictedPower: row.PredictedPower,
			TargetPower:    row.TargetPower,
			RequiredRSE:    row.RequiredRSE,
			MinN:           row.MinN,
		})
		if err != nil {
			return fmt.Errorf("inserting evaluation row: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID loads a stored evaluation with its rows.
func (r *EvaluationRepositoryImpl) GetByID(ctx context.Context, id core.EvaluationID) (*power.Evaluation, error) {
	var rec evaluationRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, design_id, created_at, alpha, two_sided, rse
		FROM power_evaluations WHERE id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("evaluation %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rec)
}

// ListByDesign returns the stored evaluations of one design, newest first.
func (r *EvaluationRepositoryImpl) ListByDesign(ctx context.Context, designID core.DesignID) ([]*power.Evaluation, error) {
	var recs []evaluationRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT id, design_id, created_at, alpha, two_sided, rse
		FROM power_evaluations
		WHERE design_id = $1
		ORDER BY created_at DESC
	`, designID.String())
	if err != nil {
		return nil, err
	}

	evals := make([]*power.Evaluation, 0, len(recs))
	for _, rec := range recs {
		eval, err := r.hydrate(ctx, rec)
		if err != nil {
			return nil, err
		}
		evals = append(evals, eval)
	}
	return evals, nil
}

func (r *EvaluationRepositoryImpl) hydrate(ctx context.Context, rec evaluationRecord) (*power.Evaluation, error) {
	var rows []rowRecord
	err := r.db.SelectContext(ctx, &rows, `
		SELECT evaluation_id, parameter_index, value, rse,
		       predicted_power, target_power, required_rse, min_n
		FROM power_evaluation_rows
		WHERE evaluation_id = $1
		ORDER BY parameter_index
	`, rec.ID)
	if err != nil {
		return nil, err
	}

	eval := &power.Evaluation{
		ID:        core.EvaluationID(rec.ID),
		DesignID:  core.DesignID(rec.DesignID),
		CreatedAt: core.NewTimestamp(rec.CreatedAt),
		Alpha:     rec.Alpha,
		TwoSided:  rec.TwoSided,
		RSE:       []float64(rec.RSE),
	}
	for _, row := range rows {
		eval.Rows = append(eval.Rows, power.Row{
			ParameterIndex: row.ParameterIndex,
			Value:          row.Value,
			RSE:            row.RSE,
			PredictedPower: row.PredictedPower,
			TargetPower:    row.TargetPower,
			RequiredRSE:    row.RequiredRSE,
			MinN:           row.MinN,
		})
	}
	return eval, nil
}
