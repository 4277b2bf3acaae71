package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shiftsync/timetable-api/internal/service"
)

const runTimestampLayout = "2006-01-02T15:04:05.999999999Z07:00"

// RunRepository persists the generation audit trail: one row per
// /generate call recording its outcome and timing, never the domain
// payload or the generated schedule itself — that stays outside the
// persistence Non-goal.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository constructs the repository. db may be nil; Record
// becomes a no-op so the audit trail stays best-effort.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

const insertRunQuery = `INSERT INTO generation_runs
	(id, outcome, total_classes, duration_ms, created_at)
	VALUES (:id, :outcome, :total_classes, :duration_ms, :created_at)`

type runRow struct {
	ID           string `db:"id"`
	Outcome      string `db:"outcome"`
	TotalClasses int    `db:"total_classes"`
	DurationMS   int64  `db:"duration_ms"`
	CreatedAt    string `db:"created_at"`
}

// Record inserts one audit row. A nil receiver or a nil db makes this a
// silent no-op, so an unconfigured audit trail can be wired in wherever
// the runRecorder seam is expected without a separate nil check.
func (r *RunRepository) Record(ctx context.Context, run service.RunRecord) error {
	if r == nil || r.db == nil {
		return nil
	}
	row := runRow{
		ID:           run.ID,
		Outcome:      run.Outcome,
		TotalClasses: run.TotalClasses,
		DurationMS:   run.DurationMS,
		CreatedAt:    run.CreatedAt.UTC().Format(runTimestampLayout),
	}
	if _, err := r.db.NamedExecContext(ctx, insertRunQuery, row); err != nil {
		return fmt.Errorf("record generation run: %w", err)
	}
	return nil
}

// GetByID retrieves one audit row, used by GET /api/v1/runs/:id.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*service.RunRecord, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("audit database is disabled")
	}
	const query = `SELECT id, outcome, total_classes, duration_ms, created_at
	FROM generation_runs WHERE id = $1`
	var row runRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("get generation run %s: %w", id, err)
	}
	createdAt, err := time.Parse(runTimestampLayout, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for run %s: %w", id, err)
	}
	return &service.RunRecord{
		ID:           row.ID,
		Outcome:      row.Outcome,
		TotalClasses: row.TotalClasses,
		DurationMS:   row.DurationMS,
		CreatedAt:    createdAt,
	}, nil
}
