package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"reviewminer/internal/domain"
)

// ErrRunNotFound is returned when no mining run matches the lookup.
var ErrRunNotFound = errors.New("mining run not found")

// MiningRun is one persisted mining run: the batch-level report plus the
// validation snapshot taken before enrichment.
type MiningRun struct {
	ID            string                   `json:"run_id" db:"id"`
	EngineVersion string                   `json:"engine_version" db:"engine_version"`
	ReviewCount   int                      `json:"review_count" db:"review_count"`
	Report        domain.InsightsReport    `json:"report"`
	Validation    domain.ValidationSummary `json:"validation"`
	CreatedAt     time.Time                `json:"created_at" db:"created_at"`
}

// RunStats summarizes the run history.
type RunStats struct {
	TotalRuns      int        `json:"total_runs" db:"total_runs"`
	TotalReviews   int        `json:"total_reviews" db:"total_reviews"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	AvgReviewCount float64    `json:"avg_review_count" db:"avg_review_count"`
}

// runRow is the raw table shape; report and validation are JSON columns.
type runRow struct {
	ID            string    `db:"id"`
	EngineVersion string    `db:"engine_version"`
	ReviewCount   int       `db:"review_count"`
	Report        string    `db:"report"`
	Validation    string    `db:"validation"`
	CreatedAt     time.Time `db:"created_at"`
}

// RunsRepository handles database operations for mining runs.
type RunsRepository struct {
	db *sqlx.DB
}

// NewRunsRepository creates a new mining run repository.
func NewRunsRepository(db *sqlx.DB) *RunsRepository {
	return &RunsRepository{db: db}
}

// Create inserts a mining run. The caller supplies the run ID.
func (r *RunsRepository) Create(ctx context.Context, run *MiningRun) error {
	report, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	validation, err := json.Marshal(run.Validation)
	if err != nil {
		return fmt.Errorf("failed to encode validation summary: %w", err)
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mining_runs (id, engine_version, review_count, report, validation, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.EngineVersion,
		run.ReviewCount,
		string(report),
		string(validation),
		run.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create mining run: %w", err)
	}

	return nil
}

// GetByID retrieves one mining run.
func (r *RunsRepository) GetByID(ctx context.Context, id string) (*MiningRun, error) {
	var row runRow
	query := `
		SELECT id, engine_version, review_count, report, validation, created_at
		FROM mining_runs
		WHERE id = ?
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get mining run: %w", err)
	}

	return decodeRun(row)
}

// GetLatest retrieves the most recent mining run.
func (r *RunsRepository) GetLatest(ctx context.Context) (*MiningRun, error) {
	var row runRow
	query := `
		SELECT id, engine_version, review_count, report, validation, created_at
		FROM mining_runs
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get latest mining run: %w", err)
	}

	return decodeRun(row)
}

// List returns the most recent runs, newest first.
func (r *RunsRepository) List(ctx context.Context, limit int) ([]*MiningRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []runRow
	query := `
		SELECT id, engine_version, review_count, report, validation, created_at
		FROM mining_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list mining runs: %w", err)
	}

	runs := make([]*MiningRun, 0, len(rows))
	for _, row := range rows {
		run, err := decodeRun(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetStats retrieves run history statistics.
func (r *RunsRepository) GetStats(ctx context.Context) (*RunStats, error) {
	var stats RunStats
	query := `
		SELECT
			COUNT(*) AS total_runs,
			COALESCE(SUM(review_count), 0) AS total_reviews,
			COALESCE(AVG(review_count), 0) AS avg_review_count
		FROM mining_runs
	`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get run stats: %w", err)
	}

	if stats.TotalRuns > 0 {
		var last time.Time
		if err := r.db.GetContext(ctx, &last,
			`SELECT created_at FROM mining_runs ORDER BY created_at DESC LIMIT 1`); err != nil {
			return nil, fmt.Errorf("failed to get last run time: %w", err)
		}
		stats.LastRunAt = &last
	}

	return &stats, nil
}

func decodeRun(row runRow) (*MiningRun, error) {
	run := &MiningRun{
		ID:            row.ID,
		EngineVersion: row.EngineVersion,
		ReviewCount:   row.ReviewCount,
		CreatedAt:     row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.Report), &run.Report); err != nil {
		return nil, fmt.Errorf("failed to decode report for run %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Validation), &run.Validation); err != nil {
		return nil, fmt.Errorf("failed to decode validation summary for run %s: %w", row.ID, err)
	}
	return run, nil
}
