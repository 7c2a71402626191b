package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/atb-as/webshop-e2e/internal/database"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("flow run not found")

// FlowRunRepository handles database operations for flow runs
type FlowRunRepository struct {
	db *sql.DB
}

// NewFlowRunRepository creates a repository on the shared journal connection
func NewFlowRunRepository() *FlowRunRepository {
	return &FlowRunRepository{
		db: database.DB,
	}
}

// NewFlowRunRepositoryWithDB creates a repository with a specific database connection
func NewFlowRunRepositoryWithDB(db *sql.DB) *FlowRunRepository {
	return &FlowRunRepository{
		db: db,
	}
}

// Save inserts a finished run
func (r *FlowRunRepository) Save(ctx context.Context, run *models.FlowRun) error {
	query := `
		INSERT INTO flow_runs (id, scenario, flow, state, aliases, pending, error, stalled_alias, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Scenario,
		run.Flow,
		run.State,
		pq.Array(run.Aliases),
		run.Pending,
		run.Error,
		run.StalledAlias(),
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save flow run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT id, scenario, flow, state, aliases, pending, error, started_at, finished_at
	FROM flow_runs
`

// GetByID retrieves a run by its id
func (r *FlowRunRepository) GetByID(ctx context.Context, id string) (*models.FlowRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRun+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flow run: %w", err)
	}
	return run, nil
}

// ListSince returns the runs started at or after since, oldest first
func (r *FlowRunRepository) ListSince(ctx context.Context, since time.Time) ([]*models.FlowRun, error) {
	rows, err := r.db.QueryContext(ctx, selectRun+` WHERE started_at >= $1 ORDER BY started_at, id`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list flow runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.FlowRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flow run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list flow runs: %w", err)
	}
	return runs, nil
}

// StalledAliases counts timed out runs since since by the alias they stalled
// on, most frequent first
func (r *FlowRunRepository) StalledAliases(ctx context.Context, since time.Time) ([]models.AliasCount, error) {
	query := `
		SELECT stalled_alias, flow, COUNT(*)
		FROM flow_runs
		WHERE state = $1 AND started_at >= $2 AND stalled_alias <> ''
		GROUP BY stalled_alias, flow
		ORDER BY COUNT(*) DESC, stalled_alias, flow
	`

	rows, err := r.db.QueryContext(ctx, query, models.FlowStateTimedOut, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count stalled aliases: %w", err)
	}
	defer rows.Close()

	var counts []models.AliasCount
	for rows.Next() {
		var c models.AliasCount
		if err := rows.Scan(&c.Alias, &c.Flow, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan alias count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count stalled aliases: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*models.FlowRun, error) {
	run := &models.FlowRun{}
	var aliases pq.StringArray
	err := row.Scan(
		&run.ID,
		&run.Scenario,
		&run.Flow,
		&run.State,
		&aliases,
		&run.Pending,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Aliases = []string(aliases)
	return run, nil
}
