package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmghannam/scip-routing/internal/orchestrator"
	"github.com/mmghannam/scip-routing/pkg/apperror"
)

// SolveRun is a persisted record of one orchestrator.Solve invocation.
type SolveRun struct {
	ID             uuid.UUID
	InstanceName   string
	Status         string
	ObjectiveValue float64
	NodesExplored  int
	Duration       time.Duration
	Routes         []orchestrator.Route
	CreatedAt      time.Time
}

// RunRepository persists and retrieves SolveRun records.
type RunRepository struct {
	db DB
}

// NewRunRepository builds a RunRepository over db.
func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun inserts a new run record from an instance name and its solution.
func (r *RunRepository) SaveRun(ctx context.Context, instanceName string, sol *orchestrator.Solution) (*SolveRun, error) {
	routesJSON, err := json.Marshal(sol.Routes)
	if err != nil {
		return nil, fmt.Errorf("marshal routes: %w", err)
	}

	run := &SolveRun{
		ID:             uuid.New(),
		InstanceName:   instanceName,
		Status:         sol.Status,
		ObjectiveValue: sol.ObjVal,
		NodesExplored:  sol.NodesExplored,
		Duration:       sol.Duration,
		Routes:         sol.Routes,
		CreatedAt:      time.Now().UTC(),
	}

	const query = `
		INSERT INTO solve_runs (id, instance_name, status, objective_value, nodes_explored, duration_ms, routes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		run.ID, run.InstanceName, run.Status, run.ObjectiveValue,
		run.NodesExplored, run.Duration.Milliseconds(), routesJSON, run.CreatedAt,
	)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to save solve run")
	}
	return run, nil
}

// GetRun retrieves a single run by id.
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*SolveRun, error) {
	const query = `
		SELECT id, instance_name, status, objective_value, nodes_explored, duration_ms, routes, created_at
		FROM solve_runs WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs for an instance name, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, instanceName string, limit int) ([]*SolveRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, instance_name, status, objective_value, nodes_explored, duration_ms, routes, created_at
		FROM solve_runs WHERE instance_name = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, instanceName, limit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list solve runs")
	}
	defer rows.Close()

	var runs []*SolveRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// rowScanner is the subset of pgx.Row / pgx.Rows that scanRun needs.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*SolveRun, error) {
	var (
		run        SolveRun
		durationMs int64
		routesJSON []byte
	)
	err := row.Scan(&run.ID, &run.InstanceName, &run.Status, &run.ObjectiveValue,
		&run.NodesExplored, &durationMs, &routesJSON, &run.CreatedAt)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeNotFound, "solve run not found")
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	if err := json.Unmarshal(routesJSON, &run.Routes); err != nil {
		return nil, fmt.Errorf("unmarshal routes: %w", err)
	}
	return &run, nil
}
