package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmghannam/scip-routing/pkg/config"
	"github.com/mmghannam/scip-routing/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator applies the solve_runs schema via goose.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator builds a Migrator over an already-open pool.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Log.Info("solve_runs schema migrations applied")
	return nil
}

// RunMigrations applies migrations if AutoMigrate is enabled, mirroring the
// teacher's opt-in auto-migration convention.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, cfg *config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		return nil
	}
	return NewMigrator(pool).Up(ctx)
}
