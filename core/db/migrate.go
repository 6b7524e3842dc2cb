package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationsFS returns the embedded goose migrations rooted at their directory.
func MigrationsFS() (fs.FS, error) {
	return fs.Sub(embedMigrations, "migrations")
}

// MigrationState is the applied state of one migration version.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (db *DB) migrationProvider() (*goose.Provider, error) {
	fsys, err := MigrationsFS()
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}

	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("creating migration lock: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(db.pool), fsys,
		goose.WithSessionLocker(locker),
	)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies pending migrations and returns the versions applied by this call.
// Concurrent callers are serialized by a Postgres session lock.
func (db *DB) Migrate(ctx context.Context) ([]int64, error) {
	provider, err := db.migrationProvider()
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"duration", r.Duration)
		applied = append(applied, r.Source.Version)
	}
	if err != nil {
		return applied, fmt.Errorf("applying migrations: %w", err)
	}
	return applied, nil
}

// MigrationStatus reports every known migration and whether it is applied.
func (db *DB) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	provider, err := db.migrationProvider()
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading migration status: %w", err)
	}

	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
