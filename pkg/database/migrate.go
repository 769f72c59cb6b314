package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/tern/v2/migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	// advisory lock key shared by every instance running migrations
	migrationLockID             = 0x6d6f76696577 // "moview"
	migrationLockReleaseTimeout = 5 * time.Second
)

// Migrate applies the embedded schema migrations. Concurrent instances are
// serialised with a postgres advisory lock.
func Migrate(ctx context.Context, db *DB, log *zap.Logger) error {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection for migration: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), migrationLockReleaseTimeout)
		defer cancel()
		if _, err := conn.Exec(unlockCtx, "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			log.Error("Failed to release migration lock", zap.Error(err))
		}
	}()

	return runMigrations(ctx, conn.Conn(), log)
}

func runMigrations(ctx context.Context, conn *pgx.Conn, log *zap.Logger) error {
	migrationFS, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	migrator, err := migrate.NewMigrator(ctx, conn, "public.schema_version")
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.LoadMigrations(migrationFS); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	current, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		log.Debug("Could not read schema version, assuming fresh database", zap.Error(err))
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Info("Database migrated",
		zap.Int32("from_version", current),
		zap.Int("migrations", len(migrator.Migrations)),
	)
	return nil
}
