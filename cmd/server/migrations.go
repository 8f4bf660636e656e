package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/platform/postgres"
)

// allowedMigrationCommands are the goose commands exposed through -migrate.
var allowedMigrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"redo":    true,
	"reset":   true,
}

// handleMigrations runs a goose command against db using the embedded
// migration files.
func handleMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if !allowedMigrationCommands[command] {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	migrationLogger := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
	)

	start := time.Now()
	migrationLogger.Info("Starting migration operation")

	if err := postgres.Migrate(ctx, db, command, migrationLogger); err != nil {
		migrationLogger.Error("Migration failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
