package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS exposes the embedded SQL migrations.
func MigrationsFS() embed.FS {
	return migrationsFS
}

// Migrate runs a goose command ("up", "down", "status", "version", "redo", "reset")
// against db using the embedded migrations. args are passed through to goose.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger, args ...string) error {
	if log == nil {
		log = slog.Default()
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: log.With(slog.String("component", "migrations"))})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}

// gooseLogger adapts slog to goose.Logger.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. goose returns the error to the caller, so the
// process is not terminated here.
func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
