// Package main implements the entry point for the task management API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, version, redo, reset) and exit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd, *verbose); err != nil {
		log.Fatalf("taskman: %v", err)
	}
}

// run loads configuration, sets up logging and the database, then either
// executes a migration command or serves the API until ctx is canceled.
func run(ctx context.Context, migrateCmd string, verbose bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg, verbose)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, migrateCmd, logger)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, "up", logger); err != nil {
			_ = db.Close()
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
