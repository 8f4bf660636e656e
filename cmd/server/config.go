package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskman-api/internal/config"
)

// loadAppConfig loads the application configuration from the config file and
// environment variables.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary writes the non-secret parts of the configuration.
func logConfigSummary(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auto_migrate", cfg.Database.AutoMigrate)
	logger.Debug("Database configuration",
		"url", maskDatabaseURL(cfg.Database.URL),
		"max_open_conns", cfg.Database.MaxOpenConns)
	logger.Debug("Auth configuration",
		"jwt_secret_present", cfg.Auth.JWTSecret != "",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"bcrypt_cost", cfg.Auth.BCryptCost)
}
