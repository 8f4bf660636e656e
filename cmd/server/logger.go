package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskman-api/internal/config"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
)

// setupAppLogger installs the JSON logger as the default. -verbose forces
// debug level regardless of configuration.
func setupAppLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	serverCfg := cfg.Server
	if verbose {
		serverCfg.LogLevel = "debug"
	}

	l, err := logger.Setup(serverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	logConfigSummary(cfg, l)
	return l, nil
}
