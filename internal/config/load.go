package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "TASKMAN"

// StageEnvVar selects a stage-specific config file (config.<stage>.yaml).
const StageEnvVar = EnvPrefix + "_STAGE"

var defaults = map[string]any{
	"server.port":                     3000,
	"server.log_level":                "info",
	"server.shutdown_timeout_seconds": 10,
	"database.auto_migrate":           true,
	"database.max_open_conns":         10,
	"auth.token_lifetime_minutes":     60,
	"auth.bcrypt_cost":                10,
}

// keys lists every setting so each one is bound to its environment variable,
// including the ones without a default.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout_seconds",
	"database.url",
	"database.auto_migrate",
	"database.max_open_conns",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
}

// Load configuration from defaults, an optional YAML file and environment variables,
// in increasing order of precedence. The file is config.yaml, or config.<stage>.yaml
// when TASKMAN_STAGE is set, looked up in searchPaths (default "." and "./config").
// Returns a populated Config struct or an error if loading/validation fails.
func Load(searchPaths ...string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	configName := "config"
	if stage := strings.TrimSpace(os.Getenv(StageEnvVar)); stage != "" {
		configName = "config." + stage
	}
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "./config"}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
