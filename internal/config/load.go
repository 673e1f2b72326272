package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file and use the LEDGER_ prefix
// with underscores for nesting, e.g. LEDGER_SERVER_PORT, LEDGER_AUTH_JWT_SECRET.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sane one. Secrets deliberately
	// have no default: a missing secret must fail validation.
	v.SetDefault("server.port", 8084)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.connect_retry_interval", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 7*24*60)
	v.SetDefault("auth.bcrypt_cost", 0) // 0 selects the bcrypt library default

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; only a malformed file is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so bind the keys we care about explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"database.connect_retry_interval",
		"auth.jwt_secret",
		"auth.refresh_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
		"auth.bcrypt_cost",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
