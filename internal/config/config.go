// Package config handles loading and validating application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// ConnectRetryInterval is the fixed delay, in seconds, between attempts
	// to reach the database at startup. Attempts repeat until the startup
	// context is cancelled.
	ConnectRetryInterval int `mapstructure:"connect_retry_interval" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
// Access and refresh tokens are signed with distinct secrets so a leaked
// access secret cannot mint refresh tokens.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	RefreshSecret               string `mapstructure:"refresh_secret"                 validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}
