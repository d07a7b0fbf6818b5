package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs" validate:"required"`
	Tutor    TutorConfig    `mapstructure:"tutor"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat              string `mapstructure:"log_format" validate:"required,oneof=json text"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig selects the storage backend. For sqlite, URL is a file
// path or a "file:" DSN.
type DatabaseConfig struct {
	Driver                 string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL                    string `mapstructure:"url" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains token and password hashing settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gtfield=TokenLifetimeMinutes"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// SRSConfig contains scheduling settings.
type SRSConfig struct {
	// Timezone is the IANA zone whose calendar days scheduling uses.
	Timezone              string `mapstructure:"timezone" validate:"required,timezone"`
	DefaultStudyLimit     int    `mapstructure:"default_study_limit" validate:"gt=0,lte=500"`
	MaturityThresholdDays int    `mapstructure:"maturity_threshold_days" validate:"gt=0"`
}

// Location loads the configured timezone.
func (c SRSConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// TutorConfig contains the AI tutor settings. The API key is only required
// when the tutor is enabled.
type TutorConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	GeminiAPIKey          string `mapstructure:"gemini_api_key" validate:"required_if=Enabled true"`
	ModelName             string `mapstructure:"model_name" validate:"required_if=Enabled true"`
	MaxHistory            int    `mapstructure:"max_history" validate:"gte=0"`
	MaxDeckCards          int    `mapstructure:"max_deck_cards" validate:"gte=0"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	MaxRetries            int    `mapstructure:"max_retries" validate:"gte=0"`
}
