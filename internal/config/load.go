package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. SCRY_SERVER_PORT.
const EnvPrefix = "SCRY"

// defaults lists every configuration key. Keys without a sensible default
// map to nil and are still bound to their environment variable.
var defaults = map[string]any{
	"server.port":                          8080,
	"server.log_level":                     "info",
	"server.log_format":                    "json",
	"server.read_timeout_seconds":          15,
	"server.write_timeout_seconds":         30,
	"server.shutdown_timeout_seconds":      10,
	"database.driver":                      "postgres",
	"database.url":                         nil,
	"database.max_open_conns":              25,
	"database.max_idle_conns":              25,
	"database.conn_max_lifetime_minutes":   5,
	"auth.jwt_secret":                      nil,
	"auth.token_lifetime_minutes":          60,
	"auth.refresh_token_lifetime_minutes":  10080,
	"auth.bcrypt_cost":                     10,
	"srs.timezone":                         "UTC",
	"srs.default_study_limit":              20,
	"srs.maturity_threshold_days":          21,
	"tutor.enabled":                        false,
	"tutor.gemini_api_key":                 nil,
	"tutor.model_name":                     "gemini-2.0-flash",
	"tutor.max_history":                    20,
	"tutor.max_deck_cards":                 100,
	"tutor.request_timeout_seconds":        30,
	"tutor.max_retries":                    2,
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "server.log_level",
	"db-driver": "database.driver",
	"db-url":    "database.url",
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, config.yaml
	// is searched for in "." and "./config" and is optional.
	ConfigFile string
	// EnvFile is loaded into the process environment first, if it exists.
	// Defaults to ".env".
	EnvFile string
	// Flags, when set, override every other source for the keys in flagKeys.
	Flags *pflag.FlagSet
}

// Load reads configuration from, in increasing precedence: defaults, the
// config file, the .env file and the process environment, and flags.
// The result is validated before it is returned.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", 8080, "HTTP listen port")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("db-driver", "postgres", "storage backend (postgres, sqlite)")
	fs.String("db-url", "", "database URL or sqlite file path")
}
