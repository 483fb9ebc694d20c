package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. OPENBANK_AUTH_JWT_SECRET for auth.jwt_secret.
const EnvPrefix = "OPENBANK"

var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.cors_allowed_origins":     []string{"*"},
	"server.shutdown_timeout_seconds": 15,
	"database.driver":                 DriverPostgres,
	"database.url":                    "",
	"auth.jwt_secret":                 "",
	"auth.token_lifetime_minutes":     30,
	"auth.clock_skew_seconds":         0,
	"auth.bcrypt_cost":                bcrypt.DefaultCost,
	"onboarding.minimum_age":          18,
	"onboarding.password_length":      12,
	"onboarding.iban_country":         "NL",
	"onboarding.default_currency":     "EUR",
	"onboarding.time_zone":            "",
	"onboarding.allowed_countries":    []string{"NL", "BE", "DE"},
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file, which take precedence over defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile is like Load but reads the given config file, which must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
