package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Onboarding OnboardingConfig `mapstructure:"onboarding" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown window as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Storage drivers accepted by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,min=1,max=1440"`
	ClockSkewSeconds     int    `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=300"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"required,min=4,max=31"`
}

// TokenLifetime returns the session token validity window.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// ClockSkew returns the leeway applied when checking token expiry.
func (c AuthConfig) ClockSkew() time.Duration {
	return time.Duration(c.ClockSkewSeconds) * time.Second
}

// OnboardingConfig holds the rules applied when new customers register and
// open accounts.
type OnboardingConfig struct {
	MinimumAge      int    `mapstructure:"minimum_age" validate:"gte=0,lte=150"`
	PasswordLength  int    `mapstructure:"password_length" validate:"gte=1,lte=128"`
	IBANCountry     string `mapstructure:"iban_country" validate:"required,len=2,uppercase,alpha"`
	DefaultCurrency string `mapstructure:"default_currency" validate:"required,iso4217"`
	// TimeZone is the IANA zone whose calendar date counts as "today" in age
	// checks. Empty means the server's local zone.
	TimeZone string `mapstructure:"time_zone" validate:"omitempty,timezone"`
	// AllowedCountries seeds the in-memory country allow-list. The postgres
	// driver reads the allowed_countries table instead.
	AllowedCountries []string `mapstructure:"allowed_countries" validate:"dive,len=2,alpha"`
}
