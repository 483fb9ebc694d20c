package service

import (
	"fmt"
	"time"

	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/domain/identifier"
	"github.com/openbank/openbank-api/internal/platform/metrics"
)

// Option customizes a service at construction time.
type Option func(*options)

type options struct {
	now     func() time.Time
	metrics *metrics.Metrics
}

func defaultOptions() options {
	return options{now: time.Now}
}

// WithClock overrides the time source used for age checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithMetrics records service outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// onboardingDefaults fills unset onboarding values with their defaults.
func onboardingDefaults(cfg config.OnboardingConfig) config.OnboardingConfig {
	if cfg.PasswordLength == 0 {
		cfg.PasswordLength = identifier.DefaultPasswordLength
	}
	if cfg.IBANCountry == "" {
		cfg.IBANCountry = identifier.DefaultIBANCountry
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = domain.DefaultCurrency
	}
	if cfg.MinimumAge == 0 {
		cfg.MinimumAge = domain.DefaultMinimumAge
	}
	return cfg
}

// ageLocation resolves the zone in which age checks read today's date.
func ageLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid onboarding time zone %q: %w", name, err)
	}
	return loc, nil
}
