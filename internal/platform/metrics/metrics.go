// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the registration and logon counters.
const (
	OutcomeSuccess            = "success"
	OutcomeIneligibleAge      = "ineligible_age"
	OutcomeCountryNotAllowed  = "country_not_allowed"
	OutcomeUsernameTaken      = "username_taken"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registrations        *prometheus.CounterVec
	Logons               *prometheus.CounterVec
	AccountsOpened       *prometheus.CounterVec
	RegistrationDuration prometheus.Histogram
}

// New creates a Metrics instance with every metric registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "openbank_registrations_total",
			Help: "Customer registration attempts by outcome",
		}, []string{"outcome"}),
		Logons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "openbank_logons_total",
			Help: "Logon attempts by outcome",
		}, []string{"outcome"}),
		AccountsOpened: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "openbank_accounts_opened_total",
			Help: "Accounts opened, including the initial account created at registration",
		}, []string{"account_type"}),
		RegistrationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "openbank_registration_duration_seconds",
			Help:    "Duration of customer registrations, dominated by password hashing",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordRegistration counts a registration attempt with the given outcome.
func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveRegistration records the duration of a registration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegistration(start time.Time) {
	if m == nil {
		return
	}
	m.RegistrationDuration.Observe(time.Since(start).Seconds())
}

// RecordLogon counts a logon attempt with the given outcome.
func (m *Metrics) RecordLogon(outcome string) {
	if m == nil {
		return
	}
	m.Logons.WithLabelValues(outcome).Inc()
}

// RecordAccountOpened counts a newly opened account.
func (m *Metrics) RecordAccountOpened(accountType string) {
	if m == nil {
		return
	}
	m.AccountsOpened.WithLabelValues(accountType).Inc()
}
