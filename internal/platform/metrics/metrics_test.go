package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordRegistration(OutcomeSuccess)
	m.RecordRegistration(OutcomeSuccess)
	m.RecordRegistration(OutcomeUsernameTaken)
	m.RecordLogon(OutcomeInvalidCredentials)
	m.RecordAccountOpened("saving")
	m.ObserveRegistration(time.Now().Add(-50 * time.Millisecond))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues(OutcomeUsernameTaken)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logons.WithLabelValues(OutcomeInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountsOpened.WithLabelValues("saving")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RegistrationDuration))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRegistration(OutcomeSuccess)
		m.RecordLogon(OutcomeSuccess)
		m.RecordAccountOpened("checking")
		m.ObserveRegistration(time.Now())
	})
}
