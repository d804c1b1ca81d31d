package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formplay/internal/metrics"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/testsupport"
)

func TestHooksCountFormActivity(t *testing.T) {
	m := metrics.New()

	f, err := form.New(testsupport.ProfileModel(),
		form.WithDefaults(testsupport.ProfileDefaults()),
		form.WithHooks(m.Hooks()),
	)
	require.NoError(t, err)

	assert.False(t, f.Submit(context.Background()))
	require.NoError(t, f.Change("age", "290"))
	assert.True(t, f.Submit(context.Background()))

	expected := `
# HELP formplay_submissions_total Submit attempts, by outcome.
# TYPE formplay_submissions_total counter
formplay_submissions_total{outcome="accepted"} 1
formplay_submissions_total{outcome="blocked"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "formplay_submissions_total"))

	// only the mount validation of age failed; a blocked submit does not re-validate
	expected = `
# HELP formplay_validation_failures_total Validations that produced at least one message, by field.
# TYPE formplay_validation_failures_total counter
formplay_validation_failures_total{field="age"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "formplay_validation_failures_total"))
}

func TestHandlerExposesSessionsGauge(t *testing.T) {
	m := metrics.New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.Event(form.EventChange)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "formplay_sessions_active 1")
	assert.Contains(t, string(body), `formplay_events_total{type="change"} 1`)
}
