package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeError, Outcome(errors.New("boom")))
}

func TestCountersIncrement(t *testing.T) {
	lbl := "test.Component"

	ComponentResolutions.WithLabelValues(lbl, OutcomeSuccess).Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(ComponentResolutions.WithLabelValues(lbl, OutcomeSuccess)), 1.0)

	BootstrapSteps.WithLabelValues("test_step", OutcomeError).Add(2)
	assert.GreaterOrEqual(t, testutil.ToFloat64(BootstrapSteps.WithLabelValues("test_step", OutcomeError)), 2.0)
}

func TestObserveBootstrap(t *testing.T) {
	ObserveBootstrap("test context", time.Now().Add(-time.Millisecond), nil)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(BootstrapDuration), 1)
}

func TestMetricsHandler(t *testing.T) {
	ConfigReloads.WithLabelValues(OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "appkernel_config_reloads_total"))
}
