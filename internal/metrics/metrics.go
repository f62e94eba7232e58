package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	ComponentResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appkernel_component_resolutions_total",
		Help: "Total number of component resolutions grouped by class identifier and outcome",
	}, []string{"class", "outcome"})
	// Singleton constructions happen at most once per catalog entry, so this
	// stays flat while resolutions keep growing.
	SingletonConstructions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appkernel_singleton_constructions_total",
		Help: "Total number of singleton factory invocations",
	}, []string{"class"})
	BootstrapSteps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appkernel_bootstrap_steps_total",
		Help: "Total number of bootstrap steps executed grouped by step and outcome",
	}, []string{"step", "outcome"})
	BootstrapDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appkernel_bootstrap_duration_seconds",
		Help:    "Duration of complete bootstrap runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"context", "outcome"})
	ConfigReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appkernel_config_reloads_total",
		Help: "Total number of user configuration reloads triggered by file changes",
	}, []string{"outcome"})
	AuthDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appkernel_auth_decisions_total",
		Help: "Counts of authentication callback decisions grouped by method",
	}, []string{"method", "decision"})
)

func init() {
	prometheus.MustRegister(ComponentResolutions)
	prometheus.MustRegister(SingletonConstructions)
	prometheus.MustRegister(BootstrapSteps)
	prometheus.MustRegister(BootstrapDuration)
	prometheus.MustRegister(ConfigReloads)
	prometheus.MustRegister(AuthDecisions)
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// ObserveBootstrap records the duration of one bootstrap run.
func ObserveBootstrap(context string, started time.Time, err error) {
	BootstrapDuration.WithLabelValues(context, Outcome(err)).Observe(time.Since(started).Seconds())
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
