package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratiocop_analyses_total",
		Help: "Ratio analyses performed, by verdict.",
	}, []string{"verdict"})

	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratiocop_command_runs_total",
		Help: "CLI command invocations.",
	}, []string{"command"})

	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratiocop_command_errors_total",
		Help: "CLI command invocations that returned an error.",
	}, []string{"command"})

	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ratiocop_batch_duration_seconds",
		Help:    "Wall-clock time spent classifying a batch file.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

func init() {
	prometheus.MustRegister(AnalysesTotal, CommandRuns, CommandErrors, BatchDuration)
}

func IncAnalysis(verdict string) {
	AnalysesTotal.WithLabelValues(verdict).Inc()
}

func IncCommandRun(command string) {
	CommandRuns.WithLabelValues(command).Inc()
}

func IncCommandError(command string) {
	CommandErrors.WithLabelValues(command).Inc()
}

func ObserveBatchDuration(start time.Time) {
	BatchDuration.Observe(time.Since(start).Seconds())
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090"). With an
// empty addr and no METRICS_ADDR in the environment it does nothing, which
// is the normal mode for a short-lived CLI. A fresh mux per call keeps
// repeated invocations from panicking on duplicate routes.
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}
