// Package metrics provides Prometheus instrumentation for the POS core.
//
// The collectors cover the operations that span databases (sync runs,
// product fan-out, restock approvals) plus the sale counters. Expose them
// by starting the optional listener:
//
//	metrics.Serve(cfg.MetricsAddr)
//
// and scrape http://<addr>/metrics from Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SyncRuns counts whole-table sync passes by direction and outcome.
	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "posnet",
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Total sync passes between tiers.",
		},
		[]string{"direction", "status"}, // direction: "to_hq" | "from_hq" | "fan_out"; status: "ok" | "skipped" | "error"
	)

	// FanoutDuration tracks how long a per-store product push takes.
	FanoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "posnet",
			Subsystem: "sync",
			Name:      "fanout_duration_seconds",
			Help:      "Duration of a single product push to one store.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SalesRecorded counts committed sales.
	SalesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "posnet",
		Subsystem: "sales",
		Name:      "recorded_total",
		Help:      "Total sales committed.",
	})

	// SalesRejected counts sales refused for missing product or short stock.
	SalesRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "posnet",
		Subsystem: "sales",
		Name:      "rejected_total",
		Help:      "Total sales rejected by precondition checks.",
	})

	// RestockApprovals counts restock approval attempts by outcome.
	RestockApprovals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "posnet",
			Subsystem: "restock",
			Name:      "approvals_total",
			Help:      "Total restock approval attempts.",
		},
		[]string{"status"}, // "approved" | "rejected" | "store_unreachable"
	)
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		SyncRuns,
		FanoutDuration,
		SalesRecorded,
		SalesRejected,
		RestockApprovals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler returns the scrape endpoint for the posnet registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Serve starts a blocking metrics listener on addr.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
