// Package metrics exposes Prometheus instrumentation for a ledger run,
// mirroring the promauto/CounterVec style the teacher bank-api uses for
// its HTTP metrics (src/metrics/prometheus.go), scoped here to engine
// events instead of requests. The CLI updates these metrics on every
// run; they are only exposed over HTTP when it is started with
// --metrics-addr or --serve.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ledger-engine/internal/pkg/apperrors"
)

var (
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_events_total",
			Help: "Total number of events submitted to the engine, by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	OverflowErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_overflow_errors_total",
			Help: "Total number of checked-arithmetic overflows encountered.",
		},
	)

	AccountsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_accounts_active",
			Help: "Number of distinct client accounts known to the current run.",
		},
	)
)

// RecordOutcome records one submitted event's disposition. err is the
// error returned from engine.Submit, or nil on success.
func RecordOutcome(kind string, err error) {
	if err == nil {
		EventsTotal.WithLabelValues(kind, "accepted").Inc()
		return
	}
	EventsTotal.WithLabelValues(kind, "rejected").Inc()
	if engErr, ok := err.(apperrors.EngineError); ok && engErr.Kind == apperrors.KindOverflow {
		OverflowErrorsTotal.Inc()
	}
}

// SetAccountsActive updates the active-account gauge after a run
// completes.
func SetAccountsActive(n int) {
	AccountsActive.Set(float64(n))
}
