package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_settlements_total",
		Help: "Settled rounds by game and result.",
	}, []string{"game", "result"})

	settlementErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_settlement_errors_total",
		Help: "Failed settlements by game and error kind.",
	}, []string{"game", "error"})

	settlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casino_settlement_duration_seconds",
		Help:    "End-to-end settlement latency, including retries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"game"})

	settlementRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_settlement_conflicts_total",
		Help: "Optimistic-lock conflicts observed during settlement.",
	})
)

// RecordSettlement counts one settled round.
func RecordSettlement(game, result string, elapsed time.Duration) {
	settlementsTotal.WithLabelValues(game, result).Inc()
	settlementDuration.WithLabelValues(game).Observe(elapsed.Seconds())
}

// RecordSettlementError counts one failed settlement.
func RecordSettlementError(game, kind string) {
	settlementErrors.WithLabelValues(game, kind).Inc()
}

// RecordConflict counts one optimistic-lock retry.
func RecordConflict() {
	settlementRetries.Inc()
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
