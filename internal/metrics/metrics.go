package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gwd_predictions_total",
		Help: "Total number of scored predictions by final label",
	}, []string{"label"})
	alertFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gwd_alert_failures_total",
		Help: "Total number of alert dispatch attempts that failed",
	})
	historyRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gwd_history_rows",
		Help: "Number of rows in the predictions table at the last sweep",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(predictionsTotal, alertFailuresTotal, historyRows)
}

// IncPrediction increments the prediction counter for a label.
func IncPrediction(label string) { predictionsTotal.WithLabelValues(label).Inc() }

// IncAlertFailure increments the failed alert counter.
func IncAlertFailure() { alertFailuresTotal.Inc() }

// SetHistoryRows records the current size of the predictions table.
func SetHistoryRows(n int64) { historyRows.Set(float64(n)) }
