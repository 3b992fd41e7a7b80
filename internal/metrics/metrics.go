// Package metrics exposes Prometheus metrics for reconcile passes and deliveries.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is used by the services and the notifier
type MetricsCollector interface {
	RecordReconcile(state, action string, duration time.Duration)
	RecordScheduled(count int)
	RecordCancelled(count int)
	RecordCollaboratorFailure(operation string)
	RecordDailyPick()
	RecordCycleReset()
	RecordDelivery(tag string, success bool)
}

// Collector is the Prometheus implementation
type Collector struct {
	reconciles        *prometheus.CounterVec
	reconcileLatency  prometheus.Histogram
	scheduled         prometheus.Counter
	cancelled         prometheus.Counter
	collaboratorFails *prometheus.CounterVec
	dailyPicks        prometheus.Counter
	cycleResets       prometheus.Counter
	deliveries        *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		reconciles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advice_reconcile_total",
			Help: "Reconcile passes by observed queue state and action",
		}, []string{"state", "action"}),
		reconcileLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advice_reconcile_duration_seconds",
			Help:    "Duration of reconcile passes",
			Buckets: prometheus.DefBuckets,
		}),
		scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advice_notifications_scheduled_total",
			Help: "Notification jobs scheduled",
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advice_notifications_cancelled_total",
			Help: "Notification jobs cancelled",
		}),
		collaboratorFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advice_collaborator_failures_total",
			Help: "Failed collaborator calls by operation",
		}, []string{"operation"}),
		dailyPicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advice_daily_picks_total",
			Help: "New daily picks generated",
		}),
		cycleResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advice_cycle_resets_total",
			Help: "Rotation cycles completed",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advice_deliveries_total",
			Help: "Notification deliveries by tag and result",
		}, []string{"tag", "result"}),
	}

	reg.MustRegister(
		c.reconciles,
		c.reconcileLatency,
		c.scheduled,
		c.cancelled,
		c.collaboratorFails,
		c.dailyPicks,
		c.cycleResets,
		c.deliveries,
	)

	return c
}

func (c *Collector) RecordReconcile(state, action string, duration time.Duration) {
	c.reconciles.WithLabelValues(state, action).Inc()
	c.reconcileLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordScheduled(count int) {
	c.scheduled.Add(float64(count))
}

func (c *Collector) RecordCancelled(count int) {
	c.cancelled.Add(float64(count))
}

func (c *Collector) RecordCollaboratorFailure(operation string) {
	c.collaboratorFails.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordDailyPick() {
	c.dailyPicks.Inc()
}

func (c *Collector) RecordCycleReset() {
	c.cycleResets.Inc()
}

func (c *Collector) RecordDelivery(tag string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.deliveries.WithLabelValues(tag, result).Inc()
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
