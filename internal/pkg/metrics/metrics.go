// Package metrics exposes Prometheus collectors for settlement activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the engine's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	wagers      *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	wagered     *prometheus.CounterVec
	paidOut     *prometheus.CounterVec
	redemptions *prometheus.CounterVec
	recovery    *prometheus.CounterVec
	settleTime  *prometheus.HistogramVec
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		wagers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "wagers_settled_total",
			Help:      "Wagers settled, by game and result.",
		}, []string{"game", "result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "wager_rejections_total",
			Help:      "Wagers rejected before settlement, by error code.",
		}, []string{"code"}),
		wagered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "wagered_minor_units_total",
			Help:      "Total amount debited as bets.",
		}, []string{"game"}),
		paidOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "paid_out_minor_units_total",
			Help:      "Total amount credited as payouts.",
		}, []string{"game"}),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "promo_redemptions_total",
			Help:      "Promo redemption attempts, by result.",
		}, []string{"result"}),
		recovery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casino",
			Name:      "recovery_entries_total",
			Help:      "Owed settlements journaled and replayed.",
		}, []string{"event"}),
		settleTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "casino",
			Name:      "settlement_duration_seconds",
			Help:      "Time from debit to settled result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"game"}),
	}

	m.registry.MustRegister(
		m.wagers, m.rejections, m.wagered, m.paidOut, m.redemptions, m.recovery, m.settleTime,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry to expose over HTTP.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WagerSettled records a settled wager.
func (m *Metrics) WagerSettled(game string, won bool, bet, payout int64, seconds float64) {
	if m == nil {
		return
	}
	result := "loss"
	if won {
		result = "win"
	}
	m.wagers.WithLabelValues(game, result).Inc()
	m.wagered.WithLabelValues(game).Add(float64(bet))
	m.paidOut.WithLabelValues(game).Add(float64(payout))
	m.settleTime.WithLabelValues(game).Observe(seconds)
}

// WagerRejected records a wager that never reached settlement.
func (m *Metrics) WagerRejected(code string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(code).Inc()
}

// Redemption records a promo redemption attempt.
func (m *Metrics) Redemption(result string) {
	if m == nil {
		return
	}
	m.redemptions.WithLabelValues(result).Inc()
}

// Recovery records a journal event: "recorded", "replayed" or "journal_failed".
func (m *Metrics) Recovery(event string) {
	if m == nil {
		return
	}
	m.recovery.WithLabelValues(event).Inc()
}
