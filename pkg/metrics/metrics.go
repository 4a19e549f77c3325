// Package metrics exposes Prometheus collectors for the prize pool engine and the
// settlement worker. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "prize_pool"

// Metrics holds every collector the service publishes.
type Metrics struct {
	contributions   *prometheus.CounterVec
	contributedUnit prometheus.Counter
	distributions   *prometheus.CounterVec
	payouts         *prometheus.CounterVec
	paidUnits       *prometheus.CounterVec
	retries         *prometheus.CounterVec
	ticketsScanned  prometheus.Counter
	ticketsMatched  *prometheus.CounterVec
	invariant       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil registerer leaves them
// unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		contributions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accumulator",
			Name:      "contributions_total",
			Help:      "Ticket contributions by outcome (accepted, duplicate, closed, failed).",
		}, []string{"result"}),
		contributedUnit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accumulator",
			Name:      "contributed_units_total",
			Help:      "Token units added to pools.",
		}),
		distributions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distributor",
			Name:      "distributions_total",
			Help:      "Distribute calls by outcome (distributed, already_distributed, failed).",
		}, []string{"result"}),
		payouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payout",
			Name:      "records_total",
			Help:      "Payout records by tier and outcome.",
		}, []string{"tier", "result"}),
		paidUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payout",
			Name:      "awarded_units_total",
			Help:      "Token units awarded to winners by tier.",
		}, []string{"tier"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "conflict_retries_total",
			Help:      "Operations retried after a concurrency conflict.",
		}, []string{"operation"}),
		ticketsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "tickets_scanned_total",
			Help:      "Tickets classified by the settlement scan.",
		}),
		ticketsMatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "tickets_matched_total",
			Help:      "Winning tickets found by the settlement scan, by tier.",
		}, []string{"tier"}),
		invariant: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "invariant_violations_total",
			Help:      "Invariant violations detected, by operation.",
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.contributions,
			m.contributedUnit,
			m.distributions,
			m.payouts,
			m.paidUnits,
			m.retries,
			m.ticketsScanned,
			m.ticketsMatched,
			m.invariant,
		)
	}
	return m
}

func (m *Metrics) Contribution(result string, amount int64) {
	if m == nil {
		return
	}
	m.contributions.WithLabelValues(result).Inc()
	if amount > 0 {
		m.contributedUnit.Add(float64(amount))
	}
}

func (m *Metrics) Distribution(result string) {
	if m == nil {
		return
	}
	m.distributions.WithLabelValues(result).Inc()
}

func (m *Metrics) Payout(tier, result string, awarded int64) {
	if m == nil {
		return
	}
	m.payouts.WithLabelValues(tier, result).Inc()
	if awarded > 0 {
		m.paidUnits.WithLabelValues(tier).Add(float64(awarded))
	}
}

func (m *Metrics) Retry(operation string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(operation).Inc()
}

func (m *Metrics) Scanned(n int) {
	if m == nil {
		return
	}
	m.ticketsScanned.Add(float64(n))
}

func (m *Metrics) Matched(tier string) {
	if m == nil {
		return
	}
	m.ticketsMatched.WithLabelValues(tier).Inc()
}

func (m *Metrics) InvariantViolation(operation string) {
	if m == nil {
		return
	}
	m.invariant.WithLabelValues(operation).Inc()
}
