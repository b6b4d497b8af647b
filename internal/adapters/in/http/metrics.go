package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters the HTTP surface maintains. Claim
// outcomes get their own label so lost races are visible separately from
// rejections.
type Metrics struct {
	DeliveriesCreated prometheus.Counter
	ClaimAttempts     *prometheus.CounterVec
	RatingsSubmitted  prometheus.Counter
}

// NewMetrics creates and registers the counters on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		DeliveriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "communitydelivery_deliveries_created_total",
			Help: "Total number of delivery requests created.",
		}),
		ClaimAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "communitydelivery_claim_attempts_total",
			Help: "Claim attempts by outcome (won, lost, rejected).",
		}, []string{"outcome"}),
		RatingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "communitydelivery_ratings_submitted_total",
			Help: "Total number of delivery ratings submitted.",
		}),
	}
}

const (
	claimOutcomeWon      = "won"
	claimOutcomeLost     = "lost"
	claimOutcomeRejected = "rejected"
)
