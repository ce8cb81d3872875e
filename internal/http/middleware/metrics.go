package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	Harvests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_harvests_total",
			Help: "Harvest attempts by outcome",
		},
		[]string{"outcome"},
	)
	Purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_purchases_total",
			Help: "Equipment purchases by outcome",
		},
		[]string{"outcome"},
	)
	Withdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_withdrawals_total",
			Help: "Withdrawal requests by outcome",
		},
		[]string{"outcome"},
	)
	DepositsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "economy_deposit_claims_total",
			Help: "Deposit claims submitted by players",
		},
	)
	DepositReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_deposit_reviews_total",
			Help: "Operator deposit reviews by action",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests, RLBlocked,
		Harvests, Purchases, Withdrawals, DepositsSubmitted, DepositReviews)
}
