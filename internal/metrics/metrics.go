// internal/metrics/metrics.go

// Package metrics registers the ledger's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsTotal counts completed payments by funding source.
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minivenmo_payments_total",
		Help: "Completed payments by funding source (balance or card).",
	}, []string{"funding"})

	// PaymentFailuresTotal counts rejected payment attempts.
	PaymentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minivenmo_payment_failures_total",
		Help: "Payment attempts rejected by validation or the card network.",
	})

	// FriendAdditionsTotal counts successful friend additions.
	FriendAdditionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minivenmo_friend_additions_total",
		Help: "Successful friend additions.",
	})

	// UsersCreatedTotal counts registered users.
	UsersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minivenmo_users_created_total",
		Help: "Users registered with the ledger.",
	})
)
