// Package metrics registers the gateway's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SettlementOutcomes counts engine operations by result.
	SettlementOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saldo",
		Subsystem: "settlement",
		Name:      "outcomes_total",
		Help:      "Settlement engine operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// WalletRequests observes wallet RPC latency by method and status class.
	WalletRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "saldo",
		Subsystem: "wallet",
		Name:      "request_duration_seconds",
		Help:      "Wallet RPC duration by method and result.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "result"})

	// CallbackRequests counts inbound provider callbacks.
	CallbackRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saldo",
		Subsystem: "gateway",
		Name:      "callback_requests_total",
		Help:      "Inbound provider callback requests by provider and endpoint.",
	}, []string{"provider", "endpoint"})
)
