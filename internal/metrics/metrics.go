// Package metrics defines the Prometheus collectors for the pairing
// core. Everything is registered on the default registry and exposed
// by the HTTP server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchesCreated counts successful pairings.
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anontalk_matches_created_total",
		Help: "Total number of chat pairings established.",
	})

	// MessagesRelayed counts messages forwarded between partners,
	// labeled by the destination platform.
	MessagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anontalk_messages_relayed_total",
		Help: "Total messages relayed to partners.",
	}, []string{"platform"})

	// DeliveryFailures counts outbound sends the platform rejected.
	DeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anontalk_delivery_failures_total",
		Help: "Total failed deliveries to partners.",
	}, []string{"platform"})

	// ComplaintsFiled counts complaints recorded by the core.
	ComplaintsFiled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anontalk_complaints_filed_total",
		Help: "Total complaints filed by users.",
	})
)
