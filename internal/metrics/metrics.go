package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts OOC command invocations by outcome
	// ("ok", "argument_error", "client_error", "error").
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "court_commands_total",
			Help: "Number of OOC commands handled",
		},
		[]string{"command", "result"},
	)

	// WebhookDeliveries counts webhook POSTs by event kind and outcome
	// ("ok", "http_error", "transport_error").
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "court_webhook_deliveries_total",
			Help: "Number of webhook deliveries attempted",
		},
		[]string{"kind", "outcome"},
	)
)
