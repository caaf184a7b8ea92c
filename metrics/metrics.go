package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the relay's collectors on a private registry so tests can
// construct independent instances.
type Metrics struct {
	RoomsCreated      prometheus.Counter
	RoomsLive         prometheus.Gauge
	ConnectionsActive prometheus.Gauge
	MessagesRelayed   prometheus.Counter
	MessagesDiscarded prometheus.Counter
	DeliveryErrors    prometheus.Counter

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_rooms_created_total",
			Help: "Rooms created since process start.",
		}),
		RoomsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_rooms_live",
			Help: "Rooms currently held in the registry. Rooms are never evicted, so this only grows.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_connections_active",
			Help: "Currently admitted connections.",
		}),
		MessagesRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_messages_relayed_total",
			Help: "Binary messages fanned out to room peers.",
		}),
		MessagesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_messages_discarded_total",
			Help: "Text messages dropped by the binary-only relay policy.",
		}),
		DeliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_delivery_errors_total",
			Help: "Per-peer deliveries that failed because the peer queue was closed.",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.RoomsCreated,
		m.RoomsLive,
		m.ConnectionsActive,
		m.MessagesRelayed,
		m.MessagesDiscarded,
		m.DeliveryErrors,
	)
	return m
}

// Handler exposes the collectors in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
