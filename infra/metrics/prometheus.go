// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the ledger event stream.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ledgerbook"

// Collector records request and event metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	ledgerEvents *prometheus.CounterVec
}

// NewCollector creates a Collector backed by its own registry, including the
// Go runtime and process collectors.
func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ledgerEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_events_total",
				Help:      "Total number of committed ledger mutations by event type",
			},
			[]string{"type"},
		),
	}

	for _, collector := range []prometheus.Collector{
		c.httpRequests,
		c.httpLatency,
		c.ledgerEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := c.registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry returns the registry to expose over HTTP.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// CountEvent is an event handler that counts ledger events by type.
func (c *Collector) CountEvent(_ context.Context, event events.Event) error {
	c.ledgerEvents.WithLabelValues(event.Type()).Inc()
	return nil
}

// Subscribe registers CountEvent for every ledger event type on bus.
func (c *Collector) Subscribe(bus eventbus.Bus) {
	for _, t := range []events.EventType{
		events.EventTypeAccountCreated,
		events.EventTypeAccountUpdated,
		events.EventTypeAccountDeleted,
		events.EventTypeTransactionCreated,
		events.EventTypeTransactionUpdated,
		events.EventTypeTransactionDeleted,
	} {
		bus.Register(t, c.CountEvent)
	}
}
