package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Command and query bus metrics
	BusEvents   *prometheus.CounterVec
	BusDuration *prometheus.HistogramVec

	// Insights cache metrics
	CacheLookups       *prometheus.CounterVec
	CacheInvalidations prometheus.Counter
	CacheEvictions     prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry, so tests can create as many as they need.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BusEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bus_events_total",
				Help:      "Commands and queries dispatched, by outcome",
			},
			[]string{"kind", "type", "event"},
		),
		BusDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bus_handler_duration_seconds",
				Help:      "Command and query handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "type"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insights_cache_lookups_total",
				Help:      "Insights cache lookups by result",
			},
			[]string{"result"},
		),
		CacheInvalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insights_cache_invalidations_total",
				Help:      "Insights cache entries invalidated by writes",
			},
		),
		CacheEvictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insights_cache_evictions_total",
				Help:      "Expired insights cache entries removed by the background sweep",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.BusEvents,
		c.BusDuration,
		c.CacheLookups,
		c.CacheInvalidations,
		c.CacheEvictions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry metrics are registered with
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// busTimer observes the elapsed time since it was started
type busTimer struct {
	observer prometheus.Observer
	start    time.Time
}

// Stop records the elapsed duration
func (t *busTimer) Stop() {
	t.observer.Observe(time.Since(t.start).Seconds())
}

// StartTimer starts timing a bus handler. Metric names look like "query_duration".
func (c *Collector) StartTimer(metric, label string) interface{ Stop() } {
	kind, _ := splitMetric(metric)
	return &busTimer{
		observer: c.BusDuration.WithLabelValues(kind, label),
		start:    time.Now(),
	}
}

// Increment counts a bus event. Metric names look like "command_errors".
func (c *Collector) Increment(metric, label string) {
	kind, event := splitMetric(metric)
	c.BusEvents.WithLabelValues(kind, label, event).Inc()
}

// RecordCacheLookup counts an insights cache hit or miss
func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

// RecordCacheInvalidation counts an explicit insights invalidation
func (c *Collector) RecordCacheInvalidation() {
	c.CacheInvalidations.Inc()
}

// RecordCacheSweep counts entries evicted by a background sweep
func (c *Collector) RecordCacheSweep(evicted int) {
	c.CacheEvictions.Add(float64(evicted))
}

func splitMetric(metric string) (kind, event string) {
	kind, event, found := strings.Cut(metric, "_")
	if !found {
		return metric, ""
	}
	return kind, event
}
