// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Registrations prometheus.Counter
	LoginFailures *prometheus.CounterVec
	TweetsCreated prometheus.Counter
	TweetsDeleted prometheus.Counter
	Comments      prometheus.Counter
	Toggles       *prometheus.CounterVec
	MediaUploads  *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so tests can build many.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of registered users",
		}),
		LoginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Total failed login attempts",
		}, []string{"reason"}),
		TweetsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_created_total",
			Help:      "Total number of tweets created",
		}),
		TweetsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_deleted_total",
			Help:      "Total number of tweets deleted",
		}),
		Comments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Engagement toggles by kind and resulting state",
		}, []string{"kind", "state"}),
		MediaUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Media uploads by folder and outcome",
		}, []string{"folder", "outcome"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests, c.HTTPDuration,
		c.Registrations, c.LoginFailures,
		c.TweetsCreated, c.TweetsDeleted, c.Comments,
		c.Toggles, c.MediaUploads,
	)

	return c
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Toggle records the outcome of an engagement toggle.
func (c *Collector) Toggle(kind string, active bool) {
	state := "off"
	if active {
		state = "on"
	}
	c.Toggles.WithLabelValues(kind, state).Inc()
}

// MediaUpload records the outcome of a media upload.
func (c *Collector) MediaUpload(folder string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.MediaUploads.WithLabelValues(folder, outcome).Inc()
}
