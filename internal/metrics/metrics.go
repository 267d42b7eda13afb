package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	linksCreated    prometheus.Counter
	rejectedBatches prometheus.Counter
	resolutions     *prometheus.CounterVec
	storedLinks     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "path", "code"}),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "links_created_total",
			Help: "Link records appended to the store",
		}),
		rejectedBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "batches_rejected_total",
			Help: "Submitted batches rejected by validation",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "link_resolutions_total",
			Help: "Short link resolutions by outcome",
		}, []string{"state"}),
		storedLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "links_stored",
			Help: "Records in the store at the last statistics read",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.linksCreated,
		m.rejectedBatches,
		m.resolutions,
		m.storedLinks,
	)
	return m
}

func (m *Metrics) ObserveRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (m *Metrics) AddLinksCreated(n int) {
	if m == nil {
		return
	}
	m.linksCreated.Add(float64(n))
}

func (m *Metrics) IncRejectedBatch() {
	if m == nil {
		return
	}
	m.rejectedBatches.Inc()
}

func (m *Metrics) IncResolution(state string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(state).Inc()
}

func (m *Metrics) SetStoredLinks(n int) {
	if m == nil {
		return
	}
	m.storedLinks.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
