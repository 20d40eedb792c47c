// Package metrics collects and exposes Prometheus metrics for the lab service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kiosk rejection reasons.
const (
	ReasonInvalid     = "invalid"
	ReasonNotFound    = "not_found"
	ReasonUnavailable = "unavailable"
	ReasonNotSignedIn = "not_signed_in"
)

// KioskRecorder receives kiosk workflow events.
type KioskRecorder interface {
	RecordSignIn(unitID string)
	RecordSignOut(unitID string)
	RecordRejected(reason string)
}

// Collector records HTTP and kiosk metrics into a Prometheus registry.
type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	signIns        prometheus.Counter
	signOuts       prometheus.Counter
	rejected       *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comlab_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "comlab_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comlab_kiosk_sign_ins_total",
			Help: "Completed kiosk sign-ins",
		}),
		signOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comlab_kiosk_sign_outs_total",
			Help: "Completed kiosk sign-outs",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comlab_kiosk_rejected_total",
			Help: "Kiosk requests rejected, by reason",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.signIns,
		c.signOuts,
		c.rejected,
	)

	return c
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, latency time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

func (c *Collector) RecordSignIn(string) {
	c.signIns.Inc()
}

func (c *Collector) RecordSignOut(string) {
	c.signOuts.Inc()
}

func (c *Collector) RecordRejected(reason string) {
	c.rejected.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop returns a KioskRecorder that discards everything.
func Nop() KioskRecorder { return nopRecorder{} }

type nopRecorder struct{}

func (nopRecorder) RecordSignIn(string)   {}
func (nopRecorder) RecordSignOut(string)  {}
func (nopRecorder) RecordRejected(string) {}
