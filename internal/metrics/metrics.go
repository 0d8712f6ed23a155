package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты операций для меток outcome
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var defaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Collector - метрики сервиса. Все методы допускают nil-получатель.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	GeocoderRequests *prometheus.CounterVec
	GeocoderDuration prometheus.Histogram
	RegionOperations *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	CleanupEvents    *prometheus.CounterVec
}

// New регистрирует метрики в reg (по умолчанию глобальный реестр)
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "region_service_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "region_service_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "route"}),
		GeocoderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "region_service_geocoder_requests_total",
			Help: "External geocoder calls by outcome.",
		}, []string{"outcome"}),
		GeocoderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "region_service_geocoder_duration_seconds",
			Help:    "External geocoder call latency in seconds.",
			Buckets: defaultBuckets,
		}),
		RegionOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "region_service_region_operations_total",
			Help: "Region mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "region_service_cache_lookups_total",
			Help: "User cache lookups by result.",
		}, []string{"result"}),
		CleanupEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "region_service_cleanup_events_total",
			Help: "Region events handled by the cleanup worker by outcome.",
		}, []string{"outcome"}),
	}

	collectors := []prometheus.Collector{
		c.HTTPRequests,
		c.HTTPDuration,
		c.GeocoderRequests,
		c.GeocoderDuration,
		c.RegionOperations,
		c.CacheLookups,
		c.CleanupEvents,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Handler отдаёт метрики в формате Prometheus
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveGeocoder(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.GeocoderRequests.WithLabelValues(outcome).Inc()
	c.GeocoderDuration.Observe(elapsed.Seconds())
}

// RegionOperation учитывает create/update/delete; err == nil - success
func (c *Collector) RegionOperation(operation string, err error) {
	if c == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	c.RegionOperations.WithLabelValues(operation, outcome).Inc()
}

// CacheLookup - result: hit, miss или error
func (c *Collector) CacheLookup(result string) {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

func (c *Collector) CleanupEvent(outcome string) {
	if c == nil {
		return
	}
	c.CleanupEvents.WithLabelValues(outcome).Inc()
}
