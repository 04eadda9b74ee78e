package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Recorder collects service and HTTP metrics on its own registry.
// Methods on a nil *Recorder are no-ops.
type Recorder struct {
	registry        *prometheus.Registry
	recommendations *prometheus.CounterVec
	predictions     *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	logins          *prometheus.CounterVec
	inference       *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		recommendations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_crop_recommendations_total",
				Help: "Crop recommendations by outcome",
			},
			[]string{"outcome"},
		),
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_price_predictions_total",
				Help: "Price predictions by outcome",
			},
			[]string{"outcome"},
		),
		registrations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_registrations_total",
				Help: "Registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		logins: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		inference: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farmersconnect_inference_duration_seconds",
				Help:    "Model inference latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_price_cache_lookups_total",
				Help: "Price cache lookups by result",
			},
			[]string{"result"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmersconnect_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farmersconnect_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordRecommendation counts a crop recommendation attempt.
func (r *Recorder) RecordRecommendation(outcome string) {
	if r == nil {
		return
	}
	r.recommendations.WithLabelValues(outcome).Inc()
}

// RecordPrediction counts a price prediction attempt.
func (r *Recorder) RecordPrediction(outcome string) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(outcome).Inc()
}

// RecordRegistration counts a registration attempt.
func (r *Recorder) RecordRegistration(outcome string) {
	if r == nil {
		return
	}
	r.registrations.WithLabelValues(outcome).Inc()
}

// RecordLogin counts a login attempt.
func (r *Recorder) RecordLogin(outcome string) {
	if r == nil {
		return
	}
	r.logins.WithLabelValues(outcome).Inc()
}

// ObserveInference records how long a model call took.
func (r *Recorder) ObserveInference(model string, d time.Duration) {
	if r == nil {
		return
	}
	r.inference.WithLabelValues(model).Observe(d.Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency per matched route.
func (r *Recorder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			r.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
