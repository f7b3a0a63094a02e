package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration prometheus.Histogram
	subjectReqs  *prometheus.CounterVec
	breachChecks *prometheus.CounterVec
	jobRuns      *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataprotection_http_requests_total",
			Help: "HTTP requests by status code",
		}, []string{"code"}),
		httpDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataprotection_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		subjectReqs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataprotection_subject_requests_total",
			Help: "Data subject requests by kind and outcome",
		}, []string{"kind", "outcome"}),
		breachChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataprotection_breach_checks_total",
			Help: "Breach checks by result",
		}, []string{"detected"}),
		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataprotection_job_runs_total",
			Help: "Background job runs by type and status",
		}, []string{"job", "status"}),
	}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordSubjectRequest(kind, outcome string) {
	c.subjectReqs.WithLabelValues(kind, outcome).Inc()
}

func (c *Collector) RecordBreachCheck(detected bool) {
	c.breachChecks.WithLabelValues(strconv.FormatBool(detected)).Inc()
}

func (c *Collector) RecordJobRun(jobType, status string) {
	c.jobRuns.WithLabelValues(jobType, status).Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
