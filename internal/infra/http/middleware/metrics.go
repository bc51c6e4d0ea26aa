package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	campaignsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaigns_created_total",
			Help: "Total number of campaigns created",
		},
	)

	leadsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_ingested_total",
			Help: "Total number of leads ingested from CSV uploads",
		},
	)

	campaignTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_transitions_total",
			Help: "Total number of campaign status transitions",
		},
		[]string{"status"},
	)

	emailsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_delivered_total",
			Help: "Total number of delivery results reported by the send agent",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	campaignsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaigns_by_status",
			Help: "Current number of campaigns per lifecycle status",
		},
		[]string{"status"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordCampaignCreated(leadCount int) {
	campaignsCreated.Inc()
	leadsIngested.Add(float64(leadCount))
}

func RecordTransition(status string) {
	campaignTransitions.WithLabelValues(status).Inc()
}

func RecordDelivery(sent, failed int) {
	emailsDelivered.WithLabelValues("sent").Add(float64(sent))
	emailsDelivered.WithLabelValues("failed").Add(float64(failed))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func SetCampaignsByStatus(status string, count int) {
	campaignsByStatus.WithLabelValues(status).Set(float64(count))
}
