package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booth_http_requests_total",
		Help: "HTTP requests by route and status class.",
	}, []string{"route", "status"})

	reportsForwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_reports_forwarded_total",
		Help: "Interview reports forwarded to the delivery webhook.",
	})

	reportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_reports_failed_total",
		Help: "Interview report forwards that failed.",
	})

	pdfsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_pdfs_generated_total",
		Help: "Consultation PDFs generated.",
	})
)

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics wraps a handler, counting requests by route and status class.
func withMetrics(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		requestsTotal.WithLabelValues(route, fmt.Sprintf("%dxx", recorder.status/100)).Inc()
	}
}
