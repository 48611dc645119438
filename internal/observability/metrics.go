package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	usersRegisteredTotal   *prometheus.CounterVec
	attendanceLogsRecorded *prometheus.CounterVec
	usersCacheLookups      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		usersRegisteredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "User registration attempts by outcome.",
		}, []string{"result"})

		attendanceLogsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_logs_recorded_total",
			Help: "Attendance log submissions by outcome.",
		}, []string{"result"})

		usersCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "users_cache_lookups_total",
			Help: "User list cache lookups by outcome.",
		}, []string{"result"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, usersRegisteredTotal, attendanceLogsRecorded, usersCacheLookups)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// UsersRegistered exposes the registration outcome counter.
func UsersRegistered() *prometheus.CounterVec {
	RegisterMetrics()
	return usersRegisteredTotal
}

// AttendanceLogsRecorded exposes the attendance submission outcome counter.
func AttendanceLogsRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceLogsRecorded
}

// UsersCacheLookups exposes the user list cache counter.
func UsersCacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return usersCacheLookups
}
