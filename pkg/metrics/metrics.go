package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// CustomAPIBuckets cover fast page renders up to slow storage uploads
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Storage Client Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// BreakerState mirrors gobreaker.State: 0 closed, 1 half-open, 2 open
	BreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"breaker"},
	)

	// Business Metrics
	ReferralSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artium_referral_submissions_total",
			Help: "Total referral submission attempts by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	ReferralSubmissionDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artium_referral_submission_duration_seconds",
			Help:    "Time spent in the submitting state",
			Buckets: CustomAPIBuckets,
		},
		[]string{"kind", "status"},
	)

	AttachmentRejections = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artium_referral_attachment_rejections_total",
			Help: "Total rejected resume selections",
		},
		[]string{"reason"},
	)

	ModeSwitches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artium_referral_mode_switches_total",
			Help: "Total form mode switches by target kind",
		},
		[]string{"kind"},
	)

	ActiveSessions = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "artium_referral_active_sessions",
			Help: "Number of visitor sessions held in memory",
		},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers process collectors and the build info series
func Init(serviceName, version string) {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	buildInfo := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artium_build_info",
			Help: "Build information of the running service",
		},
		[]string{"service_name", "version"},
	)
	buildInfo.WithLabelValues(serviceName, version).Set(1)
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
