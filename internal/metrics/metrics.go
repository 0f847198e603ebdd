package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaultview_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaultview_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Frame cache metrics
var (
	FrameCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_frame_cache_lookups_total",
			Help: "Frame cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	FrameCacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_frame_cache_writes_total",
			Help: "Frame cache upserts by status",
		},
		[]string{"status"},
	)

	FrameCacheQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaultview_frame_cache_query_duration_seconds",
			Help:    "Frame cache query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	FrameCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaultview_frame_cache_entries",
			Help: "Number of cached frames",
		},
	)

	FrameCacheBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaultview_frame_cache_bytes",
			Help: "Total size of cached JPEG data in bytes",
		},
	)

	FrameCacheFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaultview_frame_cache_files",
			Help: "Number of distinct video files with cached frames",
		},
	)

	FrameCacheDBSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vaultview_frame_cache_db_size_bytes",
			Help: "Size of SQLite frame cache files in bytes",
		},
		[]string{"file"}, // "main", "wal", "shm"
	)
)

// Extraction metrics
var (
	FrameExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_frame_extractions_total",
			Help: "Decoder invocations for single frames by status",
		},
		[]string{"status"}, // "success", "error", "no_output"
	)

	FrameExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vaultview_frame_extraction_duration_seconds",
			Help:    "Time spent running the decoder for one frame",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_probes_total",
			Help: "Video probes by status",
		},
		[]string{"status"},
	)

	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vaultview_probe_duration_seconds",
			Help:    "Time spent probing video metadata",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	WorkerJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaultview_worker_jobs_in_progress",
			Help: "Decoder jobs currently running",
		},
	)
)

// Tree transform metrics
var (
	TreeRenamesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_tree_renames_total",
			Help: "Renames performed by subtree transforms",
		},
		[]string{"direction", "status"},
	)

	TreeTransformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_tree_transforms_total",
			Help: "Subtree transforms by direction and outcome",
		},
		[]string{"direction", "status"}, // "success", "partial", "error"
	)

	TreeTransformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaultview_tree_transform_duration_seconds",
			Help:    "Subtree transform duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
		},
		[]string{"direction"},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_filesystem_retry_attempts_total",
			Help: "Retries issued after NFS stale file handle errors",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_filesystem_retry_failures_total",
			Help: "Operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultview_filesystem_stale_errors_total",
			Help: "NFS stale file handle errors observed",
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vaultview_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
