// Package metrics provides Prometheus instrumentation for vaultview.
//
// All metrics are registered with promauto and prefixed with "vaultview_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Frame Cache Metrics
//
//   - FrameCacheLookups: Counter of lookups by result (hit/miss/error)
//   - FrameCacheWrites: Counter of upserts by status
//   - FrameCacheQueryDuration: Histogram of SQLite query time by operation
//   - FrameCacheEntries, FrameCacheBytes, FrameCacheFiles: Gauges set by the
//     Collector from the store's statistics
//   - FrameCacheDBSizeBytes: Gauge of database file sizes (main, WAL, SHM)
//
// ## Extraction Metrics
//
//   - FrameExtractionsTotal: Counter of decoder runs by status
//   - FrameExtractionDuration: Histogram of decoder run time
//   - ProbesTotal, ProbeDuration: ffprobe runs
//   - WorkerJobsInProgress: Gauge of decoder jobs currently running
//
// ## Tree Metrics
//
//   - TreeRenamesTotal: Counter of renames by direction and status
//   - TreeTransformsTotal: Counter of encode/decode walks by outcome
//   - TreeTransformDuration: Histogram of walk duration by direction
//
// ## Filesystem Metrics
//
// NFS stale handle retries, recorded through the filesystem.Observer returned
// by NewFilesystemObserver.
//
// # Usage
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	router.Handle("/metrics", promhttp.Handler())
//
// # Collector
//
// Collector polls a StatsProvider on an interval and publishes the cache
// gauges. If the provider also implements DBMetricsUpdater it is asked to
// refresh the database file size gauges on each tick.
package metrics
