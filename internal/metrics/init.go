package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, result := range []string{"hit", "miss", "error"} {
		FrameCacheLookups.WithLabelValues(result)
	}
	for _, status := range []string{"success", "error"} {
		FrameCacheWrites.WithLabelValues(status)
		ProbesTotal.WithLabelValues(status)
	}
	for _, op := range []string{"get", "put", "stats"} {
		FrameCacheQueryDuration.WithLabelValues(op)
	}
	for _, file := range []string{"main", "wal", "shm"} {
		FrameCacheDBSizeBytes.WithLabelValues(file)
	}

	for _, status := range []string{"success", "error", "no_output"} {
		FrameExtractionsTotal.WithLabelValues(status)
	}

	for _, dir := range []string{"encode", "decode"} {
		TreeRenamesTotal.WithLabelValues(dir, "success")
		TreeRenamesTotal.WithLabelValues(dir, "error")
		for _, status := range []string{"success", "partial", "error"} {
			TreeTransformsTotal.WithLabelValues(dir, status)
		}
		TreeTransformDuration.WithLabelValues(dir)
	}

	for _, op := range []string{"stat", "readdir"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
	}
}
