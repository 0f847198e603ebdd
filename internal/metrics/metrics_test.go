package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
		{"FrameCacheLookups", FrameCacheLookups},
		{"FrameCacheWrites", FrameCacheWrites},
		{"FrameCacheQueryDuration", FrameCacheQueryDuration},
		{"FrameExtractionsTotal", FrameExtractionsTotal},
		{"FrameExtractionDuration", FrameExtractionDuration},
		{"ProbesTotal", ProbesTotal},
		{"TreeRenamesTotal", TreeRenamesTotal},
		{"TreeTransformsTotal", TreeTransformsTotal},
		{"FilesystemStaleErrors", FilesystemStaleErrors},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestInitializeMetricsPopulatesLabels(t *testing.T) {
	InitializeMetrics()

	if n := testutil.CollectAndCount(FrameCacheLookups); n != 3 {
		t.Errorf("FrameCacheLookups series = %d, want 3", n)
	}
	if n := testutil.CollectAndCount(TreeTransformsTotal); n != 6 {
		t.Errorf("TreeTransformsTotal series = %d, want 6", n)
	}
	if n := testutil.CollectAndCount(FrameExtractionsTotal); n != 3 {
		t.Errorf("FrameExtractionsTotal series = %d, want 3", n)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat"))
	obs.ObserveStaleError("stat")
	obs.ObserveStaleError("stat")
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat")); got != before+2 {
		t.Errorf("stale errors = %v, want %v", got, before+2)
	}

	before = testutil.ToFloat64(FilesystemRetrySuccess.WithLabelValues("readdir"))
	obs.ObserveRetrySuccess("readdir")
	if got := testutil.ToFloat64(FilesystemRetrySuccess.WithLabelValues("readdir")); got != before+1 {
		t.Errorf("retry success = %v, want %v", got, before+1)
	}

	obs.ObserveRetryAttempt("stat")
	obs.ObserveRetryFailure("stat")
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc123", "go1.25")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}
