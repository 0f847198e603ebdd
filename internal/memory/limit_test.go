package memory

import (
	"math"
	"runtime/debug"
	"testing"
)

func restoreLimit(t *testing.T) {
	t.Helper()
	prev := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })
}

func TestSetFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		ratio     string
		wantSrc   string
		wantHeap  int64
		wantRatio float64
	}{
		{name: "unset", wantSrc: "none"},
		{name: "invalid limit", limit: "lots", wantSrc: "none"},
		{name: "negative limit", limit: "-5", wantSrc: "none"},
		{name: "default ratio", limit: "1000000", wantSrc: "MEMORY_LIMIT", wantHeap: 750000, wantRatio: DefaultRatio},
		{name: "custom ratio", limit: "1000000", ratio: "0.5", wantSrc: "MEMORY_LIMIT", wantHeap: 500000, wantRatio: 0.5},
		{name: "ratio out of range", limit: "1000000", ratio: "1.5", wantSrc: "MEMORY_LIMIT", wantHeap: 750000, wantRatio: DefaultRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLimit(t)
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", tt.limit)
			t.Setenv("MEMORY_RATIO", tt.ratio)

			got := SetFromEnv()
			if got.Source != tt.wantSrc || got.HeapBytes != tt.wantHeap || got.Ratio != tt.wantRatio {
				t.Errorf("SetFromEnv() = %+v, want source %s heap %d ratio %v", got, tt.wantSrc, tt.wantHeap, tt.wantRatio)
			}
			if tt.wantHeap > 0 {
				if current := debug.SetMemoryLimit(-1); current != tt.wantHeap {
					t.Errorf("runtime limit = %d, want %d", current, tt.wantHeap)
				}
			}
		})
	}
}

func TestSetFromEnvRespectsGOMEMLIMIT(t *testing.T) {
	restoreLimit(t)
	debug.SetMemoryLimit(math.MaxInt64)
	t.Setenv("GOMEMLIMIT", "512MiB")
	t.Setenv("MEMORY_LIMIT", "1000000")

	got := SetFromEnv()
	if got.Source != "GOMEMLIMIT" {
		t.Errorf("Source = %q, want GOMEMLIMIT", got.Source)
	}
	if current := debug.SetMemoryLimit(-1); current != math.MaxInt64 {
		t.Errorf("runtime limit changed to %d", current)
	}
}
