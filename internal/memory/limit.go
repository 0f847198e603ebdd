// Package memory sets the Go soft memory limit from a container limit.
//
// Decoders run as child processes outside the Go heap, so only a share of
// the container's memory is given to the runtime.
package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/dustin/go-humanize"

	"vaultview/internal/logging"
)

// DefaultRatio is the share of the container limit given to the Go heap.
const DefaultRatio = 0.75

// Limit describes the memory limit in effect after SetFromEnv.
type Limit struct {
	// Source is "GOMEMLIMIT", "MEMORY_LIMIT" or "none"
	Source         string
	ContainerBytes int64
	HeapBytes      int64
	Ratio          float64
}

// SetFromEnv applies MEMORY_LIMIT (bytes) scaled by MEMORY_RATIO as the
// runtime's soft limit. An explicit GOMEMLIMIT wins and is left alone.
func SetFromEnv() Limit {
	if v := os.Getenv("GOMEMLIMIT"); v != "" {
		limit := Limit{Source: "GOMEMLIMIT"}
		if current := debug.SetMemoryLimit(-1); current > 0 && current < math.MaxInt64 {
			limit.HeapBytes = current
		}
		logging.Info("GOMEMLIMIT set via environment: %s", v)
		return limit
	}

	raw := os.Getenv("MEMORY_LIMIT")
	if raw == "" {
		return Limit{Source: "none"}
	}
	container, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || container <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return Limit{Source: "none"}
	}

	ratio := DefaultRatio
	if v := os.Getenv("MEMORY_RATIO"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 || r > 1 {
			logging.Warn("MEMORY_RATIO %q must be in (0, 1], using %.2f", v, DefaultRatio)
		} else {
			ratio = r
		}
	}

	heap := int64(float64(container) * ratio)
	debug.SetMemoryLimit(heap)
	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		humanize.IBytes(uint64(heap)), ratio*100, humanize.IBytes(uint64(container)))

	return Limit{Source: "MEMORY_LIMIT", ContainerBytes: container, HeapBytes: heap, Ratio: ratio}
}
