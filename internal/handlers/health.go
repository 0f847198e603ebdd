package handlers

import (
	"net/http"
	"runtime"
	"time"

	"vaultview/internal/startup"
)

const (
	statusHealthy     = "healthy"
	statusDegraded    = "degraded"
	statusUnavailable = "unavailable"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// DecoderError is set when ffmpeg or ffprobe cannot be found
	DecoderError string `json:"decoderError,omitempty"`
	CacheError   string `json:"cacheError,omitempty"`
	CachedFrames int64  `json:"cachedFrames"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. A missing decoder
// degrades the service; a closed cache makes it unavailable.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	if err := h.extractor.Available(); err != nil {
		response.DecoderError = err.Error()
		response.Status = statusDegraded
	}

	code := http.StatusOK
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		response.CacheError = err.Error()
		response.Status = statusUnavailable
		code = http.StatusServiceUnavailable
	} else {
		response.CachedFrames = stats.Entries
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, response)
	}
}

// GetVersion returns build information. It never touches the cache or decoder.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
