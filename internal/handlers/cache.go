package handlers

import (
	"net/http"
)

// CacheStatsResponse describes the frame cache.
type CacheStatsResponse struct {
	Path    string `json:"path"`
	Entries int64  `json:"entries"`
	Bytes   int64  `json:"bytes"`
	Files   int64  `json:"files"`
}

// GetCacheStats returns the frame cache counts.
func (h *Handlers) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, CacheStatsResponse{
		Path:    h.cache.Path(),
		Entries: stats.Entries,
		Bytes:   stats.Bytes,
		Files:   stats.Files,
	})
}
