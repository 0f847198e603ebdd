package handlers

import (
	"net/http"
	"time"

	"vaultview/internal/filesystem"
	"vaultview/internal/logging"
)

// ListFiles lists a directory as nodes with display names.
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dir, err := requiredParam(r.URL.Query(), "path")
	if err != nil {
		writeError(w, r, err)
		return
	}

	nodes, err := filesystem.ReadDir(dir)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.Debug("ListFiles %s completed in %v, found %d items", dir, time.Since(start), len(nodes))

	if nodes == nil {
		nodes = []filesystem.Node{}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, nodes)
}

// ListVideos lists every video under a directory, recursively.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	root, err := requiredParam(r.URL.Query(), "path")
	if err != nil {
		writeError(w, r, err)
		return
	}

	videos, err := filesystem.ListVideos(root)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.Debug("ListVideos %s completed in %v, found %d videos", root, time.Since(start), len(videos))

	if videos == nil {
		videos = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, videos)
}
