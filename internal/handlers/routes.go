package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the default Prometheus registry.
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterRoutes installs the API, health and version routes on r.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Tree transforms
	api.HandleFunc("/tree/encode", h.EncodeTree).Methods(http.MethodPost)
	api.HandleFunc("/tree/decode", h.DecodeTree).Methods(http.MethodPost)
	api.HandleFunc("/tree/plan", h.PlanTree).Methods(http.MethodGet)
	api.HandleFunc("/tree/can-encode", h.CanEncode).Methods(http.MethodGet)

	// Video
	api.HandleFunc("/video/frame", h.GetFrame).Methods(http.MethodGet)
	api.HandleFunc("/video/frames", h.GetFrames).Methods(http.MethodGet)
	api.HandleFunc("/video/info", h.GetVideoInfo).Methods(http.MethodGet)
	api.HandleFunc("/video/timestamps", h.GetTimestamps).Methods(http.MethodGet)
	api.HandleFunc("/video/contact-sheet", h.GetContactSheet).Methods(http.MethodGet)

	// Browsing
	api.HandleFunc("/files", h.ListFiles).Methods(http.MethodGet)
	api.HandleFunc("/videos", h.ListVideos).Methods(http.MethodGet)

	api.HandleFunc("/cache/stats", h.GetCacheStats).Methods(http.MethodGet)
}
