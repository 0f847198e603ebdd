package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaultview/internal/extractor"
	"vaultview/internal/filesystem"
	"vaultview/internal/framecache"
	"vaultview/internal/frames"
	"vaultview/internal/handlers"
	"vaultview/internal/logging"
	"vaultview/internal/memory"
	"vaultview/internal/metrics"
	"vaultview/internal/middleware"
	"vaultview/internal/startup"
	"vaultview/internal/workers"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	memory.SetFromEnv()

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	// Open the frame cache
	cacheStart := time.Now()
	store, err := framecache.Open(context.Background(), config.CachePath)
	if err != nil {
		startup.LogFatal("Failed to open frame cache: %v", err)
	}
	startup.LogCacheInit(store.Path(), time.Since(cacheStart))

	// Initialize decoder
	pool := workers.NewPool(config.FrameWorkers)
	ext := extractor.New(extractor.Config{
		FFmpegPath:  config.FFmpegPath,
		FFprobePath: config.FFprobePath,
	}, pool)
	startup.LogExtractorInit(pool.Size(), ext.Available())

	collector := metrics.NewCollector(store, config.StatsInterval)
	collector.Start()

	// Initialize handlers
	h := handlers.New(frames.NewCoordinator(store, ext), ext, store)

	// Setup router
	router := setupRouter(h, config.MetricsEnabled)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHTTP)

	// Apply logging middleware
	var handler http.Handler = router
	if config.LogHTTP {
		handler = middleware.Logger(middleware.DefaultLoggingConfig())(router)
	}

	// Create server
	srv := &http.Server{
		Addr:         config.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	done := make(chan struct{})
	go handleShutdown(srv, collector, pool, store, done)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		ListenAddr:      config.ListenAddr,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
	<-done
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	if metricsEnabled {
		r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	h.RegisterRoutes(r)
	return r
}

func handleShutdown(srv *http.Server, collector *metrics.Collector, pool *workers.Pool, store *framecache.Store, done chan<- struct{}) {
	defer close(done)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	// Running decoders are not interrupted.
	startup.LogShutdownStep("Waiting for running decoders")
	pool.Wait()
	startup.LogShutdownStepComplete("Decoders finished")

	startup.LogShutdownStep("Closing frame cache")
	if err := store.Close(); err != nil {
		logging.Warn("Frame cache close error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Frame cache closed")
	}

	startup.LogShutdownComplete()
}
