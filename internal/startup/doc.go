// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration comes from three layers, later ones winning: built-in
// defaults, an optional settings.toml in the data directory, and environment
// variables.
//
//   - DATA_DIR: Directory holding the frame cache and settings.toml
//     (default: the user cache directory + "/vaultview")
//   - LISTEN_ADDR: HTTP listen address (default: 127.0.0.1:8484)
//   - FFMPEG_PATH, FFPROBE_PATH: Decoder binaries (default: looked up on PATH)
//   - FRAME_WORKERS: Maximum concurrent decoder processes, 0 for unbounded
//   - METRICS_ENABLED: Serve /metrics and run the stats collector (default: true)
//   - LOG_HTTP: W3C access logging (default: true)
//   - STATS_INTERVAL: Cache statistics collection interval (default: 1m)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//
// settings.toml uses the same settings in snake case:
//
//	listen_addr = "127.0.0.1:9000"
//	frame_workers = 4
//	stats_interval = "30s"
//	log_level = "debug"
//
// [ResolveConfig] builds the configuration quietly and is what the CLI uses.
// [LoadConfig] additionally prints the banner and logs every setting, as the
// server does at startup.
//
// # Build Information
//
// Version, Commit and BuildTime are injected with -ldflags:
//
//	go build -ldflags "-X vaultview/internal/startup.Version=1.0.0"
package startup
