package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"vaultview/internal/framecache"
	"vaultview/internal/logging"
)

// SettingsFileName is the optional settings file read from the data directory.
const SettingsFileName = "settings.toml"

// Config holds all application configuration
type Config struct {
	DataDir        string
	ListenAddr     string
	FFmpegPath     string
	FFprobePath    string
	FrameWorkers   int
	MetricsEnabled bool
	LogHTTP        bool
	StatsInterval  time.Duration

	// Derived paths
	CachePath    string
	SettingsPath string // empty when no settings file was loaded
}

// fileSettings mirrors settings.toml. Unset keys keep their defaults.
type fileSettings struct {
	ListenAddr     *string `toml:"listen_addr"`
	FFmpegPath     *string `toml:"ffmpeg_path"`
	FFprobePath    *string `toml:"ffprobe_path"`
	FrameWorkers   *int    `toml:"frame_workers"`
	MetricsEnabled *bool   `toml:"metrics_enabled"`
	LogHTTP        *bool   `toml:"log_http"`
	StatsInterval  *string `toml:"stats_interval"`
	LogLevel       *string `toml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:        defaultDataDir(),
		ListenAddr:     "127.0.0.1:8484",
		FFmpegPath:     "ffmpeg",
		FFprobePath:    "ffprobe",
		FrameWorkers:   0,
		MetricsEnabled: true,
		LogHTTP:        true,
		StatsInterval:  time.Minute,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "vaultview")
	}
	return ".vaultview"
}

// ResolveConfig builds the configuration from defaults, the settings file in
// the data directory, and environment variables, in increasing precedence.
// It creates the data directory but logs nothing beyond warnings.
func ResolveConfig() (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)

	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	cfg.DataDir = dataDir

	if err := ensureDirectory(cfg.DataDir, "data"); err != nil {
		return nil, fmt.Errorf("data directory error: %w", err)
	}

	settingsPath := filepath.Join(cfg.DataDir, SettingsFileName)
	loaded, err := applySettingsFile(cfg, settingsPath)
	if err != nil {
		return nil, err
	}
	if loaded {
		cfg.SettingsPath = settingsPath
	}

	applyEnv(cfg)
	cfg.CachePath = filepath.Join(cfg.DataDir, framecache.DBFileName)
	return cfg, nil
}

func applySettingsFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var s fileSettings
	if err := toml.Unmarshal(data, &s); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if s.ListenAddr != nil {
		cfg.ListenAddr = *s.ListenAddr
	}
	if s.FFmpegPath != nil {
		cfg.FFmpegPath = *s.FFmpegPath
	}
	if s.FFprobePath != nil {
		cfg.FFprobePath = *s.FFprobePath
	}
	if s.FrameWorkers != nil {
		cfg.FrameWorkers = *s.FrameWorkers
	}
	if s.MetricsEnabled != nil {
		cfg.MetricsEnabled = *s.MetricsEnabled
	}
	if s.LogHTTP != nil {
		cfg.LogHTTP = *s.LogHTTP
	}
	if s.StatsInterval != nil {
		d, err := time.ParseDuration(*s.StatsInterval)
		if err != nil {
			logging.Warn("Invalid stats_interval %q in %s, keeping %v", *s.StatsInterval, path, cfg.StatsInterval)
		} else {
			cfg.StatsInterval = d
		}
	}
	if s.LogLevel != nil && os.Getenv("LOG_LEVEL") == "" {
		if level, ok := logging.ParseLevel(*s.LogLevel); ok {
			logging.SetLevel(level)
		} else {
			logging.Warn("Invalid log_level %q in %s", *s.LogLevel, path)
		}
	}
	return true, nil
}

func applyEnv(cfg *Config) {
	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.FFmpegPath = getEnv("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.FFprobePath = getEnv("FFPROBE_PATH", cfg.FFprobePath)
	cfg.FrameWorkers = getEnvInt("FRAME_WORKERS", cfg.FrameWorkers)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.LogHTTP = getEnvBool("LOG_HTTP", cfg.LogHTTP)

	if v := os.Getenv("STATS_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			logging.Warn("Invalid STATS_INTERVAL %q, using %v", v, cfg.StatsInterval)
		} else {
			cfg.StatsInterval = d
		}
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = time.Minute
	}
	if cfg.FrameWorkers < 0 {
		cfg.FrameWorkers = 0
	}
}

// LoadConfig resolves the configuration and logs it the way the server does
// at startup.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if cfg.SettingsPath != "" {
		logging.Info("  Settings file:    %s", cfg.SettingsPath)
	}
	logging.Info("  DATA_DIR:         %s", cfg.DataDir)
	logging.Info("  LISTEN_ADDR:      %s", cfg.ListenAddr)
	logging.Info("  FFMPEG_PATH:      %s", cfg.FFmpegPath)
	logging.Info("  FFPROBE_PATH:     %s", cfg.FFprobePath)
	if cfg.FrameWorkers > 0 {
		logging.Info("  FRAME_WORKERS:    %d", cfg.FrameWorkers)
	} else {
		logging.Info("  FRAME_WORKERS:    unbounded")
	}
	logging.Info("  METRICS_ENABLED:  %v", cfg.MetricsEnabled)
	logging.Info("  LOG_HTTP:         %v", cfg.LogHTTP)
	logging.Info("  STATS_INTERVAL:   %v", cfg.StatsInterval)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())
	logging.Info("")

	logging.Debug("  Testing data directory write access...")
	if err := testWriteAccess(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("data directory is not writable (required for frame cache): %w", err)
	}
	logging.Info("  [OK] Data directory is writable")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
