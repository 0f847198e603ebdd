package metrics

import (
	"sync"
	"time"

	"vaultview/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// DBMetricsUpdater is implemented by providers that can also report the
// on-disk size of their database files.
type DBMetricsUpdater interface {
	UpdateDBMetrics()
}

// Stats holds the current frame cache statistics
type Stats struct {
	Entries int64
	Bytes   int64
	Files   int64
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection. Safe to call more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	FrameCacheEntries.Set(float64(stats.Entries))
	FrameCacheBytes.Set(float64(stats.Bytes))
	FrameCacheFiles.Set(float64(stats.Files))

	if u, ok := c.statsProvider.(DBMetricsUpdater); ok {
		u.UpdateDBMetrics()
	}

	logging.Debug("Metrics collected: entries=%d, bytes=%d, files=%d",
		stats.Entries, stats.Bytes, stats.Files)
}
