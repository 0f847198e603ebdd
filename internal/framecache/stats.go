package framecache

import (
	"context"
	"os"
	"time"

	"vaultview/internal/logging"
	"vaultview/internal/metrics"
)

// Stats summarizes the cache contents.
type Stats struct {
	Entries int64 `json:"entries"`
	Bytes   int64 `json:"bytes"`
	Files   int64 `json:"files"`
}

// Stats counts cached frames, their total size and the number of distinct
// files they belong to.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Stats{}, ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(LENGTH(frame_jpeg)), 0), COUNT(DISTINCT file_path)
		FROM frame_cache
	`).Scan(&st.Entries, &st.Bytes, &st.Files)
	metrics.FrameCacheQueryDuration.WithLabelValues("stats").Observe(time.Since(start).Seconds())
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// GetStats implements metrics.StatsProvider.
func (s *Store) GetStats() metrics.Stats {
	st, err := s.Stats(context.Background())
	if err != nil {
		logging.Debug("Frame cache stats unavailable: %v", err)
		return metrics.Stats{}
	}
	return metrics.Stats{Entries: st.Entries, Bytes: st.Bytes, Files: st.Files}
}

// UpdateDBMetrics records the size of the database, WAL and SHM files.
func (s *Store) UpdateDBMetrics() {
	files := map[string]string{
		"main": s.dbPath,
		"wal":  s.dbPath + "-wal",
		"shm":  s.dbPath + "-shm",
	}
	for label, path := range files {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		metrics.FrameCacheDBSizeBytes.WithLabelValues(label).Set(float64(size))
	}
}
