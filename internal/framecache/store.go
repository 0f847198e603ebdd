package framecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"vaultview/internal/logging"
	"vaultview/internal/metrics"
)

// DBFileName is the cache database file created inside the data directory.
const DBFileName = "frame_cache.db"

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// ErrClosed is returned by Get and Stats once the store has been closed.
var ErrClosed = errors.New("frame cache is closed")

// Key identifies one cached frame.
type Key struct {
	Path          string
	Modified      string
	TimestampSecs float64
}

// Fingerprint renders a modification time as whole seconds since the Unix
// epoch. Two writes within the same second share a fingerprint.
func Fingerprint(modTime time.Time) string {
	return strconv.FormatInt(modTime.Unix(), 10)
}

// KeyFor builds the cache key for path as described by info.
func KeyFor(path string, info os.FileInfo, timestampSecs float64) Key {
	return Key{
		Path:          path,
		Modified:      Fingerprint(info.ModTime()),
		TimestampSecs: timestampSecs,
	}
}

// Store is the SQLite-backed frame cache.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
	closed bool
}

// Open opens (creating if necessary) the cache database at dbPath. The parent
// directory must already exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	logging.Info("Frame cache path: %s", dbPath)

	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame cache: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close frame cache after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to frame cache: %w", err)
	}

	// Every query runs under the store mutex, so one connection is enough.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: dbPath}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close frame cache after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize frame cache schema: %w", err)
	}

	logging.Info("Frame cache initialized successfully at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS frame_cache (
		file_path TEXT NOT NULL,
		file_modified TEXT NOT NULL,
		timestamp_secs REAL NOT NULL,
		frame_jpeg BLOB NOT NULL,
		PRIMARY KEY (file_path, file_modified, timestamp_secs)
	);
	`

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Get returns the cached frame for key. A query failure is logged and
// reported as a miss.
func (s *Store) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT frame_jpeg FROM frame_cache WHERE file_path = ? AND file_modified = ? AND timestamp_secs = ?",
		key.Path, key.Modified, key.TimestampSecs,
	).Scan(&data)
	metrics.FrameCacheQueryDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, sql.ErrNoRows):
		metrics.FrameCacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	case err != nil:
		metrics.FrameCacheLookups.WithLabelValues("error").Inc()
		logging.Warn("Frame cache lookup failed for %s @ %.3fs: %v", key.Path, key.TimestampSecs, err)
		return nil, false, nil
	}

	metrics.FrameCacheLookups.WithLabelValues("hit").Inc()
	return data, true, nil
}

// Put stores data under key, replacing any previous frame with the same key.
// Failures, including a closed store, are logged and otherwise ignored.
func (s *Store) Put(ctx context.Context, key Key, data []byte) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		logging.Debug("Frame cache closed, dropping frame for %s @ %.3fs", key.Path, key.TimestampSecs)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO frame_cache (file_path, file_modified, timestamp_secs, frame_jpeg) VALUES (?, ?, ?, ?)",
		key.Path, key.Modified, key.TimestampSecs, data,
	)
	metrics.FrameCacheQueryDuration.WithLabelValues("put").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FrameCacheWrites.WithLabelValues("error").Inc()
		logging.Warn("Frame cache write failed for %s @ %.3fs: %v", key.Path, key.TimestampSecs, err)
		return
	}
	metrics.FrameCacheWrites.WithLabelValues("success").Inc()
}

// Close closes the database. Further Get and Stats calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
