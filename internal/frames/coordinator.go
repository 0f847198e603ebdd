package frames

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"vaultview/internal/filesystem"
	"vaultview/internal/framecache"
	"vaultview/internal/logging"
	"vaultview/internal/workers"
)

// Cache is the subset of *framecache.Store the coordinator needs.
type Cache interface {
	Get(ctx context.Context, key framecache.Key) ([]byte, bool, error)
	Put(ctx context.Context, key framecache.Key, data []byte)
}

// Source decodes frames; *extractor.Extractor satisfies it.
type Source interface {
	Extract(ctx context.Context, path string, instant float64) ([]byte, error)
}

// Frame is one extracted frame in a batch. Data is base64 in JSON.
type Frame struct {
	Index         int     `json:"index"`
	TimestampSecs float64 `json:"timestampSecs"`
	Data          []byte  `json:"data"`
}

// Coordinator combines the cache and the decoder.
type Coordinator struct {
	cache  Cache
	source Source
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(cache Cache, source Source) *Coordinator {
	return &Coordinator{cache: cache, source: source}
}

// ExtractFrame returns the JPEG frame at instant seconds into path, from the
// cache when the file has not changed since it was stored.
func (c *Coordinator) ExtractFrame(ctx context.Context, path string, instant float64) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := filesystem.RequireFile(abs)
	if err != nil {
		return nil, err
	}
	key := framecache.KeyFor(abs, info, instant)

	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("frame cache unavailable: %w", err)
	}
	if ok {
		logging.Debug("Frame cache hit: %s @ %vs", abs, instant)
		return data, nil
	}

	data, err = c.source.Extract(ctx, abs, instant)
	if err != nil {
		return nil, err
	}

	c.cache.Put(ctx, key, data)
	return data, nil
}

// ExtractFrames extracts the instants concurrently, at most
// workers.ForMixed(len(instants)) at a time, and returns the frames in the
// order of instants. The first failure is returned after all extractions
// have finished.
func (c *Coordinator) ExtractFrames(ctx context.Context, path string, instants []float64) ([]Frame, error) {
	frames := make([]Frame, len(instants))
	errs := make([]error, len(instants))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for n := workers.ForMixed(len(instants)); n > 0 && len(instants) > 0; n-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				data, err := c.ExtractFrame(ctx, path, instants[i])
				frames[i] = Frame{Index: i, TimestampSecs: instants[i], Data: data}
				errs[i] = err
			}
		}()
	}
	for i := range instants {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d at %vs: %w", i, instants[i], err)
		}
	}
	return frames, nil
}
