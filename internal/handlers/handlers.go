package handlers

import (
	"sync"
	"time"

	"vaultview/internal/extractor"
	"vaultview/internal/framecache"
	"vaultview/internal/frames"
)

type Handlers struct {
	frames    *frames.Coordinator
	extractor *extractor.Extractor
	cache     *framecache.Store
	startTime time.Time

	// treeMu serializes renames so two walks never race over one subtree.
	treeMu sync.Mutex
}

func New(coord *frames.Coordinator, ext *extractor.Extractor, cache *framecache.Store) *Handlers {
	return &Handlers{
		frames:    coord,
		extractor: ext,
		cache:     cache,
		startTime: time.Now(),
	}
}
