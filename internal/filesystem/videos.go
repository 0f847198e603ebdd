package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	"vaultview/internal/logging"
	"vaultview/internal/mediatypes"
	"vaultview/internal/namecodec"
	"vaultview/internal/workers"
)

// ListVideos returns the sorted physical paths of every video below root.
// A file counts as a video when its display name has a video extension, so
// encoded files are found too. Unreadable subdirectories are skipped.
func ListVideos(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if _, err := RequireDir(abs); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	videos := make([]string, 0)

	conf := &fastwalk.Config{
		Follow:     true,
		NumWorkers: workers.ForIO(8),
	}

	err = fastwalk.Walk(conf, abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logging.Debug("ListVideos: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !mediatypes.IsVideo(namecodec.DisplayName(d.Name())) {
			return nil
		}

		mu.Lock()
		videos = append(videos, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", abs, err)
	}

	sort.Strings(videos)
	logging.Debug("ListVideos: %d videos under %s", len(videos), abs)
	return videos, nil
}
