package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vaultview/internal/mediatypes"
	"vaultview/internal/namecodec"
)

// excludedNames are never listed.
var excludedNames = map[string]bool{
	".gitignore": true,
}

// Node is one filesystem entry as presented to the GUI. Path is the
// absolute physical path; Name is the display name, decoded when IsEncoded
// and otherwise equal to PhysicalName. HasChildren lets the GUI lazy-load
// directories.
type Node struct {
	Path         string              `json:"path"`
	Name         string              `json:"name"`
	PhysicalName string              `json:"physicalName"`
	IsDir        bool                `json:"isDirectory"`
	IsEncoded    bool                `json:"isEncoded"`
	Type         mediatypes.FileType `json:"type"`
	HasChildren  bool                `json:"hasChildren"`
}

// Describe builds the Node for a single path.
func Describe(path string) (Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Node{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := StatWithRetry(abs, DefaultRetryConfig())
	if err != nil {
		return Node{}, err
	}
	return newNode(abs, info.IsDir()), nil
}

func newNode(path string, isDir bool) Node {
	physical := filepath.Base(path)
	name, encoded := namecodec.Decode(physical)
	if !encoded {
		name = physical
	}

	n := Node{
		Path:         path,
		Name:         name,
		PhysicalName: physical,
		IsDir:        isDir,
		IsEncoded:    encoded,
	}
	if isDir {
		n.Type = mediatypes.FileTypeFolder
		n.HasChildren = hasChildren(path)
	} else {
		n.Type = mediatypes.GetFileType(name)
	}
	return n
}

func hasChildren(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()

	names, _ := f.Readdirnames(1)
	return len(names) > 0
}

// ReadDir lists the entries of dir sorted case-insensitively by display
// name. Symlinks are reported by what they point at.
func ReadDir(dir string) ([]Node, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if _, err := RequireDir(abs); err != nil {
		return nil, err
	}

	entries, err := ReadDirWithRetry(abs, DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", abs, err)
	}

	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		full := filepath.Join(abs, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(full); err == nil {
				isDir = info.IsDir()
			}
		}
		nodes = append(nodes, newNode(full, isDir))
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	return nodes, nil
}
