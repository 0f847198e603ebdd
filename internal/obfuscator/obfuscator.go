package obfuscator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"vaultview/internal/filesystem"
	"vaultview/internal/logging"
	"vaultview/internal/metrics"
	"vaultview/internal/namecodec"
)

// Direction selects encoding or decoding.
type Direction int

const (
	Encode Direction = iota
	Decode
)

func (d Direction) String() string {
	if d == Decode {
		return "decode"
	}
	return "encode"
}

// ParseDirection parses "encode" or "decode".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encode":
		return Encode, nil
	case "decode":
		return Decode, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

var (
	// ErrTargetExists is returned when a rename would replace an existing entry.
	ErrTargetExists = errors.New("rename target already exists")
	// ErrFilesystemRoot is returned when asked to transform "/" or a volume root.
	ErrFilesystemRoot = errors.New("refusing to rename filesystem root")
)

// Step is one rename in a walk. Index is the step's position in the plan.
type Step struct {
	Index int    `json:"index"`
	From  string `json:"from"`
	To    string `json:"to"`
	IsDir bool   `json:"isDirectory"`
}

// Result describes a completed walk. Root is the root's path after the walk.
type Result struct {
	Root  string `json:"root"`
	Steps []Step `json:"steps"`
}

// WalkError reports the node at which a walk stopped. Step is the rename that
// failed, or nil when listing a directory failed. Committed holds every
// rename completed before the failure.
type WalkError struct {
	Direction Direction
	Path      string
	Step      *Step
	Committed []Step
	Err       error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s stopped at %s after %d committed renames: %v",
		e.Direction, e.Path, len(e.Committed), e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Apply encodes root and everything beneath it.
func Apply(root string) (*Result, error) {
	return run(root, Encode)
}

// Revert decodes root and everything beneath it.
func Revert(root string) (*Result, error) {
	return run(root, Decode)
}

// Plan returns the steps Apply (Encode) or Revert (Decode) would perform on
// root without renaming anything. If the walk would fail, the error is the
// *WalkError it would stop with and the steps are those before it.
func Plan(root string, dir Direction) ([]Step, error) {
	abs, info, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	w := &walker{dir: dir, dryRun: true}
	err = w.visit(abs, abs, info.IsDir())
	return w.steps, err
}

func run(root string, dir Direction) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.TreeTransformDuration.WithLabelValues(dir.String()).Observe(time.Since(start).Seconds())
	}()

	abs, info, err := resolveRoot(root)
	if err != nil {
		metrics.TreeTransformsTotal.WithLabelValues(dir.String(), "error").Inc()
		return nil, err
	}

	logging.Info("Starting %s of %s", dir, abs)

	w := &walker{dir: dir}
	if err := w.visit(abs, abs, info.IsDir()); err != nil {
		status := "error"
		if len(w.steps) > 0 {
			status = "partial"
		}
		metrics.TreeTransformsTotal.WithLabelValues(dir.String(), status).Inc()
		logging.Error("%v", err)
		return nil, err
	}

	metrics.TreeTransformsTotal.WithLabelValues(dir.String(), "success").Inc()
	logging.Info("Finished %s of %s: %d renames in %v", dir, w.root, len(w.steps), time.Since(start))
	return &Result{Root: w.root, Steps: w.steps}, nil
}

func resolveRoot(root string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if filepath.Dir(abs) == abs {
		return "", nil, fmt.Errorf("%w: %s", ErrFilesystemRoot, abs)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return "", nil, err
	}
	return abs, info, nil
}

type walker struct {
	dir    Direction
	dryRun bool
	steps  []Step
	root   string
}

// target returns the wanted name for name and whether it differs.
func (w *walker) target(name string) (string, bool) {
	if w.dir == Encode {
		if namecodec.IsEncoded(name) {
			return name, false
		}
		return namecodec.Encode(name), true
	}

	decoded, ok := namecodec.Decode(name)
	if !ok {
		return name, false
	}
	if !validFileName(decoded) {
		logging.Warn("Leaving %s encoded: decoded name %q is not a valid file name", name, decoded)
		return name, false
	}
	return decoded, true
}

// validFileName rejects decoded names no rename could produce: dot entries,
// names containing a separator, and names with NUL or other control runes.
func validFileName(name string) bool {
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return false
	}
	return strings.IndexFunc(name, unicode.IsControl) < 0
}

// visit processes one node. disk is where the node is on disk right now;
// logical is where it is once every planned rename has happened. They differ
// only in a dry run.
func (w *walker) visit(disk, logical string, isDir bool) error {
	if name, ok := w.target(filepath.Base(logical)); ok {
		to := filepath.Join(filepath.Dir(logical), name)
		if err := w.rename(disk, logical, to, isDir); err != nil {
			return err
		}
		logical = to
		if !w.dryRun {
			disk = to
		}
	}
	if w.root == "" {
		w.root = logical
	}

	if !isDir {
		return nil
	}

	entries, err := filesystem.ReadDirWithRetry(disk, filesystem.DefaultRetryConfig())
	if err != nil {
		return w.fail(logical, nil, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if err := w.visit(filepath.Join(disk, name), filepath.Join(logical, name), entry.IsDir()); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) rename(disk, from, to string, isDir bool) error {
	step := Step{Index: len(w.steps), From: from, To: to, IsDir: isDir}

	if w.dir == Encode && len(to) >= namecodec.MaxPathLength {
		return w.fail(from, &step, namecodec.ErrPathTooLong)
	}

	// os.Rename silently replaces files on most platforms.
	diskTarget := filepath.Join(filepath.Dir(disk), filepath.Base(to))
	if _, err := os.Lstat(diskTarget); err == nil {
		return w.fail(from, &step, fmt.Errorf("%w: %s", ErrTargetExists, diskTarget))
	} else if !errors.Is(err, os.ErrNotExist) {
		return w.fail(from, &step, err)
	}

	if !w.dryRun {
		if err := os.Rename(disk, diskTarget); err != nil {
			metrics.TreeRenamesTotal.WithLabelValues(w.dir.String(), "error").Inc()
			return w.fail(from, &step, err)
		}
		metrics.TreeRenamesTotal.WithLabelValues(w.dir.String(), "success").Inc()
		logging.Debug("Renamed %s -> %s", from, to)
	}

	w.steps = append(w.steps, step)
	return nil
}

func (w *walker) fail(path string, step *Step, err error) error {
	committed := make([]Step, len(w.steps))
	copy(committed, w.steps)
	return &WalkError{
		Direction: w.dir,
		Path:      path,
		Step:      step,
		Committed: committed,
		Err:       err,
	}
}
