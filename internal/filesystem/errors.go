package filesystem

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotADirectory is returned when a directory was required.
	ErrNotADirectory = errors.New("not a directory")
	// ErrNotAFile is returned when a regular file was required.
	ErrNotAFile = errors.New("not a file")
)

// RequireDir stats path and fails unless it is a directory.
func RequireDir(path string) (os.FileInfo, error) {
	info, err := StatWithRetry(path, DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return info, nil
}

// RequireFile stats path and fails unless it is a regular file.
func RequireFile(path string) (os.FileInfo, error) {
	info, err := StatWithRetry(path, DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return info, nil
}
