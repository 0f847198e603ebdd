package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the type of a filesystem entry.
type FileType string

const (
	// FileTypeFolder represents a directory.
	FileTypeFolder FileType = "folder"
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".mov":  true,
	".mpg":  true,
	".mpeg": true,
	".wmv":  true,
	".flv":  true,
	".m4v":  true,
	".3gp":  true,
	".ts":   true,
}

// Ext returns the lowercased extension of name, including the dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// GetFileType classifies a file by its display name.
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(name string) FileType {
	ext := Ext(name)
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	return FileTypeOther
}

// IsVideo reports whether name has a video extension.
func IsVideo(name string) bool {
	return VideoExtensions[Ext(name)]
}
