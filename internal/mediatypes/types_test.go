package mediatypes

import "testing"

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name string
		want FileType
	}{
		{"clip.mp4", FileTypeVideo},
		{"CLIP.MKV", FileTypeVideo},
		{"movie.webm", FileTypeVideo},
		{"old.mpeg", FileTypeVideo},
		{"photo.jpg", FileTypeImage},
		{"photo.WEBP", FileTypeImage},
		{"notes.txt", FileTypeOther},
		{"README", FileTypeOther},
		{".mp4", FileTypeVideo},
		{"archive.mp4.zip", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetFileType(tt.name); got != tt.want {
				t.Errorf("GetFileType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsVideo(t *testing.T) {
	for _, name := range []string{"a.mp4", "a.mkv", "a.avi", "a.webm", "a.mov", "a.mpg", "a.mpeg"} {
		if !IsVideo(name) {
			t.Errorf("IsVideo(%q) = false", name)
		}
	}
	for _, name := range []string{"a.jpg", "a.webp", "a", "mp4"} {
		if IsVideo(name) {
			t.Errorf("IsVideo(%q) = true", name)
		}
	}
}

func TestExtensionMapsDoNotOverlap(t *testing.T) {
	for ext := range VideoExtensions {
		if ImageExtensions[ext] {
			t.Errorf("extension %s is both image and video", ext)
		}
	}
}
