// Package extractor runs the external ffprobe and ffmpeg binaries.
//
// Probe reads container and primary video stream metadata. Extract decodes a
// single frame at an instant and returns it as JPEG bytes read from the
// decoder's stdout. Both run on a workers.Pool so the calling goroutine only
// waits; the context bounds the wait for a pool slot but never kills a
// decoder that has already started.
package extractor
