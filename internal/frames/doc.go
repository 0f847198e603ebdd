// Package frames serves video frames through the frame cache.
//
// A Coordinator fingerprints the file, asks the cache, and only on a miss
// runs the decoder, storing what it produced. The cache lock is held for the
// lookup and for the write but never while the decoder runs, so concurrent
// requests for different frames decode in parallel. Two simultaneous misses
// on the same key both decode; the later write wins and both callers get
// valid bytes.
package frames
