// Package framecache is the persistent store of extracted video frames.
//
// Frames are JPEG blobs in a single SQLite table keyed by the physical file
// path, a fingerprint of the file's modification time, and the instant in
// seconds. A changed modification time yields a different key, so stale
// frames are never served; they simply stop being looked up.
//
// Lookups and writes are best-effort. A failed query is logged and reported
// as a miss, and a failed write is logged and dropped, so callers only ever
// see an error when the store itself has been closed (ErrClosed).
//
// A single Store is opened at startup and shared by every caller. Its mutex
// guards one query at a time and is never held across frame decoding.
package framecache
