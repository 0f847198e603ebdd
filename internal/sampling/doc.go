// Package sampling computes the instants at which thumbnail frames are
// taken from a video.
//
// Two modes are supported:
//
//	fixed     n frames spread evenly, excluding the start and the end
//	interval  one frame every m minutes, strictly before the end
//
// Instants is pure and deterministic. A missing or invalid parameter is an
// error; no default is substituted.
package sampling
