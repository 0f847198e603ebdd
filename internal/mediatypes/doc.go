// Package mediatypes classifies files by the extension of their display
// name.
//
// Callers pass the display name, not the physical one: an encoded file
// ".dat_Y2xpcC5tcDQ=" is a video because its display name is "clip.mp4".
//
//	mediatypes.GetFileType(namecodec.DisplayName(physical))
//
// The package has no dependencies so that any other package can import it.
package mediatypes
