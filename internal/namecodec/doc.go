// Package namecodec converts between a display name and its obfuscated
// on-disk form.
//
// An encoded name is the marker ".dat_" followed by the URL-safe, padded
// base64 encoding of the display name's UTF-8 bytes:
//
//	holiday 2019  <->  .dat_aG9saWRheSAyMDE5
//
// Physical names are untrusted. A name that merely starts with the marker,
// or whose payload is not canonical base64 of valid UTF-8, is reported as
// not encoded rather than as an error.
package namecodec
