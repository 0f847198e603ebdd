package namecodec

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Prefix marks a physical name as encoded.
const Prefix = ".dat_"

// MaxPathLength is the exclusive ceiling on the length of an encoded path.
const MaxPathLength = 256

// ErrPathTooLong is returned when an encoded destination would reach
// MaxPathLength.
var ErrPathTooLong = errors.New("encoded path exceeds maximum length")

// Strict decoding rejects non-zero padding bits, so every accepted payload
// re-encodes to the same string.
var payloadEncoding = base64.URLEncoding.Strict()

// Encode returns the on-disk form of a display name.
func Encode(name string) string {
	return Prefix + payloadEncoding.EncodeToString([]byte(name))
}

// Decode returns the display name for an encoded physical name. ok is false
// when the name carries no marker or its payload does not decode to text.
func Decode(physical string) (name string, ok bool) {
	payload, found := strings.CutPrefix(physical, Prefix)
	if !found || payload == "" {
		return "", false
	}

	raw, err := payloadEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// IsEncoded reports whether physical decodes successfully.
func IsEncoded(physical string) bool {
	_, ok := Decode(physical)
	return ok
}

// DisplayName returns the decoded name, or physical itself when it is not
// encoded.
func DisplayName(physical string) string {
	if name, ok := Decode(physical); ok {
		return name
	}
	return physical
}

// EncodedPath returns the path path would have after its final element is
// encoded in place.
func EncodedPath(path string) string {
	return filepath.Join(filepath.Dir(path), Encode(filepath.Base(path)))
}

// CanEncode reports whether encoding the final element of path keeps the
// resulting path under MaxPathLength. The check is against the destination
// path, not the name alone.
func CanEncode(path string) bool {
	return len(EncodedPath(path)) < MaxPathLength
}
