package namecodec

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	names := []string{
		"my_folder",
		"Hello World",
		"holiday 2019.mp4",
		"???",    // standard base64 would emit '/'
		">>>~~~", // standard base64 would emit '+'
		"日本語のフォルダ",
		"émigré — ünïcödé",
		".hidden",
		".dat_already looks encoded",
		"a",
		strings.Repeat("x", 180),
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			encoded := Encode(name)
			if !strings.HasPrefix(encoded, Prefix) {
				t.Fatalf("Encode(%q) = %q, missing prefix", name, encoded)
			}
			if strings.ContainsAny(encoded, "/\\\x00") {
				t.Fatalf("Encode(%q) = %q contains a path separator", name, encoded)
			}

			decoded, ok := Decode(encoded)
			if !ok {
				t.Fatalf("Decode(Encode(%q)) reported not encoded", name)
			}
			if decoded != name {
				t.Errorf("Decode(Encode(%q)) = %q", name, decoded)
			}
		})
	}
}

func TestEncodeOfDecodeIsIdentity(t *testing.T) {
	for _, name := range []string{"x", "my_folder", "日本"} {
		physical := Encode(name)
		decoded, ok := Decode(physical)
		if !ok {
			t.Fatalf("Decode(%q) failed", physical)
		}
		if got := Encode(decoded); got != physical {
			t.Errorf("Encode(Decode(%q)) = %q", physical, got)
		}
	}
}

func TestDecodeRejectsMalformedNames(t *testing.T) {
	tests := []struct {
		name     string
		physical string
	}{
		{name: "plain name", physical: "regular_folder"},
		{name: "prefix only", physical: Prefix},
		{name: "not base64", physical: Prefix + "not valid base64!!!"},
		{name: "missing padding", physical: Prefix + "YQ"},
		{name: "non canonical padding bits", physical: Prefix + "YR=="},
		{name: "standard alphabet slash", physical: Prefix + "Pz8/"},
		{name: "invalid utf8 payload", physical: Prefix + "__8="},
		{name: "latin1 bytes", physical: Prefix + "6eg="},
		{name: "coincidental prefix", physical: ".dat_backup"},
		{name: "prefix in the middle", physical: "x" + Encode("folder")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Decode(tt.physical); ok {
				t.Errorf("Decode(%q) = (%q, true), want not encoded", tt.physical, got)
			}
			if IsEncoded(tt.physical) {
				t.Errorf("IsEncoded(%q) = true", tt.physical)
			}
			if got := DisplayName(tt.physical); got != tt.physical {
				t.Errorf("DisplayName(%q) = %q, want physical name", tt.physical, got)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(Encode("Summer Trip")); got != "Summer Trip" {
		t.Errorf("DisplayName(encoded) = %q", got)
	}
	if got := DisplayName("Summer Trip"); got != "Summer Trip" {
		t.Errorf("DisplayName(plain) = %q", got)
	}
}

func TestCanEncode(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "short name under tmp", path: filepath.Join("/tmp", strings.Repeat("a", 10)), want: true},
		{name: "long name under tmp", path: filepath.Join("/tmp", strings.Repeat("a", 200)), want: false},
		{name: "long parent", path: filepath.Join("/", strings.Repeat("p", 240), "clip.mp4"), want: false},
		{name: "nested short", path: "/home/user/videos/clip.mp4", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEncode(tt.path); got != tt.want {
				t.Errorf("CanEncode(%d chars) = %v, want %v (encoded length %d)",
					len(tt.path), got, tt.want, len(EncodedPath(tt.path)))
			}
		})
	}
}

func TestCanEncodeBoundary(t *testing.T) {
	// Find the longest name that still fits under /tmp and check both sides.
	var fits int
	for n := 1; n < 300; n++ {
		if !CanEncode(filepath.Join("/tmp", strings.Repeat("b", n))) {
			break
		}
		fits = n
	}
	if fits == 0 {
		t.Fatal("no name length fits under /tmp")
	}
	if l := len(EncodedPath(filepath.Join("/tmp", strings.Repeat("b", fits)))); l >= MaxPathLength {
		t.Errorf("longest accepted name produces path of length %d", l)
	}
	if l := len(EncodedPath(filepath.Join("/tmp", strings.Repeat("b", fits+3)))); l < MaxPathLength {
		t.Errorf("rejected name produces path of length %d", l)
	}
}
