package framecache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DBFileName)

	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", DBFileName)
	if _, err := Open(context.Background(), path); err == nil {
		t.Fatal("Open() in a missing directory succeeded")
	}
}

func TestGetPut(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := Key{Path: "/videos/a.mp4", Modified: "1700000000", TimestampSecs: 12.5}

	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() on empty store = (ok=%v, err=%v), want miss", ok, err)
	}

	frame := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	s.Put(ctx, key, frame)

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() after Put = (ok=%v, err=%v), want hit", ok, err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("Get() = %v, want %v", got, frame)
	}
}

func TestGetIsExactMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := Key{Path: "/videos/a.mp4", Modified: "1700000000", TimestampSecs: 10}
	s.Put(ctx, key, []byte("frame"))

	tests := []struct {
		name string
		key  Key
	}{
		{"different path", Key{Path: "/videos/b.mp4", Modified: key.Modified, TimestampSecs: key.TimestampSecs}},
		{"different fingerprint", Key{Path: key.Path, Modified: "1700000001", TimestampSecs: key.TimestampSecs}},
		{"different instant", Key{Path: key.Path, Modified: key.Modified, TimestampSecs: 10.001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, tt.key); ok || err != nil {
				t.Errorf("Get(%+v) = (ok=%v, err=%v), want miss", tt.key, ok, err)
			}
		})
	}
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := Key{Path: "/v.mkv", Modified: "1", TimestampSecs: 0}

	s.Put(ctx, key, []byte("old"))
	s.Put(ctx, key, []byte("new"))

	got, ok, _ := s.Get(ctx, key)
	if !ok || string(got) != "new" {
		t.Errorf("Get() = (%q, %v), want (new, true)", got, ok)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Entries != 1 {
		t.Errorf("Entries = %d, want 1", st.Entries)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st != (Stats{}) {
		t.Errorf("Stats() on empty store = %+v", st)
	}

	s.Put(ctx, Key{Path: "/a.mp4", Modified: "1", TimestampSecs: 1}, make([]byte, 100))
	s.Put(ctx, Key{Path: "/a.mp4", Modified: "1", TimestampSecs: 2}, make([]byte, 50))
	s.Put(ctx, Key{Path: "/b.mp4", Modified: "1", TimestampSecs: 1}, make([]byte, 10))

	st, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := Stats{Entries: 3, Bytes: 160, Files: 2}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}

	ms := s.GetStats()
	if ms.Entries != 3 || ms.Bytes != 160 || ms.Files != 2 {
		t.Errorf("GetStats() = %+v", ms)
	}
	s.UpdateDBMetrics()
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)
	ctx := context.Background()
	key := Key{Path: "/a.mp4", Modified: "42", TimestampSecs: 3}

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Put(ctx, key, []byte("jpeg"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if got, ok, _ := s.Get(ctx, key); !ok || string(got) != "jpeg" {
		t.Errorf("Get() after reopen = (%q, %v)", got, ok)
	}
}

func TestClosedStore(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	key := Key{Path: "/a.mp4", Modified: "1", TimestampSecs: 1}

	if _, _, err := s.Get(ctx, key); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Stats(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Stats() after Close error = %v, want ErrClosed", err)
	}

	// Dropped silently
	s.Put(ctx, key, []byte("x"))

	if got := s.GetStats(); got.Entries != 0 {
		t.Errorf("GetStats() after Close = %+v", got)
	}
}

func TestQueryFailureIsMiss(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := Key{Path: "/a.mp4", Modified: "1", TimestampSecs: 1}
	s.Put(ctx, key, []byte("x"))

	if _, err := s.db.ExecContext(ctx, "DROP TABLE frame_cache"); err != nil {
		t.Fatalf("DROP TABLE: %v", err)
	}

	if _, ok, err := s.Get(ctx, key); ok || err != nil {
		t.Errorf("Get() with broken table = (ok=%v, err=%v), want plain miss", ok, err)
	}

	// Write failure must not panic or surface.
	s.Put(ctx, key, []byte("y"))
}

func TestConcurrentAccess(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key{Path: fmt.Sprintf("/v%d.mp4", i%4), Modified: "1", TimestampSecs: float64(i)}
			s.Put(ctx, key, []byte{byte(i)})
			got, ok, err := s.Get(ctx, key)
			if err != nil || !ok || len(got) != 1 || got[0] != byte(i) {
				t.Errorf("goroutine %d: Get() = (%v, %v, %v)", i, got, ok, err)
			}
		}(i)
	}
	wg.Wait()

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Entries != 16 || st.Files != 4 {
		t.Errorf("Stats() = %+v, want 16 entries over 4 files", st)
	}
}

func TestFingerprint(t *testing.T) {
	base := time.Unix(1700000000, 0)

	if got := Fingerprint(base); got != "1700000000" {
		t.Errorf("Fingerprint() = %q", got)
	}
	if Fingerprint(base) != Fingerprint(base.Add(900*time.Millisecond)) {
		t.Error("sub-second changes should share a fingerprint")
	}
	if Fingerprint(base) == Fingerprint(base.Add(time.Second)) {
		t.Error("a one-second change should change the fingerprint")
	}
}

func TestKeyFor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("v"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Unix(1600000000, 0)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	key := KeyFor(path, info, 4.25)
	want := Key{Path: path, Modified: "1600000000", TimestampSecs: 4.25}
	if key != want {
		t.Errorf("KeyFor() = %+v, want %+v", key, want)
	}
}
