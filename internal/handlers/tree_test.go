package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaultview/internal/namecodec"
	"vaultview/internal/obfuscator"
)

func TestEncodeDecodeTree(t *testing.T) {
	env := newTestEnv(t)
	root := filepath.Join(env.dir, "Holiday")
	env.write(filepath.Join(root, "beach.mp4"), []byte("v"))
	env.write(filepath.Join(root, "day 2", "notes.txt"), []byte("n"))

	rec := env.post("/api/tree/encode", map[string]string{"path": root})
	if rec.Code != http.StatusOK {
		t.Fatalf("encode status = %d, body %s", rec.Code, rec.Body.String())
	}
	var encoded obfuscator.Result
	decodeBody(t, rec, &encoded)
	if len(encoded.Steps) != 4 {
		t.Errorf("encode steps = %d, want 4", len(encoded.Steps))
	}
	if want := filepath.Join(env.dir, namecodec.Encode("Holiday")); encoded.Root != want {
		t.Errorf("encoded root = %s, want %s", encoded.Root, want)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("original root still present: %v", err)
	}

	rec = env.post("/api/tree/decode", map[string]string{"path": encoded.Root})
	if rec.Code != http.StatusOK {
		t.Fatalf("decode status = %d, body %s", rec.Code, rec.Body.String())
	}
	var decoded obfuscator.Result
	decodeBody(t, rec, &decoded)
	if decoded.Root != root || len(decoded.Steps) != 4 {
		t.Errorf("decode result = %+v", decoded)
	}
	if _, err := os.Stat(filepath.Join(root, "day 2", "notes.txt")); err != nil {
		t.Errorf("tree not restored: %v", err)
	}
}

func TestEncodeTreeCollision(t *testing.T) {
	env := newTestEnv(t)
	root := filepath.Join(env.dir, "lib")
	env.write(filepath.Join(root, "x"), []byte("plain"))
	env.write(filepath.Join(root, namecodec.Encode("x")), []byte("already encoded"))

	rec := env.post("/api/tree/encode", map[string]string{"path": root})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
	var resp walkErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Direction != "encode" {
		t.Errorf("direction = %q", resp.Direction)
	}
	if len(resp.Committed) != 1 || resp.Committed[0].From != root {
		t.Errorf("committed = %+v, want the root rename", resp.Committed)
	}
	if resp.FailedStep == nil || filepath.Base(resp.FailedStep.From) != "x" {
		t.Errorf("failed step = %+v", resp.FailedStep)
	}
	if !strings.Contains(resp.Error, "already exists") {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestTransformTreeBadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed body", "{", http.StatusBadRequest},
		{"missing path", "{}", http.StatusBadRequest},
		{"missing root", `{"path":"` + filepath.ToSlash(filepath.Join(env.dir, "nope")) + `"}`, http.StatusNotFound},
		{"filesystem root", `{"path":"/"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tree/encode", bytes.NewBufferString(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := env.get("/api/tree/encode", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET encode status = %d, want 405", rec.Code)
	}
}

func TestPlanTree(t *testing.T) {
	env := newTestEnv(t)
	root := filepath.Join(env.dir, "plan")
	env.write(filepath.Join(root, "a.mp4"), []byte("a"))

	rec := env.get("/api/tree/plan", url.Values{"path": {root}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var plan PlanResponse
	decodeBody(t, rec, &plan)
	if plan.Direction != "encode" || len(plan.Steps) != 2 {
		t.Errorf("plan = %+v", plan)
	}
	if _, err := os.Stat(filepath.Join(root, "a.mp4")); err != nil {
		t.Errorf("plan touched the disk: %v", err)
	}

	rec = env.get("/api/tree/plan", url.Values{"path": {root}, "direction": {"decode"}})
	decodeBody(t, rec, &plan)
	if plan.Direction != "decode" || plan.Steps == nil || len(plan.Steps) != 0 {
		t.Errorf("decode plan of a plain tree = %+v", plan)
	}

	if rec := env.get("/api/tree/plan", url.Values{"path": {root}, "direction": {"sideways"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad direction status = %d", rec.Code)
	}
	if rec := env.get("/api/tree/plan", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing path status = %d", rec.Code)
	}
}

func TestCanEncode(t *testing.T) {
	env := newTestEnv(t)

	short := "/videos/clip.mp4"
	rec := env.get("/api/tree/can-encode", url.Values{"path": {short}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp CanEncodeResponse
	decodeBody(t, rec, &resp)
	if !resp.CanEncode || resp.EncodedPath != namecodec.EncodedPath(short) || resp.MaxLength != namecodec.MaxPathLength {
		t.Errorf("short path response = %+v", resp)
	}

	long := "/videos/" + strings.Repeat("n", 200)
	rec = env.get("/api/tree/can-encode", url.Values{"path": {long}})
	decodeBody(t, rec, &resp)
	if resp.CanEncode {
		t.Errorf("long path reported encodable: %+v", resp)
	}
}
