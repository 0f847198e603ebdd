package handlers

import (
	"encoding/json"
	"net/http"

	"vaultview/internal/namecodec"
	"vaultview/internal/obfuscator"
)

type treeRequest struct {
	Path string `json:"path"`
}

// PlanResponse lists the renames a transform would perform.
type PlanResponse struct {
	Direction string            `json:"direction"`
	Steps     []obfuscator.Step `json:"steps"`
}

// CanEncodeResponse reports whether a path can be encoded in place.
type CanEncodeResponse struct {
	Path        string `json:"path"`
	EncodedPath string `json:"encodedPath"`
	CanEncode   bool   `json:"canEncode"`
	MaxLength   int    `json:"maxLength"`
}

// EncodeTree encodes the subtree named in the request body.
func (h *Handlers) EncodeTree(w http.ResponseWriter, r *http.Request) {
	h.transformTree(w, r, obfuscator.Apply)
}

// DecodeTree decodes the subtree named in the request body.
func (h *Handlers) DecodeTree(w http.ResponseWriter, r *http.Request) {
	h.transformTree(w, r, obfuscator.Revert)
}

func (h *Handlers) transformTree(w http.ResponseWriter, r *http.Request, fn func(string) (*obfuscator.Result, error)) {
	var req treeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &paramError{name: "body", reason: err.Error()})
		return
	}
	if req.Path == "" {
		writeError(w, r, &paramError{name: "path", reason: "required"})
		return
	}

	h.treeMu.Lock()
	defer h.treeMu.Unlock()

	res, err := fn(req.Path)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if res.Steps == nil {
		res.Steps = []obfuscator.Step{}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, res)
}

// PlanTree returns the renames an encode or decode would perform without
// touching the disk.
func (h *Handlers) PlanTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, err := requiredParam(q, "path")
	if err != nil {
		writeError(w, r, err)
		return
	}
	direction := obfuscator.Encode
	if raw := q.Get("direction"); raw != "" {
		if direction, err = obfuscator.ParseDirection(raw); err != nil {
			writeError(w, r, &paramError{name: "direction", reason: err.Error()})
			return
		}
	}

	h.treeMu.Lock()
	steps, err := obfuscator.Plan(path, direction)
	h.treeMu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if steps == nil {
		steps = []obfuscator.Step{}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, PlanResponse{Direction: direction.String(), Steps: steps})
}

// CanEncode reports whether encoding path's final element stays under the
// path length ceiling.
func (h *Handlers) CanEncode(w http.ResponseWriter, r *http.Request) {
	path, err := requiredParam(r.URL.Query(), "path")
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, CanEncodeResponse{
		Path:        path,
		EncodedPath: namecodec.EncodedPath(path),
		CanEncode:   namecodec.CanEncode(path),
		MaxLength:   namecodec.MaxPathLength,
	})
}
