package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"vaultview/internal/extractor"
	"vaultview/internal/filesystem"
	"vaultview/internal/framecache"
	"vaultview/internal/logging"
	"vaultview/internal/namecodec"
	"vaultview/internal/obfuscator"
	"vaultview/internal/sampling"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// paramError reports a missing or malformed query or body parameter.
type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.name, e.reason)
}

// walkErrorResponse is the 409 body for a transform that stopped partway.
type walkErrorResponse struct {
	Error      string            `json:"error"`
	Direction  string            `json:"direction"`
	Path       string            `json:"path"`
	FailedStep *obfuscator.Step  `json:"failedStep,omitempty"`
	Committed  []obfuscator.Step `json:"committed"`
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	var (
		walkErr *obfuscator.WalkError
		procErr *extractor.ProcessError
		modeErr *sampling.UnknownModeError
		pErr    *paramError
	)
	switch {
	case errors.As(err, &walkErr):
		return http.StatusConflict
	case errors.As(err, &pErr), errors.As(err, &modeErr):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, filesystem.ErrNotADirectory),
		errors.Is(err, filesystem.ErrNotAFile),
		errors.Is(err, obfuscator.ErrFilesystemRoot),
		errors.Is(err, namecodec.ErrPathTooLong):
		return http.StatusBadRequest
	case errors.Is(err, sampling.ErrMissingCount),
		errors.Is(err, sampling.ErrNegativeCount),
		errors.Is(err, sampling.ErrMissingMinutes),
		errors.Is(err, sampling.ErrIntervalNotPositive),
		errors.Is(err, sampling.ErrInvalidDuration),
		errors.Is(err, sampling.ErrTooManyInstants):
		return http.StatusBadRequest
	case errors.As(err, &procErr), errors.Is(err, extractor.ErrNoOutput):
		return http.StatusBadGateway
	case errors.Is(err, framecache.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with the status statusForError picks. A WalkError
// also reports the renames already committed on disk.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logging.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}

	var walkErr *obfuscator.WalkError
	if errors.As(err, &walkErr) {
		committed := walkErr.Committed
		if committed == nil {
			committed = []obfuscator.Step{}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		writeJSON(w, walkErrorResponse{
			Error:      walkErr.Error(),
			Direction:  walkErr.Direction.String(),
			Path:       walkErr.Path,
			FailedStep: walkErr.Step,
			Committed:  committed,
		})
		return
	}

	writeJSONError(w, err.Error(), status)
}

func requiredParam(q url.Values, name string) (string, error) {
	v := q.Get(name)
	if v == "" {
		return "", &paramError{name: name, reason: "required"}
	}
	return v, nil
}

func floatParam(q url.Values, name string) (float64, bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, &paramError{name: name, reason: fmt.Sprintf("%q is not a number", raw)}
	}
	return v, true, nil
}

func intParam(q url.Values, name string) (int, bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &paramError{name: name, reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return v, true, nil
}

// samplingParams reads mode, count and minutes. Mode is required.
func samplingParams(q url.Values) (sampling.Mode, sampling.Params, error) {
	modeName, err := requiredParam(q, "mode")
	if err != nil {
		return "", sampling.Params{}, err
	}
	mode, err := sampling.ParseMode(modeName)
	if err != nil {
		return "", sampling.Params{}, err
	}

	var params sampling.Params
	count, ok, err := intParam(q, "count")
	if err != nil {
		return "", sampling.Params{}, err
	}
	if ok {
		params.Count = &count
	}
	minutes, ok, err := floatParam(q, "minutes")
	if err != nil {
		return "", sampling.Params{}, err
	}
	if ok {
		params.Minutes = &minutes
	}
	return mode, params, nil
}
