package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"vaultview/internal/contactsheet"
	"vaultview/internal/frames"
	"vaultview/internal/logging"
	"vaultview/internal/sampling"
)

// FramesResponse carries a batch of frames for one video.
type FramesResponse struct {
	Path         string         `json:"path"`
	DurationSecs float64        `json:"durationSecs"`
	Mode         sampling.Mode  `json:"mode"`
	Frames       []frames.Frame `json:"frames"`
}

// TimestampsResponse carries planned sample instants.
type TimestampsResponse struct {
	DurationSecs float64       `json:"durationSecs"`
	Mode         sampling.Mode `json:"mode"`
	Timestamps   []float64     `json:"timestamps"`
}

// GetFrame returns the JPEG frame at t seconds into path.
func (h *Handlers) GetFrame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, err := requiredParam(q, "path")
	if err != nil {
		writeError(w, r, err)
		return
	}
	instant, ok, err := floatParam(q, "t")
	if err == nil && !ok {
		err = &paramError{name: "t", reason: "required"}
	}
	if err == nil && instant < 0 {
		err = &paramError{name: "t", reason: "must not be negative"}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := h.frames.ExtractFrame(r.Context(), path, instant)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJPEG(w, data)
}

// GetFrames extracts every planned instant of a video. The duration is
// probed unless given.
func (h *Handlers) GetFrames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, mode, duration, instants, err := h.planFromQuery(r, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	batch, err := h.frames.ExtractFrames(r.Context(), path, instants)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, FramesResponse{Path: path, DurationSecs: duration, Mode: mode, Frames: batch})
}

// GetContactSheet tiles the planned frames of a video into one JPEG.
func (h *Handlers) GetContactSheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, _, _, instants, err := h.planFromQuery(r, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var opts contactsheet.Options
	if opts.Columns, _, err = intParam(q, "columns"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.TileWidth, _, err = intParam(q, "width"); err != nil {
		writeError(w, r, err)
		return
	}

	batch, err := h.frames.ExtractFrames(r.Context(), path, instants)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sheet, err := contactsheet.Render(batch, opts)
	if err != nil {
		if errors.Is(err, contactsheet.ErrNoFrames) {
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeError(w, r, err)
		return
	}

	logging.Debug("Contact sheet for %s: %d frames, %d bytes", path, len(batch), len(sheet))
	writeJPEG(w, sheet)
}

// planFromQuery resolves path, the sampling mode and the instants for a
// batch request.
func (h *Handlers) planFromQuery(r *http.Request, q url.Values) (string, sampling.Mode, float64, []float64, error) {
	path, err := requiredParam(q, "path")
	if err != nil {
		return "", "", 0, nil, err
	}
	mode, params, err := samplingParams(q)
	if err != nil {
		return "", "", 0, nil, err
	}

	duration, ok, err := floatParam(q, "duration")
	if err != nil {
		return "", "", 0, nil, err
	}
	if !ok {
		info, err := h.extractor.Probe(r.Context(), path)
		if err != nil {
			return "", "", 0, nil, err
		}
		duration = info.DurationSecs
	}

	instants, err := sampling.Instants(duration, mode, params)
	if err != nil {
		return "", "", 0, nil, err
	}
	return path, mode, duration, instants, nil
}

// GetVideoInfo returns ffprobe metadata for a video.
func (h *Handlers) GetVideoInfo(w http.ResponseWriter, r *http.Request) {
	path, err := requiredParam(r.URL.Query(), "path")
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := h.extractor.Probe(r.Context(), path)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, info)
}

// GetTimestamps plans sample instants for a known duration.
func (h *Handlers) GetTimestamps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	duration, ok, err := floatParam(q, "duration")
	if err == nil && !ok {
		err = &paramError{name: "duration", reason: "required"}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	mode, params, err := samplingParams(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	instants, err := sampling.Instants(duration, mode, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, TimestampsResponse{DurationSecs: duration, Mode: mode, Timestamps: instants})
}

func writeJPEG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		logging.Debug("failed to write image: %v", err)
	}
}
