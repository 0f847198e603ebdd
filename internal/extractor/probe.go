package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"vaultview/internal/filesystem"
	"vaultview/internal/metrics"
)

// VideoInfo is the metadata of a video's container and first video stream.
// Zero values mean the field was not reported.
type VideoInfo struct {
	DurationSecs       float64 `json:"durationSecs"`
	FileSizeBytes      int64   `json:"fileSizeBytes"`
	Width              int     `json:"width,omitempty"`
	Height             int     `json:"height,omitempty"`
	DisplayAspectRatio string  `json:"displayAspectRatio,omitempty"`
	Codec              string  `json:"codec,omitempty"`
	Bitrate            int64   `json:"bitrate,omitempty"`
	FrameRate          string  `json:"frameRate,omitempty"`
}

var errMalformedProbe = errors.New("malformed ffprobe output")

// Probe reads duration, bitrate and primary video stream properties of path.
func (e *Extractor) Probe(ctx context.Context, path string) (*VideoInfo, error) {
	fileInfo, err := filesystem.RequireFile(path)
	if err != nil {
		return nil, err
	}

	var (
		out    []byte
		runErr error
	)
	if err := e.pool.Do(ctx, func() {
		out, runErr = e.runProbe(path)
	}); err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}

	info, err := parseProbeOutput(out)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	info.FileSizeBytes = fileInfo.Size()
	return info, nil
}

func (e *Extractor) runProbe(path string) ([]byte, error) {
	start := time.Now()
	cmd := exec.Command(e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration,bit_rate",
		"-show_entries", "stream=width,height,display_aspect_ratio,codec_name,r_frame_rate",
		"-select_streams", "v:0",
		"-of", "json",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.ProbeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProbesTotal.WithLabelValues("error").Inc()
		return nil, &ProcessError{Tool: "ffprobe", Path: path, Stderr: stderr.String(), Err: err}
	}
	metrics.ProbesTotal.WithLabelValues("success").Inc()
	return stdout.Bytes(), nil
}

func parseProbeOutput(out []byte) (*VideoInfo, error) {
	if !gjson.ValidBytes(out) {
		return nil, errMalformedProbe
	}
	doc := gjson.ParseBytes(out)
	info := &VideoInfo{}

	// ffprobe reports format numbers as strings
	if d, err := strconv.ParseFloat(doc.Get("format.duration").String(), 64); err == nil {
		info.DurationSecs = d
	}
	if b, err := strconv.ParseInt(doc.Get("format.bit_rate").String(), 10, 64); err == nil {
		info.Bitrate = b
	}

	stream := doc.Get("streams.0")
	if !stream.Exists() {
		return info, nil
	}

	info.Width = int(stream.Get("width").Int())
	info.Height = int(stream.Get("height").Int())
	info.Codec = stream.Get("codec_name").String()
	if dar := stream.Get("display_aspect_ratio").String(); dar != "0:1" {
		info.DisplayAspectRatio = dar
	}
	if rate := stream.Get("r_frame_rate"); rate.Exists() {
		info.FrameRate = simplifyFrameRate(rate.String())
	}
	return info, nil
}

// simplifyFrameRate turns "30000/1001" into "29.97". Anything it cannot
// divide is returned unchanged.
func simplifyFrameRate(rate string) string {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		return rate
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d <= 0 {
		return rate
	}
	return fmt.Sprintf("%.2f", n/d)
}
