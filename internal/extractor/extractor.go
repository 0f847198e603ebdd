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

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"vaultview/internal/filesystem"
	"vaultview/internal/logging"
	"vaultview/internal/metrics"
	"vaultview/internal/workers"
)

// ErrNoOutput is returned when the decoder exits cleanly but writes nothing.
var ErrNoOutput = errors.New("decoder produced no output")

// ProcessError reports a decoder that could not be started or exited with a
// non-zero status.
type ProcessError struct {
	Tool    string
	Path    string
	Instant float64 // only meaningful for ffmpeg
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Tool == "ffmpeg" {
		return fmt.Sprintf("ffmpeg failed at %ss for %s: %s", formatInstant(e.Instant), e.Path, msg)
	}
	return fmt.Sprintf("%s failed for %s: %s", e.Tool, e.Path, msg)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Config names the decoder binaries. Empty fields fall back to looking the
// tools up on PATH.
type Config struct {
	FFmpegPath  string
	FFprobePath string
}

// Extractor invokes ffprobe and ffmpeg on a worker pool.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
	pool        *workers.Pool
}

// New creates an Extractor. A nil pool gets an unbounded one.
func New(cfg Config, pool *workers.Pool) *Extractor {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if pool == nil {
		pool = workers.NewPool(0)
	}
	return &Extractor{
		ffmpegPath:  cfg.FFmpegPath,
		ffprobePath: cfg.FFprobePath,
		pool:        pool,
	}
}

// Available reports whether both binaries can be found.
func (e *Extractor) Available() error {
	for _, bin := range []string{e.ffmpegPath, e.ffprobePath} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found: %w", bin, err)
		}
	}
	return nil
}

// Extract decodes the frame at instant seconds into path and returns it as
// JPEG bytes.
func (e *Extractor) Extract(ctx context.Context, path string, instant float64) ([]byte, error) {
	if _, err := filesystem.RequireFile(path); err != nil {
		return nil, err
	}

	var (
		data   []byte
		runErr error
	)
	if err := e.pool.Do(ctx, func() {
		data, runErr = e.runExtract(path, instant)
	}); err != nil {
		return nil, err
	}
	return data, runErr
}

func (e *Extractor) runExtract(path string, instant float64) ([]byte, error) {
	metrics.WorkerJobsInProgress.Inc()
	defer metrics.WorkerJobsInProgress.Dec()

	start := time.Now()
	cmd := exec.Command(e.ffmpegPath, extractArgs(path, instant)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.FrameExtractionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FrameExtractionsTotal.WithLabelValues("error").Inc()
		perr := &ProcessError{Tool: "ffmpeg", Path: path, Instant: instant, Stderr: stderr.String(), Err: err}
		logging.Warn("%v", perr)
		return nil, perr
	}
	if stdout.Len() == 0 {
		metrics.FrameExtractionsTotal.WithLabelValues("no_output").Inc()
		return nil, fmt.Errorf("%w at %ss for %s", ErrNoOutput, formatInstant(instant), path)
	}

	metrics.FrameExtractionsTotal.WithLabelValues("success").Inc()
	logging.Debug("Extracted frame at %ss from %s (%d bytes) in %v",
		formatInstant(instant), path, stdout.Len(), time.Since(start))
	return stdout.Bytes(), nil
}

// extractArgs seeks before opening the input and writes one MJPEG frame to
// stdout.
func extractArgs(path string, instant float64) []string {
	return ffmpeg.Input(path, ffmpeg.KwArgs{"ss": formatInstant(instant)}).
		Output("pipe:1", ffmpeg.KwArgs{
			"frames:v": 1,
			"f":        "image2pipe",
			"vcodec":   "mjpeg",
		}).
		GetArgs()
}

func formatInstant(instant float64) string {
	return strconv.FormatFloat(instant, 'f', -1, 64)
}
