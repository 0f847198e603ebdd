package sampling

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mode selects how sample instants are spaced.
type Mode string

const (
	// ModeFixed takes a fixed number of evenly spaced frames.
	ModeFixed Mode = "fixed"
	// ModeInterval takes one frame per interval.
	ModeInterval Mode = "interval"
)

// MaxInstants caps the number of instants a single plan may produce.
const MaxInstants = 10000

var (
	// ErrMissingCount is returned for ModeFixed without a count.
	ErrMissingCount = errors.New("missing count for fixed mode")
	// ErrNegativeCount is returned for ModeFixed with a count below zero.
	ErrNegativeCount = errors.New("count must not be negative")
	// ErrMissingMinutes is returned for ModeInterval without minutes.
	ErrMissingMinutes = errors.New("missing minutes for interval mode")
	// ErrIntervalNotPositive is returned when the interval is zero or negative.
	ErrIntervalNotPositive = errors.New("interval must be positive")
	// ErrInvalidDuration is returned for a negative or non-finite duration.
	ErrInvalidDuration = errors.New("duration must be a finite, non-negative number")
	// ErrTooManyInstants is returned when a plan would exceed MaxInstants.
	ErrTooManyInstants = fmt.Errorf("plan exceeds %d instants", MaxInstants)
)

// UnknownModeError names a mode that is neither fixed nor interval.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode type: %q", e.Mode)
}

// Params carries the mode-specific parameter. Only the field for the
// selected mode is consulted; nil means absent.
type Params struct {
	Count   *int
	Minutes *float64
}

// Count returns Params for ModeFixed.
func Count(n int) Params {
	return Params{Count: &n}
}

// Minutes returns Params for ModeInterval.
func Minutes(m float64) Params {
	return Params{Minutes: &m}
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case ModeFixed, ModeInterval:
		return m, nil
	}
	return "", &UnknownModeError{Mode: name}
}

// Instants returns the ordered sample instants, in seconds, for a video of
// the given duration.
func Instants(duration float64, mode Mode, params Params) ([]float64, error) {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, ErrInvalidDuration
	}

	switch mode {
	case ModeFixed:
		return fixed(duration, params.Count)
	case ModeInterval:
		return interval(duration, params.Minutes)
	default:
		return nil, &UnknownModeError{Mode: string(mode)}
	}
}

func fixed(duration float64, count *int) ([]float64, error) {
	if count == nil {
		return nil, ErrMissingCount
	}
	n := *count
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n > MaxInstants {
		return nil, ErrTooManyInstants
	}

	out := make([]float64, 0, n)
	step := duration / float64(n+1)
	for i := 1; i <= n; i++ {
		out = append(out, step*float64(i))
	}
	return out, nil
}

func interval(duration float64, minutes *float64) ([]float64, error) {
	if minutes == nil {
		return nil, ErrMissingMinutes
	}
	every := *minutes * 60
	if !(every > 0) {
		return nil, ErrIntervalNotPositive
	}
	if duration/every > MaxInstants+1 {
		return nil, ErrTooManyInstants
	}

	out := []float64{}
	// k*every, not a running sum
	for k := 1; ; k++ {
		t := every * float64(k)
		if t >= duration {
			break
		}
		out = append(out, t)
	}
	return out, nil
}
