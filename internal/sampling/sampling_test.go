package sampling

import (
	"errors"
	"math"
	"testing"
)

func assertInstants(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d instants %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 0.01 {
			t.Errorf("instant[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInstantsFixed(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		count    int
		want     []float64
	}{
		{
			name:     "nine frames over 100s",
			duration: 100,
			count:    9,
			want:     []float64{10, 20, 30, 40, 50, 60, 70, 80, 90},
		},
		{name: "zero count", duration: 100, count: 0, want: []float64{}},
		{name: "single frame is midpoint", duration: 61, count: 1, want: []float64{30.5}},
		{name: "zero duration", duration: 0, count: 2, want: []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Instants(tt.duration, ModeFixed, Count(tt.count))
			if err != nil {
				t.Fatalf("Instants() error = %v", err)
			}
			if got == nil {
				t.Fatal("Instants() returned nil, want empty slice")
			}
			assertInstants(t, got, tt.want)
		})
	}
}

func TestInstantsInterval(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		minutes  float64
		want     []float64
	}{
		{name: "every two minutes over ten", duration: 600, minutes: 2, want: []float64{120, 240, 360, 480}},
		{name: "video shorter than interval", duration: 30, minutes: 1, want: []float64{}},
		{name: "interval equal to duration", duration: 60, minutes: 1, want: []float64{}},
		{name: "fractional minutes", duration: 100, minutes: 0.5, want: []float64{30, 60, 90}},
		{name: "end instant excluded", duration: 180, minutes: 1, want: []float64{60, 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Instants(tt.duration, ModeInterval, Minutes(tt.minutes))
			if err != nil {
				t.Fatalf("Instants() error = %v", err)
			}
			assertInstants(t, got, tt.want)
		})
	}
}

func TestInstantsErrors(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		mode     Mode
		params   Params
		wantErr  error
	}{
		{name: "fixed without count", duration: 100, mode: ModeFixed, wantErr: ErrMissingCount},
		{name: "fixed with minutes only", duration: 100, mode: ModeFixed, params: Minutes(2), wantErr: ErrMissingCount},
		{name: "negative count", duration: 100, mode: ModeFixed, params: Count(-1), wantErr: ErrNegativeCount},
		{name: "interval without minutes", duration: 100, mode: ModeInterval, wantErr: ErrMissingMinutes},
		{name: "zero interval", duration: 100, mode: ModeInterval, params: Minutes(0), wantErr: ErrIntervalNotPositive},
		{name: "negative interval", duration: 100, mode: ModeInterval, params: Minutes(-3), wantErr: ErrIntervalNotPositive},
		{name: "NaN interval", duration: 100, mode: ModeInterval, params: Minutes(math.NaN()), wantErr: ErrIntervalNotPositive},
		{name: "negative duration", duration: -1, mode: ModeFixed, params: Count(1), wantErr: ErrInvalidDuration},
		{name: "NaN duration", duration: math.NaN(), mode: ModeFixed, params: Count(1), wantErr: ErrInvalidDuration},
		{name: "count overflows", duration: 100, mode: ModeFixed, params: Count(math.MaxInt), wantErr: ErrTooManyInstants},
		{name: "count above ceiling", duration: 100, mode: ModeFixed, params: Count(MaxInstants + 1), wantErr: ErrTooManyInstants},
		{name: "tiny interval", duration: 100, mode: ModeInterval, params: Minutes(1e-300), wantErr: ErrTooManyInstants},
		{name: "interval over a huge duration", duration: math.MaxFloat64, mode: ModeInterval, params: Minutes(1), wantErr: ErrTooManyInstants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Instants(tt.duration, tt.mode, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Instants() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Instants() returned %v alongside an error", got)
			}
		})
	}
}

func TestInstantsAtCeiling(t *testing.T) {
	got, err := Instants(100, ModeFixed, Count(MaxInstants))
	if err != nil {
		t.Fatalf("Instants() error = %v", err)
	}
	if len(got) != MaxInstants {
		t.Errorf("len = %d, want %d", len(got), MaxInstants)
	}

	// duration/every == MaxInstants yields MaxInstants-1 instants
	got, err = Instants(60*MaxInstants, ModeInterval, Minutes(1))
	if err != nil {
		t.Fatalf("Instants() error = %v", err)
	}
	if len(got) != MaxInstants-1 {
		t.Errorf("len = %d, want %d", len(got), MaxInstants-1)
	}
}

func TestInstantsUnknownMode(t *testing.T) {
	_, err := Instants(100, Mode("random"), Count(3))
	var unknown *UnknownModeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Instants() error = %v, want *UnknownModeError", err)
	}
	if unknown.Mode != "random" {
		t.Errorf("UnknownModeError.Mode = %q", unknown.Mode)
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"fixed", "interval", " FIXED "} {
		if _, err := ParseMode(name); err != nil {
			t.Errorf("ParseMode(%q) error = %v", name, err)
		}
	}

	_, err := ParseMode("scene")
	var unknown *UnknownModeError
	if !errors.As(err, &unknown) || unknown.Mode != "scene" {
		t.Errorf("ParseMode(scene) error = %v", err)
	}
}

func TestInstantsLongVideoHasNoDrift(t *testing.T) {
	got, err := Instants(10*3600, ModeInterval, Minutes(0.1))
	if err != nil {
		t.Fatalf("Instants() error = %v", err)
	}
	if len(got) != 5999 {
		t.Fatalf("got %d instants, want 5999", len(got))
	}
	if last := got[len(got)-1]; math.Abs(last-35994) > 1e-6 {
		t.Errorf("last instant = %v, want 35994", last)
	}
}
