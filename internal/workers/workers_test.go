package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv(OverrideEnv, "")

	availableCPU := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		minExpect  int
		maxExpect  int
	}{
		{name: "CPU-bound task", multiplier: 1.0, minExpect: 1, maxExpect: availableCPU},
		{name: "I/O-bound task", multiplier: 2.0, minExpect: 1, maxExpect: availableCPU * 2},
		{name: "Mixed task", multiplier: 1.5, minExpect: 1, maxExpect: maxInt(1, int(float64(availableCPU)*1.5))},
		{name: "Limit lower than calculated", multiplier: 2.0, limit: 2, minExpect: 1, maxExpect: 2},
		{name: "Zero multiplier", multiplier: 0, minExpect: 1, maxExpect: 1},
		{name: "Negative multiplier", multiplier: -1, minExpect: 1, maxExpect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.multiplier, tt.limit)
			if got < tt.minExpect || got > tt.maxExpect {
				t.Errorf("Count(%v, %d) = %d, want between %d and %d",
					tt.multiplier, tt.limit, got, tt.minExpect, tt.maxExpect)
			}
		})
	}
}

func TestCountWithEnvOverride(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		limit    int
		expected int // -1: fall back to calculation
	}{
		{name: "Valid override", envValue: "8", expected: 8},
		{name: "Override capped by limit", envValue: "20", limit: 10, expected: 10},
		{name: "Override below limit", envValue: "5", limit: 10, expected: 5},
		{name: "Non-numeric override", envValue: "invalid", expected: -1},
		{name: "Zero override", envValue: "0", expected: -1},
		{name: "Negative override", envValue: "-5", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(OverrideEnv, tt.envValue)

			got := Count(1.0, tt.limit)
			if tt.expected == -1 {
				if got != maxInt(1, runtime.GOMAXPROCS(0)) {
					t.Errorf("Count with invalid override = %d, want GOMAXPROCS-based value", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("Count(1.0, %d) with %s=%s = %d, want %d",
					tt.limit, OverrideEnv, tt.envValue, got, tt.expected)
			}
		})
	}
}

func TestHelpersRespectLimit(t *testing.T) {
	t.Setenv(OverrideEnv, "")

	helpers := map[string]func(int) int{
		"ForCPU":   ForCPU,
		"ForIO":    ForIO,
		"ForMixed": ForMixed,
	}

	for name, fn := range helpers {
		for _, limit := range []int{1, 4, 8} {
			got := fn(limit)
			if got < 1 || got > limit {
				t.Errorf("%s(%d) = %d, want between 1 and %d", name, limit, got, limit)
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
