package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveLifecycle(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		duration float64
		want     string
	}{
		{"one second before start", start.Add(-time.Second), 2, LifecycleUpcoming},
		{"exactly at start", start, 2, LifecycleOngoing},
		{"one second before end", start.Add(2*time.Hour - time.Second), 2, LifecycleOngoing},
		{"exactly at end", start.Add(2 * time.Hour), 2, LifecycleFinished},
		{"well after end", start.Add(24 * time.Hour), 2, LifecycleFinished},
		{"fractional duration ongoing", start.Add(25 * time.Minute), 0.5, LifecycleOngoing},
		{"fractional duration finished", start.Add(30 * time.Minute), 0.5, LifecycleFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveLifecycle(tt.now, start, tt.duration))
		})
	}
}

func TestDeriveLifecycleDurationFallback(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// Invalid durations fall back to one hour.
	for _, d := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.Equal(t, LifecycleOngoing, DeriveLifecycle(start.Add(59*time.Minute), start, d))
		require.Equal(t, LifecycleFinished, DeriveLifecycle(start.Add(time.Hour), start, d))
	}
}

func TestDeriveLifecycleIsPure(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(30 * time.Minute)

	first := DeriveLifecycle(now, start, 2)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, DeriveLifecycle(now, start, 2))
	}
}
