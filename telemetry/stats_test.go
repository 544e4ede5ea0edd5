package telemetry

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{5, 1, 4, 2, 3}, 0.5, 3.0},
		{"p90", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 0.9, 9.0},
		{"clamped high", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSeriesStats(t *testing.T) {
	values := []float64{3, 1, 2, 4, 5, 6, 7, 8, 9, 10}
	mean, p90, max := ComputeSeriesStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if max != 10 {
		t.Errorf("max = %v, want 10", max)
	}

	// Input order is preserved
	if values[0] != 3 {
		t.Error("ComputeSeriesStats should not sort its input in place")
	}
}

func TestComputeSeriesStatsEmpty(t *testing.T) {
	mean, p90, max := ComputeSeriesStats(nil)
	if mean != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeIntervalStats(t *testing.T) {
	mean, std, p90 := ComputeIntervalStats([]float64{16, 16, 16, 16})
	if mean != 16 || std != 0 || p90 != 16 {
		t.Errorf("steady intervals: mean=%v std=%v p90=%v", mean, std, p90)
	}

	mean, std, _ = ComputeIntervalStats([]float64{10, 20})
	if mean != 15 || math.Abs(std-math.Sqrt(50)) > 1e-9 {
		t.Errorf("two intervals: mean=%v std=%v, want 15 and %v", mean, std, math.Sqrt(50))
	}

	mean, std, p90 = ComputeIntervalStats([]float64{33})
	if mean != 33 || std != 0 || p90 != 33 {
		t.Errorf("single interval: mean=%v std=%v p90=%v", mean, std, p90)
	}
}
