package frame

import (
	"math"
	"testing"
)

func TestComputeStatsConstant(t *testing.T) {
	f, _ := NewFromData(2, 2, Float64, []float64{5, 5, 5, 5})
	stats := ComputeStats(f)

	if stats.Min != 5 || stats.Max != 5 || stats.Mean != 5 || stats.Median != 5 {
		t.Fatalf("got %+v, want all fields 5", stats)
	}
	if stats.Std != 0 {
		t.Errorf("Std = %v, want 0", stats.Std)
	}
}

func TestComputeStatsKnownValues(t *testing.T) {
	f, _ := NewFromData(4, 1, Float64, []float64{1, 2, 3, 4})
	stats := ComputeStats(f)

	if stats.Min != 1 || stats.Max != 4 {
		t.Fatalf("min/max = %v/%v, want 1/4", stats.Min, stats.Max)
	}
	if stats.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", stats.Mean)
	}
	wantStd := math.Sqrt(1.25)
	if math.Abs(stats.Std-wantStd) > 1e-9 {
		t.Errorf("Std = %v, want %v", stats.Std, wantStd)
	}
}

func TestComputeStatsEmptyFrame(t *testing.T) {
	f := &Frame{}
	stats := ComputeStats(f)
	if stats != (Stats{}) {
		t.Errorf("got %+v, want zero value for an empty frame", stats)
	}
}
