package median

import "testing"

func TestQuickSelectOddSize(t *testing.T) {
	xs := []float64{9, 3, 7, 1, 5, 2, 8}
	original := append([]float64(nil), xs...)

	got := QuickSelect(xs)
	if got != 5 {
		t.Errorf("QuickSelect = %v, want 5", got)
	}
	for i, v := range xs {
		if v != original[i] {
			t.Fatalf("QuickSelect mutated its input at index %d", i)
		}
	}
}

func TestCalcMedianFallsBackForUnoptimisedSizes(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110}
	if got := CalcMedian(xs); got != 60 {
		t.Errorf("CalcMedian(11 elements) = %v, want 60", got)
	}
}

func TestCalcMedianSingleElement(t *testing.T) {
	if got := CalcMedian([]float64{42}); got != 42 {
		t.Errorf("CalcMedian([42]) = %v, want 42", got)
	}
}
