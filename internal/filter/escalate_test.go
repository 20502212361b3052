package filter

import "testing"

func TestAdp5x5InteriorMatchesFullBlockMedian(t *testing.T) {
	rows := make([][]float64, 7)
	for y := range rows {
		rows[y] = make([]float64, 7)
		for x := range rows[y] {
			rows[y][x] = float64(y*7 + x)
		}
	}
	f := frameFromRows(rows)
	got := adp5x5(f, 3, 3)

	// 5x5 block centred on (3,3) is rows 1..5, cols 1..5 of the ramp.
	var vals []float64
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			vals = append(vals, float64(y*7+x))
		}
	}
	// The ramp's 25 values are already sorted ascending within the block.
	want := vals[12]
	if got != want {
		t.Errorf("adp5x5 interior = %v, want %v", got, want)
	}
}

func TestAdp5x5CornerDuplicatesCentre(t *testing.T) {
	rows := make([][]float64, 5)
	for y := range rows {
		rows[y] = make([]float64, 5)
		for x := range rows[y] {
			rows[y][x] = float64(y*5 + x)
		}
	}
	f := frameFromRows(rows)
	// Should not panic despite clamping at the (0,0) corner.
	_ = adp5x5(f, 0, 0)
}
