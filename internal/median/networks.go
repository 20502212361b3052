// Package median implements fixed-size optimal median selectors
// (sorting networks), a quick-select fallback for arbitrary sizes, and
// a dual-heap running-window median (the Mediator), based on Nicolas
// Devillard's public domain opt_medN networks and ashelly's Mediator.
package median

// pixSort conditionally swaps p[a] and p[b] so that p[a] <= p[b].
func pixSort(p []float64, a, b int) {
	if p[a] > p[b] {
		p[a], p[b] = p[b], p[a]
	}
}

// OptMed2 returns the median (mean) of exactly 2 samples. in is left
// unmodified.
func OptMed2(in []float64) float64 {
	return (in[0] + in[1]) * 0.5
}

// OptMed3 returns the median of exactly 3 samples via a minimal
// compare-and-swap network. p is mutated as scratch.
func OptMed3(p []float64) float64 {
	pixSort(p, 0, 1)
	pixSort(p, 1, 2)
	pixSort(p, 0, 1)
	return p[1]
}

// OptMed4 returns the median (mean of the two central elements) of
// exactly 4 samples.
func OptMed4(p []float64) float64 {
	pixSort(p, 0, 2)
	pixSort(p, 1, 3)
	pixSort(p, 0, 1)
	pixSort(p, 2, 3)
	return (p[1] + p[2]) * 0.5
}

// OptMed5 returns the median of exactly 5 samples.
func OptMed5(p []float64) float64 {
	pixSort(p, 0, 1)
	pixSort(p, 3, 4)
	pixSort(p, 0, 3)
	pixSort(p, 1, 4)
	pixSort(p, 1, 2)
	pixSort(p, 2, 3)
	pixSort(p, 1, 2)
	return p[2]
}

// OptMed6 returns the median (mean of the two central elements) of
// exactly 6 samples. From Havlicek, Sakady & Katz, "Fast, Efficient
// Median Filters With Even Length Windows".
func OptMed6(p []float64) float64 {
	pixSort(p, 1, 2)
	pixSort(p, 3, 4)
	pixSort(p, 0, 1)
	pixSort(p, 2, 3)
	pixSort(p, 4, 5)
	pixSort(p, 1, 2)
	pixSort(p, 3, 4)
	pixSort(p, 0, 1)
	pixSort(p, 2, 3)
	pixSort(p, 4, 5)
	pixSort(p, 1, 2)
	pixSort(p, 3, 4)
	return (p[2] + p[3]) * 0.5
}

// OptMed7 returns the median of exactly 7 samples.
func OptMed7(p []float64) float64 {
	pixSort(p, 0, 5)
	pixSort(p, 0, 3)
	pixSort(p, 1, 6)
	pixSort(p, 2, 4)
	pixSort(p, 0, 1)
	pixSort(p, 3, 5)
	pixSort(p, 2, 6)
	pixSort(p, 2, 3)
	pixSort(p, 3, 6)
	pixSort(p, 4, 5)
	pixSort(p, 1, 4)
	pixSort(p, 1, 3)
	pixSort(p, 3, 4)
	return p[3]
}

// OptMed8 returns the median (mean of the two central elements) of
// exactly 8 samples, an optimal Batcher sorting network.
func OptMed8(p []float64) float64 {
	pixSort(p, 0, 4)
	pixSort(p, 1, 5)
	pixSort(p, 2, 6)
	pixSort(p, 3, 7)
	pixSort(p, 0, 2)
	pixSort(p, 1, 3)
	pixSort(p, 4, 6)
	pixSort(p, 5, 7)
	pixSort(p, 2, 4)
	pixSort(p, 3, 5)
	pixSort(p, 0, 1)
	pixSort(p, 2, 3)
	pixSort(p, 4, 5)
	pixSort(p, 6, 7)
	pixSort(p, 1, 4)
	pixSort(p, 3, 6)
	return (p[3] + p[4]) * 0.5
}

// OptMed9 returns the median of exactly 9 samples.
func OptMed9(p []float64) float64 {
	pixSort(p, 1, 2)
	pixSort(p, 4, 5)
	pixSort(p, 7, 8)
	pixSort(p, 0, 1)
	pixSort(p, 3, 4)
	pixSort(p, 6, 7)
	pixSort(p, 1, 2)
	pixSort(p, 4, 5)
	pixSort(p, 7, 8)
	pixSort(p, 0, 3)
	pixSort(p, 5, 8)
	pixSort(p, 4, 7)
	pixSort(p, 3, 6)
	pixSort(p, 1, 4)
	pixSort(p, 2, 5)
	pixSort(p, 4, 7)
	pixSort(p, 4, 2)
	pixSort(p, 6, 4)
	pixSort(p, 4, 2)
	return p[4]
}

// OptMed16 returns the median (mean of the two central elements) of
// exactly 16 samples.
func OptMed16(p []float64) float64 {
	pixSort(p, 0, 8)
	pixSort(p, 1, 9)
	pixSort(p, 2, 10)
	pixSort(p, 3, 11)
	pixSort(p, 4, 12)
	pixSort(p, 5, 13)
	pixSort(p, 6, 14)
	pixSort(p, 7, 15)
	pixSort(p, 0, 4)
	pixSort(p, 1, 5)
	pixSort(p, 2, 6)
	pixSort(p, 3, 7)
	pixSort(p, 8, 12)
	pixSort(p, 9, 13)
	pixSort(p, 10, 14)
	pixSort(p, 11, 15)
	pixSort(p, 4, 8)
	pixSort(p, 5, 9)
	pixSort(p, 6, 10)
	pixSort(p, 7, 11)
	pixSort(p, 0, 2)
	pixSort(p, 1, 3)
	pixSort(p, 4, 6)
	pixSort(p, 5, 7)
	pixSort(p, 8, 10)
	pixSort(p, 9, 11)
	pixSort(p, 12, 14)
	pixSort(p, 13, 15)
	pixSort(p, 2, 8)
	pixSort(p, 3, 9)
	pixSort(p, 6, 12)
	pixSort(p, 7, 13)
	pixSort(p, 2, 4)
	pixSort(p, 3, 5)
	pixSort(p, 6, 8)
	pixSort(p, 7, 9)
	pixSort(p, 10, 12)
	pixSort(p, 11, 13)
	pixSort(p, 0, 1)
	pixSort(p, 2, 3)
	pixSort(p, 4, 5)
	pixSort(p, 6, 7)
	pixSort(p, 8, 9)
	pixSort(p, 10, 11)
	pixSort(p, 12, 13)
	pixSort(p, 14, 15)
	pixSort(p, 1, 8)
	pixSort(p, 3, 10)
	pixSort(p, 5, 12)
	pixSort(p, 7, 14)
	pixSort(p, 5, 8)
	pixSort(p, 7, 10)
	return (p[7] + p[8]) * 0.5
}

// OptMed25 returns the median of exactly 25 samples, used by the
// adaptive-median 5x5 escalation fallback.
func OptMed25(p []float64) float64 {
	pixSort(p, 0, 1)
	pixSort(p, 3, 4)
	pixSort(p, 2, 4)
	pixSort(p, 2, 3)
	pixSort(p, 6, 7)
	pixSort(p, 5, 7)
	pixSort(p, 5, 6)
	pixSort(p, 9, 10)
	pixSort(p, 8, 10)
	pixSort(p, 8, 9)
	pixSort(p, 12, 13)
	pixSort(p, 11, 13)
	pixSort(p, 11, 12)
	pixSort(p, 15, 16)
	pixSort(p, 14, 16)
	pixSort(p, 14, 15)
	pixSort(p, 18, 19)
	pixSort(p, 17, 19)
	pixSort(p, 17, 18)
	pixSort(p, 21, 22)
	pixSort(p, 20, 22)
	pixSort(p, 20, 21)
	pixSort(p, 23, 24)
	pixSort(p, 2, 5)
	pixSort(p, 3, 6)
	pixSort(p, 0, 6)
	pixSort(p, 0, 3)
	pixSort(p, 4, 7)
	pixSort(p, 1, 7)
	pixSort(p, 1, 4)
	pixSort(p, 11, 14)
	pixSort(p, 8, 14)
	pixSort(p, 8, 11)
	pixSort(p, 12, 15)
	pixSort(p, 9, 15)
	pixSort(p, 9, 12)
	pixSort(p, 13, 16)
	pixSort(p, 10, 16)
	pixSort(p, 10, 13)
	pixSort(p, 20, 23)
	pixSort(p, 17, 23)
	pixSort(p, 17, 20)
	pixSort(p, 21, 24)
	pixSort(p, 18, 24)
	pixSort(p, 18, 21)
	pixSort(p, 19, 22)
	pixSort(p, 8, 17)
	pixSort(p, 9, 18)
	pixSort(p, 0, 18)
	pixSort(p, 0, 9)
	pixSort(p, 10, 19)
	pixSort(p, 1, 19)
	pixSort(p, 1, 10)
	pixSort(p, 11, 20)
	pixSort(p, 2, 20)
	pixSort(p, 2, 11)
	pixSort(p, 12, 21)
	pixSort(p, 3, 21)
	pixSort(p, 3, 12)
	pixSort(p, 13, 22)
	pixSort(p, 4, 22)
	pixSort(p, 4, 13)
	pixSort(p, 14, 23)
	pixSort(p, 5, 23)
	pixSort(p, 5, 14)
	pixSort(p, 15, 24)
	pixSort(p, 6, 24)
	pixSort(p, 6, 15)
	pixSort(p, 7, 16)
	pixSort(p, 7, 19)
	pixSort(p, 13, 21)
	pixSort(p, 15, 23)
	pixSort(p, 7, 13)
	pixSort(p, 7, 15)
	pixSort(p, 1, 9)
	pixSort(p, 3, 11)
	pixSort(p, 5, 17)
	pixSort(p, 11, 17)
	pixSort(p, 9, 17)
	pixSort(p, 4, 10)
	pixSort(p, 6, 12)
	pixSort(p, 7, 14)
	pixSort(p, 4, 6)
	pixSort(p, 4, 7)
	pixSort(p, 12, 14)
	pixSort(p, 10, 14)
	pixSort(p, 6, 7)
	pixSort(p, 10, 12)
	pixSort(p, 6, 10)
	pixSort(p, 6, 17)
	pixSort(p, 12, 17)
	pixSort(p, 7, 17)
	pixSort(p, 7, 10)
	pixSort(p, 12, 18)
	pixSort(p, 7, 12)
	pixSort(p, 10, 18)
	pixSort(p, 12, 20)
	pixSort(p, 10, 20)
	pixSort(p, 10, 12)
	return p[12]
}

// networks maps N to the optimal selector for exactly N samples: 2..9,
// 16, 25.
var networks = map[int]func([]float64) float64{
	2: OptMed2, 3: OptMed3, 4: OptMed4, 5: OptMed5,
	6: OptMed6, 7: OptMed7, 8: OptMed8, 9: OptMed9,
	16: OptMed16, 25: OptMed25,
}
