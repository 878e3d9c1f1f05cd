package strategy

import (
	"math"
	"sort"
)

// A Schedule maps a search depth to an integer threshold. Schedules are
// precomputed into a flat table; lookups in the search loop are one index.
type Schedule struct {
	first int
	vals  []int
}

func (s *Schedule) At(depth int) int {
	if len(s.vals) == 0 || depth < s.first {
		return 0
	}
	i := depth - s.first
	if i >= len(s.vals) {
		i = len(s.vals) - 1
	}
	return s.vals[i]
}

// Max is the schedule's final value.
func (s *Schedule) Max() int {
	if len(s.vals) == 0 {
		return 0
	}
	return s.vals[len(s.vals)-1]
}

func sigmoid(x, mid, steep float64) float64 {
	return 1 / (1 + math.Exp(-steep*(x-mid)))
}

// PrioritySchedule returns the minimum cumulative count of prioritized
// sides required at each depth of phase 1: a smooth sigmoid from 0 at
// startDepth up to total at endDepth. Forcing the count up early skews the
// remaining color distribution, which raises exact-match odds later.
func PrioritySchedule(total, startDepth, endDepth int, steep float64) *Schedule {
	n := endDepth - startDepth + 1
	if n <= 0 || total <= 0 {
		return &Schedule{}
	}
	lo := sigmoid(0, 0.5, steep)
	hi := sigmoid(1, 0.5, steep)
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		if n == 1 {
			x = 1
		}
		vals[i] = int(math.Floor(float64(total) * (sigmoid(x, 0.5, steep) - lo) / (hi - lo)))
	}
	return &Schedule{first: startDepth, vals: vals}
}

// ErrorSchedule returns the maximum cumulative inner-join error count
// allowed at each depth: a logistic curve in depth, scaled so that the
// final depth allows exactly budget errors. An implementation reaching the
// final depth therefore scores at least maxScore-budget.
func ErrorSchedule(budget, startDepth, endDepth int, mid, steep float64) *Schedule {
	n := endDepth - startDepth + 1
	if n <= 0 || budget <= 0 {
		return &Schedule{first: startDepth, vals: []int{0}}
	}
	scale := sigmoid(1, mid, steep)
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		vals[i] = int(math.Floor(float64(budget) * sigmoid(x, mid, steep) / scale))
	}
	vals[n-1] = budget
	return &Schedule{first: startDepth, vals: vals}
}

// SlipSchedule builds an error schedule from explicit unlock depths: the
// allowance at depth d is the number of thresholds at or below d.
func SlipSchedule(unlockDepths []int, startDepth, endDepth int) *Schedule {
	n := endDepth - startDepth + 1
	if n <= 0 {
		return &Schedule{}
	}
	sorted := append([]int(nil), unlockDepths...)
	sort.Ints(sorted)
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		d := startDepth + i
		allowed := 0
		for _, t := range sorted {
			if t <= d {
				allowed++
			}
		}
		vals[i] = allowed
	}
	return &Schedule{first: startDepth, vals: vals}
}
