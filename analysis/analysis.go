// Package analysis summarizes recorded solve runs: a score histogram and
// basic distribution statistics, for judging whether a heuristic tweak
// actually moved the needle across seeds.
package analysis

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

const histBins = 9

// Summary writes a histogram of run scores plus mean/stddev/min/max.
func Summary(w io.Writer, scores []float64) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "no recorded runs")
		return err
	}
	mean := stat.Mean(scores, nil)
	stddev := stat.StdDev(scores, nil)
	min, max := scores[0], scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	fmt.Fprintf(w, "runs: %d  mean: %.1f  stddev: %.1f  min: %.0f  max: %.0f\n",
		len(scores), mean, stddev, min, max)
	if min == max {
		// One distinct value; a histogram adds nothing.
		return nil
	}
	hist := histogram.Hist(histBins, scores)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
