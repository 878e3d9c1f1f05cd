package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSummaryEmpty(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(Summary(&buf, nil))
	is.True(strings.Contains(buf.String(), "no recorded runs"))
}

func TestSummaryStats(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(Summary(&buf, []float64{400, 410, 420, 430, 440}))

	out := buf.String()
	is.True(strings.Contains(out, "runs: 5"))
	is.True(strings.Contains(out, "mean: 420.0"))
	is.True(strings.Contains(out, "min: 400"))
	is.True(strings.Contains(out, "max: 440"))
	// Histogram lines follow the stats line.
	is.True(strings.Count(out, "\n") > 1)
}

func TestSummarySingleValue(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(Summary(&buf, []float64{420, 420, 420}))
	out := buf.String()
	is.True(strings.Contains(out, "runs: 3"))
	is.True(strings.Contains(out, "stddev: 0.0"))
	// Degenerate distribution, no histogram.
	is.Equal(strings.Count(out, "\n"), 1)
}
