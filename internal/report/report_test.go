// internal/report/report_test.go
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcrsim-core/amplicon"
)

func TestSummaryDistributions(t *testing.T) {
	var s Summary
	s.Primers = 2
	s.Add([]amplicon.Amplicon{
		{Length: 11, Quality: 0.8},
		{Length: 15, Quality: 0.4},
	})
	s.Add([]amplicon.Amplicon{
		{Length: 15, Quality: 0.3},
		{Length: 25, Quality: 0.3},
	})
	s.Finalize()

	assert.Equal(t, 2, s.Templates)
	assert.Equal(t, 4, s.Amplicons)

	assert.InDelta(t, 11.0, s.Length.Min, 1e-12)
	assert.InDelta(t, 25.0, s.Length.Max, 1e-12)
	assert.InDelta(t, 16.5, s.Length.Mean, 1e-12)
	assert.InDelta(t, 15.0, s.Length.Median, 1e-12)
	// sample standard deviation of 11, 15, 15, 25
	assert.InDelta(t, 5.9722, s.Length.StdDev, 1e-4)

	assert.InDelta(t, 0.3, s.Quality.Min, 1e-12)
	assert.InDelta(t, 0.8, s.Quality.Max, 1e-12)
	assert.InDelta(t, 0.45, s.Quality.Mean, 1e-12)
	assert.InDelta(t, 0.3, s.Quality.Median, 1e-12)
	assert.InDelta(t, 0.2380, s.Quality.StdDev, 1e-4)
}

func TestSummaryEmpty(t *testing.T) {
	var s Summary
	s.Add(nil)
	s.Finalize()

	assert.Equal(t, 1, s.Templates)
	assert.Equal(t, 0, s.Amplicons)
	assert.Equal(t, Distribution{}, s.Length)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	assert.Contains(t, buf.String(), "amplicons\t0")
	assert.NotContains(t, buf.String(), "length")
}

func TestWriteFormat(t *testing.T) {
	var s Summary
	s.Primers = 1
	s.Add([]amplicon.Amplicon{{Length: 100, Quality: 0.5}})
	s.Finalize()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "templates\t1", lines[0])
	assert.Equal(t, "primers\t1", lines[1])
	assert.Equal(t, "amplicons\t1", lines[2])
	assert.Equal(t, "length\tmin=100 max=100 mean=100.0 median=100 sd=0.0", lines[3])
	assert.Equal(t, "quality\tmin=0.5000 max=0.5000 mean=0.5000 median=0.5000 sd=0.0000", lines[4])
}
