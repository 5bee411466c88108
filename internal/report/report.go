// internal/report/report.go

// Package report computes run-level summaries of predicted products.
package report

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"pcrsim-core/amplicon"
)

// Distribution summarizes one metric across all amplicons of a run.
type Distribution struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Summary is the aggregate outcome of a simulation run. Fold each
// template in with Add, then call Finalize before reading the
// distributions.
type Summary struct {
	Templates int
	Primers   int
	Amplicons int
	Length    Distribution
	Quality   Distribution

	lengths   []float64
	qualities []float64
}

// Add folds one template's products into the summary.
func (s *Summary) Add(amps []amplicon.Amplicon) {
	s.Templates++
	s.Amplicons += len(amps)
	for _, a := range amps {
		s.lengths = append(s.lengths, float64(a.Length))
		s.qualities = append(s.qualities, a.Quality)
	}
}

// Finalize computes the distributions from the folded samples.
func (s *Summary) Finalize() {
	s.Length = distribution(s.lengths)
	s.Quality = distribution(s.qualities)
}

func distribution(xs []float64) Distribution {
	if len(xs) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	sd := 0.0
	if len(sorted) > 1 {
		sd = stat.StdDev(sorted, nil)
	}
	return Distribution{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: sd,
	}
}

// Write renders the summary as a small human-readable block.
func Write(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "templates\t%d\nprimers\t%d\namplicons\t%d\n",
		s.Templates, s.Primers, s.Amplicons); err != nil {
		return err
	}
	if s.Amplicons == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "length\tmin=%.0f max=%.0f mean=%.1f median=%.0f sd=%.1f\n",
		s.Length.Min, s.Length.Max, s.Length.Mean, s.Length.Median, s.Length.StdDev); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "quality\tmin=%.4f max=%.4f mean=%.4f median=%.4f sd=%.4f\n",
		s.Quality.Min, s.Quality.Max, s.Quality.Mean, s.Quality.Median, s.Quality.StdDev)
	return err
}
