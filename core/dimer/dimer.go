// core/dimer/dimer.go
package dimer

import (
	"math"
	"sort"

	"pcrsim-core/dna"
	"pcrsim-core/scoring"
)

// Options tunes the dimer scan. A result is serious when its score
// exceeds Threshold and the overlap spans at least MinOverlap bases.
type Options struct {
	Weights    scoring.PairScores
	MinOverlap int
	Threshold  float64
}

// DefaultOptions returns the stock annealing weights with a serious
// threshold of 60 over at least 3 paired bases.
func DefaultOptions() Options {
	w, err := scoring.NewPairScores(dna.PrimerAlphabet, dna.PrimerAlphabet, defaultWeights)
	if err != nil {
		panic("dimer: default weights: " + err.Error())
	}
	return Options{Weights: w, MinOverlap: 3, Threshold: 60}
}

// Result describes the best antiparallel alignment of two primers.
// Short and Long are the inputs ordered by length, the second argument
// taking Short on a tie. Offset is the index on Long paired with
// Short's 3'-terminal base; Overlap is the number of paired bases at
// that offset.
type Result struct {
	Short   dna.Primer
	Long    dna.Primer
	Overlap int
	Offset  int
	Score   float64
	Serious bool
}

// Analyze slides the shorter primer's 3' end along the longer primer
// and scores every antiparallel overlap, keeping the best one. Equal
// scores prefer the rightmost offset, which is the shortest overlap.
func Analyze(a, b dna.Primer, opt Options) Result {
	short, long := b, a
	if a.Len() < b.Len() {
		short, long = a, b
	}
	n1, n2 := short.Len(), long.Len()
	if n1 == 0 {
		return Result{Short: short, Long: long}
	}
	s1, s2 := short.Seq(), long.Seq()

	best := math.Inf(-1)
	bestPos := 0
	for leftEnd := 0; leftEnd < n2; leftEnd++ {
		span := n1
		if n2-leftEnd < span {
			span = n2 - leftEnd
		}
		var q float64
		for off := 0; off < span; off++ {
			q += opt.Weights.Score(s1[n1-1-off], s2[leftEnd+off])
		}
		if q >= best {
			best = q
			bestPos = leftEnd
		}
	}

	overlap := n1
	if n2-bestPos < overlap {
		overlap = n2 - bestPos
	}
	return Result{
		Short:   short,
		Long:    long,
		Overlap: overlap,
		Offset:  bestPos,
		Score:   best,
		Serious: best > opt.Threshold && overlap >= opt.MinOverlap,
	}
}

// AnalyzeGroup checks every primer pair, each primer against itself
// included, and returns the serious results sorted by descending score.
func AnalyzeGroup(primers []dna.Primer, opt Options) []Result {
	var out []Result
	for i := 0; i < len(primers); i++ {
		for j := i; j < len(primers); j++ {
			if r := Analyze(primers[i], primers[j], opt); r.Serious {
				out = append(out, r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Pairing weights between two primer symbols in antiparallel
// orientation, rows and columns both ordered GATCMRWSYKVHDBN.
// Complementary bases score high, ambiguity codes in proportion to the
// complementary fraction of their expansions.
var defaultWeights = [][]float64{
	{-20, -20, -20, 30, 5, -20, -20, 5, 5, -20, -3, -3, -20, -3, -8},
	{-20, -20, 20, -20, -20, -20, 0, -20, 0, 0, -20, -7, -7, -7, -10},
	{-20, 20, -20, -20, 0, 0, 0, -20, -20, -20, -7, -7, -7, -20, -10},
	{30, -20, -20, -20, -20, 5, -20, 5, -20, 5, -3, -20, -3, -3, -8},
	{5, -20, 0, -20, -20, -8, -10, -8, -10, 3, -12, -13, -5, -5, -9},
	{-20, -20, 0, 5, -8, -20, -10, -8, 3, -10, -12, -5, -13, -5, -9},
	{-20, 0, 0, -20, -10, -10, 0, -20, -10, -10, -13, -7, -7, -13, -10},
	{5, -20, -20, 5, -8, -8, -20, 5, -8, -8, -3, -12, -12, -3, -8},
	{5, 0, -20, -20, -10, 3, -10, -8, -20, -8, -5, -13, -5, -12, -9},
	{-20, 0, -20, 5, 3, -10, -10, -8, -8, -20, -5, -5, -13, -12, -9},
	{-3, -20, -7, -3, -12, -12, -13, -3, -5, -5, -9, -10, -10, -4, -8},
	{-3, -7, -7, -20, -13, -5, -7, -12, -13, -5, -10, -11, -6, -10, -9},
	{-20, -7, -7, -3, -5, -13, -7, -12, -5, -13, -10, -6, -11, -10, -9},
	{-3, -7, -20, -3, -5, -5, -13, -3, -12, -12, -4, -10, -10, -9, -8},
	{-8, -10, -10, -8, -9, -9, -10, -8, -9, -9, -8, -9, -9, -8, -9},
}
