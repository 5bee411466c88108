// core/repliconf/score.go
package repliconf

import (
	"pcrsim-core/dna"
	"pcrsim-core/scoring"
)

// scorer caches everything about one primer that window scoring needs:
// symbols and weights indexed by offset from the 3' end, plus the
// primability denominator, which does not depend on the template.
type scorer struct {
	pk     []byte    // primer symbol at offset k from the 3' end
	m      []float64 // primability weight at k
	r      []float64 // stability weight at k
	rowMax []float64 // best attainable pair score for pk[k]
	pDen   float64   // sum of m[k]*rowMax[k] over the whole primer
	pairs  scoring.PairScores
	pCut   float64
	sCut   float64
}

func newScorer(primer dna.Primer, s *scoring.Settings) *scorer {
	seq := primer.Seq()
	P := len(seq)
	sc := &scorer{
		pk:     make([]byte, P),
		m:      make([]float64, P),
		r:      make([]float64, P),
		rowMax: make([]float64, P),
		pairs:  s.Pairs(),
		pCut:   s.PrimabilityCutoff(),
		sCut:   s.StabilityCutoff(),
	}
	for k := 0; k < P; k++ {
		sym := seq[P-1-k]
		sc.pk[k] = sym
		sc.m[k] = s.Primability().At(k)
		sc.r[k] = s.Stability().At(k)
		sc.rowMax[k] = sc.pairs.RowMax(sym)
		sc.pDen += sc.m[k] * sc.rowMax[k]
	}
	return sc
}

// scan scores every window start in range and returns the admitted
// origins in ascending start order. Circular templates admit windows
// at every position, wrapping across the origin; linear templates only
// where the primer fits entirely.
func (sc *scorer) scan(seq string, circular bool, strand dna.Strand) []Origin {
	L, P := len(seq), len(sc.pk)
	last := L - P
	if circular {
		last = L - 1
	}
	var out []Origin
	for i := 0; i <= last; i++ {
		prim, stab := sc.score(seq, i, circular)
		if prim >= sc.pCut && stab >= sc.sCut {
			out = append(out, Origin{
				Start:       i,
				Strand:      strand,
				Primability: prim,
				Stability:   stab,
				Quality:     sc.quality(prim, stab),
			})
		}
	}
	return out
}

// score evaluates the window whose leftmost base is seq[i]. Offset k
// counts from the primer's 3' end, which pairs with the rightmost
// window base. Primability always walks the whole primer; the
// stability sums stop after the first non-positive pair score, with
// that pair still counted.
func (sc *scorer) score(seq string, i int, circular bool) (primability, stability float64) {
	L, P := len(seq), len(sc.pk)
	var pNum, sNum, sDen, rn float64
	run := true
	for k := 0; k < P; k++ {
		j := i + P - 1 - k
		if circular && j >= L {
			j -= L
		}
		pair := sc.pairs.Score(sc.pk[k], seq[j])
		pNum += sc.m[k] * pair
		if run {
			sNum += sc.r[k] * pair
			sDen += sc.rowMax[k]
			if sc.r[k] > rn {
				rn = sc.r[k]
			}
			if pair <= 0 {
				run = false
			}
		}
	}
	return pNum / sc.pDen, sNum / (rn * sDen)
}

// quality folds both scores into one figure of merit: 0 at the cutoffs,
// 1 for a perfect duplex.
func (sc *scorer) quality(primability, stability float64) float64 {
	c := sc.pCut + sc.sCut
	d := 2 - c
	if d <= 0 {
		return 1
	}
	return (primability + stability - c) / d
}
