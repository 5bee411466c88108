// core/repliconf/repliconf.go
package repliconf

import (
	"sort"

	"pcrsim-core/dna"
	"pcrsim-core/scoring"
)

// Origin is one admitted primer alignment against a template: the
// leftmost template index of the primer footprint in plus-strand
// coordinates, the strand, and its scores. On the forward strand Start
// is the primer's 5' end; on the reverse strand it is where the 3' end
// sits, so product arithmetic is uniform for both strands.
type Origin struct {
	Start       int
	Strand      dna.Strand
	Primability float64
	Stability   float64
	Quality     float64
}

// OriginSet holds the admitted origins of one (template, primer)
// search, ordered by ascending Start per strand. A set is freshly
// allocated by every Search call and never mutated afterwards.
type OriginSet struct {
	PrimerID string
	Primer   dna.Primer
	Template dna.Sequence
	Forward  []Origin
	Reverse  []Origin
}

// Empty reports whether the search admitted no origins on either strand.
func (s OriginSet) Empty() bool { return len(s.Forward) == 0 && len(s.Reverse) == 0 }

// Search scans every alignment window of the primer against both
// template strands and admits the windows whose primability and
// stability meet the cutoffs. Every position in range is scored; there
// is no early termination. The reverse strand reuses the forward scan
// on the reverse-complemented template, mapping starts back into
// plus-strand coordinates. A primer longer than the template yields an
// empty set, not an error.
func Search(template dna.Sequence, primer dna.Primer, s *scoring.Settings) OriginSet {
	out := OriginSet{PrimerID: primer.Name(), Primer: primer, Template: template}
	L, P := template.Len(), primer.Len()
	if P == 0 || P > L {
		return out
	}
	circular := template.Topology() == dna.Circular
	sc := newScorer(primer, s)

	out.Forward = sc.scan(template.Seq(), circular, dna.Forward)

	rev := sc.scan(template.RevComp().Seq(), circular, dna.Reverse)
	// A window at i on the reverse complement covers plus-strand
	// positions [L-P-i, L-1-i]; report the leftmost.
	for k := range rev {
		start := L - P - rev[k].Start
		if circular {
			start = ((start % L) + L) % L
		}
		rev[k].Start = start
	}
	sort.Slice(rev, func(i, j int) bool { return rev[i].Start < rev[j].Start })
	out.Reverse = rev
	return out
}
