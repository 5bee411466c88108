// core/amplicon/amplicon.go
package amplicon

import (
	"errors"
	"fmt"
	"sort"

	"pcrsim-core/dna"
	"pcrsim-core/repliconf"
)

// ErrTemplateMismatch reports an Assemble call whose origin sets were
// searched against different templates.
var ErrTemplateMismatch = errors.New("origin sets describe different templates")

// Amplicon is one simulated product: a forward origin, a reverse
// origin downstream of it, and the template stretch spanning both
// primer footprints. Start is the forward origin's position on the
// plus strand; Length counts every base of the product including both
// footprints. Quality is the weaker of the two origin qualities.
type Amplicon struct {
	Product   dna.Sequence
	FwdPrimer string
	RevPrimer string
	Fwd       repliconf.Origin
	Rev       repliconf.Origin
	Start     int
	Length    int
	Quality   float64
}

// Assemble combines every forward origin with every reverse origin
// across all sets, a set paired with itself included, and keeps the
// pairs whose footprints do not overlap and whose product fits the
// template. On circular templates the product may wrap the sequence
// origin, never past the forward footprint again. Products shorter
// than minLen are dropped; minLen below 1 means no limit. The result
// is sorted by ascending length, ties broken by descending quality.
func Assemble(sets []repliconf.OriginSet, minLen int) ([]Amplicon, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	tpl := sets[0].Template
	for _, set := range sets[1:] {
		if !set.Template.Equal(tpl) {
			return nil, fmt.Errorf("%w: %q and %q", ErrTemplateMismatch, tpl.Name(), set.Template.Name())
		}
	}
	if minLen < 1 {
		minLen = 1
	}
	L := tpl.Len()
	circular := tpl.Topology() == dna.Circular

	var out []Amplicon
	for _, fs := range sets {
		pa := fs.Primer.Len()
		for _, f := range fs.Forward {
			for _, rs := range sets {
				pb := rs.Primer.Len()
				for _, r := range rs.Reverse {
					d := r.Start - f.Start
					if circular {
						d = ((d % L) + L) % L
					}
					if d < pa || d+pb > L {
						continue
					}
					length := d + pb
					if length < minLen {
						continue
					}
					product, err := tpl.Slice(f.Start, length)
					if err != nil {
						return nil, err
					}
					q := f.Quality
					if r.Quality < q {
						q = r.Quality
					}
					out = append(out, Amplicon{
						Product:   product,
						FwdPrimer: fs.PrimerID,
						RevPrimer: rs.PrimerID,
						Fwd:       f,
						Rev:       r,
						Start:     f.Start,
						Length:    length,
						Quality:   q,
					})
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length < out[j].Length
		}
		return out[i].Quality > out[j].Quality
	})
	return out, nil
}
