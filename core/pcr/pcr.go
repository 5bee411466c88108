// core/pcr/pcr.go
package pcr

import (
	"errors"
	"fmt"

	"pcrsim-core/amplicon"
	"pcrsim-core/dna"
	"pcrsim-core/repliconf"
	"pcrsim-core/scoring"
)

var (
	ErrDuplicatePrimer = errors.New("primer already in reaction")
	ErrPrimerNotFound  = errors.New("primer not in reaction")
)

// Reaction models one PCR setup: a template, scoring settings fixed at
// construction, and a growing set of primers. Adding a primer searches
// its origins immediately, so Run only has to assemble products.
// A Reaction is not safe for concurrent use.
type Reaction struct {
	template dna.Sequence
	settings *scoring.Settings
	primers  []dna.Primer
	sets     []repliconf.OriginSet
}

// New creates a reaction for the given template. A nil settings value
// selects the default scoring tables.
func New(template dna.Sequence, settings *scoring.Settings) *Reaction {
	if settings == nil {
		settings = scoring.Default()
	}
	return &Reaction{template: template, settings: settings}
}

// AddPrimer registers a primer and searches its binding origins. A
// primer with a name or sequence already present is rejected.
func (r *Reaction) AddPrimer(p dna.Primer) error {
	if p.Len() == 0 {
		return fmt.Errorf("add primer %q: empty sequence", p.Name())
	}
	for _, q := range r.primers {
		if q.Name() == p.Name() || q.Equal(p.Sequence) {
			return fmt.Errorf("%w: %q", ErrDuplicatePrimer, p.Name())
		}
	}
	r.primers = append(r.primers, p)
	r.sets = append(r.sets, repliconf.Search(r.template, p, r.settings))
	return nil
}

// AddPrimers registers primers in order, stopping at the first failure.
// Primers added before the failure stay registered.
func (r *Reaction) AddPrimers(primers ...dna.Primer) error {
	for _, p := range primers {
		if err := r.AddPrimer(p); err != nil {
			return err
		}
	}
	return nil
}

// RemovePrimer drops the primer with the given name and its origins.
func (r *Reaction) RemovePrimer(name string) error {
	for i, q := range r.primers {
		if q.Name() == name {
			r.primers = append(r.primers[:i], r.primers[i+1:]...)
			r.sets = append(r.sets[:i], r.sets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPrimerNotFound, name)
}

// Template returns the reaction's template.
func (r *Reaction) Template() dna.Sequence { return r.template }

// Primers returns a copy of the registered primers in addition order.
func (r *Reaction) Primers() []dna.Primer {
	return append([]dna.Primer(nil), r.primers...)
}

// OriginSets returns a copy of the per-primer origin sets in addition
// order.
func (r *Reaction) OriginSets() []repliconf.OriginSet {
	return append([]repliconf.OriginSet(nil), r.sets...)
}

// Run assembles the amplicons the registered primers would produce.
// Products shorter than minLen are dropped; minLen below 1 means no
// limit.
func (r *Reaction) Run(minLen int) ([]amplicon.Amplicon, error) {
	return amplicon.Assemble(r.sets, minLen)
}
