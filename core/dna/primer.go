// core/dna/primer.go
package dna

// Primer is a linear sequence whose last symbol is the 3'-terminal
// base, the end that directs polymerase extension. Position-weighted
// scoring is anchored at that end. Primers admit the full IUPAC
// degenerate alphabet but no gap symbol.
type Primer struct {
	Sequence
}

// NewPrimer validates seq against the primer alphabet.
func NewPrimer(seq, name string) (Primer, error) {
	s, err := normalize(seq, PrimerAlphabet, name)
	if err != nil {
		return Primer{}, err
	}
	return Primer{Sequence{seq: s, topo: Linear, name: name}}, nil
}
