// core/dna/sequence.go
package dna

import "strings"

// Topology tags a sequence as a linear fragment or a circular molecule.
type Topology uint8

const (
	Linear Topology = iota
	Circular
)

func (t Topology) String() string {
	if t == Circular {
		return "circular"
	}
	return "linear"
}

// Strand identifies which template strand an alignment refers to:
// Forward means the primer reads along the template's given orientation,
// Reverse means it binds the complementary strand.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) String() string { return string(s) }

// Sequence is an immutable DNA sequence: validated uppercase symbols
// stored 5'→3', a topology and an optional name. The zero value is an
// empty linear sequence.
type Sequence struct {
	seq  string
	topo Topology
	name string
}

// New validates seq against the alphabet of the given topology and
// returns an immutable Sequence. Whitespace is stripped and symbols
// uppercased before validation.
func New(seq string, topo Topology, name string) (Sequence, error) {
	alpha := LinearAlphabet
	if topo == Circular {
		alpha = CircularAlphabet
	}
	s, err := normalize(seq, alpha, name)
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{seq: s, topo: topo, name: name}, nil
}

func normalize(raw, alphabet, name string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if strings.IndexByte(alphabet, c) < 0 {
			return "", &ValidationError{Name: name, Pos: i, Sym: c, Reason: "symbol outside alphabet " + alphabet}
		}
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return "", &ValidationError{Name: name, Pos: -1, Reason: "empty sequence"}
	}
	return b.String(), nil
}

func (s Sequence) Len() int           { return len(s.seq) }
func (s Sequence) Name() string       { return s.name }
func (s Sequence) Topology() Topology { return s.topo }

// Seq returns the symbols 5'→3' as an uppercase string.
func (s Sequence) Seq() string { return s.seq }

// At returns the symbol at index i. Circular sequences wrap modulo
// length, with negative indices counting back from the end; linear
// sequences fail with an IndexError out of range.
func (s Sequence) At(i int) (byte, error) {
	n := len(s.seq)
	if n == 0 {
		return 0, &IndexError{Op: "at", Index: i, Len: 0}
	}
	if s.topo == Circular {
		i = ((i % n) + n) % n
	} else if i < 0 || i >= n {
		return 0, &IndexError{Op: "at", Index: i, Len: n}
	}
	return s.seq[i], nil
}

// Slice copies n symbols starting at start into a fresh linear
// Sequence. Circular slices may cross the origin index; n must not
// exceed the sequence length.
func (s Sequence) Slice(start, n int) (Sequence, error) {
	l := len(s.seq)
	if n < 0 || n > l {
		return Sequence{}, &IndexError{Op: "slice", Index: n, Len: l}
	}
	if n == 0 {
		return Sequence{name: s.name}, nil
	}
	if s.topo == Circular {
		start = ((start % l) + l) % l
		if start+n <= l {
			return Sequence{seq: s.seq[start : start+n], name: s.name}, nil
		}
		return Sequence{seq: s.seq[start:] + s.seq[:start+n-l], name: s.name}, nil
	}
	if start < 0 || start+n > l {
		return Sequence{}, &IndexError{Op: "slice", Index: start, Len: l}
	}
	return Sequence{seq: s.seq[start : start+n], name: s.name}, nil
}

// Reverse returns the sequence with symbol order flipped.
func (s Sequence) Reverse() Sequence {
	b := []byte(s.seq)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return Sequence{seq: string(b), topo: s.topo, name: s.name}
}

// Complement returns the base-wise complement. Ambiguity codes map to
// the code of the complemented base set (W, S and N are their own
// complements), the gap symbol to itself.
func (s Sequence) Complement() Sequence {
	b := []byte(s.seq)
	for i := range b {
		b[i] = complement[b[i]]
	}
	return Sequence{seq: string(b), topo: s.topo, name: s.name}
}

// RevComp returns the reverse complement. Applying it twice yields the
// original sequence.
func (s Sequence) RevComp() Sequence {
	n := len(s.seq)
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = complement[s.seq[n-1-i]]
	}
	return Sequence{seq: string(b), topo: s.topo, name: s.name}
}

// Equal is structural over symbols and topology; names are ignored.
func (s Sequence) Equal(o Sequence) bool {
	return s.seq == o.seq && s.topo == o.topo
}
