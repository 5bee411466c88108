// core/dna/code.go
package dna

// Alphabet groups, following the IUPAC degenerate base symbols.
const (
	Canonical = "GATC"
	Double    = "MRWSYK"
	Triple    = "VHDB"
	Wildcard  = "N"
	Gap       = "-"

	// Validation alphabets per sequence kind. Circular molecules carry
	// no gap symbol; primers admit the full degenerate set.
	CircularAlphabet = Canonical + Wildcard
	LinearAlphabet   = CircularAlphabet + Gap
	PrimerAlphabet   = Canonical + Double + Triple + Wildcard
)

// baseBits maps each symbol to its base set. bit0=A bit1=C bit2=G bit3=T.
var baseBits [256]byte

func init() {
	set := func(c byte, bits byte) { baseBits[c] = bits }
	set('A', 1)
	set('C', 2)
	set('G', 4)
	set('T', 8)
	set('R', 1|4) // A/G
	set('Y', 2|8) // C/T
	set('S', 2|4) // C/G
	set('W', 1|8) // A/T
	set('K', 4|8) // G/T
	set('M', 1|2) // A/C
	set('B', 2|4|8)
	set('D', 1|4|8)
	set('H', 1|2|8)
	set('V', 1|2|4)
	set('N', 1|2|4|8)
	// '-' stays 0: the gap set is empty and matches nothing.
}

// Match reports whether the base sets of two symbols intersect. It is
// symmetric, and any pairing with the gap symbol is a mismatch.
func Match(a, b byte) bool {
	return baseBits[a]&baseBits[b] != 0
}

var complement [256]byte

func init() {
	const from = "ACGTMKRYBDHVWSN-"
	const to = "TGCAKMYRVHDBWSN-"
	for i := 0; i < len(from); i++ {
		complement[from[i]] = to[i]
	}
}
