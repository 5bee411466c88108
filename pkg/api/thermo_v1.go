// pkg/api/thermo_v1.go
package api

// TmV1 is the stable JSON schema for a melting temperature result.
type TmV1 struct {
	PrimerID string  `json:"primer_id,omitempty"`
	Seq      string  `json:"seq"`
	TmC      float64 `json:"tm_c"`
}

// DimerV1 is the stable JSON schema for a primer-dimer interaction.
// Offset is where the short primer's 3' end sits on the long primer.
type DimerV1 struct {
	ShortPrimer string  `json:"short_primer"`
	LongPrimer  string  `json:"long_primer"`
	Score       float64 `json:"score"`
	Overlap     int     `json:"overlap"`
	Offset      int     `json:"offset"`
	Serious     bool    `json:"serious"`
}
