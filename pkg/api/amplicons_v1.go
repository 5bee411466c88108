// pkg/api/amplicons_v1.go
package api

// AmpliconV1 is the stable JSON schema for a predicted product.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// End is Start+Length and exceeds the template length when the product
// crosses a circular origin.
type AmpliconV1 struct {
	TemplateID string  `json:"template_id"`
	FwdPrimer  string  `json:"fwd_primer"`
	RevPrimer  string  `json:"rev_primer"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Length     int     `json:"length"`
	FwdQuality float64 `json:"fwd_quality"`
	RevQuality float64 `json:"rev_quality"`
	Quality    float64 `json:"quality"`
	Seq        string  `json:"seq,omitempty"`
	SourceFile string  `json:"source_file,omitempty"`
}
