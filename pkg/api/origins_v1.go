// pkg/api/origins_v1.go
package api

// OriginV1 is the stable JSON schema for a primer binding site.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type OriginV1 struct {
	TemplateID string `json:"template_id"`
	PrimerID   string `json:"primer_id"`
	// Start is the leftmost template index of the footprint on the plus
	// strand, regardless of which strand the primer binds.
	Start       int     `json:"start"`
	Strand      string  `json:"strand"` // "+" | "-"
	Length      int     `json:"length"`
	Primability float64 `json:"primability"`
	Stability   float64 `json:"stability"`
	Quality     float64 `json:"quality"`
	SourceFile  string  `json:"source_file,omitempty"`
}
