// pkg/api/requests_v1.go
package api

// PrimerV1 is a named primer sequence as it appears in requests.
type PrimerV1 struct {
	ID  string `json:"id"`
	Seq string `json:"seq"`
}

// SimulateRequestV1 is the body of POST /api/v1/simulate. Cutoffs are
// pointers so a request can omit them and keep the server defaults.
type SimulateRequestV1 struct {
	Template          string     `json:"template"`
	TemplateID        string     `json:"template_id,omitempty"`
	Circular          bool       `json:"circular,omitempty"`
	Primers           []PrimerV1 `json:"primers"`
	MinLength         int        `json:"min_length,omitempty"`
	MaxLength         int        `json:"max_length,omitempty"`
	IncludeSeq        bool       `json:"include_seq,omitempty"`
	PrimabilityCutoff *float64   `json:"primability_cutoff,omitempty"`
	StabilityCutoff   *float64   `json:"stability_cutoff,omitempty"`
}

// SimulateResponseV1 is the body returned by POST /api/v1/simulate.
type SimulateResponseV1 struct {
	Amplicons []AmpliconV1 `json:"amplicons"`
	Count     int          `json:"count"`
}

// SearchRequestV1 is the body of POST /api/v1/search.
type SearchRequestV1 struct {
	Template          string     `json:"template"`
	TemplateID        string     `json:"template_id,omitempty"`
	Circular          bool       `json:"circular,omitempty"`
	Primers           []PrimerV1 `json:"primers"`
	PrimabilityCutoff *float64   `json:"primability_cutoff,omitempty"`
	StabilityCutoff   *float64   `json:"stability_cutoff,omitempty"`
}

// SearchResponseV1 is the body returned by POST /api/v1/search.
type SearchResponseV1 struct {
	Origins []OriginV1 `json:"origins"`
	Count   int        `json:"count"`
}

// TmRequestV1 is the body of POST /api/v1/tm.
type TmRequestV1 struct {
	Seq        string   `json:"seq"`
	PrimerID   string   `json:"primer_id,omitempty"`
	Monovalent *float64 `json:"monovalent_mm,omitempty"`
	Divalent   *float64 `json:"divalent_mm,omitempty"`
	Conc       *float64 `json:"conc_nm,omitempty"`
}

// DimerRequestV1 is the body of POST /api/v1/dimer. All reports every
// pairing instead of only the ones above the threshold.
type DimerRequestV1 struct {
	Primers    []PrimerV1 `json:"primers"`
	Threshold  *float64   `json:"threshold,omitempty"`
	MinOverlap *int       `json:"min_overlap,omitempty"`
	All        bool       `json:"all,omitempty"`
}

// DimerResponseV1 is the body returned by POST /api/v1/dimer.
type DimerResponseV1 struct {
	Dimers []DimerV1 `json:"dimers"`
	Count  int       `json:"count"`
}

// ErrorV1 is the JSON error envelope.
type ErrorV1 struct {
	Error string `json:"error"`
}
