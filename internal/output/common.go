// internal/output/common.go
package output

import "strconv"

// Canonical header rows for the TSV outputs. Keep these as the single
// source of truth; all writers and downstream parsers should use them.
const (
	AmpliconTSVHeader = "source_file\ttemplate_id\tfwd_primer\trev_primer\tstart\tend\tlength\tfwd_quality\trev_quality\tquality"
	OriginTSVHeader   = "source_file\ttemplate_id\tprimer_id\tstart\tstrand\tlength\tprimability\tstability\tquality"
	DimerTSVHeader    = "short_primer\tlong_primer\tscore\toverlap\toffset\tserious"
	TmTSVHeader       = "primer_id\tseq\ttm_c"
)

// score renders fractional scores with four decimals.
func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// celsius renders temperatures with two decimals.
func celsius(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
