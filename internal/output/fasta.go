// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"pcrsim/pkg/api"
)

// WriteFASTA writes products with attached sequences as FASTA records.
// Records without a sequence are skipped; the header numbers records
// per primer pair so repeated pairs stay distinguishable.
func WriteFASTA(w io.Writer, list []api.AmpliconV1) error {
	n := make(map[string]int)
	for _, a := range list {
		if a.Seq == "" {
			continue
		}
		pair := a.FwdPrimer + "+" + a.RevPrimer
		n[pair]++
		if _, err := fmt.Fprintf(
			w,
			">%s_%s_%d template=%s start=%d end=%d len=%d quality=%s\n%s\n",
			a.FwdPrimer, a.RevPrimer, n[pair],
			a.TemplateID, a.Start, a.End, a.Length, score(a.Quality),
			a.Seq,
		); err != nil {
			return err
		}
	}
	return nil
}
