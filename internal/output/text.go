// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"pcrsim/pkg/api"
)

// WriteAmpliconText prints one plain line per product, without header
// or source file column.
func WriteAmpliconText(w io.Writer, list []api.AmpliconV1) error {
	for _, a := range list {
		_, err := fmt.Fprintf(w,
			"%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			a.TemplateID, a.FwdPrimer, a.RevPrimer,
			a.Start, a.End, a.Length, score(a.Quality),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteOriginText prints one plain line per binding site.
func WriteOriginText(w io.Writer, list []api.OriginV1) error {
	for _, o := range list {
		_, err := fmt.Fprintf(w,
			"%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			o.TemplateID, o.PrimerID,
			o.Start, o.Strand,
			score(o.Primability), score(o.Stability), score(o.Quality),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
