// internal/output/tsv.go
package output

import (
	"fmt"
	"io"

	"pcrsim/pkg/api"
)

// WriteAmpliconTSV writes products as a tab-delimited table.
func WriteAmpliconTSV(w io.Writer, list []api.AmpliconV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, AmpliconTSVHeader); err != nil {
			return err
		}
	}
	for _, a := range list {
		if _, err := fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			a.SourceFile, a.TemplateID, a.FwdPrimer, a.RevPrimer,
			a.Start, a.End, a.Length,
			score(a.FwdQuality), score(a.RevQuality), score(a.Quality),
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteOriginTSV writes binding sites as a tab-delimited table.
func WriteOriginTSV(w io.Writer, list []api.OriginV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, OriginTSVHeader); err != nil {
			return err
		}
	}
	for _, o := range list {
		if _, err := fmt.Fprintf(
			w, "%s\t%s\t%s\t%d\t%s\t%d\t%s\t%s\t%s\n",
			o.SourceFile, o.TemplateID, o.PrimerID,
			o.Start, o.Strand, o.Length,
			score(o.Primability), score(o.Stability), score(o.Quality),
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteDimerTSV writes dimer interactions as a tab-delimited table.
func WriteDimerTSV(w io.Writer, list []api.DimerV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, DimerTSVHeader); err != nil {
			return err
		}
	}
	for _, d := range list {
		if _, err := fmt.Fprintf(
			w, "%s\t%s\t%g\t%d\t%d\t%t\n",
			d.ShortPrimer, d.LongPrimer, d.Score, d.Overlap, d.Offset, d.Serious,
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteTmTSV writes melting temperatures as a tab-delimited table.
func WriteTmTSV(w io.Writer, list []api.TmV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TmTSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintf(
			w, "%s\t%s\t%s\n",
			r.PrimerID, r.Seq, celsius(r.TmC),
		); err != nil {
			return err
		}
	}
	return nil
}
