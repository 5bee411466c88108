// internal/output/rows.go
package output

import (
	"pcrsim-core/amplicon"
	"pcrsim-core/dimer"
	"pcrsim-core/repliconf"

	"pcrsim/pkg/api"
)

// OriginsToAPI flattens an origin set into wire rows, forward strand
// first, preserving the ascending start order within each strand.
func OriginsToAPI(templateID, sourceFile string, set repliconf.OriginSet) []api.OriginV1 {
	out := make([]api.OriginV1, 0, len(set.Forward)+len(set.Reverse))
	for _, o := range set.Forward {
		out = append(out, originToAPI(templateID, sourceFile, set, o))
	}
	for _, o := range set.Reverse {
		out = append(out, originToAPI(templateID, sourceFile, set, o))
	}
	return out
}

func originToAPI(templateID, sourceFile string, set repliconf.OriginSet, o repliconf.Origin) api.OriginV1 {
	return api.OriginV1{
		TemplateID:  templateID,
		PrimerID:    set.PrimerID,
		Start:       o.Start,
		Strand:      o.Strand.String(),
		Length:      set.Primer.Len(),
		Primability: o.Primability,
		Stability:   o.Stability,
		Quality:     o.Quality,
		SourceFile:  sourceFile,
	}
}

// AmpliconToAPI converts a predicted product to the stable wire schema
// (v1). The product sequence is attached only when includeSeq is set.
func AmpliconToAPI(templateID, sourceFile string, a amplicon.Amplicon, includeSeq bool) api.AmpliconV1 {
	v := api.AmpliconV1{
		TemplateID: templateID,
		FwdPrimer:  a.FwdPrimer,
		RevPrimer:  a.RevPrimer,
		Start:      a.Start,
		End:        a.Start + a.Length,
		Length:     a.Length,
		FwdQuality: a.Fwd.Quality,
		RevQuality: a.Rev.Quality,
		Quality:    a.Quality,
		SourceFile: sourceFile,
	}
	if includeSeq {
		v.Seq = a.Product.Seq()
	}
	return v
}

// AmpliconsToAPI converts a product list, preserving order.
func AmpliconsToAPI(templateID, sourceFile string, list []amplicon.Amplicon, includeSeq bool) []api.AmpliconV1 {
	out := make([]api.AmpliconV1, 0, len(list))
	for _, a := range list {
		out = append(out, AmpliconToAPI(templateID, sourceFile, a, includeSeq))
	}
	return out
}

// DimerToAPI converts a dimer screening result to the wire schema.
func DimerToAPI(r dimer.Result) api.DimerV1 {
	return api.DimerV1{
		ShortPrimer: r.Short.Name(),
		LongPrimer:  r.Long.Name(),
		Score:       r.Score,
		Overlap:     r.Overlap,
		Offset:      r.Offset,
		Serious:     r.Serious,
	}
}

// DimersToAPI converts a result list, preserving order.
func DimersToAPI(list []dimer.Result) []api.DimerV1 {
	out := make([]api.DimerV1, 0, len(list))
	for _, r := range list {
		out = append(out, DimerToAPI(r))
	}
	return out
}
