// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pcrsim-core/dimer"
	"pcrsim-core/dna"
	"pcrsim-core/melt"
	"pcrsim-core/pcr"
	"pcrsim-core/repliconf"
	"pcrsim-core/scoring"

	"pcrsim/internal/config"
	"pcrsim/internal/output"
	"pcrsim/pkg/api"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, api.ErrorV1{Error: msg})
}

// decode reads a JSON body with a size cap slightly above the largest
// accepted template.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxTemplateLength)+1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) prepTemplate(w http.ResponseWriter, raw, id string, circular bool, pCut, sCut *float64) (dna.Sequence, *scoring.Settings, bool) {
	if raw == "" {
		writeError(w, http.StatusBadRequest, "template must not be empty")
		return dna.Sequence{}, nil, false
	}
	if len(raw) > s.cfg.MaxTemplateLength {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("template longer than %d bases", s.cfg.MaxTemplateLength))
		return dna.Sequence{}, nil, false
	}
	if id == "" {
		id = "template"
	}
	topo := dna.Linear
	if circular {
		topo = dna.Circular
	}
	tpl, err := dna.New(raw, topo, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return dna.Sequence{}, nil, false
	}
	settings, err := overrideCutoffs(s.settings, pCut, sCut)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return dna.Sequence{}, nil, false
	}
	return tpl, settings, true
}

func overrideCutoffs(base *scoring.Settings, p, sc *float64) (*scoring.Settings, error) {
	if p == nil && sc == nil {
		return base, nil
	}
	pv, sv := base.PrimabilityCutoff(), base.StabilityCutoff()
	if p != nil {
		pv = *p
	}
	if sc != nil {
		sv = *sc
	}
	return base.WithCutoffs(pv, sv)
}

func parsePrimers(w http.ResponseWriter, list []api.PrimerV1) ([]dna.Primer, bool) {
	if len(list) == 0 {
		writeError(w, http.StatusBadRequest, "primers must not be empty")
		return nil, false
	}
	out := make([]dna.Primer, 0, len(list))
	for i, p := range list {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("primer%d", i+1)
		}
		pr, err := dna.NewPrimer(p.Seq, id)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		out = append(out, pr)
	}
	return out, true
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req api.SimulateRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	tpl, settings, ok := s.prepTemplate(w, req.Template, req.TemplateID, req.Circular, req.PrimabilityCutoff, req.StabilityCutoff)
	if !ok {
		return
	}
	primers, ok := parsePrimers(w, req.Primers)
	if !ok {
		return
	}

	rx := pcr.New(tpl, settings)
	if err := rx.AddPrimers(primers...); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minLen := req.MinLength
	if minLen < 1 {
		minLen = 1
	}
	amps, err := rx.Run(minLen)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.MaxLength > 0 {
		kept := amps[:0]
		for _, a := range amps {
			if a.Length <= req.MaxLength {
				kept = append(kept, a)
			}
		}
		amps = kept
	}

	rows := output.AmpliconsToAPI(tpl.Name(), "", amps, req.IncludeSeq)
	simulationsTotal.Inc()
	ampliconsTotal.Add(float64(len(rows)))
	writeJSON(w, http.StatusOK, api.SimulateResponseV1{Amplicons: rows, Count: len(rows)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	tpl, settings, ok := s.prepTemplate(w, req.Template, req.TemplateID, req.Circular, req.PrimabilityCutoff, req.StabilityCutoff)
	if !ok {
		return
	}
	primers, ok := parsePrimers(w, req.Primers)
	if !ok {
		return
	}

	var rows []api.OriginV1
	for _, p := range primers {
		set := repliconf.Search(tpl, p, settings)
		rows = append(rows, output.OriginsToAPI(tpl.Name(), "", set)...)
	}
	simulationsTotal.Inc()
	writeJSON(w, http.StatusOK, api.SearchResponseV1{Origins: rows, Count: len(rows)})
}

func (s *Server) handleTm(w http.ResponseWriter, r *http.Request) {
	var req api.TmRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	opt := melt.DefaultOptions()
	if req.Monovalent != nil {
		opt.MonovalentMilliMolar = *req.Monovalent
	}
	if req.Divalent != nil {
		opt.DivalentMilliMolar = *req.Divalent
	}
	if req.Conc != nil {
		opt.PrimerNanoMolar = *req.Conc
	}
	tm, err := melt.Tm(req.Seq, opt)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.TmV1{PrimerID: req.PrimerID, Seq: req.Seq, TmC: tm})
}

func (s *Server) handleDimer(w http.ResponseWriter, r *http.Request) {
	var req api.DimerRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	primers, ok := parsePrimers(w, req.Primers)
	if !ok {
		return
	}
	opt := dimer.DefaultOptions()
	if req.Threshold != nil {
		opt.Threshold = *req.Threshold
	}
	if req.MinOverlap != nil {
		if *req.MinOverlap < 1 {
			writeError(w, http.StatusBadRequest, "min_overlap must be >= 1")
			return
		}
		opt.MinOverlap = *req.MinOverlap
	}

	var results []dimer.Result
	if req.All {
		for i := 0; i < len(primers); i++ {
			for j := i; j < len(primers); j++ {
				results = append(results, dimer.Analyze(primers[i], primers[j], opt))
			}
		}
	} else {
		results = dimer.AnalyzeGroup(primers, opt)
	}

	rows := output.DimersToAPI(results)
	writeJSON(w, http.StatusOK, api.DimerResponseV1{Dimers: rows, Count: len(rows)})
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.FileFromSettings(s.settings))
}
