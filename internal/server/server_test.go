// internal/server/server_test.go
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"pcrsim-core/scoring"

	"pcrsim/internal/config"
	"pcrsim/internal/version"
	"pcrsim/pkg/api"
)

// Both strands of this template carry the primer site, at 0 and 12 on
// the plus strand, so a single full-length product spans it.
const repeatTpl = "AAAGGGCCCTTTAAAGGGCCCTTT"

// The only product of this circular template crosses the origin.
const wrapTpl = "ATCCGGTACCAAAAAAAAAAGCTAGCTAAT"

func postJSON(h http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postRaw(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeBody(w *httptest.ResponseRecorder, v any) {
	Expect(json.Unmarshal(w.Body.Bytes(), v)).To(Succeed())
}

func plusStarts(origins []api.OriginV1) []int {
	var starts []int
	for _, o := range origins {
		if o.Strand == "+" {
			starts = append(starts, o.Start)
		}
	}
	return starts
}

var _ = Describe("API", func() {
	var router http.Handler

	BeforeEach(func() {
		router = New(config.Default().Server, scoring.Default(), zap.NewNop()).Router()
	})

	Describe("GET /health", func() {
		It("should report OK", func() {
			w := get(router, "/health")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("OK"))
		})
	})

	Describe("POST /api/v1/simulate", func() {
		It("should assemble the spanning product of a self-complementary template", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template:   repeatTpl,
				TemplateID: "tpl1",
				Primers:    []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
			})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var resp api.SimulateResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(Equal(1))
			Expect(resp.Amplicons).To(HaveLen(1))

			a := resp.Amplicons[0]
			Expect(a.TemplateID).To(Equal("tpl1"))
			Expect(a.FwdPrimer).To(Equal("p1"))
			Expect(a.RevPrimer).To(Equal("p1"))
			Expect(a.Start).To(Equal(0))
			Expect(a.End).To(Equal(24))
			Expect(a.Length).To(Equal(24))
			Expect(a.Quality).To(BeNumerically("~", 0.8977, 1e-3))
			Expect(a.Seq).To(BeEmpty())
			Expect(a.SourceFile).To(BeEmpty())
		})

		It("should attach product sequences when include_seq is set", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template:   repeatTpl,
				Primers:    []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
				IncludeSeq: true,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.SimulateResponseV1
			decodeBody(w, &resp)
			Expect(resp.Amplicons).To(HaveLen(1))
			Expect(resp.Amplicons[0].Seq).To(Equal(repeatTpl))
			Expect(resp.Amplicons[0].TemplateID).To(Equal("template"))
		})

		It("should follow products across the origin of a circular template", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template:   wrapTpl,
				TemplateID: "plasmid",
				Circular:   true,
				Primers: []api.PrimerV1{
					{ID: "f", Seq: "GCTAGCTA"},
					{ID: "r", Seq: "GGTACCGG"},
				},
				IncludeSeq: true,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.SimulateResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(Equal(1))

			a := resp.Amplicons[0]
			Expect(a.FwdPrimer).To(Equal("f"))
			Expect(a.RevPrimer).To(Equal("r"))
			Expect(a.Start).To(Equal(20))
			Expect(a.Length).To(Equal(20))
			Expect(a.End).To(Equal(40))
			Expect(a.Seq).To(Equal("GCTAGCTAATATCCGGTACC"))
		})

		It("should drop products above max_length", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template:  repeatTpl,
				Primers:   []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
				MaxLength: 23,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.SimulateResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(BeZero())
			Expect(resp.Amplicons).To(BeEmpty())
		})

		It("should reject an unparseable body", func() {
			w := postRaw(router, "/api/v1/simulate", "{not json")
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(Equal("invalid request body"))
		})

		It("should reject an empty template", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Primers: []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(Equal("template must not be empty"))
		})

		It("should reject template symbols outside the alphabet", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template: "ACGTQX",
				Primers:  []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).NotTo(BeEmpty())
		})

		It("should reject an empty primer list", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{Template: repeatTpl})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(Equal("primers must not be empty"))
		})

		It("should reject duplicate primers", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template: repeatTpl,
				Primers: []api.PrimerV1{
					{ID: "p1", Seq: "AAAGGGCCC"},
					{ID: "p2", Seq: "AAAGGGCCC"},
				},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(ContainSubstring("already in reaction"))
		})

		It("should reject cutoffs outside the unit interval", func() {
			bad := 1.5
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template:          repeatTpl,
				Primers:           []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
				PrimabilityCutoff: &bad,
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/v1/search", func() {
		It("should list binding sites on both strands", func() {
			w := postJSON(router, "/api/v1/search", api.SearchRequestV1{
				Template:   repeatTpl,
				TemplateID: "tpl1",
				Primers:    []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.SearchResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(Equal(4))
			Expect(resp.Origins).To(HaveLen(4))

			var minus []int
			for _, o := range resp.Origins {
				Expect(o.TemplateID).To(Equal("tpl1"))
				Expect(o.PrimerID).To(Equal("p1"))
				Expect(o.Length).To(Equal(9))
				if o.Strand == "+" {
					Expect(o.Primability).To(Equal(1.0))
				} else {
					minus = append(minus, o.Start)
				}
			}
			Expect(plusStarts(resp.Origins)).To(Equal([]int{0, 12}))
			Expect(minus).To(Equal([]int{3, 15}))
		})

		It("should honor relaxed cutoffs from the request", func() {
			relaxedP, relaxedS := 0.5, 0.0
			strict := postJSON(router, "/api/v1/search", api.SearchRequestV1{
				Template: repeatTpl,
				Primers:  []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCT"}},
			})
			relaxed := postJSON(router, "/api/v1/search", api.SearchRequestV1{
				Template:          repeatTpl,
				Primers:           []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCT"}},
				PrimabilityCutoff: &relaxedP,
				StabilityCutoff:   &relaxedS,
			})
			Expect(strict.Code).To(Equal(http.StatusOK))
			Expect(relaxed.Code).To(Equal(http.StatusOK))

			var strictResp, relaxedResp api.SearchResponseV1
			decodeBody(strict, &strictResp)
			decodeBody(relaxed, &relaxedResp)

			// The 3'-terminal mismatch bars the full-length site under
			// default cutoffs but not under the relaxed ones.
			Expect(plusStarts(strictResp.Origins)).NotTo(ContainElement(0))
			Expect(plusStarts(relaxedResp.Origins)).To(ContainElement(0))
		})
	})

	Describe("POST /api/v1/tm", func() {
		It("should compute a melting temperature under PCR buffer defaults", func() {
			w := postJSON(router, "/api/v1/tm", api.TmRequestV1{
				Seq:      "TAATACGACTCACTATAGGG",
				PrimerID: "t7",
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.TmV1
			decodeBody(w, &resp)
			Expect(resp.PrimerID).To(Equal("t7"))
			Expect(resp.Seq).To(Equal("TAATACGACTCACTATAGGG"))
			Expect(resp.TmC).To(BeNumerically(">", 48))
			Expect(resp.TmC).To(BeNumerically("<", 55))
		})

		It("should honor salt overrides", func() {
			noMg := 0.0
			w := postJSON(router, "/api/v1/tm", api.TmRequestV1{
				Seq:      "TAATACGACTCACTATAGGG",
				Divalent: &noMg,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.TmV1
			decodeBody(w, &resp)
			Expect(resp.TmC).To(BeNumerically(">", 42))
			Expect(resp.TmC).To(BeNumerically("<", 47))
		})

		It("should reject sequences outside GATC", func() {
			w := postJSON(router, "/api/v1/tm", api.TmRequestV1{Seq: "GATN"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/v1/dimer", func() {
		primers := []api.PrimerV1{{ID: "a", Seq: "AAAA"}, {ID: "t", Seq: "TTTT"}}

		It("should report only serious pairings by default", func() {
			w := postJSON(router, "/api/v1/dimer", api.DimerRequestV1{Primers: primers})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.DimerResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(Equal(1))

			d := resp.Dimers[0]
			Expect(d.ShortPrimer).To(Equal("t"))
			Expect(d.LongPrimer).To(Equal("a"))
			Expect(d.Score).To(Equal(80.0))
			Expect(d.Overlap).To(Equal(4))
			Expect(d.Offset).To(Equal(0))
			Expect(d.Serious).To(BeTrue())
		})

		It("should report every pairing including self dimers when all is set", func() {
			w := postJSON(router, "/api/v1/dimer", api.DimerRequestV1{Primers: primers, All: true})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.DimerResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(Equal(3))

			serious := 0
			for _, d := range resp.Dimers {
				if d.Serious {
					serious++
				}
			}
			Expect(serious).To(Equal(1))
		})

		It("should honor a raised threshold", func() {
			high := 100.0
			w := postJSON(router, "/api/v1/dimer", api.DimerRequestV1{Primers: primers, Threshold: &high})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp api.DimerResponseV1
			decodeBody(w, &resp)
			Expect(resp.Count).To(BeZero())
		})

		It("should reject a non-positive min_overlap", func() {
			zero := 0
			w := postJSON(router, "/api/v1/dimer", api.DimerRequestV1{Primers: primers, MinOverlap: &zero})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(ContainSubstring("min_overlap"))
		})
	})

	Describe("GET /api/v1/settings", func() {
		It("should expose the active scoring tables", func() {
			w := get(router, "/api/v1/settings")
			Expect(w.Code).To(Equal(http.StatusOK))

			var f config.SettingsFile
			decodeBody(w, &f)
			Expect(f.PrimabilityCutoff).To(Equal(0.8))
			Expect(f.StabilityCutoff).To(Equal(0.4))
			Expect(f.Pairs.Rows).To(Equal("GATCMRWSYKVHDBN"))
			Expect(f.Pairs.Cols).To(Equal("GATCN"))
			Expect(f.Primability.Overrides).To(HaveKeyWithValue(0, 30.0))
			Expect(f.Stability.Initial).To(Equal(186.0))
		})
	})

	Describe("GET /api/v1/version", func() {
		It("should report the build version", func() {
			w := get(router, "/api/v1/version")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			decodeBody(w, &resp)
			Expect(resp).To(HaveKeyWithValue("version", version.Version))
		})
	})

	Describe("GET /metrics", func() {
		It("should expose prometheus counters", func() {
			get(router, "/health")
			w := get(router, "/metrics")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("pcrsim_http_requests_total"))
			Expect(w.Body.String()).To(ContainSubstring("pcrsim_simulations_total"))
		})
	})

	Describe("routing", func() {
		It("should return 404 for unknown paths", func() {
			Expect(get(router, "/api/v1/nope").Code).To(Equal(http.StatusNotFound))
		})

		It("should return 405 for wrong methods on API routes", func() {
			Expect(get(router, "/api/v1/simulate").Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Context("with a small template cap", func() {
		BeforeEach(func() {
			cfg := config.Default().Server
			cfg.MaxTemplateLength = 10
			router = New(cfg, scoring.Default(), zap.NewNop()).Router()
		})

		It("should refuse oversized templates", func() {
			w := postJSON(router, "/api/v1/simulate", api.SimulateRequestV1{
				Template: repeatTpl,
				Primers:  []api.PrimerV1{{ID: "p1", Seq: "AAAGGGCCC"}},
			})
			Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))

			var e api.ErrorV1
			decodeBody(w, &e)
			Expect(e.Error).To(Equal("template longer than 10 bases"))
		})
	})
})

var _ = Describe("New", func() {
	It("should fall back to default settings and a nop logger", func() {
		s := New(config.Default().Server, nil, nil)
		Expect(get(s.Router(), "/health").Code).To(Equal(http.StatusOK))
	})
})
