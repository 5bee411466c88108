// internal/pipeline/pipeline.go

// Package pipeline fans template records out to worker goroutines and
// streams per-template simulation results back in file order.
package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"pcrsim-core/amplicon"
	"pcrsim-core/dna"
	"pcrsim-core/pcr"
	"pcrsim-core/repliconf"
	"pcrsim-core/scoring"

	"pcrsim/internal/fasta"
)

// Config controls the simulation pipeline.
type Config struct {
	Threads     int  // worker goroutines; <1 means GOMAXPROCS
	Circular    bool // treat every template as a circular molecule
	MinLength   int  // shortest product kept
	MaxLength   int  // longest product kept; 0 disables the bound
	OriginsOnly bool // skip amplicon assembly, report binding sites only
}

// Result is the outcome for one template record. Amplicons is nil when
// the pipeline runs in origins-only mode.
type Result struct {
	SourceFile string
	TemplateID string
	Sets       []repliconf.OriginSet
	Amplicons  []amplicon.Amplicon
}

// ForEachTemplate streams FASTA records from seqFiles, simulates each
// against the primer list, and calls visit once per template in file
// order. Invalid records and unreadable files are skipped and the
// first such error returned once the remaining inputs have been
// processed. An error from visit stops further visits and is returned.
// Context cancellation stops the run and wins over deferred errors.
func ForEachTemplate(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	primers []dna.Primer,
	settings *scoring.Settings,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if len(primers) == 0 {
		return errors.New("pipeline: no primers")
	}
	// Vet the primer list once, before any file is opened. Duplicate
	// names or sequences would fail every template identically.
	probe := pcr.New(dna.Sequence{}, settings)
	if err := probe.AddPrimers(primers...); err != nil {
		return err
	}

	topo := dna.Linear
	if cfg.Circular {
		topo = dna.Circular
	}

	type job struct {
		idx        int
		rec        fasta.Record
		sourceFile string
	}
	type indexed struct {
		idx int
		res Result
		err error
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan indexed, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res, err := simulate(cfg, topo, j.rec, primers, settings)
					res.SourceFile = j.sourceFile
					res.TemplateID = j.rec.ID
					select {
					case results <- indexed{idx: j.idx, res: res, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector. Results arrive in completion order; the pending map
	// holds them until every earlier index has been emitted. recErr and
	// visitErr are only read by the main goroutine after cwg.Wait.
	var (
		recErr   error // first invalid record, templates keep flowing
		visitErr error // first error from visit, stops further visits
		cwg      sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]indexed)
		next := 0
		for r := range results {
			pending[r.idx] = r
			for {
				v, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if v.err != nil {
					if recErr == nil {
						recErr = v.err
					}
					continue
				}
				if visitErr != nil {
					continue
				}
				if err := visit(v.res); err != nil {
					visitErr = err
				}
			}
		}
	}()

	// Feed work
	var feedErr error
	idx := 0
feed:
	for _, fa := range seqFiles {
		err := fasta.StreamPathCtx(ctx, fa, func(rec fasta.Record) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{idx: idx, rec: rec, sourceFile: fa}:
				idx++
				return nil
			}
		})
		if err != nil {
			if ctx.Err() != nil {
				break feed
			}
			// Keep scanning other files; first error will be returned.
			if feedErr == nil {
				feedErr = err
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case visitErr != nil:
		return visitErr
	case recErr != nil:
		return recErr
	default:
		return feedErr
	}
}

func simulate(cfg Config, topo dna.Topology, rec fasta.Record, primers []dna.Primer, settings *scoring.Settings) (Result, error) {
	tpl, err := dna.New(string(rec.Seq), topo, rec.ID)
	if err != nil {
		return Result{}, err
	}
	r := pcr.New(tpl, settings)
	if err := r.AddPrimers(primers...); err != nil {
		return Result{}, err
	}
	res := Result{Sets: r.OriginSets()}
	if cfg.OriginsOnly {
		return res, nil
	}
	minLen := cfg.MinLength
	if minLen < 1 {
		minLen = 1
	}
	amps, err := r.Run(minLen)
	if err != nil {
		return Result{}, err
	}
	if cfg.MaxLength > 0 {
		kept := amps[:0]
		for _, a := range amps {
			if a.Length <= cfg.MaxLength {
				kept = append(kept, a)
			}
		}
		amps = kept
	}
	res.Amplicons = amps
	return res, nil
}
