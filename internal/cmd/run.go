// internal/cmd/run.go
package cmd

import (
	"bufio"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pcrsim-core/dna"

	"pcrsim/internal/output"
	"pcrsim/internal/pipeline"
	"pcrsim/internal/primers"
	"pcrsim/internal/report"
	"pcrsim/pkg/api"
)

var (
	includeSeq  bool
	withSummary bool
	noMatchCode int
)

var runCmd = &cobra.Command{
	Use:   "run -p primers.tsv [template.fa ...]",
	Short: "Predict PCR products for a primer list against templates",
	Long: `Scores every primer against both strands of each template, pairs the
admitted forward and reverse binding sites, and writes one row per
predicted product. Templates default to stdin when no file is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.BoolVar(&includeSeq, "include-seq", false, "carry product sequences into json output")
	f.BoolVar(&withSummary, "summary", false, "print a run summary to stderr")
	f.IntVar(&noMatchCode, "no-match-exit-code", 1, "exit code when no products are found")
}

func runRun(cmd *cobra.Command, args []string) error {
	list, err := loadPrimerFile()
	if err != nil {
		return err
	}
	if cfg.Run.MaxLength > 0 {
		longest := 0
		for _, p := range list {
			if p.Len() > longest {
				longest = p.Len()
			}
		}
		if longest > cfg.Run.MaxLength {
			return usagef("--max-length (%d) is smaller than the longest primer (%d)", cfg.Run.MaxLength, longest)
		}
		if cfg.Run.MinLength > cfg.Run.MaxLength {
			return usagef("--min-length (%d) exceeds --max-length (%d)", cfg.Run.MinLength, cfg.Run.MaxLength)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)

	var (
		sum       report.Summary
		total     int
		collected []api.AmpliconV1
		headerUp  bool
	)
	format := cfg.Run.Format
	if format == "json" {
		collected = []api.AmpliconV1{}
	}

	perr := pipeline.ForEachTemplate(ctx, pipeline.Config{
		Threads:   cfg.Run.Threads,
		Circular:  cfg.Run.Circular,
		MinLength: cfg.Run.MinLength,
		MaxLength: cfg.Run.MaxLength,
	}, templateFiles(args), list, settings, func(res pipeline.Result) error {
		total += len(res.Amplicons)
		if withSummary {
			sum.Add(res.Amplicons)
		}
		rows := output.AmpliconsToAPI(res.TemplateID, res.SourceFile, res.Amplicons,
			includeSeq || format == "fasta")
		switch format {
		case "tsv":
			head := withHeader && !headerUp
			headerUp = true
			return output.WriteAmpliconTSV(out, rows, head)
		case "json", "fasta":
			collected = append(collected, rows...)
			return nil
		default:
			return output.WriteAmpliconText(out, rows)
		}
	})
	if perr != nil {
		var verr *dna.ValidationError
		if !errors.As(perr, &verr) {
			_ = closeOut()
			return perr
		}
		warnf(cmd, "skipped template: %v", perr)
	}

	switch format {
	case "json":
		err = output.WriteJSON(out, api.SimulateResponseV1{Amplicons: collected, Count: len(collected)})
	case "fasta":
		err = output.WriteFASTA(out, collected)
	}
	if err != nil {
		_ = closeOut()
		return err
	}

	if withSummary {
		sum.Primers = len(list)
		sum.Finalize()
		if err := report.Write(cmd.ErrOrStderr(), sum); err != nil {
			_ = closeOut()
			return err
		}
	}

	if err := out.Flush(); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if total == 0 {
		return errNoMatch
	}
	return nil
}

// loadPrimerFile reads --primers, reporting missing or malformed input
// as usage errors.
func loadPrimerFile() ([]dna.Primer, error) {
	if primerFile == "" {
		return nil, usagef("--primers is required")
	}
	list, err := primers.LoadTSV(primerFile)
	if err != nil {
		return nil, usageError{err}
	}
	return list, nil
}

// templateFiles defaults to stdin when no FASTA paths were given.
func templateFiles(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
