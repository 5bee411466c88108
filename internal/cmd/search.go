// internal/cmd/search.go
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
	"pcrsim/pkg/api"
)

var searchCmd = &cobra.Command{
	Use:   "search -p primers.tsv [template.fa ...]",
	Short: "List primer binding sites without assembling products",
	Long: `Reports every admitted binding site of each primer on both strands
of each template, forward sites first. Start is always the leftmost
template position of the site on the plus strand.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&noMatchCode, "no-match-exit-code", 1, "exit code when no sites are found")
}

func runSearch(cmd *cobra.Command, args []string) error {
	list, err := loadPrimerFile()
	if err != nil {
		return err
	}
	format := cfg.Run.Format
	if format == "fasta" {
		return usagef("fasta output does not apply to search")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)

	var (
		total     int
		collected []api.OriginV1
		headerUp  bool
	)
	if format == "json" {
		collected = []api.OriginV1{}
	}

	perr := pipeline.ForEachTemplate(ctx, pipeline.Config{
		Threads:     cfg.Run.Threads,
		Circular:    cfg.Run.Circular,
		OriginsOnly: true,
	}, templateFiles(args), list, settings, func(res pipeline.Result) error {
		var rows []api.OriginV1
		for _, set := range res.Sets {
			rows = append(rows, output.OriginsToAPI(res.TemplateID, res.SourceFile, set)...)
		}
		total += len(rows)
		switch format {
		case "tsv":
			head := withHeader && !headerUp
			headerUp = true
			return output.WriteOriginTSV(out, rows, head)
		case "json":
			collected = append(collected, rows...)
			return nil
		default:
			return output.WriteOriginText(out, rows)
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

	if format == "json" {
		if err := output.WriteJSON(out, api.SearchResponseV1{Origins: collected, Count: len(collected)}); err != nil {
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
