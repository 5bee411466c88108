// internal/cmd/dimer.go
package cmd

import (
	"bufio"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pcrsim-core/dimer"

	"pcrsim/internal/output"
)

var dimerAll bool

var dimerCmd = &cobra.Command{
	Use:   "dimer -p primers.tsv [sequence ...]",
	Short: "Screen primers for cross- and self-dimers",
	Long: `Aligns every primer pair in antiparallel orientation, each primer
against itself included, and reports the interactions scoring above
the threshold. --all reports every pairing whether flagged or not.

An empty report is good news: exit status stays 0.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDimer,
}

func init() {
	rootCmd.AddCommand(dimerCmd)

	f := dimerCmd.Flags()
	f.BoolVar(&dimerAll, "all", false, "report every pairing, not only the flagged ones")
	f.Float64("threshold", 60, "score above which an interaction is flagged")
	f.Int("min-overlap", 3, "minimum aligned bases for a flagged interaction")

	_ = viper.BindPFlag("dimer.threshold", f.Lookup("threshold"))
	_ = viper.BindPFlag("dimer.min-overlap", f.Lookup("min-overlap"))
}

func runDimer(cmd *cobra.Command, args []string) error {
	inputs, err := gatherPrimers(args)
	if err != nil {
		return err
	}
	format := cfg.Run.Format
	if format == "fasta" {
		return usagef("fasta output does not apply to dimer")
	}

	opt := dimer.DefaultOptions()
	opt.Threshold = cfg.Dimer.Threshold
	opt.MinOverlap = cfg.Dimer.MinOverlap

	var results []dimer.Result
	if dimerAll {
		for i := 0; i < len(inputs); i++ {
			for j := i; j < len(inputs); j++ {
				results = append(results, dimer.Analyze(inputs[i], inputs[j], opt))
			}
		}
	} else {
		results = dimer.AnalyzeGroup(inputs, opt)
	}
	rows := output.DimersToAPI(results)

	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)

	switch format {
	case "tsv":
		err = output.WriteDimerTSV(out, rows, withHeader)
	case "json":
		err = output.WriteJSON(out, rows)
	default:
		err = output.WriteDimerTSV(out, rows, false)
	}
	if err != nil {
		_ = closeOut()
		return err
	}
	if err := out.Flush(); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}
