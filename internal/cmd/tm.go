// internal/cmd/tm.go
package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pcrsim-core/dna"
	"pcrsim-core/melt"

	"pcrsim/internal/output"
	"pcrsim/internal/primers"
	"pcrsim/pkg/api"
)

var tmCmd = &cobra.Command{
	Use:   "tm [sequence ...]",
	Short: "Estimate primer melting temperatures",
	Long: `Computes nearest-neighbor melting temperatures with salt correction
for bare sequences given as arguments, for a --primers file, or both.
Degenerate primers are rejected; Tm needs a concrete sequence.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTm,
}

func init() {
	rootCmd.AddCommand(tmCmd)

	f := tmCmd.Flags()
	f.Float64("monovalent", 50, "monovalent cation concentration in mM")
	f.Float64("divalent", 1.5, "divalent cation concentration in mM")
	f.Float64("conc", 50, "primer concentration in nM")

	_ = viper.BindPFlag("melt.monovalent", f.Lookup("monovalent"))
	_ = viper.BindPFlag("melt.divalent", f.Lookup("divalent"))
	_ = viper.BindPFlag("melt.conc", f.Lookup("conc"))
}

func runTm(cmd *cobra.Command, args []string) error {
	inputs, err := gatherPrimers(args)
	if err != nil {
		return err
	}
	format := cfg.Run.Format
	if format == "fasta" {
		return usagef("fasta output does not apply to tm")
	}

	opt := melt.Options{
		MonovalentMilliMolar: cfg.Melt.Monovalent,
		DivalentMilliMolar:   cfg.Melt.Divalent,
		PrimerNanoMolar:      cfg.Melt.Conc,
	}
	rows := make([]api.TmV1, 0, len(inputs))
	for _, p := range inputs {
		tm, err := melt.Tm(p.Seq(), opt)
		if err != nil {
			return usagef("%s: %v", p.Name(), err)
		}
		rows = append(rows, api.TmV1{PrimerID: p.Name(), Seq: p.Seq(), TmC: tm})
	}

	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)

	switch format {
	case "tsv":
		err = output.WriteTmTSV(out, rows, withHeader)
	case "json":
		err = output.WriteJSON(out, rows)
	default:
		err = output.WriteTmTSV(out, rows, false)
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

// gatherPrimers merges the --primers file with bare sequence
// arguments, naming the latter seq1, seq2, ...
func gatherPrimers(args []string) ([]dna.Primer, error) {
	var inputs []dna.Primer
	if primerFile != "" {
		list, err := primers.LoadTSV(primerFile)
		if err != nil {
			return nil, usageError{err}
		}
		inputs = list
	}
	for i, seq := range args {
		p, err := dna.NewPrimer(seq, fmt.Sprintf("seq%d", i+1))
		if err != nil {
			return nil, usageError{err}
		}
		inputs = append(inputs, p)
	}
	if len(inputs) == 0 {
		return nil, usagef("provide sequences as arguments or with --primers")
	}
	return inputs, nil
}
