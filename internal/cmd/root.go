// internal/cmd/root.go

// Package cmd wires the command line interface. Flags are bound into
// Viper so the command line, an optional config file, and the built-in
// defaults merge into one configuration, flags winning.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"pcrsim-core/scoring"

	"pcrsim/internal/config"
	"pcrsim/internal/logging"
	"pcrsim/internal/version"
)

// usageError marks problems a corrected invocation would fix.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// errNoMatch reports a clean run that found nothing. Run turns it into
// the --no-match-exit-code status without printing anything.
var errNoMatch = errors.New("no products found")

var (
	cfgFile    string
	primerFile string
	outputPath string
	withHeader bool
	quiet      bool

	cfg      config.Config
	settings *scoring.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pcrsim",
	Short: "Simulate PCR amplification with Amplify-style primer scoring",
	Long: `pcrsim predicts PCR products by scoring every binding site of each
primer on both strands of the template with position-weighted match
tables, then pairing forward and reverse sites into products.

Primers may carry IUPAC degeneracy codes. Templates are read from
FASTA files, gzipped or plain, with - for stdin.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRun,
}

// initRun assembles the configuration every subcommand works from:
// defaults, then the config file, then flags, then the scoring
// settings file with cutoff overrides applied.
func initRun(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	if cfgFile != "" {
		if err := config.LoadFile(cfgFile); err != nil {
			return usageError{err}
		}
	}
	c, err := config.FromViper()
	if err != nil {
		return usageError{err}
	}
	cfg = c

	log, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return usageError{err}
	}
	logger = log

	s, err := config.LoadSettings(cfg.Run.Settings)
	if err != nil {
		return usageError{err}
	}
	if cfg.Run.PrimabilityCutoff >= 0 || cfg.Run.StabilityCutoff >= 0 {
		p, st := s.PrimabilityCutoff(), s.StabilityCutoff()
		if cfg.Run.PrimabilityCutoff >= 0 {
			p = cfg.Run.PrimabilityCutoff
		}
		if cfg.Run.StabilityCutoff >= 0 {
			st = cfg.Run.StabilityCutoff
		}
		if s, err = s.WithCutoffs(p, st); err != nil {
			return usageError{err}
		}
	}
	settings = s
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to a YAML config file")
	pf.StringVarP(&primerFile, "primers", "p", "", "primer TSV, one \"id sequence\" pair per line")
	pf.StringVarP(&outputPath, "output", "o", "-", "output path, - for stdout")
	pf.BoolVar(&withHeader, "header", true, "print the column header on tsv output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")

	pf.String("settings", "", "scoring settings YAML; empty selects the built-in Amplify tables")
	pf.Float64("primability-cutoff", -1, "primability admission cutoff; negative keeps the settings value")
	pf.Float64("stability-cutoff", -1, "stability admission cutoff; negative keeps the settings value")
	pf.Bool("circular", false, "treat templates as circular molecules")
	pf.Int("min-length", 1, "shortest product reported")
	pf.Int("max-length", 0, "longest product reported; 0 disables the bound")
	pf.Int("threads", 0, "worker goroutines; 0 means GOMAXPROCS")
	pf.StringP("format", "f", "text", "output format: text, tsv, json or fasta")
	pf.String("log-level", "info", "log verbosity: debug, info, warn or error")
	pf.Bool("log-json", false, "emit JSON log lines")

	_ = viper.BindPFlag("run.settings", pf.Lookup("settings"))
	_ = viper.BindPFlag("run.primability-cutoff", pf.Lookup("primability-cutoff"))
	_ = viper.BindPFlag("run.stability-cutoff", pf.Lookup("stability-cutoff"))
	_ = viper.BindPFlag("run.circular", pf.Lookup("circular"))
	_ = viper.BindPFlag("run.min-length", pf.Lookup("min-length"))
	_ = viper.BindPFlag("run.max-length", pf.Lookup("max-length"))
	_ = viper.BindPFlag("run.threads", pf.Lookup("threads"))
	_ = viper.BindPFlag("run.format", pf.Lookup("format"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.json", pf.Lookup("log-json"))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
}

// Run executes the CLI with explicit arguments and streams and returns
// the process exit code: 0 on success, the configured no-match code
// when nothing was found, 2 for usage errors, 3 for I/O failures, 130
// after an interrupt. A broken pipe on stdout counts as success.
func Run(argv []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(argv)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		return 0
	}

	var uerr usageError
	switch {
	case errors.Is(err, errNoMatch):
		return noMatchCode
	case isBrokenPipe(err):
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "interrupted")
		return 130
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 3
	}
}

// Execute is the os-level entry point called by main.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
