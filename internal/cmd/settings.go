// internal/cmd/settings.go
package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"pcrsim/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the active scoring settings as YAML",
	Long: `Dumps the scoring tables the other commands would use, with
--settings and the cutoff flags already applied. Redirect to a file,
adjust, and pass it back with --settings.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)
	if err := config.WriteSettings(out, settings); err != nil {
		_ = closeOut()
		return err
	}
	if err := out.Flush(); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}
