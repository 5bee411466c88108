// internal/cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pcrsim/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pcrsim version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pcrsim version %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
