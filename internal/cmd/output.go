// internal/cmd/output.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// openOutput resolves the --output flag. Empty or "-" selects the
// command's stdout; the returned closer only closes real files.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// warnf prints a warning to the command's stderr unless --quiet.
func warnf(cmd *cobra.Command, format string, a ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", a...)
}
