// internal/cmd/brokenpipe.go
package cmd

import (
	"errors"
	"io"
	"syscall"
)

// isBrokenPipe reports whether an error is a broken or closed pipe, as
// when a downstream consumer like head closes early.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
