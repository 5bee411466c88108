// core/dna/errors.go
package dna

import "fmt"

// ValidationError reports input that failed sequence validation.
type ValidationError struct {
	Name   string // sequence name, may be empty
	Pos    int    // position of the offending symbol in the input, -1 if none
	Sym    byte   // offending symbol, 0 if none
	Reason string
}

func (e *ValidationError) Error() string {
	id := e.Name
	if id == "" {
		id = "sequence"
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s: %q at position %d", id, e.Reason, e.Sym, e.Pos)
	}
	return fmt.Sprintf("%s: %s", id, e.Reason)
}

// IndexError reports out-of-range access on a linear sequence.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Len)
}
