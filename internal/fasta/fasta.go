// internal/fasta/fasta.go

// Package fasta streams whole FASTA records from files, gzip files or
// stdin. Binding-site search needs complete template sequences, so
// records are never windowed; a multi-gigabase template costs its full
// length in memory.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA entry. ID is the header token up to the
// first whitespace, Description the remainder of the header line.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}

// StreamCtx parses FASTA from r and calls emit once per record, in
// file order. Cancellation via ctx is honored between lines. Sequence
// data before the first header is an error; an emit error stops the
// scan and is returned as-is.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		cur    Record
		seen   bool
		lineNo int
	)
	cur.Seq = make([]byte, 0, 1<<20)

	flush := func() error {
		if !seen {
			return nil
		}
		out := cur
		out.Seq = append([]byte(nil), cur.Seq...)
		return emit(out)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur.ID, cur.Description = parseHeader(line[1:])
			cur.Seq = cur.Seq[:0]
			seen = true
			continue
		}
		if !seen {
			return fmt.Errorf("fasta line %d: sequence data before first header", lineNo)
		}
		cur.Seq = append(cur.Seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// StreamPathCtx opens path (gzip and "-" for stdin supported) and
// streams its records through emit.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := StreamCtx(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return nil
}

// ReadAllCtx collects every record from path.
func ReadAllCtx(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := StreamPathCtx(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadAll is ReadAllCtx with a background context.
func ReadAll(path string) ([]Record, error) {
	return ReadAllCtx(context.Background(), path)
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}

func displayPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
