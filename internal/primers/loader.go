// internal/primers/loader.go

// Package primers loads primer lists from TSV files. Each line is
// "id sequence" (whitespace separated, 5'→3'); blank lines and lines
// starting with '#' are skipped.
package primers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"pcrsim-core/dna"
)

// Parse reads primers from r. name is used in error messages, usually
// the file path.
func Parse(r io.Reader, name string) ([]dna.Primer, error) {
	var list []dna.Primer
	seen := make(map[string]int)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count, want \"id sequence\"", name, ln)
		}
		id, seq := f[0], f[1]
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s:%d duplicate primer id %q (first at line %d)", name, ln, id, prev)
		}
		p, err := dna.NewPrimer(seq, id)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", name, ln, err)
		}
		seen[id] = ln
		list = append(list, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return list, nil
}

// LoadTSV reads primers from a file on disk.
func LoadTSV(path string) ([]dna.Primer, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh, path)
}
