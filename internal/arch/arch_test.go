// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
}

// TestImportBoundaries keeps the dependency graph layered: schema and
// parsing packages stay below the pipeline, the pipeline stays below
// the CLI and the server, and nothing reaches back up into cmd.
func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "pcrsim/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"pcrsim/pkg/api": {
			"pcrsim/internal/", "pcrsim/cmd/",
		},
		"pcrsim/internal/fasta": {
			"pcrsim/internal/pipeline", "pcrsim/internal/output",
			"pcrsim/internal/server", "pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/primers": {
			"pcrsim/internal/pipeline", "pcrsim/internal/output",
			"pcrsim/internal/server", "pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/output": {
			"pcrsim/internal/pipeline", "pcrsim/internal/server",
			"pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/pipeline": {
			"pcrsim/internal/output", "pcrsim/internal/report",
			"pcrsim/internal/server", "pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/report": {
			"pcrsim/internal/pipeline", "pcrsim/internal/server",
			"pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/config": {
			"pcrsim/internal/server", "pcrsim/internal/cmd", "pcrsim/cmd/",
		},
		"pcrsim/internal/server": {
			"pcrsim/internal/cmd", "pcrsim/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "pcrsim/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "pcrsim/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
