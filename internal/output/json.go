// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as a pretty-indented JSON document. Callers pass
// slices of the v1 wire types so the CLI and the HTTP API emit the
// same schema.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
