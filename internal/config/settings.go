// internal/config/settings.go
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pcrsim-core/scoring"
)

// WeightsFile is the YAML form of a position weight table. Offsets
// count from the primer's 3' end; offsets absent from overrides keep
// the initial weight.
type WeightsFile struct {
	Size      int             `yaml:"size" json:"size"`
	Initial   float64         `yaml:"initial" json:"initial"`
	Overrides map[int]float64 `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// PairsFile is the YAML form of the pair score matrix. Weights has one
// row per symbol in Rows and one column per symbol in Cols.
type PairsFile struct {
	Rows    string      `yaml:"rows" json:"rows"`
	Cols    string      `yaml:"cols" json:"cols"`
	Weights [][]float64 `yaml:"weights" json:"weights"`
}

// SettingsFile is the schema for scoring settings, the file the
// --settings flag points at, the settings command dumps, and the
// payload of GET /api/v1/settings.
type SettingsFile struct {
	PrimabilityCutoff float64     `yaml:"primability_cutoff" json:"primability_cutoff"`
	StabilityCutoff   float64     `yaml:"stability_cutoff" json:"stability_cutoff"`
	Primability       WeightsFile `yaml:"primability_weights" json:"primability_weights"`
	Stability         WeightsFile `yaml:"stability_weights" json:"stability_weights"`
	Pairs             PairsFile   `yaml:"pair_scores" json:"pair_scores"`
}

// Validate checks shape problems before Build hands the values to the
// scoring package, so errors carry the YAML field names.
func (f *SettingsFile) Validate() error {
	if f.PrimabilityCutoff < 0 || f.PrimabilityCutoff > 1 {
		return fmt.Errorf("primability_cutoff must be between 0 and 1, got %g", f.PrimabilityCutoff)
	}
	if f.StabilityCutoff < 0 || f.StabilityCutoff > 1 {
		return fmt.Errorf("stability_cutoff must be between 0 and 1, got %g", f.StabilityCutoff)
	}
	for _, w := range []struct {
		name string
		t    WeightsFile
	}{{"primability_weights", f.Primability}, {"stability_weights", f.Stability}} {
		if w.t.Size < 1 {
			return fmt.Errorf("%s.size must be >= 1, got %d", w.name, w.t.Size)
		}
		if w.t.Initial < 0 {
			return fmt.Errorf("%s.initial must be >= 0, got %g", w.name, w.t.Initial)
		}
		for k, v := range w.t.Overrides {
			if k < 0 || k >= w.t.Size {
				return fmt.Errorf("%s.overrides: offset %d outside [0,%d)", w.name, k, w.t.Size)
			}
			if v < 0 {
				return fmt.Errorf("%s.overrides[%d] must be >= 0, got %g", w.name, k, v)
			}
		}
	}
	if f.Pairs.Rows == "" || f.Pairs.Cols == "" {
		return fmt.Errorf("pair_scores.rows and pair_scores.cols must not be empty")
	}
	if len(f.Pairs.Weights) != len(f.Pairs.Rows) {
		return fmt.Errorf("pair_scores.weights has %d rows, want %d", len(f.Pairs.Weights), len(f.Pairs.Rows))
	}
	for i, row := range f.Pairs.Weights {
		if len(row) != len(f.Pairs.Cols) {
			return fmt.Errorf("pair_scores.weights[%d] has %d columns, want %d", i, len(row), len(f.Pairs.Cols))
		}
	}
	return nil
}

// Build constructs immutable scoring settings from the file values.
func (f *SettingsFile) Build() (*scoring.Settings, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pw, err := scoring.NewPositionWeights(f.Primability.Size, f.Primability.Initial, f.Primability.Overrides)
	if err != nil {
		return nil, fmt.Errorf("primability_weights: %w", err)
	}
	sw, err := scoring.NewPositionWeights(f.Stability.Size, f.Stability.Initial, f.Stability.Overrides)
	if err != nil {
		return nil, fmt.Errorf("stability_weights: %w", err)
	}
	ps, err := scoring.NewPairScores(f.Pairs.Rows, f.Pairs.Cols, f.Pairs.Weights)
	if err != nil {
		return nil, fmt.Errorf("pair_scores: %w", err)
	}
	return scoring.New(pw, sw, ps, f.PrimabilityCutoff, f.StabilityCutoff)
}

// FileFromSettings converts built settings back to the YAML schema.
// Weight tables come out as initial plus overrides for every offset
// that differs from the initial.
func FileFromSettings(s *scoring.Settings) SettingsFile {
	f := SettingsFile{
		PrimabilityCutoff: s.PrimabilityCutoff(),
		StabilityCutoff:   s.StabilityCutoff(),
		Primability:       weightsFile(s.Primability()),
		Stability:         weightsFile(s.Stability()),
	}
	ps := s.Pairs()
	f.Pairs.Rows = ps.Rows()
	f.Pairs.Cols = ps.Cols()
	f.Pairs.Weights = make([][]float64, len(ps.Rows()))
	for i := 0; i < len(ps.Rows()); i++ {
		row := make([]float64, len(ps.Cols()))
		for j := 0; j < len(ps.Cols()); j++ {
			row[j] = ps.Score(ps.Rows()[i], ps.Cols()[j])
		}
		f.Pairs.Weights[i] = row
	}
	return f
}

func weightsFile(w scoring.PositionWeights) WeightsFile {
	// At past the table end returns the fill weight.
	initial := w.At(w.Size())
	f := WeightsFile{Size: w.Size(), Initial: initial}
	for k := 0; k < w.Size(); k++ {
		if v := w.At(k); v != initial {
			if f.Overrides == nil {
				f.Overrides = make(map[int]float64)
			}
			f.Overrides[k] = v
		}
	}
	return f
}

// LoadSettings reads a scoring settings YAML. An empty path selects
// the built-in Amplify settings.
func LoadSettings(path string) (*scoring.Settings, error) {
	if path == "" {
		return scoring.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	var f SettingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// WriteSettings dumps scoring settings as YAML, in the same schema
// LoadSettings reads.
func WriteSettings(w io.Writer, s *scoring.Settings) error {
	f := FileFromSettings(s)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// WriteDefaultSettings dumps the built-in scoring settings.
func WriteDefaultSettings(w io.Writer) error {
	return WriteSettings(w, scoring.Default())
}
