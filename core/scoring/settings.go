// core/scoring/settings.go
package scoring

import (
	"fmt"

	"pcrsim-core/dna"
)

// ConfigError reports malformed scoring configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scoring: %s: %s", e.Field, e.Reason)
}

// Settings bundles the primability and stability weight tables, the
// pair score matrix and the admission cutoffs for origin search.
// Immutable after construction; one instance can be shared read-only
// across concurrent searches.
type Settings struct {
	primability PositionWeights
	stability   PositionWeights
	pairs       PairScores
	pCut, sCut  float64
}

// New validates the cutoffs and returns an immutable Settings. Both
// cutoffs must lie in [0, 1]; the weight tables enforce non-negativity
// at their own construction.
func New(primability, stability PositionWeights, pairs PairScores, primabilityCutoff, stabilityCutoff float64) (*Settings, error) {
	if primabilityCutoff < 0 || primabilityCutoff > 1 {
		return nil, &ConfigError{Field: "primability_cutoff", Reason: "outside [0,1]"}
	}
	if stabilityCutoff < 0 || stabilityCutoff > 1 {
		return nil, &ConfigError{Field: "stability_cutoff", Reason: "outside [0,1]"}
	}
	return &Settings{
		primability: primability,
		stability:   stability,
		pairs:       pairs,
		pCut:        primabilityCutoff,
		sCut:        stabilityCutoff,
	}, nil
}

// WithCutoffs returns a copy of s with different cutoffs.
func (s *Settings) WithCutoffs(primabilityCutoff, stabilityCutoff float64) (*Settings, error) {
	return New(s.primability, s.stability, s.pairs, primabilityCutoff, stabilityCutoff)
}

func (s *Settings) Primability() PositionWeights { return s.primability }
func (s *Settings) Stability() PositionWeights   { return s.stability }
func (s *Settings) Pairs() PairScores            { return s.pairs }
func (s *Settings) PrimabilityCutoff() float64   { return s.pCut }
func (s *Settings) StabilityCutoff() float64     { return s.sCut }

// Amplify default tables. Primability weights decay steeply away from
// the 3' end so a terminal mismatch dominates the score; stability run
// weights climb over the first five offsets and stay flat after.
var (
	defaultPrimabilityOverrides = map[int]float64{
		0: 30, 1: 20, 2: 10, 3: 10, 4: 9, 5: 9, 6: 8, 7: 7,
		8: 6, 9: 5, 10: 5, 11: 4, 12: 3, 13: 2, 14: 1,
	}
	defaultStabilityOverrides = map[int]float64{
		0: 100, 1: 150, 2: 175, 3: 182, 4: 186,
	}

	// Rows follow dna.PrimerAlphabet, columns dna.CircularAlphabet:
	// identity pairs 100, double-code members 70, triple-code members
	// 50, anything against the template wildcard 30.
	defaultPairWeights = [][]float64{
		{100, 0, 0, 0, 30},  // G
		{0, 100, 0, 0, 30},  // A
		{0, 0, 100, 0, 30},  // T
		{0, 0, 0, 100, 30},  // C
		{0, 70, 0, 70, 30},  // M
		{70, 70, 0, 0, 30},  // R
		{0, 70, 70, 0, 30},  // W
		{70, 0, 0, 70, 30},  // S
		{0, 0, 70, 70, 30},  // Y
		{70, 0, 70, 0, 30},  // K
		{50, 50, 0, 50, 30}, // V
		{0, 50, 50, 50, 30}, // H
		{50, 50, 50, 0, 30}, // D
		{50, 0, 50, 50, 30}, // B
		{30, 30, 30, 30, 30}, // N
	}
)

const (
	defaultTableSize          = 200
	defaultPrimabilityInitial = 1
	defaultStabilityInitial   = 186
	defaultPrimabilityCutoff  = 0.8
	defaultStabilityCutoff    = 0.4
)

// Default returns the Amplify scoring settings: the tables above with
// cutoffs 0.8 (primability) and 0.4 (stability).
func Default() *Settings {
	pw, err := NewPositionWeights(defaultTableSize, defaultPrimabilityInitial, defaultPrimabilityOverrides)
	if err != nil {
		panic("scoring: default primability table: " + err.Error())
	}
	sw, err := NewPositionWeights(defaultTableSize, defaultStabilityInitial, defaultStabilityOverrides)
	if err != nil {
		panic("scoring: default stability table: " + err.Error())
	}
	ps, err := NewPairScores(dna.PrimerAlphabet, dna.CircularAlphabet, defaultPairWeights)
	if err != nil {
		panic("scoring: default pair scores: " + err.Error())
	}
	s, err := New(pw, sw, ps, defaultPrimabilityCutoff, defaultStabilityCutoff)
	if err != nil {
		panic("scoring: default settings: " + err.Error())
	}
	return s
}
