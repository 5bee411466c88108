// core/scoring/weights.go
package scoring

// PositionWeights maps an offset k from the primer's 3' end (k = 0 is
// the 3'-terminal base) to a non-negative weight. Offsets at or beyond
// the table size fall back to the initial weight.
type PositionWeights struct {
	weights  []float64
	fallback float64
}

// NewPositionWeights builds a table of the given size filled with the
// initial weight, then applies the overrides. All weights must be
// non-negative and override offsets must lie inside the table.
func NewPositionWeights(size int, initial float64, overrides map[int]float64) (PositionWeights, error) {
	if size < 0 {
		return PositionWeights{}, &ConfigError{Field: "weights", Reason: "negative table size"}
	}
	if initial < 0 {
		return PositionWeights{}, &ConfigError{Field: "weights", Reason: "negative initial weight"}
	}
	w := make([]float64, size)
	for i := range w {
		w[i] = initial
	}
	for k, v := range overrides {
		if k < 0 || k >= size {
			return PositionWeights{}, &ConfigError{Field: "weights", Reason: "override offset out of range"}
		}
		if v < 0 {
			return PositionWeights{}, &ConfigError{Field: "weights", Reason: "negative weight"}
		}
		w[k] = v
	}
	return PositionWeights{weights: w, fallback: initial}, nil
}

// At returns the weight at offset k.
func (w PositionWeights) At(k int) float64 {
	if k >= 0 && k < len(w.weights) {
		return w.weights[k]
	}
	return w.fallback
}

// Size returns the explicit table size.
func (w PositionWeights) Size() int { return len(w.weights) }
