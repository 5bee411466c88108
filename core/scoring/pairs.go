// core/scoring/pairs.go
package scoring

// PairScores is a score matrix between a row alphabet and a column
// alphabet with precomputed per-row maxima. Origin search uses primer
// symbols as rows and template symbols as columns; dimer analysis uses
// primer symbols on both axes. Symbols outside the configured alphabets
// score zero, which covers the gap symbol.
type PairScores struct {
	rows, cols string
	rowIdx     [256]int16
	colIdx     [256]int16
	w          [][]float64
	max        []float64
}

// NewPairScores validates the matrix dimensions against the two symbol
// strings and precomputes row maxima. Entries may be negative; a pair
// scoring at or below zero counts as a mismatch during search.
func NewPairScores(rowSyms, colSyms string, weights [][]float64) (PairScores, error) {
	if len(rowSyms) == 0 || len(colSyms) == 0 {
		return PairScores{}, &ConfigError{Field: "pairs", Reason: "empty alphabet"}
	}
	if len(weights) != len(rowSyms) {
		return PairScores{}, &ConfigError{Field: "pairs", Reason: "row count does not match row alphabet"}
	}
	s := PairScores{rows: rowSyms, cols: colSyms}
	for i := range s.rowIdx {
		s.rowIdx[i] = -1
		s.colIdx[i] = -1
	}
	for i := 0; i < len(rowSyms); i++ {
		s.rowIdx[rowSyms[i]] = int16(i)
	}
	for j := 0; j < len(colSyms); j++ {
		s.colIdx[colSyms[j]] = int16(j)
	}
	s.w = make([][]float64, len(weights))
	s.max = make([]float64, len(weights))
	for i, row := range weights {
		if len(row) != len(colSyms) {
			return PairScores{}, &ConfigError{Field: "pairs", Reason: "column count does not match column alphabet"}
		}
		s.w[i] = append([]float64(nil), row...)
		m := row[0]
		for _, v := range row[1:] {
			if v > m {
				m = v
			}
		}
		s.max[i] = m
	}
	return s, nil
}

// Score returns the weight of pairing row symbol p against column
// symbol t, or 0 when either symbol is outside its alphabet.
func (s PairScores) Score(p, t byte) float64 {
	if len(s.w) == 0 {
		return 0
	}
	i, j := s.rowIdx[p], s.colIdx[t]
	if i < 0 || j < 0 {
		return 0
	}
	return s.w[i][j]
}

// RowMax returns the best score attainable by row symbol p, or 0 if p
// is outside the row alphabet.
func (s PairScores) RowMax(p byte) float64 {
	if len(s.w) == 0 {
		return 0
	}
	i := s.rowIdx[p]
	if i < 0 {
		return 0
	}
	return s.max[i]
}

// Rows returns the row alphabet.
func (s PairScores) Rows() string { return s.rows }

// Cols returns the column alphabet.
func (s PairScores) Cols() string { return s.cols }
