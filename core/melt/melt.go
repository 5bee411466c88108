// core/melt/melt.go
package melt

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Options carries the solution conditions for a melting temperature
// estimate. Monovalent covers Na+, K+ and Tris+ together; divalent is
// free Mg2+. A non-positive primer concentration falls back to the
// default 50 nM.
type Options struct {
	MonovalentMilliMolar float64
	DivalentMilliMolar   float64
	PrimerNanoMolar      float64
}

// DefaultOptions returns standard PCR buffer conditions.
func DefaultOptions() Options {
	return Options{
		MonovalentMilliMolar: 50,
		DivalentMilliMolar:   1.5,
		PrimerNanoMolar:      50,
	}
}

const (
	gasConstant = 1.987 // cal/(K*mol)
	zeroCelsius = 273.15

	// Owczarzy et al. 2008, Biochemistry 47(19), equation 16.
	owcA = 3.92e-5
	owcB = -9.11e-6
	owcC = 6.26e-5
	owcD = 1.42e-5
	owcE = -4.82e-4
	owcF = 5.25e-4
	owcG = 8.31e-5
)

type thermo struct {
	dh float64 // cal/mol
	ds float64 // cal/(K*mol)
}

// Nearest-neighbor parameters from SantaLucia 1998, PNAS 95(4),
// keyed by the 5'->3' dinucleotide of the top strand.
var nnThermo = map[string]thermo{
	"AA": {-7900, -22.2},
	"TT": {-7900, -22.2},
	"AT": {-7200, -20.4},
	"TA": {-7200, -21.3},
	"CA": {-8500, -22.7},
	"TG": {-8500, -22.7},
	"GT": {-8400, -22.4},
	"AC": {-8400, -22.4},
	"CT": {-7800, -21.0},
	"AG": {-7800, -21.0},
	"GA": {-8200, -22.2},
	"TC": {-8200, -22.2},
	"CG": {-10600, -27.2},
	"GC": {-9800, -24.4},
	"GG": {-8000, -19.9},
	"CC": {-8000, -19.9},
}

// Tm estimates the melting temperature of an unambiguous primer
// sequence in degrees Celsius, using the SantaLucia 1998
// nearest-neighbor model with duplex initiation corrections. The salt
// correction depends on the buffer: without magnesium, or when
// monovalent ions dominate (sqrt([Mg2+])/[Mon+] below 0.22), the
// SantaLucia entropy correction applies; otherwise the Owczarzy 2008
// magnesium correction adjusts the reciprocal temperature. Ambiguity
// codes have no defined stacking parameters, so any symbol outside
// ACGT is an error.
func Tm(seq string, opt Options) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(seq))
	n := len(s)
	if n < 2 {
		return 0, fmt.Errorf("melting temperature needs at least 2 bases, got %d", n)
	}
	if opt.MonovalentMilliMolar < 0 || opt.DivalentMilliMolar < 0 || opt.PrimerNanoMolar < 0 {
		return 0, errors.New("salt and primer concentrations must not be negative")
	}
	for i := 0; i < n; i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return 0, fmt.Errorf("melting temperature is defined for ACGT only: %q at position %d", s[i], i)
		}
	}

	var dh, ds float64
	for _, end := range []byte{s[0], s[n-1]} {
		if end == 'G' || end == 'C' {
			dh += 100
			ds += -2.8
		} else {
			dh += 2300
			ds += 4.1
		}
	}
	for i := 0; i+1 < n; i++ {
		t := nnThermo[s[i:i+2]]
		dh += t.dh
		ds += t.ds
	}

	mono := opt.MonovalentMilliMolar * 1e-3
	div := opt.DivalentMilliMolar * 1e-3
	ct := opt.PrimerNanoMolar * 1e-9
	if ct <= 0 {
		ct = 50e-9
	}

	base := ds + gasConstant*math.Log(ct/4)
	if base == 0 {
		return 0, errors.New("entropy and concentration terms cancel")
	}
	tm1M := dh / base
	fn := float64(n)

	switch {
	case div == 0 && mono == 0:
		return tm1M - zeroCelsius, nil
	case div == 0 || math.Sqrt(div)/mono < 0.22:
		denom := ds + 0.368*(fn-1)*math.Log(mono) + gasConstant*math.Log(ct/4)
		return dh/denom - zeroCelsius, nil
	default:
		lm := math.Log(div)
		var gc float64
		for i := 0; i < n; i++ {
			if s[i] == 'G' || s[i] == 'C' {
				gc++
			}
		}
		fgc := gc / fn
		corr := owcA + owcB*lm + fgc*(owcC+owcD*lm) +
			(1/(2*(fn-1)))*(owcE+owcF*lm+owcG*lm*lm)
		return 1/(1/tm1M+corr) - zeroCelsius, nil
	}
}
