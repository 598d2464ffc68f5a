package roll

import (
	"errors"
	"math"
)

var ErrInvalidWeight = errors.New("invalid weight; must be a finite number >= 0")

// ValidateProb reports whether p is a usable probability in [0, 1].
func ValidateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// ValidateWeight reports whether w can be used as a table weight.
// Weights above 1 are allowed; the table then never yields "nothing".
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return ErrInvalidWeight
	}
	return nil
}
