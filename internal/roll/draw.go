package roll

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw under p, return if it is hit
// p <= 0 => no hit, p >= 1 => must hit; neither consumes a draw.
// otherwise, rng.Float64() < p
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := ValidateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// Chance is Draw for probabilities that were already validated at load time.
// An invalid p counts as a miss.
func Chance(p float64, rng RandomSource) bool {
	hit, err := Draw(p, rng)
	return err == nil && hit
}
