package roll

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts every random decision the pipeline makes.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n); n must be > 0
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	v := int(c.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo, tests)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }

// Shuffle permutes xs in place (Fisher-Yates) using rng.
func Shuffle[T any](rng RandomSource, xs []T) {
	if rng == nil {
		rng = DefaultRNG()
	}
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
