package roll

// Sequence is a scripted RandomSource. Float64 and IntN values are returned in
// the order they were queued; once a queue runs dry Float64 returns Fallback
// and IntN returns 0.
type Sequence struct {
	floats   []float64
	ints     []int
	Fallback float64
}

// NewSequence queues floats; Fallback defaults to just below 1 so that any
// unscripted chance misses.
func NewSequence(floats ...float64) *Sequence {
	return &Sequence{floats: append([]float64(nil), floats...), Fallback: 0.999999}
}

// Ints queues values for IntN. Each is reduced modulo n when consumed.
func (s *Sequence) Ints(vs ...int) *Sequence {
	s.ints = append(s.ints, vs...)
	return s
}

func (s *Sequence) Float64() float64 {
	if len(s.floats) == 0 {
		return s.Fallback
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *Sequence) IntN(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

// Remaining reports how many scripted floats have not been consumed.
func (s *Sequence) Remaining() int { return len(s.floats) }
