package roll

import "fmt"

// Entry is one outcome of a Table with its weight.
type Entry[T any] struct {
	Outcome T
	Weight  float64
}

// Table is an ordered weighted table sampled by a single cumulative scan.
//
// Pick(r) walks the entries in order and returns the first entry whose
// cumulative weight exceeds r. When the weights sum to less than 1 the
// remaining mass means "nothing happens"; when they sum to 1 or more the
// table is exhaustive. Weights are never normalized.
//
// A Table is immutable once built; the zero value is an empty table.
type Table[T any] struct {
	entries []Entry[T]
	total   float64
}

// NewTable builds a table from entries in the given order.
func NewTable[T any](entries ...Entry[T]) (Table[T], error) {
	out := Table[T]{entries: make([]Entry[T], 0, len(entries))}
	for i, e := range entries {
		if err := ValidateWeight(e.Weight); err != nil {
			return Table[T]{}, fmt.Errorf("entry %d (%v): %w", i, e.Outcome, err)
		}
		out.entries = append(out.entries, e)
		out.total += e.Weight
	}
	return out, nil
}

// MustTable is NewTable for literals known to be valid.
func MustTable[T any](entries ...Entry[T]) Table[T] {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pick returns the first outcome whose cumulative range contains r.
func (t Table[T]) Pick(r float64) (T, bool) {
	var cumulative float64
	for _, e := range t.entries {
		cumulative += e.Weight
		if r < cumulative {
			return e.Outcome, true
		}
	}
	var zero T
	return zero, false
}

// Sample draws once from rng and picks with that single draw.
// Empty tables do not consume a draw.
func (t Table[T]) Sample(rng RandomSource) (T, bool) {
	if len(t.entries) == 0 {
		var zero T
		return zero, false
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return t.Pick(rng.Float64())
}

func (t Table[T]) Len() int { return len(t.entries) }

func (t Table[T]) Empty() bool { return len(t.entries) == 0 }

// Total is the sum of all weights.
func (t Table[T]) Total() float64 { return t.total }

// Entries returns a copy of the entries in table order.
func (t Table[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), t.entries...)
}

// Append returns a new table with other's entries after t's, so both are
// scanned against the same draw.
func (t Table[T]) Append(other Table[T]) Table[T] {
	out := Table[T]{
		entries: make([]Entry[T], 0, len(t.entries)+len(other.entries)),
		total:   t.total + other.total,
	}
	out.entries = append(out.entries, t.entries...)
	out.entries = append(out.entries, other.entries...)
	return out
}

// Merge concatenates tables; an outcome seen twice keeps the position of its
// first occurrence and the sum of its weights.
func Merge[T comparable](tables ...Table[T]) Table[T] {
	var out Table[T]
	index := make(map[T]int)
	for _, t := range tables {
		for _, e := range t.entries {
			if i, ok := index[e.Outcome]; ok {
				out.entries[i].Weight += e.Weight
			} else {
				index[e.Outcome] = len(out.entries)
				out.entries = append(out.entries, e)
			}
			out.total += e.Weight
		}
	}
	return out
}
