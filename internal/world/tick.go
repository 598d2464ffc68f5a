package world

import "sync"

type deferred struct {
	id EntityID
	fn func()
}

// TickQueue is a Scheduler driven by explicit Tick calls. Work deferred while
// a tick runs lands in the following tick.
type TickQueue struct {
	mu      sync.Mutex
	pending []deferred
	valid   func(EntityID) bool
}

// NewTickQueue builds a queue that checks valid before running each callback.
// A nil valid treats every entity as valid.
func NewTickQueue(valid func(EntityID) bool) *TickQueue {
	return &TickQueue{valid: valid}
}

func (q *TickQueue) Defer(id EntityID, fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, deferred{id: id, fn: fn})
	q.mu.Unlock()
}

// Tick runs the callbacks queued before this call in order. Callbacks whose
// entity is gone are dropped without retry.
func (q *TickQueue) Tick() (ran, dropped int) {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, d := range batch {
		if q.valid != nil && !q.valid(d.id) {
			dropped++
			continue
		}
		d.fn()
		ran++
	}
	return ran, dropped
}

// Len reports how many callbacks wait for the next tick.
func (q *TickQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
