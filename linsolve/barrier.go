package linsolve

import "sync"

// Barrier is a reusable rendezvous for a fixed number of goroutines.
// Wait blocks until all parties have called it, then releases them together
// and resets for the next phase.
type Barrier struct {
	parties int

	mu         sync.Mutex
	cond       *sync.Cond
	waiting    int
	generation uint64
}

func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		parties = 1
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until every party has arrived at this phase.
func (b *Barrier) Wait() {
	b.mu.Lock()
	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.mu.Unlock()
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// Parties is the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}
