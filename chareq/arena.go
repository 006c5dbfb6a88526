package chareq

import "sync"

// arena holds the per-layer transverse parameters of one task. It is taken
// from a pool at task start and handed back when the task returns.
type arena struct {
	w []float64 // signed transverse parameter, negative where neff > n_i
	u []float64 // k0 * r * |w|
}

var arenas = sync.Pool{
	New: func() interface{} { return new(arena) },
}

func acquire(layers int) *arena {
	a := arenas.Get().(*arena)
	if cap(a.w) < layers {
		a.w = make([]float64, layers)
		a.u = make([]float64, layers)
	}
	a.w = a.w[:layers]
	a.u = a.u[:layers]
	return a
}

func (a *arena) release() {
	arenas.Put(a)
}
