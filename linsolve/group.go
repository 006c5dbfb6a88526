// Package linsolve solves the small boundary systems of one characteristic
// equation task with a cooperative group of goroutines, one per matrix cell,
// that share a single workspace and advance in barrier-separated phases.
package linsolve

import (
	"math"
	"sync"
)

// Workspace shape: two slabs (one per field family) of a 4x4 system with
// one augmented column each. The slabs share the coefficient matrix.
const (
	Depth   = 2
	Rows    = 4
	Cols    = Rows + 1
	Workers = Depth * Rows * Cols
)

// Cell addresses one workspace entry, and the worker that owns it.
type Cell struct {
	Depth int
	Row   int
	Col   int
}

// Workspace is the matrix memory shared by a group.
type Workspace struct {
	ab    [Depth][Rows][Cols]float64
	pivot [Depth]int
}

// At returns the entry at (d, r, c). Only valid while no Solve is running.
func (w *Workspace) At(d, r, c int) float64 {
	return w.ab[d][r][c]
}

// Solution is the augmented column of every slab after elimination,
// x[Rows*d + r] = A_d[r][Rows].
type Solution [Depth * Rows]float64

// Slab returns the four unknowns solved in slab d.
func (x Solution) Slab(d int) [Rows]float64 {
	var s [Rows]float64
	copy(s[:], x[d*Rows:(d+1)*Rows])
	return s
}

// FillFunc returns the initial value of one cell. It is called concurrently,
// once per cell, and must not touch shared state.
type FillFunc func(c Cell) float64

// Group is a fixed-size set of workers bound to one Workspace. Solve calls on
// the same Group must not overlap.
type Group struct {
	ws      *Workspace
	barrier *Barrier
}

func NewGroup() *Group {
	return &Group{
		ws:      &Workspace{},
		barrier: NewBarrier(Workers),
	}
}

// Workspace exposes the shared matrix, mostly for inspection after Solve.
func (g *Group) Workspace() *Workspace {
	return g.ws
}

// Phases reports how many barrier phases the group has completed so far.
func (g *Group) Phases() uint64 {
	g.barrier.mu.Lock()
	defer g.barrier.mu.Unlock()
	return g.barrier.generation
}

// Solve fills the workspace through fill and reduces every slab to reduced
// row-echelon form with partial pivoting. Singular systems are not detected;
// a zero pivot yields Inf or NaN in the solution.
func (g *Group) Solve(fill FillFunc) Solution {
	var wg sync.WaitGroup
	wg.Add(Workers)
	for d := 0; d < Depth; d++ {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				go func(cell Cell) {
					defer wg.Done()
					g.work(cell, fill)
				}(Cell{Depth: d, Row: r, Col: c})
			}
		}
	}
	wg.Wait()

	var x Solution
	for d := 0; d < Depth; d++ {
		for r := 0; r < Rows; r++ {
			x[d*Rows+r] = g.ws.ab[d][r][Rows]
		}
	}
	return x
}

// work is the life of one cell's worker: fill, then for each pivot row the
// four phases pivot search, swap, elimination and normalization.
func (g *Group) work(c Cell, fill FillFunc) {
	ab := &g.ws.ab[c.Depth]

	ab[c.Row][c.Col] = fill(c)
	g.barrier.Wait()

	for i := 0; i < Rows; i++ {
		if c.Row == i && c.Col == i {
			g.ws.pivot[c.Depth] = pivotRow(ab, i)
		}
		g.barrier.Wait()

		// each worker of row i trades its cell with the pivot row
		if p := g.ws.pivot[c.Depth]; c.Row == i && p != i {
			ab[i][c.Col], ab[p][c.Col] = ab[p][c.Col], ab[i][c.Col]
		}
		g.barrier.Wait()

		// column i and row i are read-only in this phase
		pv := ab[i][i]
		if c.Row != i && c.Col > i {
			ab[c.Row][c.Col] -= ab[c.Row][i] * ab[i][c.Col] / pv
		}
		g.barrier.Wait()

		switch {
		case c.Col == i && c.Row == i:
			ab[i][i] = 1
		case c.Col == i:
			ab[c.Row][i] = 0
		case c.Row == i && c.Col > i:
			ab[i][c.Col] /= pv
		}
		g.barrier.Wait()
	}
}

// pivotRow returns the row at or below i with the largest |A[row][i]|.
func pivotRow(ab *[Rows][Cols]float64, i int) int {
	p, best := i, 0.0
	for r := i; r < Rows; r++ {
		if v := math.Abs(ab[r][i]); v > best {
			best = v
			p = r
		}
	}
	return p
}

// SolveSystems solves a·x = b[d] for both right-hand sides with a fresh group.
func SolveSystems(a [Rows][Rows]float64, b [Depth][Rows]float64) Solution {
	return NewGroup().Solve(func(c Cell) float64 {
		if c.Col == Rows {
			return b[c.Depth][c.Row]
		}
		return a[c.Row][c.Col]
	})
}
