package linsolve

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func identity() [Rows][Rows]float64 {
	var a [Rows][Rows]float64
	for i := 0; i < Rows; i++ {
		a[i][i] = 1
	}
	return a
}

func TestSolveIdentityKeepsAugmentedColumn(t *testing.T) {
	b := [Depth][Rows]float64{{1, -2, 3.5, 4}, {0.25, 0, -7, 1e-3}}
	x := SolveSystems(identity(), b)
	assert.Equal(t, b[0], x.Slab(0))
	assert.Equal(t, b[1], x.Slab(1))
}

func TestSolveReproducesInverse(t *testing.T) {
	// A = [[2,1,0,0],[1,2,1,0],[0,1,2,1],[0,0,1,2]]
	// A^-1 = 1/5 [[4,-3,2,-1],[-3,6,-4,2],[2,-4,6,-3],[-1,2,-3,4]]
	a := [Rows][Rows]float64{
		{2, 1, 0, 0},
		{1, 2, 1, 0},
		{0, 1, 2, 1},
		{0, 0, 1, 2},
	}
	inv := [Rows][Rows]float64{
		{0.8, -0.6, 0.4, -0.2},
		{-0.6, 1.2, -0.8, 0.4},
		{0.4, -0.8, 1.2, -0.6},
		{-0.2, 0.4, -0.6, 0.8},
	}
	for col := 0; col < Rows; col += Depth {
		var b [Depth][Rows]float64
		b[0][col] = 1
		b[1][col+1] = 1
		x := SolveSystems(a, b)
		for d := 0; d < Depth; d++ {
			got := x.Slab(d)
			for r := 0; r < Rows; r++ {
				assert.InDelta(t, inv[r][col+d], got[r], 1e-14, "inv[%d][%d]", r, col+d)
			}
		}
	}
}

func TestSolveSwapsRows(t *testing.T) {
	// zero on the diagonal of the first column forces a swap
	a := [Rows][Rows]float64{
		{0, 1, 2, 3},
		{5, 0, 1, 0},
		{1, 3, 0, 1},
		{-8, 1, 1, 4},
	}
	b := [Depth][Rows]float64{{1, 2, 3, 4}, {-1, 0, 1, 0}}
	x := SolveSystems(a, b)

	dense := mat.NewDense(Rows, Rows, nil)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Rows; c++ {
			dense.Set(r, c, a[r][c])
		}
	}
	for d := 0; d < Depth; d++ {
		var want mat.VecDense
		require.NoError(t, want.SolveVec(dense, mat.NewVecDense(Rows, b[d][:])))
		got := x.Slab(d)
		for r := 0; r < Rows; r++ {
			assert.InDelta(t, want.AtVec(r), got[r], 1e-12, "slab %d row %d", d, r)
		}
	}
}

func TestSolveLeavesReducedRowEchelon(t *testing.T) {
	a := [Rows][Rows]float64{
		{3, 1, 4, 1},
		{5, 9, 2, 6},
		{5, 3, 5, 8},
		{9, 7, 9, 3},
	}
	g := NewGroup()
	g.Solve(func(c Cell) float64 {
		if c.Col == Rows {
			return float64(c.Depth + c.Row)
		}
		return a[c.Row][c.Col]
	})
	ws := g.Workspace()
	for d := 0; d < Depth; d++ {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Rows; c++ {
				want := 0.0
				if r == c {
					want = 1
				}
				assert.Equal(t, want, ws.At(d, r, c), "slab %d (%d,%d)", d, r, c)
			}
		}
	}
}

func TestSolvePhaseCount(t *testing.T) {
	g := NewGroup()
	a := identity()
	fill := func(c Cell) float64 {
		if c.Col == Rows {
			return 1
		}
		return a[c.Row][c.Col]
	}
	g.Solve(fill)
	// one fill phase plus pivot, swap, eliminate and normalize per row
	assert.Equal(t, uint64(1+4*Rows), g.Phases())
	g.Solve(fill)
	assert.Equal(t, uint64(2*(1+4*Rows)), g.Phases())
}

func TestSolveFillsEveryCellOnce(t *testing.T) {
	var calls int64
	seen := sync.Map{}
	NewGroup().Solve(func(c Cell) float64 {
		atomic.AddInt64(&calls, 1)
		_, dup := seen.LoadOrStore(c, true)
		assert.False(t, dup, "cell %+v filled twice", c)
		if c.Col == c.Row {
			return 1
		}
		return 0
	})
	assert.Equal(t, int64(Workers), calls)
}

func TestBarrierReleasesAllParties(t *testing.T) {
	const parties = 6
	b := NewBarrier(parties)
	var arrived int64
	var wg sync.WaitGroup
	wg.Add(parties)
	for i := 0; i < parties; i++ {
		go func() {
			defer wg.Done()
			for phase := int64(1); phase <= 3; phase++ {
				atomic.AddInt64(&arrived, 1)
				b.Wait()
				assert.GreaterOrEqual(t, atomic.LoadInt64(&arrived), phase*parties)
				b.Wait()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(3*parties), arrived)
	assert.Equal(t, parties, b.Parties())
}

func BenchmarkSolve(b *testing.B) {
	a := [Rows][Rows]float64{
		{3, 1, 4, 1},
		{5, 9, 2, 6},
		{5, 3, 5, 8},
		{9, 7, 9, 3},
	}
	g := NewGroup()
	fill := func(c Cell) float64 {
		if c.Col == Rows {
			return 1
		}
		return a[c.Row][c.Col]
	}
	for i := 0; i < b.N; i++ {
		g.Solve(fill)
	}
}
