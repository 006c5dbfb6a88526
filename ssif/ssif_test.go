package ssif

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waveguide/model"
)

var smf = Fiber{R: 4e-6, Nco: 1.45, Ncl: 1.44}

func TestVNumber(t *testing.T) {
	k0 := model.K0(1.55e-6)
	assert.InEpsilon(t, model.VNumber(k0, smf.R, smf.Nco, smf.Ncl), smf.V(k0), 1e-15)
	// above the TE01/TM01 cutoff (first zero of J0)
	assert.Greater(t, smf.V(k0), 2.404825557695773)
}

func TestTEAndTMRoots(t *testing.T) {
	k0 := model.K0(1.55e-6)
	lo, hi := smf.Ncl+1e-12, smf.Nco-1e-12

	te, ok := Bisect(func(n float64) float64 { return smf.TE(k0, n) }, lo, hi, 1e-15)
	require.True(t, ok)
	tm, ok := Bisect(func(n float64) float64 { return smf.TM(k0, n) }, lo, hi, 1e-15)
	require.True(t, ok)

	// both just above cutoff, u between the J0 zero and V
	u, _ := smf.UW(k0, te)
	assert.Greater(t, u, 2.404825557695773)
	assert.Less(t, u, smf.V(k0))

	// TM sits closer to the cladding than TE
	assert.Less(t, tm, te)
	assert.InDelta(t, 0, smf.TE(k0, te), 1e-6)
}

func TestLPFundamental(t *testing.T) {
	k0 := model.K0(1.55e-6)
	// LP01 is the nu=0 LP equation: J_{-1} = -J_1, K_{-1} = K_1
	n01, ok := Bisect(func(n float64) float64 { return smf.LP(k0, n, 0) }, smf.Ncl+1e-12, smf.Nco-1e-12, 1e-15)
	require.True(t, ok)
	te, _ := Bisect(func(n float64) float64 { return smf.TE(k0, n) }, smf.Ncl+1e-12, smf.Nco-1e-12, 1e-15)
	assert.Greater(t, n01, te)
}

func TestBisectRejectsSameSign(t *testing.T) {
	x, ok := Bisect(func(x float64) float64 { return x*x + 1 }, -1, 1, 1e-9)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(x))

	x, ok = Bisect(math.Sin, 3, 4, 1e-14)
	require.True(t, ok)
	assert.InDelta(t, math.Pi, x, 1e-13)
}
