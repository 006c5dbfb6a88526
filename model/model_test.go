package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWaveguide(t *testing.T) {
	w, err := NewWaveguide([]Layer{
		{Radius: 4e-6, Index: 1.4489},
		{Radius: 10e-6, Index: 1.4474},
		{Index: 1.4444},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{4e-6, 10e-6}, w.Radii())
	assert.Equal(t, 1.4489, w.MaxIndex())
	assert.Equal(t, 1.4444, w.CladdingIndex())
	assert.Equal(t, 10e-6, w.Radius(1))
	assert.Equal(t, 1.4474, w.Index(1))
}

func TestNewWaveguideRejects(t *testing.T) {
	cases := []struct {
		name   string
		layers []Layer
		want   error
	}{
		{"single layer", []Layer{{Index: 1.45}}, ErrTooFewLayers},
		{"zero radius", []Layer{{Radius: 0, Index: 1.45}, {Index: 1.44}}, ErrBadRadius},
		{"decreasing radius", []Layer{{Radius: 4e-6, Index: 1.45}, {Radius: 3e-6, Index: 1.44}, {Index: 1.44}}, ErrBadRadius},
		{"equal radius", []Layer{{Radius: 4e-6, Index: 1.45}, {Radius: 4e-6, Index: 1.44}, {Index: 1.44}}, ErrBadRadius},
		{"zero index", []Layer{{Radius: 4e-6, Index: 1.45}, {Index: 0}}, ErrBadIndex},
		{"nan index", []Layer{{Radius: 4e-6, Index: math.NaN()}, {Index: 1.44}}, ErrBadIndex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewWaveguide(c.layers)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestWavenumberHelpers(t *testing.T) {
	k0 := K0(1.55e-6)
	assert.InEpsilon(t, 4.053667940115862e6, k0, 1e-12)
	assert.InEpsilon(t, 1.55e-6, Wavelength(k0), 1e-15)
	r, nco, ncl := 4e-6, 1.45, 1.44
	assert.InEpsilon(t, k0*r*math.Sqrt(nco*nco-ncl*ncl), VNumber(k0, r, nco, ncl), 1e-12)
	assert.InEpsilon(t, 1.0, Eta0*Y0, 1e-15)
}
