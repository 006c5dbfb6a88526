// Package ssif holds the closed-form characteristic equations of the
// two-layer step-index fiber. They serve as an independent check of the
// general multilayer evaluator.
package ssif

import (
	"math"

	"waveguide/special"
)

// Fiber is a core of radius R and index Nco in an infinite cladding Ncl.
type Fiber struct {
	R   float64
	Nco float64
	Ncl float64
}

// UW returns the normalized transverse parameters of the core (u) and the
// cladding (w) at neff. Both are NaN outside Ncl < neff < Nco.
func (f Fiber) UW(k0, neff float64) (u, w float64) {
	rk0 := f.R * k0
	return rk0 * math.Sqrt(f.Nco*f.Nco-neff*neff), rk0 * math.Sqrt(neff*neff-f.Ncl*f.Ncl)
}

// V is the normalized frequency.
func (f Fiber) V(k0 float64) float64 {
	return f.R * k0 * math.Sqrt(f.Nco*f.Nco-f.Ncl*f.Ncl)
}

// TE is u J0(u) K1(w) + w J1(u) K0(w); its zeros are the TE0m modes.
func (f Fiber) TE(k0, neff float64) float64 {
	u, w := f.UW(k0, neff)
	return u*math.J0(u)*special.Kn(1, w) + w*math.J1(u)*special.Kn(0, w)
}

// TM is ncl² u J0(u) K1(w) + nco² w J1(u) K0(w); its zeros are the TM0m modes.
func (f Fiber) TM(k0, neff float64) float64 {
	u, w := f.UW(k0, neff)
	return u*math.J0(u)*special.Kn(1, w)*f.Ncl*f.Ncl + w*math.J1(u)*special.Kn(0, w)*f.Nco*f.Nco
}

// LP is the weakly guiding u J_{ν-1}(u) K_ν(w) + w J_ν(u) K_{ν-1}(w).
func (f Fiber) LP(k0, neff float64, nu int) float64 {
	u, w := f.UW(k0, neff)
	return u*math.Jn(nu-1, u)*special.Kn(nu, w) + w*math.Jn(nu, u)*special.Kn(nu-1, w)
}

// Bisect narrows a sign change of fn between lo and hi until the bracket is
// narrower than tol, and returns its midpoint. ok is false when fn(lo) and
// fn(hi) have the same sign.
func Bisect(fn func(float64) float64, lo, hi, tol float64) (x float64, ok bool) {
	flo := fn(lo)
	if flo*fn(hi) > 0 {
		return math.NaN(), false
	}
	for i := 0; i < 200 && hi-lo > tol; i++ {
		mid := 0.5 * (lo + hi)
		fm := fn(mid)
		if fm == 0 {
			return mid, true
		}
		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), true
}
