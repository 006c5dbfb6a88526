package special

import "math"

// Iv returns the modified Bessel function of the first kind of real order v.
//
//	I_v(x) = (x/2)^v e^{-x} / Γ(v+1) · 1F1(v+1/2; 2v+1; 2x)
//
// A negative x is only defined for integer v; otherwise 0 is returned.
// At x = 0 the result is 1 for v = 0, MaxNum for negative v and 0 otherwise.
func Iv(v, x float64) float64 {
	// negative integer order: I_{-n} = I_n
	t := math.Floor(v)
	if v < 0 && t == v {
		v = -v
		t = -t
	}

	sign := 1.0
	if x < 0 {
		if t != v {
			return 0
		}
		if v != 2.0*math.Floor(v/2.0) {
			sign = -1
		}
	}

	if x == 0 {
		if v == 0 {
			return 1
		}
		if v < 0 {
			return MaxNum
		}
		return 0
	}

	ax := math.Abs(x)
	t = v*math.Log(0.5*ax) - x
	t = sign * math.Exp(t) / math.Gamma(v+1.0)
	ax = v + 0.5
	return t * Hyperg(ax, 2.0*ax, 2.0*x)
}
