package special

import "math"

// Kn returns the modified Bessel function of the second kind of integer order n.
//
// The sign of n is ignored. x <= 0 and |n| > 31 return MaxNum.
// Below x = 9.55 the logarithmic power series is used, above it the
// asymptotic expansion in 1/(8x), truncated at its smallest term.
func Kn(n int, x float64) float64 {
	if n < 0 {
		n = -n
	}
	if n > maxFac {
		return MaxNum
	}
	if x <= 0 {
		return MaxNum
	}
	if x > knCrossover {
		return knAsymptotic(n, x)
	}
	return knSeries(n, x)
}

func knSeries(n int, x float64) float64 {
	ans := 0.0
	z0 := 0.25 * x * x
	fn := 1.0
	pn := 0.0
	zmn := 1.0
	tox := 2.0 / x

	if n > 0 {
		// n! and psi(n)
		pn = -euler
		k := 1.0
		for i := 1; i < n; i++ {
			pn += 1.0 / k
			k++
			fn *= k
		}

		zmn = tox

		if n == 1 {
			ans = 1.0 / x
		} else {
			nk1f := fn / float64(n)
			kf := 1.0
			s := nk1f
			z := -z0
			zn := 1.0
			for i := 1; i < n; i++ {
				nk1f = nk1f / float64(n-i)
				kf *= float64(i)
				zn *= z
				t := nk1f * zn / kf
				s += t
				if MaxNum-math.Abs(t) < math.Abs(s) {
					return MaxNum
				}
				if tox > 1.0 && MaxNum/tox < zmn {
					return MaxNum
				}
				zmn *= tox
			}
			s *= 0.5
			t := math.Abs(s)
			if zmn > 1.0 && MaxNum/zmn < t {
				return MaxNum
			}
			if t > 1.0 && MaxNum/t < zmn {
				return MaxNum
			}
			ans = s * zmn
		}
	}

	tlg := 2.0 * math.Log(0.5*x)
	pk := -euler
	var t float64
	if n == 0 {
		pn = pk
		t = 1.0
	} else {
		pn += 1.0 / float64(n)
		t = 1.0 / fn
	}
	s := (pk + pn - tlg) * t
	k := 1.0
	for {
		t *= z0 / (k * (k + float64(n)))
		pk += 1.0 / k
		pn += 1.0 / (k + float64(n))
		s += (pk + pn - tlg) * t
		k++
		if t == 0 || math.Abs(t/s) <= MachEp {
			break
		}
	}

	s = 0.5 * s / zmn
	if n&1 == 1 {
		s = -s
	}
	return ans + s
}

func knAsymptotic(n int, x float64) float64 {
	if x > MaxLog {
		return 0
	}
	k := float64(n)
	pn := 4.0 * k * k
	pk := 1.0
	z0 := 8.0 * x
	fn := 1.0
	t := 1.0
	s := t
	nkf := MaxNum
	for i := 0; ; i++ {
		z := pn - pk*pk
		t = t * z / (fn * z0)
		nk1f := math.Abs(t)
		// terms growing again: stop before the divergent tail
		if i >= n && nk1f > nkf {
			break
		}
		nkf = nk1f
		s += t
		fn++
		pk += 2.0
		if math.Abs(t/s) <= MachEp {
			break
		}
	}
	return math.Exp(-x) * math.Sqrt(math.Pi/(2.0*x)) * s
}
