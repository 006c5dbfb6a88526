package special

import "math"

// Outcome tags how a series evaluation ended.
type Outcome int

const (
	// Converged means the terms fell below the rounding threshold (or the series terminated).
	Converged Outcome = iota
	// Truncated means the series was cut off: iteration cap, or an asymptotic
	// series that started to diverge.
	Truncated
	// BlewUp means the next term would have overflowed; the value is unusable.
	BlewUp
	// Singular means the denominator parameter reached zero before the numerator.
	Singular
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case Truncated:
		return "truncated"
	case BlewUp:
		return "blew-up"
	case Singular:
		return "singular"
	}
	return "unknown"
}

// Estimate is a series value together with its estimated relative error.
type Estimate struct {
	Value   float64
	Err     float64
	Outcome Outcome
}

// Hyperg returns the confluent hypergeometric function 1F1(a; b; x).
//
// The power series is tried first; unless it converges to better than 1e-6
// the asymptotic expansion is computed as well and the value with the smaller
// error estimate wins. Numerical trouble never panics; use HypergEstimate to
// see how much the value can be trusted.
func Hyperg(a, b, x float64) float64 {
	return HypergEstimate(a, b, x).Value
}

// HypergEstimate is Hyperg with the error estimate of the selected method.
func HypergEstimate(a, b, x float64) Estimate {
	// Kummer: 1F1(a; b; x) = e^x 1F1(b-a; b; -x)
	temp := b - a
	if math.Abs(temp) < kummerThreshold*math.Abs(a) {
		e := HypergEstimate(temp, b, -x)
		e.Value *= math.Exp(x)
		return e
	}

	p := hy1f1p(a, b, x)
	switch {
	case p.Outcome == Singular:
		return p
	case p.Outcome == Converged && p.Err < powerSeriesTolerance:
		return p
	}

	q := hy1f1a(a, b, x)
	if q.Err < p.Err {
		return q
	}
	return p
}

// hy1f1p sums the power series of 1F1 term by term.
func hy1f1p(a, b, x float64) Estimate {
	an, bn := a, b
	a0, sum := 1.0, 1.0
	n, t, maxt := 1.0, 1.0, 0.0
	outcome := Converged

	for t > MachEp {
		// bn is checked first: an and bn both zero is still a singularity
		if bn == 0 {
			return Estimate{Value: MaxNum, Err: MaxNum, Outcome: Singular}
		}
		if an == 0 {
			// terminating polynomial, the sum is exact up to rounding
			return Estimate{Value: sum, Err: MachEp * n, Outcome: Converged}
		}
		if n > seriesCap {
			outcome = Truncated
			break
		}
		u := x * (an / (bn * n))

		temp := math.Abs(u)
		if temp > 1.0 && maxt > MaxNum/temp {
			return Estimate{Value: sum, Err: MaxNum, Outcome: BlewUp}
		}

		a0 *= u
		sum += a0
		t = math.Abs(a0)
		if t > maxt {
			maxt = t
		}
		if sum != 0 {
			t /= math.Abs(sum)
		}
		an++
		bn++
		n++
	}

	// roundoff and cancellation; dividing first keeps maxt*MachEp from overflowing
	if sum != 0 {
		maxt /= math.Abs(sum)
	}
	maxt *= MachEp
	err := math.Abs(MachEp*n + maxt)
	if outcome == Truncated {
		// the tail is at least as large as the last term kept
		err += t
	}
	return Estimate{Value: sum, Err: err, Outcome: outcome}
}

// hy1f1a evaluates 1F1 from the two asymptotic 2F0 tails, one for each sign of x.
func hy1f1a(a, b, x float64) Estimate {
	if x == 0 {
		return Estimate{Value: MaxNum, Err: 1.0, Outcome: Singular}
	}
	temp := math.Log(math.Abs(x))
	t := x + temp*(a-b)
	u := -temp * a

	if b > 0 {
		temp, _ = math.Lgamma(b)
		t += temp
		u += temp
	}

	h1 := hyp2f0(a, a-b+1, -1.0/x, 1)
	temp = math.Exp(u) / math.Gamma(b-a)
	h1.Value *= temp
	h1.Err *= temp

	h2 := hyp2f0(b-a, 1.0-a, 1.0/x, 2)
	if a < 0 {
		temp = math.Exp(t) / math.Gamma(a)
	} else {
		lg, _ := math.Lgamma(a)
		temp = math.Exp(t - lg)
	}
	h2.Value *= temp
	h2.Err *= temp

	asum := h2
	if x < 0 {
		asum = h1
	}

	acanc := math.Abs(h1.Err) + math.Abs(h2.Err)

	if b < 0 {
		temp = math.Gamma(b)
		asum.Value *= temp
		acanc *= math.Abs(temp)
	}

	if asum.Value != 0 {
		acanc /= math.Abs(asum.Value)
	}
	acanc *= asymptoticErrorFactor

	outcome := asum.Outcome
	if h1.Outcome == BlewUp || h2.Outcome == BlewUp {
		outcome = BlewUp
	}
	if math.IsNaN(acanc) || math.IsNaN(asum.Value) {
		acanc = MaxNum
	}
	return Estimate{Value: asum.Value, Err: acanc, Outcome: outcome}
}

// hyp2f0 sums the asymptotic series 2F0(a, b; ; x) up to its smallest term.
// kind selects the converging factor applied to the last term (1 or 2).
func hyp2f0(a, b, x float64, kind int) Estimate {
	an, bn := a, b
	a0, alast := 1.0, 1.0
	sum := 0.0
	n, t := 1.0, 1.0
	tlast := 1.0e9
	maxt := 0.0

	truncated := false
	for {
		if an == 0 || bn == 0 {
			break
		}
		u := an * (bn * x / n)

		temp := math.Abs(u)
		if temp > 1.0 && maxt > MaxNum/temp {
			return Estimate{Value: sum, Err: MaxNum, Outcome: BlewUp}
		}

		a0 *= u
		t = math.Abs(a0)

		// smallest term passed, the series starts to diverge
		if t > tlast {
			truncated = true
			break
		}

		tlast = t
		sum += alast // one term behind
		alast = a0

		if n > seriesCap {
			truncated = true
			break
		}

		an++
		bn++
		n++
		if t > maxt {
			maxt = t
		}
		if t <= MachEp {
			break
		}
	}

	if !truncated {
		sum += a0
		return Estimate{Value: sum, Err: math.Abs(MachEp * (n + maxt)), Outcome: Converged}
	}

	n--
	x = 1.0 / x

	switch kind {
	case 1:
		alast *= 0.5 + (0.125+0.25*b-0.5*a+0.25*x-0.25*n)/x
	case 2:
		alast *= 2.0/3.0 - b + 2.0*a + x - n
	}

	sum += alast
	return Estimate{Value: sum, Err: MachEp*(n+maxt) + math.Abs(a0), Outcome: Truncated}
}
