package special

import "math"

// Ordinary supplies the integer-order cylindrical Bessel functions of the
// first and second kind. Domain errors must come back as sentinels, not NaN.
type Ordinary interface {
	Jn(n int, x float64) float64
	Yn(n int, x float64) float64
}

// Std is the Ordinary backed by the math package.
var Std Ordinary = stdOrdinary{}

type stdOrdinary struct{}

func (stdOrdinary) Jn(n int, x float64) float64 { return math.Jn(n, x) }

// Yn is singular at 0 and undefined below it; both return -MaxNum.
func (stdOrdinary) Yn(n int, x float64) float64 {
	if x <= 0 {
		return -MaxNum
	}
	return math.Yn(n, x)
}

// Kind names one of the four cylindrical solution families.
type Kind int

const (
	J Kind = iota
	Y
	I
	K
)

func (k Kind) String() string {
	switch k {
	case J:
		return "J"
	case Y:
		return "Y"
	case I:
		return "I"
	case K:
		return "K"
	}
	return "?"
}

// Functions evaluates the four kinds and their derivatives with a given
// Ordinary for J and Y. The zero value uses Std.
type Functions struct {
	Ordinary Ordinary
}

func (f Functions) ordinary() Ordinary {
	if f.Ordinary == nil {
		return Std
	}
	return f.Ordinary
}

// Value returns kind_n(z).
func (f Functions) Value(kind Kind, n int, z float64) float64 {
	switch kind {
	case J:
		return f.ordinary().Jn(n, z)
	case Y:
		return f.ordinary().Yn(n, z)
	case I:
		return Iv(float64(n), z)
	case K:
		return Kn(n, z)
	}
	return math.NaN()
}

// Derivative returns d/dz kind_n(z) from the neighbouring orders:
//
//	J'_0 = -J_1    J'_n = (J_{n-1} - J_{n+1}) / 2
//	Y'_0 = -Y_1    Y'_n = (Y_{n-1} - Y_{n+1}) / 2
//	I'_0 =  I_1    I'_n = (I_{n-1} + I_{n+1}) / 2
//	K'_0 = -K_1    K'_n = -(K_{n-1} + K_{n+1}) / 2
func (f Functions) Derivative(kind Kind, n int, z float64) float64 {
	if n == 0 {
		switch kind {
		case I:
			return f.Value(I, 1, z)
		default:
			return -f.Value(kind, 1, z)
		}
	}
	lo, hi := f.Value(kind, n-1, z), f.Value(kind, n+1, z)
	switch kind {
	case I:
		return (lo + hi) / 2
	case K:
		return -(lo + hi) / 2
	default:
		return (lo - hi) / 2
	}
}

// Derivative is Functions{}.Derivative.
func Derivative(kind Kind, n int, z float64) float64 {
	return Functions{}.Derivative(kind, n, z)
}

// Jnp returns J'_n(z).
func Jnp(n int, z float64) float64 { return Derivative(J, n, z) }

// Ynp returns Y'_n(z).
func Ynp(n int, z float64) float64 { return Derivative(Y, n, z) }

// Ivp returns I'_n(z).
func Ivp(n int, z float64) float64 { return Derivative(I, n, z) }

// Knp returns K'_n(z).
func Knp(n int, z float64) float64 { return Derivative(K, n, z) }
