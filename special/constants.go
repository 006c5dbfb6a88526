package special

import "math"

// Machine constants shared by the series evaluators.
const (
	// MachEp is 2**-53, the relative spacing of float64 around 1.
	MachEp = 1.11022302462515654042e-16

	// MaxNum is the overflow sentinel returned by every function in this package.
	MaxNum = math.MaxFloat64

	// MaxLog is ln(MaxNum); exp of anything larger overflows.
	MaxLog = 7.09782712893383996843e2
)

const (
	euler = 5.772156649015328606065e-1

	// K_n is not computed above this order, n! overflows the series.
	maxFac = 31

	// K_n switches from the log series to the asymptotic expansion above this argument.
	knCrossover = 9.55

	seriesCap = 200

	// hy1f1p is trusted without trying the asymptotic form below this error.
	powerSeriesTolerance = 1.0e-6

	// the asymptotic 1F1 error estimate runs this much too low in practice.
	asymptoticErrorFactor = 30.0

	// relative closeness of b to a that triggers the Kummer transformation.
	kummerThreshold = 0.001
)
