package model

import "math"

// 物理常量

const (
	// C is the speed of light in vacuum (m/s).
	C = 299792458.0

	// Eta0 is the impedance of free space, sqrt(mu0/epsilon0), in ohms.
	Eta0 = 376.730313668

	// Y0 is the admittance of free space.
	Y0 = 1 / Eta0
)

// K0 returns the vacuum wavenumber 2π/λ for a wavelength in meters.
func K0(wavelength float64) float64 {
	return 2 * math.Pi / wavelength
}

// Wavelength returns the wavelength in meters for a vacuum wavenumber.
func Wavelength(k0 float64) float64 {
	return 2 * math.Pi / k0
}

// VNumber is the normalized frequency k0·r·sqrt(nco² - ncl²) of a step of
// radius r between indices nco and ncl.
func VNumber(k0, r, nco, ncl float64) float64 {
	return k0 * r * math.Sqrt(nco*nco-ncl*ncl)
}
