// Package material gives refractive indices of the glasses a fiber is drawn from.
package material

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"waveguide/model"
)

var (
	ErrUnknownMaterial = errors.New("material: unknown material")
	ErrOutOfRange      = errors.New("material: wavelength outside the validity range")
)

// Material is anything with a wavelength dependent refractive index.
type Material interface {
	Name() string
	Index(wavelength float64) (float64, error)
}

// Fixed is a non-dispersive material.
type Fixed float64

func (f Fixed) Name() string { return fmt.Sprintf("fixed(%g)", float64(f)) }

func (f Fixed) Index(wavelength float64) (float64, error) {
	if !(wavelength > 0) || math.IsInf(wavelength, 0) {
		return 0, model.ErrBadWavelength
	}
	return float64(f), nil
}

// Sellmeier is n² = 1 + Σ B_i λ²/(λ² - C_i²), λ in micrometers.
type Sellmeier struct {
	Label    string
	B, C     [3]float64
	Min, Max float64 // validity range in meters
}

func (s Sellmeier) Name() string { return s.Label }

func (s Sellmeier) Index(wavelength float64) (float64, error) {
	if !(wavelength > 0) || math.IsInf(wavelength, 0) {
		return 0, model.ErrBadWavelength
	}
	if wavelength < s.Min || wavelength > s.Max {
		return 0, fmt.Errorf("%s at %g m: %w", s.Label, wavelength, ErrOutOfRange)
	}
	x2 := wavelength * wavelength * 1e12
	sum := 0.0
	for i := range s.B {
		sum += s.B[i] / (x2 - s.C[i]*s.C[i])
	}
	return math.Sqrt(math.Abs(1 + x2*sum)), nil
}

// Silica is fused SiO2 at 20 °C (Malitson).
var Silica = Sellmeier{
	Label: "silica",
	B:     [3]float64{0.6961663, 0.4079426, 0.8974794},
	C:     [3]float64{0.0684043, 0.1162414, 9.896161},
	Min:   0.21e-6,
	Max:   3.71e-6,
}

// Germania is fused GeO2 (Fleming).
var Germania = Sellmeier{
	Label: "germania",
	B:     [3]float64{0.80686642, 0.71815848, 0.85416831},
	C:     [3]float64{0.068972606, 0.15396605, 11.841931},
	Min:   0.36e-6,
	Max:   4.3e-6,
}

var registry = map[string]Material{
	"silica":   Silica,
	"sio2":     Silica,
	"germania": Germania,
	"geo2":     Germania,
}

// Lookup returns the named material, case-insensitively.
func Lookup(name string) (Material, error) {
	m, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownMaterial)
	}
	return m, nil
}

// Names lists the registered material names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Resolve fills in the Index of every layer that names a material, at the
// given wavelength, and returns the validated waveguide.
func Resolve(layers []model.Layer, wavelength float64) (*model.Waveguide, error) {
	resolved := make([]model.Layer, len(layers))
	for i, l := range layers {
		resolved[i] = l
		if l.Material == "" {
			if l.Index == 0 {
				return nil, fmt.Errorf("Resolve: layer %d: %w", i, model.ErrMissingIndex)
			}
			continue
		}
		m, err := Lookup(l.Material)
		if err != nil {
			return nil, fmt.Errorf("Resolve: layer %d: %w", i, err)
		}
		n, err := m.Index(wavelength)
		if err != nil {
			return nil, fmt.Errorf("Resolve: layer %d: %w", i, err)
		}
		resolved[i].Index = n
	}
	return model.NewWaveguide(resolved)
}
