package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTooFewLayers  = errors.New("model: a waveguide needs at least two layers")
	ErrBadRadius     = errors.New("model: radii must be positive and strictly increasing")
	ErrBadIndex      = errors.New("model: refractive index must be positive and finite")
	ErrBadWavelength = errors.New("model: wavelength must be positive and finite")
	ErrMissingIndex  = errors.New("model: layer has neither index nor material")
)

// Layer is one step of the index profile. Radius is the outer radius in
// meters and is ignored for the last (semi-infinite) layer. Material, when
// set, names a dispersive material and takes precedence over Index.
type Layer struct {
	Radius   float64 `json:"radius"`
	Index    float64 `json:"index"`
	Material string  `json:"material,omitempty"`
}

// Waveguide is a validated layer stack: layer 0 is the core, the last
// layer the outer cladding.
type Waveguide struct {
	radii   []float64
	indices []float64
}

// NewWaveguide checks the stack and resolves it to plain radii and indices.
// Layers must already carry an index; see material.Resolve for Material names.
func NewWaveguide(layers []Layer) (*Waveguide, error) {
	if len(layers) < 2 {
		return nil, fmt.Errorf("NewWaveguide: %d layers: %w", len(layers), ErrTooFewLayers)
	}
	w := &Waveguide{
		radii:   make([]float64, len(layers)-1),
		indices: make([]float64, len(layers)),
	}
	prev := 0.0
	for i, l := range layers {
		if l.Index <= 0 || math.IsNaN(l.Index) || math.IsInf(l.Index, 0) {
			return nil, fmt.Errorf("NewWaveguide: layer %d index %v: %w", i, l.Index, ErrBadIndex)
		}
		w.indices[i] = l.Index
		if i == len(layers)-1 {
			break
		}
		if !(l.Radius > prev) || math.IsInf(l.Radius, 0) {
			return nil, fmt.Errorf("NewWaveguide: layer %d radius %v: %w", i, l.Radius, ErrBadRadius)
		}
		w.radii[i] = l.Radius
		prev = l.Radius
	}
	return w, nil
}

// Len is the number of layers, cladding included.
func (w *Waveguide) Len() int { return len(w.indices) }

// Radius returns the outer radius of layer i; i must be below Len()-1.
func (w *Waveguide) Radius(i int) float64 { return w.radii[i] }

// Index returns the refractive index of layer i.
func (w *Waveguide) Index(i int) float64 { return w.indices[i] }

// Radii returns a copy of the interface radii (Len()-1 values).
func (w *Waveguide) Radii() []float64 { return append([]float64(nil), w.radii...) }

// Indices returns a copy of the layer indices.
func (w *Waveguide) Indices() []float64 { return append([]float64(nil), w.indices...) }

// MaxIndex is the largest layer index, the upper bound of guided neff.
func (w *Waveguide) MaxIndex() float64 {
	m := w.indices[0]
	for _, n := range w.indices[1:] {
		m = math.Max(m, n)
	}
	return m
}

// CladdingIndex is the index of the outer layer, the lower bound of guided neff.
func (w *Waveguide) CladdingIndex() float64 {
	return w.indices[len(w.indices)-1]
}

// Query is one point of the characteristic equation.
type Query struct {
	Neff float64 `json:"neff"`
	K0   float64 `json:"k0"`
	Nu   int     `json:"nu"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

// Message types exchanged over the websocket.
const (
	MsgScan    = "scan"
	MsgScanned = "scanned"
	MsgError   = "error"
	MsgPing    = "ping"
	MsgPong    = "pong"
)
