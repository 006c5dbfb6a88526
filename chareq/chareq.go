// Package chareq evaluates the characteristic equation of a multilayer
// step-index waveguide. The boundary coefficients are carried outward layer
// by layer, each interface solved by a cooperative linsolve.Group, and the
// last 2x2 block is reduced to a scalar residual whose zeros are the modes.
package chareq

import (
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"waveguide/linsolve"
	"waveguide/model"
	"waveguide/special"
)

// Regime classifies how a residual was obtained.
type Regime int

const (
	// Guided: neff is above the cladding index and the field decays outside.
	Guided Regime = iota
	// Leaky: neff is below the cladding index. No radiation condition is
	// applied, so the residual is the unclosed interior block and unreliable.
	Leaky
	// Degenerate: neff equals one of the layer indices; Residual is +Inf.
	Degenerate
)

func (r Regime) String() string {
	switch r {
	case Guided:
		return "guided"
	case Leaky:
		return "leaky"
	case Degenerate:
		return "degenerate"
	}
	return "unknown"
}

// Result of one task.
type Result struct {
	Residual float64 `json:"residual"`
	Regime   Regime  `json:"regime"`
	Leaky    bool    `json:"leaky,omitempty"`
}

// Evaluator runs characteristic-equation tasks. It is safe for concurrent
// use; every task borrows its own solver group.
type Evaluator struct {
	fn     special.Functions
	groups sync.Pool
}

// New returns an Evaluator taking J and Y from ord. A nil ord uses special.Std.
func New(ord special.Ordinary) *Evaluator {
	return &Evaluator{
		fn: special.Functions{Ordinary: ord},
		groups: sync.Pool{
			New: func() interface{} { return linsolve.NewGroup() },
		},
	}
}

var std = New(nil)

// Evaluate runs one task with the default Evaluator.
func Evaluate(wg *model.Waveguide, q model.Query) Result {
	return std.Evaluate(wg, q)
}

// Residual is Evaluate(wg, q).Residual.
func Residual(wg *model.Waveguide, neff, k0 float64, nu int) float64 {
	return std.Evaluate(wg, model.Query{Neff: neff, K0: k0, Nu: nu}).Residual
}

// Evaluate computes the residual at q.Neff for azimuthal order q.Nu.
func (e *Evaluator) Evaluate(wg *model.Waveguide, q model.Query) Result {
	n := wg.Len()
	a := acquire(n)
	defer a.release()

	for i := 0; i < n; i++ {
		ni := wg.Index(i)
		w := math.Sqrt(math.Abs(ni*ni - q.Neff*q.Neff))
		if w == 0 {
			if log.IsLevelEnabled(log.DebugLevel) {
				log.WithFields(log.Fields{"neff": q.Neff, "nu": q.Nu, "layer": i}).Debug("chareq: neff collides with layer index")
			}
			return Result{Residual: math.Inf(1), Regime: Degenerate}
		}
		// the cladding is unbounded and takes the last interface radius
		ri := i
		if i == n-1 {
			ri = i - 1
		}
		a.u[i] = q.K0 * wg.Radius(ri) * w
		if q.Neff > ni {
			w = -w
		}
		a.w[i] = w
	}

	params := func(i int) layerParams {
		return layerParams{neff: q.Neff, nu: q.Nu, n: wg.Index(i), w: a.w[i], u: a.u[i]}
	}

	b := e.firstLayer(params(0))

	if n > 2 {
		g := e.groups.Get().(*linsolve.Group)
		for i := 1; i < n-1; i++ {
			p := params(i)
			x := g.Solve(e.fill(p, wg.Radius(i-1), wg.Radius(i), &b))
			b = e.carry(p, x)
		}
		e.groups.Put(g)
	}

	res := Result{Regime: Guided}
	last := params(n - 1)
	if last.oscillatory() {
		res.Regime = Leaky
		res.Leaky = true
		if log.IsLevelEnabled(log.DebugLevel) {
			log.WithFields(log.Fields{"neff": q.Neff, "nu": q.Nu}).Debug("chareq: leaky regime, residual left unclosed")
		}
	} else {
		e.closeGuided(last, &b)
	}
	res.Residual = b[0][2]*b[1][3] - b[1][2]*b[0][3]
	return res
}
