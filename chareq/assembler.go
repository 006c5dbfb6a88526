package chareq

import (
	"waveguide/linsolve"
	"waveguide/model"
	"waveguide/special"
)

// Boundary vector of one depth slab: [Ez, Hz, Eφ, Hφ] at the current interface.
type boundary [linsolve.Depth][linsolve.Rows]float64

// layerParams is everything the assembler needs about one layer at one query.
type layerParams struct {
	neff float64
	nu   int
	n    float64 // layer index
	w    float64 // signed transverse parameter
	u    float64 // k0 * r_i * |w|
}

// oscillatory is true when the field is a J/Y combination in this layer.
func (p layerParams) oscillatory() bool {
	return p.neff < p.n
}

func (p layerParams) kinds() (special.Kind, special.Kind) {
	if p.oscillatory() {
		return special.J, special.Y
	}
	return special.I, special.K
}

// coupling is the azimuthal term neff·ν/(u·w) scaled by r_i/r_{i-1}.
func (p layerParams) coupling(scale float64) float64 {
	return p.neff * float64(p.nu) / (p.u * scale * p.w)
}

// ratios of the two solution kinds at u·scale, normalized by their value at u.
type ratios struct {
	f, g   float64
	fp, gp float64
}

func (e *Evaluator) ratios(p layerParams, scale float64) ratios {
	fk, gk := p.kinds()
	fu := e.fn.Value(fk, p.nu, p.u)
	gu := e.fn.Value(gk, p.nu, p.u)
	z := p.u * scale
	return ratios{
		f:  e.fn.Value(fk, p.nu, z) / fu,
		g:  e.fn.Value(gk, p.nu, z) / gu,
		fp: e.fn.Derivative(fk, p.nu, z) / fu,
		gp: e.fn.Derivative(gk, p.nu, z) / gu,
	}
}

// logDerivative returns F'(u)/F(u) for the first kind of the layer.
func (e *Evaluator) logDerivative(p layerParams) float64 {
	fk, _ := p.kinds()
	return e.fn.Derivative(fk, p.nu, p.u) / e.fn.Value(fk, p.nu, p.u)
}

// firstLayer is the core's boundary vector: one unit coefficient per
// family, regular at the axis.
func (e *Evaluator) firstLayer(p layerParams) boundary {
	fp := e.logDerivative(p)
	c := p.coupling(1)
	return boundary{
		{1, 0, c, fp * p.n * p.n / (model.Eta0 * p.w)},
		{0, 1, -fp * model.Eta0 / p.w, -c},
	}
}

// fill returns the FillFunc of intermediate layer i. Rows are the four
// continuity equations at r_{i-1}, columns the coefficients (A, B, A', B')
// of the two families; the augmented column is the incoming boundary vector.
func (e *Evaluator) fill(p layerParams, rPrev, r float64, in *boundary) linsolve.FillFunc {
	scale := rPrev / r
	q := e.ratios(p, scale)
	c := p.coupling(scale)
	eh := model.Eta0 / p.w
	he := p.n * p.n / (model.Eta0 * p.w)

	a := [linsolve.Rows][linsolve.Rows]float64{
		{q.f, q.g, 0, 0},
		{0, 0, q.f, q.g},
		{q.f * c, q.g * c, -q.fp * eh, -q.gp * eh},
		{q.fp * he, q.gp * he, -q.f * c, -q.g * c},
	}
	return func(cell linsolve.Cell) float64 {
		if cell.Col == linsolve.Rows {
			return in[cell.Depth][cell.Row]
		}
		return a[cell.Row][cell.Col]
	}
}

// carry evaluates the fields at r_i from the solved coefficients.
func (e *Evaluator) carry(p layerParams, x linsolve.Solution) boundary {
	_, gk := p.kinds()
	fp := e.logDerivative(p)
	gp := e.fn.Derivative(gk, p.nu, p.u) / e.fn.Value(gk, p.nu, p.u)
	c := p.coupling(1)
	eh := model.Eta0 / p.w
	he := p.n * p.n / (model.Eta0 * p.w)

	var b boundary
	for d := range b {
		s := x.Slab(d)
		b[d] = [linsolve.Rows]float64{
			s[0] + s[1],
			s[2] + s[3],
			c*(s[0]+s[1]) - eh*(s[2]*fp+s[3]*gp),
			he*(s[0]*fp+s[1]*gp) - c*(s[2]+s[3]),
		}
	}
	return b
}

// closeGuided subtracts the decaying cladding field from the last two
// entries of every slab.
func (e *Evaluator) closeGuided(p layerParams, b *boundary) {
	kp := e.fn.Derivative(special.K, p.nu, p.u) / e.fn.Value(special.K, p.nu, p.u)
	c := p.coupling(1)
	eh := model.Eta0 / p.w
	he := p.n * p.n / (model.Eta0 * p.w)
	for d := range b {
		b[d][2] -= c*b[d][0] - eh*b[d][1]*kp
		b[d][3] -= he*b[d][0]*kp - c*b[d][1]
	}
}
