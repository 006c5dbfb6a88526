package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"waveguide/chareq"
	"waveguide/material"
	"waveguide/model"
)

var (
	ErrBadGrid  = errors.New("calculator: grid needs at least two points and NeffMin < NeffMax")
	ErrBadOrder = errors.New("calculator: azimuthal orders must be non-negative")
)

// calculator 的接口定义
type Calculator interface {
	// Scan evaluates the characteristic equation on a neff x order grid and
	// reports every sign change of the residual.
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}

// ScanRequest describes one grid. NeffMin and NeffMax default to the cladding
// index and the largest layer index; Points defaults to the configured value.
type ScanRequest struct {
	Layers     []model.Layer `json:"layers"`
	Wavelength float64       `json:"wavelength"`
	NeffMin    float64       `json:"neffMin,omitempty"`
	NeffMax    float64       `json:"neffMax,omitempty"`
	Points     int           `json:"points,omitempty"`
	Orders     []int         `json:"orders"`
}

// Bracket is a neff interval [Lo, Hi] across which the residual of order Nu
// changes sign.
type Bracket struct {
	Nu int     `json:"nu"`
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

type ScanResult struct {
	ID         string        `json:"id"`
	Wavelength float64       `json:"wavelength"`
	K0         float64       `json:"k0"`
	Indices    []float64     `json:"indices"`
	Neff       []float64     `json:"neff"`
	Orders     []int         `json:"orders"`
	Residuals  [][]float64   `json:"residuals"` // [order][neff]
	Leaky      [][]bool      `json:"leaky"`
	Brackets   []Bracket     `json:"brackets"`
	Elapsed    time.Duration `json:"elapsed"`
}

// MarshalJSON writes non-finite residuals as null.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	type alias ScanResult
	rows := make([][]*float64, len(r.Residuals))
	for o, row := range r.Residuals {
		rows[o] = make([]*float64, len(row))
		for j := range row {
			if v := row[j]; !math.IsInf(v, 0) && !math.IsNaN(v) {
				rows[o][j] = &row[j]
			}
		}
	}
	return json.Marshal(struct {
		*alias
		Residuals [][]*float64 `json:"residuals"`
	}{(*alias)(r), rows})
}

type calculator struct {
	cfg  Config
	eval *chareq.Evaluator
	e    *executorBaseOnSlice
}

func NewCalculator(cfg Config) Calculator {
	return &calculator{
		cfg:  cfg,
		eval: chareq.New(nil),
		e:    newExecutorBaseOnSlice(cfg.Workers),
	}
}

func (c *calculator) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	start := time.Now()
	res, err := c.prepare(req)
	if err != nil {
		scanTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	wg, err := material.Resolve(req.Layers, req.Wavelength)
	if err != nil {
		scanTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("Scan: %w", err)
	}
	res.Indices = wg.Indices()
	if req.NeffMin == 0 && req.NeffMax == 0 {
		floats.Span(res.Neff, wg.CladdingIndex(), wg.MaxIndex())
	}

	points := len(res.Neff)
	regimes := make([]chareq.Regime, points*len(res.Orders))
	err = c.e.run(ctx, len(regimes), func(i int) {
		o, j := i/points, i%points
		r := c.eval.Evaluate(wg, model.Query{Neff: res.Neff[j], K0: res.K0, Nu: res.Orders[o]})
		res.Residuals[o][j] = r.Residual
		res.Leaky[o][j] = r.Leaky
		regimes[i] = r.Regime
	})
	if err != nil {
		scanTotal.WithLabelValues("canceled").Inc()
		log.WithFields(log.Fields{"id": res.ID, "err": err}).Warn("scan canceled")
		return nil, err
	}

	var counts [3]int
	for _, r := range regimes {
		counts[r]++
	}
	for r, n := range counts {
		if n > 0 {
			taskTotal.WithLabelValues(chareq.Regime(r).String()).Add(float64(n))
		}
	}

	for o, nu := range res.Orders {
		res.Brackets = append(res.Brackets, brackets(nu, res.Neff, res.Residuals[o], res.Leaky[o], c.cfg.MaxResidual)...)
	}
	res.Elapsed = time.Since(start)

	scanTotal.WithLabelValues("ok").Inc()
	scanDuration.Observe(res.Elapsed.Seconds())
	bracketCount.Observe(float64(len(res.Brackets)))
	log.WithFields(log.Fields{
		"id":       res.ID,
		"layers":   wg.Len(),
		"points":   points,
		"orders":   res.Orders,
		"brackets": len(res.Brackets),
		"elapsed":  res.Elapsed,
	}).Info("scan finished")
	return res, nil
}

// prepare validates the grid part of req and allocates the result.
func (c *calculator) prepare(req ScanRequest) (*ScanResult, error) {
	if !(req.Wavelength > 0) || math.IsInf(req.Wavelength, 0) {
		return nil, fmt.Errorf("Scan: wavelength %v: %w", req.Wavelength, model.ErrBadWavelength)
	}
	points := req.Points
	if points == 0 {
		points = c.cfg.Points
	}
	if points < 2 {
		return nil, fmt.Errorf("Scan: %d points: %w", points, ErrBadGrid)
	}
	if (req.NeffMin != 0 || req.NeffMax != 0) && !(req.NeffMin < req.NeffMax) {
		return nil, fmt.Errorf("Scan: neff range [%v, %v]: %w", req.NeffMin, req.NeffMax, ErrBadGrid)
	}
	orders := req.Orders
	if len(orders) == 0 {
		orders = []int{0}
	}
	for _, nu := range orders {
		if nu < 0 {
			return nil, fmt.Errorf("Scan: order %d: %w", nu, ErrBadOrder)
		}
	}

	res := &ScanResult{
		ID:         uuid.NewString(),
		Wavelength: req.Wavelength,
		K0:         model.K0(req.Wavelength),
		Neff:       make([]float64, points),
		Orders:     append([]int(nil), orders...),
		Residuals:  make([][]float64, len(orders)),
		Leaky:      make([][]bool, len(orders)),
	}
	for o := range orders {
		res.Residuals[o] = make([]float64, points)
		res.Leaky[o] = make([]bool, points)
	}
	if req.NeffMin != 0 || req.NeffMax != 0 {
		floats.Span(res.Neff, req.NeffMin, req.NeffMax)
	}
	return res, nil
}

// brackets walks the grid from high to low neff and returns every interval
// where the residual changes sign. Pairs with a leaky, non-finite or larger
// than maxResidual sample are skipped.
func brackets(nu int, neff, residual []float64, leaky []bool, maxResidual float64) []Bracket {
	var out []Bracket
	usable := func(i int) bool {
		v := residual[i]
		return !leaky[i] && !math.IsNaN(v) && math.Abs(v) <= maxResidual
	}
	for i := len(neff) - 1; i > 0; i-- {
		if !usable(i) || !usable(i-1) {
			continue
		}
		if (residual[i-1] < 0 && residual[i] > 0) || (residual[i-1] > 0 && residual[i] < 0) {
			out = append(out, Bracket{Nu: nu, Lo: neff[i-1], Hi: neff[i]})
		}
	}
	return out
}
