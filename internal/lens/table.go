package lens

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/lensim/internal/compute"
)

const (
	DefaultTableBins  = 8192
	DefaultTableSteps = 1000
	// TableExtent is R_max in units of the void radius.
	TableExtent = 20.0
)

// TableConfig sizes the HSW integration: Bins projected radii, Steps
// line-of-sight samples per radius.
type TableConfig struct {
	Bins  int
	Steps int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{Bins: DefaultTableBins, Steps: DefaultTableSteps}
}

// Table is an immutable lookup curve of the signed projected HSW mass divided
// by radius, sampled at bin midpoints over [0, RMax]. Tables are never mutated
// after BuildTable returns; a parameter change produces a new Table.
type Table struct {
	values []float64
	rMax   float64
	dr     float64
	key    tableKey
}

// BuildTable integrates the HSW density along the line of sight at each
// projected radius R_i = (i+0.5)·dr, accumulates the cylindrical-shell mass
// and stores mass/R_i. Cost is O(Bins·Steps); the per-bin surface density runs
// on the compute backend and the cumulative pass is sequential, so results are
// identical for identical inputs.
func BuildTable(p Params, cfg TableConfig) (*Table, error) {
	if cfg.Bins <= 0 || cfg.Steps <= 0 {
		return nil, fmt.Errorf("%w: bins=%d steps=%d", ErrTableSize, cfg.Bins, cfg.Steps)
	}
	p = p.Normalize()
	start := time.Now()

	scale := p.Scale()
	rMax := TableExtent * scale
	dr := rMax / float64(cfg.Bins)
	dz := rMax / float64(cfg.Steps)
	deltaC, rs, alpha, beta := p.HSWDeltaC, p.HSWRs, p.HSWAlpha, p.HSWBeta

	sigma := make([]float64, cfg.Bins)
	compute.ParallelFor(cfg.Bins, 64, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			r := (float64(i) + 0.5) * dr
			sum := 0.0
			for j := 0; j < cfg.Steps; j++ {
				z := (float64(j) + 0.5) * dz
				sum += HSWDensity(math.Hypot(r, z)/scale, deltaC, rs, alpha, beta)
			}
			sigma[i] = 2 * sum * dz
		}
	})

	values := make([]float64, cfg.Bins)
	mass := 0.0
	for i, s := range sigma {
		r := (float64(i) + 0.5) * dr
		mass += s * r * dr
		values[i] = mass / r
	}

	Logger().Debug("hsw table built",
		"bins", cfg.Bins,
		"steps", cfg.Steps,
		"r_max", rMax,
		"elapsed", time.Since(start))

	return &Table{values: values, rMax: rMax, dr: dr, key: p.tableKey()}, nil
}

// Len returns the number of bins.
func (t *Table) Len() int { return len(t.values) }

// RMax returns the largest covered radius.
func (t *Table) RMax() float64 { return t.rMax }

// At returns bin i, or 0 outside the table.
func (t *Table) At(i int) float64 {
	if i < 0 || i >= len(t.values) {
		return 0
	}
	return t.values[i]
}

// Radius returns the midpoint radius of bin i.
func (t *Table) Radius(i int) float64 {
	return (float64(i) + 0.5) * t.dr
}

// Values returns a copy of the bins.
func (t *Table) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)
	return out
}

// Lookup returns mass/R at radius r by linear interpolation between bin
// midpoints. Below the first midpoint the curve is anchored to 0 at r = 0;
// beyond RMax (normalized index > 1) the result is 0.
func (t *Table) Lookup(r float64) float64 {
	n := len(t.values)
	if n == 0 || !(r >= 0) || r > t.rMax {
		return 0
	}

	pos := r/t.dr - 0.5
	if pos <= 0 {
		return t.values[0] * r / (0.5 * t.dr)
	}

	i := int(pos)
	if i >= n-1 {
		return t.values[n-1]
	}
	frac := pos - float64(i)
	return t.values[i]*(1-frac) + t.values[i+1]*frac
}

// Matches reports whether t was built from the table-relevant fields of p.
func (t *Table) Matches(p Params) bool {
	return t != nil && t.key == p.tableKey()
}
