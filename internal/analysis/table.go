package analysis

import (
	"math"

	"github.com/san-kum/lensim/internal/lens"
)

// TableStats summarizes an HSW lookup table.
type TableStats struct {
	Bins        int
	RMax        float64
	Min, MinR   float64
	Max, MaxR   float64
	Edge        float64
	SignChanges int
	NonFinite   int
}

// SummarizeTable scans every bin of t. A nil table yields the zero value.
func SummarizeTable(t *lens.Table) TableStats {
	if t == nil || t.Len() == 0 {
		return TableStats{}
	}
	s := TableStats{
		Bins: t.Len(),
		RMax: t.RMax(),
		Min:  math.Inf(1),
		Max:  math.Inf(-1),
		Edge: t.At(t.Len() - 1),
	}

	prev := 0.0
	for i := 0; i < t.Len(); i++ {
		v := t.At(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.NonFinite++
			continue
		}
		if v < s.Min {
			s.Min, s.MinR = v, t.Radius(i)
		}
		if v > s.Max {
			s.Max, s.MaxR = v, t.Radius(i)
		}
		if prev != 0 && v != 0 && (prev < 0) != (v < 0) {
			s.SignChanges++
		}
		if v != 0 {
			prev = v
		}
	}
	return s
}
