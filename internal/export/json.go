package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/lens"
)

type ExportData struct {
	Model        string                  `json:"model"`
	Params       ParamsData              `json:"params"`
	Peak         analysis.ProfilePoint   `json:"peak"`
	Compensation *float64                `json:"compensation_radius,omitempty"`
	Points       []analysis.ProfilePoint `json:"points"`
	Table        *analysis.TableStats    `json:"table,omitempty"`
}

type ParamsData struct {
	Mass        float64 `json:"mass"`
	Spread      float64 `json:"spread"`
	Scale       float64 `json:"scale"`
	WallDensity float64 `json:"wall_density,omitempty"`
	WallWidth   float64 `json:"wall_width,omitempty"`
	HSWDeltaC   float64 `json:"hsw_delta_c,omitempty"`
	HSWRs       float64 `json:"hsw_rs,omitempty"`
	HSWAlpha    float64 `json:"hsw_alpha,omitempty"`
	HSWBeta     float64 `json:"hsw_beta,omitempty"`
}

// NewExportData collects a profile and, for HSW, its table statistics.
func NewExportData(p lens.Params, prof *analysis.Profile, table *lens.Table) ExportData {
	data := ExportData{
		Model: p.Model.String(),
		Params: ParamsData{
			Mass:   p.Mass,
			Spread: p.Spread,
			Scale:  p.Scale(),
		},
		Peak:   prof.Peak,
		Points: prof.Points,
	}
	switch p.Model {
	case lens.VoidToy:
		data.Params.WallDensity = p.WallDensity
		data.Params.WallWidth = p.WallWidth
	case lens.HSWVoid:
		data.Params.HSWDeltaC = p.HSWDeltaC
		data.Params.HSWRs = p.HSWRs
		data.Params.HSWAlpha = p.HSWAlpha
		data.Params.HSWBeta = p.HSWBeta
		if table != nil {
			stats := analysis.SummarizeTable(table)
			data.Table = &stats
		}
	}
	if r, ok := prof.CompensationRadius(); ok {
		data.Compensation = &r
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
