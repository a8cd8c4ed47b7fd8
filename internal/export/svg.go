package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/lensim/internal/analysis"
)

// ProfileToSVG plots a radial deflection profile as a polyline with the zero
// axis and the compensation radius, if any, marked.
func ProfileToSVG(prof *analysis.Profile, width, height int, strokeColor string) string {
	if prof == nil || len(prof.Points) < 2 {
		return ""
	}

	minX, maxX := prof.Points[0].R, prof.Points[0].R
	minY, maxY := 0.0, 0.0
	for _, p := range prof.Points {
		minX = math.Min(minX, p.R)
		maxX = math.Max(maxX, p.R)
		minY = math.Min(minY, p.Magnitude)
		maxY = math.Max(maxY, p.Magnitude)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(r float64) float64 { return (r - minX) / rangeX * float64(width) }
	py := func(m float64) float64 { return float64(height) - (m-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#3c3c3c" stroke-width="1"/>
`, width, height, width, height, py(0), width, py(0)))

	if r, ok := prof.CompensationRadius(); ok {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#8c8c8c" stroke-dasharray="4 4"/>
`, px(r), px(r), height))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range prof.Points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.R), py(p.Magnitude)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(p.R), py(p.Magnitude)))
		}
	}
	sb.WriteString(`"/>
`)
	sb.WriteString(fmt.Sprintf(`<text x="6" y="16" fill="#b4b4b4" font-family="monospace" font-size="12">%s</text>
</svg>`, prof.Model))
	return sb.String()
}
