package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/lens"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteProfileCSV writes "r,magnitude" rows.
func WriteProfileCSV(w io.Writer, prof *analysis.Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"r", "magnitude"}); err != nil {
		return err
	}
	for _, p := range prof.Points {
		if err := cw.Write([]string{formatFloat(p.R), formatFloat(p.Magnitude)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadProfileCSV parses the output of WriteProfileCSV. Summary fields are
// recomputed from the points.
func ReadProfileCSV(r io.Reader, model lens.Model) (*analysis.Profile, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	prof := &analysis.Profile{Model: model}
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		rv, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		mv, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		prof.Points = append(prof.Points, analysis.ProfilePoint{R: rv, Magnitude: mv})
	}
	return analysis.Summarize(prof), nil
}

// WriteTableCSV writes "bin,r,mass_over_r" rows for every table bin.
func WriteTableCSV(w io.Writer, t *lens.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin", "r", "mass_over_r"}); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		row := []string{strconv.Itoa(i), formatFloat(t.Radius(i)), formatFloat(t.At(i))}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
