package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/bode/internal/response"
)

var csvHeader = []string{"omega", "magnitude_db", "phase_deg"}

// CSV writes one row per sample. Non-finite values are written as +Inf,
// -Inf or NaN so ReadCSV restores them.
func CSV(w io.Writer, resp *response.Response) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range resp.Omega {
		row := []string{
			strconv.FormatFloat(resp.Omega[i], 'g', -1, 64),
			strconv.FormatFloat(resp.MagnitudeDB[i], 'g', -1, 64),
			strconv.FormatFloat(resp.PhaseDeg[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func CSVFile(path string, resp *response.Response) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return CSV(file, resp)
}

func ReadCSV(r io.Reader) (*response.Response, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: missing csv header")
	}

	n := len(records) - 1
	resp := &response.Response{
		Omega:       make([]float64, 0, n),
		MagnitudeDB: make([]float64, 0, n),
		PhaseDeg:    make([]float64, 0, n),
	}
	for i, rec := range records[1:] {
		var vals [3]float64
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("export: csv row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		resp.Omega = append(resp.Omega, vals[0])
		resp.MagnitudeDB = append(resp.MagnitudeDB, vals[1])
		resp.PhaseDeg = append(resp.PhaseDeg, vals[2])
	}
	return resp, nil
}
