package matio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
)

// Format identifies a supported matrix file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// FormatForPath picks the format for a file path by extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported file extension: %q (want .csv, .tsv, or .json)", filepath.Ext(path))
	}
}

func (f Format) separator() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// ReadMatrix decodes a matrix in the given format from r and validates it.
func ReadMatrix(r io.Reader, format Format) (connectivity.Matrix, error) {
	switch format {
	case FormatCSV, FormatTSV:
		return ReadMatrixCSV(r, format.separator())
	case FormatJSON:
		return ReadMatrixJSON(r)
	default:
		return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidFormat,
			"unknown matrix format: %q", format)
	}
}

// ReadMatrixCSV decodes a delimited matrix: region names in the header row
// (after a leading label cell) and repeated in the first column of each
// data row. Row names must match the header order.
func ReadMatrixCSV(r io.Reader, comma rune) (connectivity.Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return connectivity.Matrix{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse matrix")
	}
	if len(records) < 2 {
		return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidFormat,
			"matrix file needs a header row and at least one data row")
	}

	header := records[0]
	if len(header) < 2 {
		return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidFormat,
			"header row needs at least one region column")
	}
	regions := make([]string, len(header)-1)
	copy(regions, header[1:])

	n := len(regions)
	if len(records)-1 != n {
		return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidMatrix,
			"matrix has %d data rows for %d regions", len(records)-1, n)
	}

	data := make([][]float64, n)
	for i, rec := range records[1:] {
		if len(rec) != n+1 {
			return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidMatrix,
				"row %q has %d values, want %d", rec[0], len(rec)-1, n)
		}
		if rec[0] != regions[i] {
			return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidMatrix,
				"row %d is named %q, header says %q", i+1, rec[0], regions[i])
		}
		row := make([]float64, n)
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return connectivity.Matrix{}, errors.New(errors.ErrCodeInvalidMatrix,
					"row %q, column %q: %q is not a number", rec[0], regions[j], cell)
			}
			row[j] = v
		}
		data[i] = row
	}

	m := connectivity.Matrix{Regions: regions, Data: data}
	if err := m.Validate(); err != nil {
		return connectivity.Matrix{}, err
	}
	return m, nil
}

// ReadMatrixJSON decodes a {"regions": [...], "matrix": [[...]]} document.
func ReadMatrixJSON(r io.Reader) (connectivity.Matrix, error) {
	var m connectivity.Matrix
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return connectivity.Matrix{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode matrix")
	}
	if err := m.Validate(); err != nil {
		return connectivity.Matrix{}, err
	}
	return m, nil
}

// ImportMatrix reads a matrix file at path, picking the format by
// extension.
func ImportMatrix(path string) (connectivity.Matrix, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return connectivity.Matrix{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return connectivity.Matrix{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return connectivity.Matrix{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	return ReadMatrix(f, format)
}

// ReadSeriesCSV decodes a sample-by-region table: region names in the
// header, one observation per row. An empty first header cell marks a
// leading index column, which is skipped. Returns one series per region,
// in header order.
func ReadSeriesCSV(r io.Reader, comma rune) ([]string, [][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse series")
	}
	if len(records) < 3 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat,
			"series file needs a header row and at least two observation rows")
	}

	header := records[0]
	skip := 0
	if len(header) > 0 && strings.TrimSpace(header[0]) == "" {
		skip = 1
	}
	if len(header)-skip < 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "series header has no regions")
	}

	regions := make([]string, len(header)-skip)
	copy(regions, header[skip:])

	n := len(regions)
	series := make([][]float64, n)
	for j := range series {
		series[j] = make([]float64, len(records)-1)
	}

	for i, rec := range records[1:] {
		if len(rec) != n+skip {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat,
				"observation row %d has %d values, want %d", i+1, len(rec)-skip, n)
		}
		for j, cell := range rec[skip:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, errors.New(errors.ErrCodeInvalidFormat,
					"observation row %d, region %q: %q is not a number", i+1, regions[j], cell)
			}
			series[j][i] = v
		}
	}

	return regions, series, nil
}

// ImportSeries reads a series file at path. Only delimited formats are
// supported; the separator is chosen by extension.
func ImportSeries(path string) ([]string, [][]float64, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, nil, err
	}
	if format == FormatJSON {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat,
			"series import supports CSV and TSV only")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	return ReadSeriesCSV(f, format.separator())
}
