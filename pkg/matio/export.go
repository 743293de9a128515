package matio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
)

// WriteMatrixJSON encodes a matrix as indented JSON and writes it to w.
// The output can be re-imported with [ReadMatrixJSON].
func WriteMatrixJSON(m connectivity.Matrix, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// ExportMatrixJSON writes a matrix to a JSON file at path.
func ExportMatrixJSON(m connectivity.Matrix, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteMatrixJSON(m, f)
}

// WriteMatrixCSV writes a matrix as a delimited table with region names in
// the header row and first column. The output can be re-imported with
// [ReadMatrixCSV].
func WriteMatrixCSV(m connectivity.Matrix, w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	n := m.Size()
	header := make([]string, n+1)
	for j, r := range m.Regions {
		header[j+1] = r
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, n+1)
	for i := 0; i < n; i++ {
		row[0] = m.Regions[i]
		for j := 0; j < n; j++ {
			row[j+1] = strconv.FormatFloat(m.Data[i][j], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportMatrixCSV writes a matrix to a delimited file at path, picking the
// separator by extension.
func ExportMatrixCSV(m connectivity.Matrix, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		return ExportMatrixJSON(m, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteMatrixCSV(m, f, format.separator())
}

// WriteAssignmentsCSV writes the region-to-cluster table from an analysis:
// a header row followed by one region,cluster row per region.
func WriteAssignmentsCSV(w io.Writer, regions []string, labels []int) error {
	if len(regions) != len(labels) {
		return errors.New(errors.ErrCodeInvalidInput,
			"region count (%d) does not match label count (%d)", len(regions), len(labels))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"region", "cluster"}); err != nil {
		return err
	}
	for i, r := range regions {
		if err := cw.Write([]string{r, strconv.Itoa(labels[i])}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportAssignmentsCSV writes the assignment table to a file at path.
func ExportAssignmentsCSV(path string, regions []string, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteAssignmentsCSV(f, regions, labels)
}
