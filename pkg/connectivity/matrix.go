// Package connectivity defines the region-by-region correlation matrix that
// feeds the clustering and network stages, plus builders that derive a matrix
// from raw per-region sample series.
package connectivity

import (
	"math"

	"github.com/siddlokray/cortica/pkg/errors"
)

// Numeric tolerances for matrix validation. Correlation estimators routinely
// produce values like 1.0000000000000002, so the range check allows a small
// overshoot that At() clamps away.
const (
	symmetryTol = 1e-8
	rangeTol    = 1e-6
)

// Matrix is a square symmetric matrix of pairwise correlation coefficients
// with one row/column per named region. It is the canonical input format for
// analysis runs: API requests, cache entries, and stored runs all carry it.
type Matrix struct {
	Regions []string    `json:"regions" bson:"regions"`
	Data    [][]float64 `json:"matrix" bson:"matrix"`
}

// Size returns the number of regions (matrix dimension).
func (m Matrix) Size() int { return len(m.Regions) }

// At returns the correlation between regions i and j, clamped to [-1, 1].
func (m Matrix) At(i, j int) float64 {
	v := m.Data[i][j]
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Validate checks structural and numeric invariants: square shape, region
// count matching the dimension, valid region names, finite values within
// [-1, 1], and symmetry.
func (m Matrix) Validate() error {
	n := len(m.Data)
	if n == 0 {
		return errors.New(errors.ErrCodeInvalidMatrix, "matrix cannot be empty")
	}

	if len(m.Regions) != n {
		return errors.New(errors.ErrCodeInvalidMatrix,
			"region count (%d) does not match matrix dimension (%d)", len(m.Regions), n)
	}

	if err := errors.ValidateRegionNames(m.Regions); err != nil {
		return err
	}

	for i, row := range m.Data {
		if len(row) != n {
			return errors.New(errors.ErrCodeInvalidMatrix,
				"matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New(errors.ErrCodeInvalidMatrix,
					"matrix[%d][%d] is not finite", i, j)
			}
			if v < -1-rangeTol || v > 1+rangeTol {
				return errors.New(errors.ErrCodeInvalidMatrix,
					"matrix[%d][%d] = %g outside [-1, 1]", i, j, v)
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.Data[i][j]-m.Data[j][i]) > symmetryTol {
				return errors.New(errors.ErrCodeInvalidMatrix,
					"matrix is not symmetric at [%d][%d]: %g vs %g", i, j, m.Data[i][j], m.Data[j][i])
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := Matrix{
		Regions: make([]string, len(m.Regions)),
		Data:    make([][]float64, len(m.Data)),
	}
	copy(out.Regions, m.Regions)
	for i, row := range m.Data {
		out.Data[i] = make([]float64, len(row))
		copy(out.Data[i], row)
	}
	return out
}

// Permute returns a copy with rows, columns, and region names reordered so
// that output position p holds input position perm[p]. The permutation must
// cover every index exactly once.
func (m Matrix) Permute(perm []int) (Matrix, error) {
	n := m.Size()
	if len(perm) != n {
		return Matrix{}, errors.New(errors.ErrCodeInvalidInput,
			"permutation length (%d) does not match matrix dimension (%d)", len(perm), n)
	}

	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return Matrix{}, errors.New(errors.ErrCodeInvalidInput, "invalid permutation")
		}
		seen[p] = true
	}

	out := Matrix{
		Regions: make([]string, n),
		Data:    make([][]float64, n),
	}
	for i, p := range perm {
		out.Regions[i] = m.Regions[p]
		out.Data[i] = make([]float64, n)
		for j, q := range perm {
			out.Data[i][j] = m.Data[p][q]
		}
	}
	return out, nil
}

// Submatrix returns the matrix restricted to the given region indices, in the
// given order. Indices must be in range; duplicates are allowed (callers pass
// cluster member sets which are unique by construction).
func (m Matrix) Submatrix(idx []int) (Matrix, error) {
	n := m.Size()
	out := Matrix{
		Regions: make([]string, len(idx)),
		Data:    make([][]float64, len(idx)),
	}
	for i, p := range idx {
		if p < 0 || p >= n {
			return Matrix{}, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", p, n)
		}
		out.Regions[i] = m.Regions[p]
		out.Data[i] = make([]float64, len(idx))
		for j, q := range idx {
			if q < 0 || q >= n {
				return Matrix{}, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", q, n)
			}
			out.Data[i][j] = m.Data[p][q]
		}
	}
	return out, nil
}
