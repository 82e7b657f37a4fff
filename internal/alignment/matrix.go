package alignment

import (
	"bytes"
	"fmt"
)

// Matrix is the (m+1)×(n+1) dynamic-programming score matrix of one
// alignment. Row 0 and column 0 stand for the empty prefixes.
//
// A Matrix is written once while filling and only read afterwards.
type Matrix[S Number] struct {
	rows, cols int
	cells      []S
}

func newMatrix[S Number](rows, cols int) *Matrix[S] {
	return &Matrix[S]{rows: rows, cols: cols, cells: make([]S, rows*cols)}
}

func (f *Matrix[S]) idx(i, j int) int {
	return i*f.cols + j
}

// Rows returns m+1.
func (f *Matrix[S]) Rows() int { return f.rows }

// Cols returns n+1.
func (f *Matrix[S]) Cols() int { return f.cols }

// At returns the value of cell (i, j).
func (f *Matrix[S]) At(i, j int) S {
	return f.cells[f.idx(i, j)]
}

func (f *Matrix[S]) set(i, j int, v S) {
	f.cells[f.idx(i, j)] = v
}

// Max returns the maximum value and the first cell holding it in row-major
// order.
func (f *Matrix[S]) Max() (S, int, int) {
	best, at := f.cells[0], 0
	for k, v := range f.cells {
		if v > best {
			best, at = v, k
		}
	}
	return best, at / f.cols, at % f.cols
}

// String renders the matrix for debugging.
func (f *Matrix[S]) String() string {
	var buf bytes.Buffer
	for i := 0; i < f.rows; i++ {
		for j := 0; j < f.cols; j++ {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%6v", f.At(i, j))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
