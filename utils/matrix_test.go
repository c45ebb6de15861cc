package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose and Mul
	{
		A := NewMatrix(3, 2, []float64{
			1, 4,
			2, 5,
			3, 6,
		})
		At := A.Transpose()
		nr, nc := At.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 3, nc)
		assert.True(t, near(At.At(0, 2), 3))
		assert.True(t, near(At.At(1, 0), 4))
		// G = At * A is the 2x2 Gram matrix
		G := At.Mul(A)
		assert.True(t, near(G.At(0, 0), 14))
		assert.True(t, near(G.At(0, 1), 32))
		assert.True(t, near(G.At(1, 1), 77))
	}
	// Row, Col and Scale
	{
		A := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.True(t, nearVec([]float64{4, 5, 6}, A.Row(1).Data(), 1.e-12))
		assert.True(t, nearVec([]float64{2, 5}, A.Col(1).Data(), 1.e-12))
		A.Scale(2)
		assert.True(t, near(A.At(0, 0), 2))
		assert.True(t, near(A.At(1, 2), 12))
	}
	// Copy is independent of the source
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := A.Copy()
		B.Set(0, 0, 100)
		assert.True(t, near(A.At(0, 0), 1))
	}
	// Read only protection
	{
		A := NewMatrix(2, 2)
		A.SetReadOnly("A")
		assert.Panics(t, func() { A.Set(0, 0, 1) })
		A.SetWritable()
		assert.NotPanics(t, func() { A.Set(0, 0, 1) })
	}
	// Symmetric tridiagonal constructor
	{
		J := NewSymTriDiagonal([]float64{0, 0, 0}, []float64{1, 2})
		assert.True(t, near(J.At(0, 1), 1))
		assert.True(t, near(J.At(1, 0), 1))
		assert.True(t, near(J.At(1, 2), 2))
		assert.True(t, near(J.At(0, 2), 0))
	}
}

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, 2, 3})
	assert.True(t, near(v.Sum(), 6))
	assert.True(t, near(v.Min(), 1))
	assert.True(t, near(v.Max(), 3))
	v2 := v.Copy().POW(2)
	assert.True(t, nearVec([]float64{1, 4, 9}, v2.Data(), 1.e-12))
	assert.True(t, nearVec([]float64{1, 2, 3}, v.Data(), 1.e-12))
	v3 := NewVector(2).Set(2).Scale(3)
	assert.True(t, nearVec([]float64{6, 6}, v3.Data(), 1.e-12))
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a)+1.e-10 {
		l = true
	}
	return
}

func nearVec(a, b []float64, tol float64) (l bool) {
	if len(a) != len(b) {
		return
	}
	for i, val := range a {
		if math.Abs(val-b[i]) > tol {
			return
		}
	}
	l = true
	return
}
