package CS2D

import (
	"math"
	"testing"

	"github.com/notargets/cubedsphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMassOperator(t *testing.T) {
	var (
		l  = HalfEdge(1)
		gi = SphereGrid(2, 6, l)
	)
	qdata := make([]float64, NQData*gi.K)
	require.NoError(t, gi.ComputeGeometricFactors(FlatTerrain, qdata))
	mo := NewMassOperator(qdata)
	require.Equal(t, gi.K, mo.K)

	// Integrating unity recovers the sphere area, to within the quadrature
	// discretization error of this grid resolution
	one := utils.NewVector(gi.K).Set(1)
	assert.InDelta(t, 4*math.Pi, mo.Integrate(one), 1.e-5)

	// Linearity: scaling the field scales the integral
	two := utils.NewVector(gi.K).Set(2)
	assert.InDelta(t, 8*math.Pi, mo.Integrate(two), 1.e-5)

	// Apply scales each point by its own mass entry
	r := mo.Apply(one)
	for i := 0; i < gi.K; i++ {
		assert.InDelta(t, qdata[i*NQData+QWdetJ], r.AtVec(i), 1.e-14)
	}

	// An odd function of the vertical coordinate integrates to zero by
	// symmetry of the panel layout
	odd := utils.NewVector(gi.K)
	for i := 0; i < gi.K; i++ {
		xx := [3]float64{gi.XX[3*i], gi.XX[3*i+1], gi.XX[3*i+2]}
		mod := math.Sqrt(xx[0]*xx[0] + xx[1]*xx[1] + xx[2]*xx[2])
		odd.Data()[i] = xx[2] / mod // z on the unit sphere
	}
	assert.InDelta(t, 0, mo.Integrate(odd), 1.e-10)

	assert.Panics(t, func() { mo.Apply(utils.NewVector(gi.K + 1)) })
	assert.Panics(t, func() { NewMassOperator(make([]float64, NQData+1)) })
}

func TestGradientReconstruction(t *testing.T) {
	// For u defined on the sphere, the ambient directional derivatives along
	// the Jacobian columns du = dxdX^T grad(u) reconstruct to the reference
	// space gradient via the stored pseudo-inverse
	var (
		l  = HalfEdge(1)
		gi = SphereGrid(2, 3, l)
	)
	qdata := make([]float64, NQData*gi.K)
	require.NoError(t, gi.ComputeGeometricFactors(FlatTerrain, qdata))
	for i := 0; i < gi.K; i++ {
		_, xx, dxxdX, _ := gi.point(i)
		dxdX, ok := manifoldJacobian(xx, dxxdX)
		require.True(t, ok)
		// Reference space gradient of an arbitrary field
		gX := [2]float64{0.37, -1.21}
		// Its ambient representation du = dxdX * gX lies in the tangent
		// plane, where the pseudo-inverse is an exact left inverse
		var du [3]float64
		for j := 0; j < 3; j++ {
			du[j] = dxdX[j][0]*gX[0] + dxdX[j][1]*gX[1]
		}
		dX := ReconstructGradient(qdata, i, du)
		assert.InDelta(t, gX[0], dX[0], 1.e-12)
		assert.InDelta(t, gX[1], dX[1], 1.e-12)
	}
}
