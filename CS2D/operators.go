package CS2D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/cubedsphere/utils"
)

// MassOperator is the diagonal collocation mass matrix over a batch of
// quadrature points, built from the area scaling entries of qdata. It
// consumes the records unchanged.
type MassOperator struct {
	K int
	D *sparse.DIA
}

func NewMassOperator(qdata []float64) (mo *MassOperator) {
	if len(qdata)%NQData != 0 {
		panic(fmt.Errorf("qdata length %d is not a multiple of %d", len(qdata), NQData))
	}
	var (
		K    = len(qdata) / NQData
		diag = make([]float64, K)
	)
	for i := 0; i < K; i++ {
		diag[i] = qdata[i*NQData+QWdetJ]
	}
	mo = &MassOperator{
		K: K,
		D: sparse.NewDIA(K, K, diag),
	}
	return
}

// Apply multiplies a pointwise field by the mass diagonal.
func (mo *MassOperator) Apply(u utils.Vector) (r utils.Vector) {
	if u.Len() != mo.K {
		panic(fmt.Errorf("field length %d does not match %d quadrature points", u.Len(), mo.K))
	}
	r = utils.NewVector(mo.K)
	r.V.MulVec(mo.D, u.V)
	return
}

// Integrate returns the integral of a pointwise field over the batch.
func (mo *MassOperator) Integrate(u utils.Vector) float64 {
	return mo.Apply(u).Sum()
}

// SurfaceArea integrates unity over the batch, the manifold area covered by
// the quadrature points.
func SurfaceArea(qdata []float64) (area float64) {
	for i := 0; i < len(qdata); i += NQData {
		area += qdata[i+QWdetJ]
	}
	return
}

// ReconstructGradient applies the stored pseudo-inverse at point i to an
// ambient 3D directional derivative, recovering the reference space gradient.
func ReconstructGradient(qdata []float64, i int, du [3]float64) (dX [2]float64) {
	var (
		qd = qdata[i*NQData:]
	)
	dX[0] = qd[QPinv+0]*du[0] + qd[QPinv+1]*du[1] + qd[QPinv+2]*du[2]
	dX[1] = qd[QPinv+3]*du[0] + qd[QPinv+4]*du[1] + qd[QPinv+5]*du[2]
	return
}

// InverseMetric unpacks the Voigt stored inverse metric tensor at point i.
func InverseMetric(qdata []float64, i int) (g00, g11, g01 float64) {
	var (
		qd = qdata[i*NQData:]
	)
	g00, g11, g01 = qd[QGinv+0], qd[QGinv+1], qd[QGinv+2]
	return
}

// PseudoInverse returns the stored 2x3 gradient reconstruction matrix at
// point i.
func PseudoInverse(qdata []float64, i int) (P utils.Matrix) {
	var (
		qd   = qdata[i*NQData:]
		data = make([]float64, 6)
	)
	copy(data, qd[QPinv:QPinv+6])
	P = utils.NewMatrix(2, 3, data)
	return
}
