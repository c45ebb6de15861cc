package CS2D

import (
	"fmt"
	"math"
	"sync"

	"github.com/notargets/cubedsphere/utils"
)

/*
	Per quadrature point geometric factors for integration and gradient
	reconstruction on the cubed sphere manifold.

	Each point produces NQData scalars, stored point major in the qdata
	array with the fixed layout below. Downstream operators consume the
	records unchanged:

	qdata[0]     modJ * w, the area scaling factor times quadrature weight
	qdata[1..6]  2x3 pseudo-inverse of dxdX, row major
	qdata[7..9]  inverse metric tensor g^{ij} in Voigt form: g00, g11, g01
	qdata[10]    terrain height at the local coordinates
*/

const (
	QWdetJ = 0
	QPinv  = 1
	QGinv  = 7
	QHs    = 10
	NQData = 11
)

const (
	// NormTol is the tolerance below which the squared norm of the cube face
	// point is treated as the mapping's singular point. It is absolute:
	// embedding positions are expected in units where the cube half edge is
	// order one, as produced by Embed.
	NormTol = 1.e-14
	// MetricDetTol is the relative tolerance for the metric tensor
	// determinant, measured against trace(G)^2 so the degeneracy test is
	// invariant under uniform scaling of the embedding Jacobian.
	MetricDetTol = 1.e-14
)

// ZeroNormError signals a point coincident with the coordinate system origin,
// where the central projection is undefined.
type ZeroNormError struct {
	Point int
}

func (e *ZeroNormError) Error() string {
	return fmt.Sprintf("zero norm embedding position at quadrature point %d", e.Point)
}

// DegenerateMetricError signals a folded or collapsed element whose metric
// tensor is singular.
type DegenerateMetricError struct {
	Point int
	Det   float64
}

func (e *DegenerateMetricError) Error() string {
	return fmt.Sprintf("degenerate metric tensor at quadrature point %d, determinant = %v", e.Point, e.Det)
}

// manifoldJacobian composes the 3x3 derivative of the normalize map at the
// cube face point xx with the embedding Jacobian dxxdX:
//
//	x = xx (xx^T xx)^{-1/2}
//	dx/dxx = I (xx^T xx)^{-1/2} - xx xx^T (xx^T xx)^{-3/2}
//	dxdX = dx/dxx * dxxdX
func manifoldJacobian(xx [3]float64, dxxdX [3][2]float64) (dxdX [3][2]float64, ok bool) {
	var (
		modxxsq = xx[0]*xx[0] + xx[1]*xx[1] + xx[2]*xx[2]
	)
	if modxxsq <= NormTol {
		return
	}
	oomod := 1. / math.Sqrt(modxxsq)
	fac := oomod / modxxsq
	var dxdxx [3][3]float64
	for j := 0; j < 3; j++ {
		for k := 0; k < 3; k++ {
			dxdxx[j][k] = -xx[j] * xx[k] * fac
		}
		dxdxx[j][j] += oomod
	}
	for j := 0; j < 3; j++ {
		for k := 0; k < 2; k++ {
			for l := 0; l < 3; l++ {
				dxdX[j][k] += dxdxx[j][l] * dxxdX[l][k]
			}
		}
	}
	ok = true
	return
}

// areaElement returns the magnitude of the cross product of the two columns
// of dxdX, the local surface area scaling factor. It equals
// sqrt(det(dxdX^T dxdX)).
func areaElement(dxdX [3][2]float64) (modJ float64) {
	var (
		J = [3]float64{
			dxdX[1][0]*dxdX[2][1] - dxdX[2][0]*dxdX[1][1],
			dxdX[2][0]*dxdX[0][1] - dxdX[0][0]*dxdX[2][1],
			dxdX[0][0]*dxdX[1][1] - dxdX[1][0]*dxdX[0][1],
		}
	)
	modJ = math.Sqrt(J[0]*J[0] + J[1]*J[1] + J[2]*J[2])
	return
}

// metricPseudoInverse forms the 2x2 metric tensor G = dxdX^T dxdX, inverts it
// analytically and builds the left Moore-Penrose pseudo-inverse
// P = Ginv dxdX^T, which satisfies P * dxdX = I.
func metricPseudoInverse(dxdX [3][2]float64) (ginv [3]float64, pinv [2][3]float64, det float64, ok bool) {
	var g [2][2]float64
	for j := 0; j < 2; j++ {
		for k := 0; k < 2; k++ {
			for l := 0; l < 3; l++ {
				g[j][k] += dxdX[l][j] * dxdX[l][k]
			}
		}
	}
	det = g[0][0]*g[1][1] - g[0][1]*g[1][0]
	tr := g[0][0] + g[1][1]
	if math.Abs(det) <= MetricDetTol*tr*tr {
		return
	}
	oodet := 1. / det
	// Voigt packing: g00, g11, g01
	ginv = [3]float64{g[1][1] * oodet, g[0][0] * oodet, -g[0][1] * oodet}
	ginvFull := [2][2]float64{
		{ginv[0], ginv[2]},
		{-g[1][0] * oodet, ginv[1]},
	}
	for j := 0; j < 2; j++ {
		for k := 0; k < 3; k++ {
			for l := 0; l < 2; l++ {
				pinv[j][k] += ginvFull[j][l] * dxdX[k][l]
			}
		}
	}
	ok = true
	return
}

// GeometricFactorsAtPoint computes the NQData quadrature data scalars for a
// single point and writes them to qd, which must have length NQData. The
// point index ipoint is only used to report errors.
func GeometricFactorsAtPoint(ipoint int, x [2]float64, xx [3]float64,
	dxxdX [3][2]float64, w float64, hs HeightFunc, qd []float64) error {
	if len(qd) != NQData {
		panic(fmt.Errorf("output record must have length %d, have %d", NQData, len(qd)))
	}
	dxdX, ok := manifoldJacobian(xx, dxxdX)
	if !ok {
		return &ZeroNormError{Point: ipoint}
	}
	modJ := areaElement(dxdX)
	ginv, pinv, det, ok := metricPseudoInverse(dxdX)
	if !ok {
		return &DegenerateMetricError{Point: ipoint, Det: det}
	}
	qd[QWdetJ] = modJ * w
	qd[QPinv+0] = pinv[0][0]
	qd[QPinv+1] = pinv[0][1]
	qd[QPinv+2] = pinv[0][2]
	qd[QPinv+3] = pinv[1][0]
	qd[QPinv+4] = pinv[1][1]
	qd[QPinv+5] = pinv[1][2]
	qd[QGinv+0] = ginv[0]
	qd[QGinv+1] = ginv[1]
	qd[QGinv+2] = ginv[2]
	qd[QHs] = hs(x[0], x[1])
	return nil
}

// GeoInputs holds the parallel, index aligned input arrays for one batch of
// quadrature points. The caller owns both the inputs and the qdata output
// array; the kernel only writes each point's disjoint output record.
type GeoInputs struct {
	K      int       // Number of quadrature points in the batch
	X      []float64 // 2*K local panel coordinates, point major: x0, x1
	Panels []Panel   // K panel indices
	XX     []float64 // 3*K cube face embedding positions
	DxxdX  []float64 // 6*K embedding Jacobians, row major 3x2 per point
	W      []float64 // K quadrature weights
}

func NewGeoInputs(K int) (gi *GeoInputs) {
	gi = &GeoInputs{
		K:      K,
		X:      make([]float64, 2*K),
		Panels: make([]Panel, K),
		XX:     make([]float64, 3*K),
		DxxdX:  make([]float64, 6*K),
		W:      make([]float64, K),
	}
	return
}

// SetPoint fills point i from the panel embedding at the local coordinates.
// dxxdX is supplied by the caller, which lets a reference-to-local coordinate
// scaling be folded into the embedding Jacobian.
func (gi *GeoInputs) SetPoint(i int, panel Panel, x0, x1, l float64,
	dxxdX [3][2]float64, w float64) {
	var (
		xx = Embed(panel, x0, x1, l)
	)
	gi.X[2*i], gi.X[2*i+1] = x0, x1
	gi.Panels[i] = panel
	for j := 0; j < 3; j++ {
		gi.XX[3*i+j] = xx[j]
		gi.DxxdX[6*i+2*j] = dxxdX[j][0]
		gi.DxxdX[6*i+2*j+1] = dxxdX[j][1]
	}
	gi.W[i] = w
}

func (gi *GeoInputs) point(i int) (x [2]float64, xx [3]float64, dxxdX [3][2]float64, w float64) {
	x = [2]float64{gi.X[2*i], gi.X[2*i+1]}
	xx = [3]float64{gi.XX[3*i], gi.XX[3*i+1], gi.XX[3*i+2]}
	for j := 0; j < 3; j++ {
		dxxdX[j][0] = gi.DxxdX[6*i+2*j]
		dxxdX[j][1] = gi.DxxdX[6*i+2*j+1]
	}
	w = gi.W[i]
	return
}

func (gi *GeoInputs) checkQDataDims(qdata []float64) {
	if len(qdata) != NQData*gi.K {
		panic(fmt.Errorf("qdata must have length %d for %d points, have %d",
			NQData*gi.K, gi.K, len(qdata)))
	}
}

// ComputeGeometricFactors fills the caller allocated qdata array, NQData
// scalars per point, for all points in the batch. The first offending point
// stops the computation.
func (gi *GeoInputs) ComputeGeometricFactors(hs HeightFunc, qdata []float64) error {
	gi.checkQDataDims(qdata)
	for i := 0; i < gi.K; i++ {
		x, xx, dxxdX, w := gi.point(i)
		if err := GeometricFactorsAtPoint(i, x, xx, dxxdX, w, hs,
			qdata[i*NQData:(i+1)*NQData]); err != nil {
			return err
		}
	}
	return nil
}

// ComputeGeometricFactorsParallel splits the point range over parallelDegree
// workers. Each point writes only its own output record, so the results are
// identical to the serial computation. The reported error is the one with the
// lowest point index, matching serial behavior.
func (gi *GeoInputs) ComputeGeometricFactorsParallel(hs HeightFunc,
	qdata []float64, parallelDegree int) error {
	gi.checkQDataDims(qdata)
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	if parallelDegree > gi.K {
		parallelDegree = gi.K
	}
	var (
		pm   = utils.NewPartitionMap(parallelDegree, gi.K)
		errs = make([]error, parallelDegree)
		wg   sync.WaitGroup
	)
	for n := 0; n < parallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(n)
			for i := kMin; i < kMax; i++ {
				x, xx, dxxdX, w := gi.point(i)
				if err := GeometricFactorsAtPoint(i, x, xx, dxxdX, w, hs,
					qdata[i*NQData:(i+1)*NQData]); err != nil {
					errs[n] = err
					return
				}
			}
		}(n)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
