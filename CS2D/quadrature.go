package CS2D

import (
	"fmt"
	"math"

	"github.com/notargets/cubedsphere/utils"
	"gonum.org/v1/gonum/mat"
)

// LegendreGQ returns the Q point Gauss-Legendre quadrature rule on [-1,1]
// using the Golub-Welsch algorithm: the points are the eigenvalues of the
// symmetric tridiagonal Jacobi matrix, the weights follow from the first
// component of each normalized eigenvector.
func LegendreGQ(Q int) (X, W utils.Vector) {
	if Q < 1 {
		panic(fmt.Errorf("quadrature rule must have at least one point, have %d", Q))
	}
	if Q == 1 {
		X = utils.NewVector(1, []float64{0})
		W = utils.NewVector(1, []float64{2})
		return
	}
	var (
		d0 = make([]float64, Q)
		d1 = make([]float64, Q-1)
	)
	for i := 0; i < Q-1; i++ {
		ip1 := float64(i + 1)
		d1[i] = ip1 / math.Sqrt((2*ip1-1)*(2*ip1+1))
	}
	JJ := utils.NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	X = utils.NewVector(Q, x)

	VVr := mat.NewDense(Q, Q, nil)
	eig.VectorsTo(VVr)
	// gamma0(0,0) = 2, the total weight on [-1,1]
	W = utils.NewVector(Q, VVr.RawRowView(0)).Copy().POW(2).Scale(2)
	return
}

// PanelGrid generates the batch inputs for an Nelem x Nelem grid of elements
// covering one panel, each element carrying a QxQ tensor product
// Gauss-Legendre rule. The reference-to-local scaling h/2 per direction is
// folded into the embedding Jacobian, so the weights remain the reference
// element weights.
func PanelGrid(panel Panel, Nelem, Q int, l float64) (gi *GeoInputs) {
	var (
		Xq, Wq = LegendreGQ(Q)
		h      = 2 * l / float64(Nelem)
		K      = Nelem * Nelem * Q * Q
		A      = EmbeddingJacobian(panel)
	)
	var dxxdX [3][2]float64
	for j := 0; j < 3; j++ {
		dxxdX[j][0] = A[j][0] * h / 2
		dxxdX[j][1] = A[j][1] * h / 2
	}
	gi = NewGeoInputs(K)
	var ind int
	for ex := 0; ex < Nelem; ex++ {
		for ey := 0; ey < Nelem; ey++ {
			x0c := -l + h*(float64(ex)+0.5)
			x1c := -l + h*(float64(ey)+0.5)
			for i := 0; i < Q; i++ {
				for j := 0; j < Q; j++ {
					x0 := x0c + Xq.AtVec(i)*h/2
					x1 := x1c + Xq.AtVec(j)*h/2
					gi.SetPoint(ind, panel, x0, x1, l, dxxdX, Wq.AtVec(i)*Wq.AtVec(j))
					ind++
				}
			}
		}
	}
	return
}

// SphereGrid generates the batch inputs for all six panels, concatenated in
// panel order.
func SphereGrid(Nelem, Q int, l float64) (gi *GeoInputs) {
	var (
		Kpanel = Nelem * Nelem * Q * Q
	)
	gi = NewGeoInputs(NumPanels * Kpanel)
	for p := 0; p < NumPanels; p++ {
		pg := PanelGrid(Panel(p), Nelem, Q, l)
		copy(gi.X[2*p*Kpanel:], pg.X)
		copy(gi.Panels[p*Kpanel:], pg.Panels)
		copy(gi.XX[3*p*Kpanel:], pg.XX)
		copy(gi.DxxdX[6*p*Kpanel:], pg.DxxdX)
		copy(gi.W[p*Kpanel:], pg.W)
	}
	return
}
