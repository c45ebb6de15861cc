package CS2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelEmbeddings(t *testing.T) {
	var (
		l = HalfEdge(1)
	)
	// The embedding Jacobian must match directional differences of Embed -
	// the embeddings are affine in the local coordinates, so central
	// differences are exact
	{
		eps := 0.25
		for p := 0; p < NumPanels; p++ {
			panel := Panel(p)
			A := EmbeddingJacobian(panel)
			x0, x1 := 0.3*l, -0.4*l
			plus0 := Embed(panel, x0+eps, x1, l)
			minus0 := Embed(panel, x0-eps, x1, l)
			plus1 := Embed(panel, x0, x1+eps, l)
			minus1 := Embed(panel, x0, x1-eps, l)
			for j := 0; j < 3; j++ {
				assert.InDelta(t, A[j][0], (plus0[j]-minus0[j])/(2*eps), 1.e-12)
				assert.InDelta(t, A[j][1], (plus1[j]-minus1[j])/(2*eps), 1.e-12)
			}
		}
	}
	// Panel centers project to the six axis points of the sphere
	{
		R := 2.5
		l = HalfEdge(R)
		centers := [NumPanels][3]float64{
			{R, 0, 0}, {0, R, 0}, {-R, 0, 0}, {0, -R, 0}, {0, 0, R}, {0, 0, -R},
		}
		for p := 0; p < NumPanels; p++ {
			x := SpherePoint(Panel(p), 0, 0, l, R)
			for j := 0; j < 3; j++ {
				assert.InDelta(t, centers[p][j], x[j], 1.e-12)
			}
		}
	}
	// Projected points land on the sphere everywhere on the panel
	{
		R := 1.0
		l = HalfEdge(R)
		for p := 0; p < NumPanels; p++ {
			for _, x0 := range []float64{-l, -0.3 * l, 0, 0.8 * l} {
				for _, x1 := range []float64{-0.9 * l, 0, 0.5 * l, l} {
					x := SpherePoint(Panel(p), x0, x1, l, R)
					r := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
					assert.InDelta(t, R, r, 1.e-12)
				}
			}
		}
	}
	// Corner points of adjacent panels meet on the sphere: the +x/+y edge
	{
		R := 1.0
		l = HalfEdge(R)
		a := SpherePoint(PanelXPlus, l, 0.2, l, R)
		b := SpherePoint(PanelYPlus, -l, 0.2, l, R)
		for j := 0; j < 3; j++ {
			assert.InDelta(t, a[j], b[j], 1.e-12)
		}
	}
	// Invalid inputs panic
	{
		assert.Panics(t, func() { Embed(Panel(6), 0, 0, 1) })
		assert.Panics(t, func() { Embed(PanelXPlus, 0, 0, 0) })
		assert.Panics(t, func() { EmbeddingJacobian(Panel(-1)) })
	}
}
