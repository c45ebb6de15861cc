package CS2D

import (
	"fmt"
	"math"
)

/*
	Cube to sphere mapping with equidistant central projection, after
	"A Discontinuous Galerkin Transport Scheme on the Cubed Sphere",
	Nair et al. (2004).

	The sphere is covered by the six faces (panels) of an inscribed cube
	with half edge l. Each panel carries a local 2D coordinate system
	x = (x0, x1) in [-l, l]^2. The panel embedding maps x to the cube face
	point xx in 3D, and the central projection xx -> xx/|xx| places it on
	the unit sphere.
*/

type Panel int

const (
	PanelXPlus Panel = iota // lateral panels P0-P3
	PanelYPlus
	PanelXMinus
	PanelYMinus
	PanelZPlus  // top panel P4
	PanelZMinus // bottom panel P5
	NumPanels = 6
)

func (p Panel) String() string {
	switch p {
	case PanelXPlus:
		return "XPlus"
	case PanelYPlus:
		return "YPlus"
	case PanelXMinus:
		return "XMinus"
	case PanelYMinus:
		return "YMinus"
	case PanelZPlus:
		return "ZPlus"
	case PanelZMinus:
		return "ZMinus"
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// HalfEdge returns the half edge length l of the cube inscribed in a sphere
// of radius R.
func HalfEdge(R float64) float64 {
	return R / math.Sqrt(3)
}

// Embed maps the local panel coordinates (x0, x1) to the cube face point xx
// in 3D, prior to projection onto the sphere.
func Embed(panel Panel, x0, x1, l float64) (xx [3]float64) {
	if l <= 0 {
		panic(fmt.Errorf("cube half edge must be positive, have %v", l))
	}
	switch panel {
	case PanelXPlus:
		xx = [3]float64{l, x0, x1}
	case PanelYPlus:
		xx = [3]float64{-x0, l, x1}
	case PanelXMinus:
		xx = [3]float64{-l, -x0, x1}
	case PanelYMinus:
		xx = [3]float64{x0, -l, x1}
	case PanelZPlus:
		xx = [3]float64{-x1, x0, l}
	case PanelZMinus:
		xx = [3]float64{x1, x0, -l}
	default:
		panic(fmt.Errorf("invalid panel index %d", int(panel)))
	}
	return
}

// EmbeddingJacobian returns the constant 3x2 derivative dxxdX of the cube
// face point with respect to the local panel coordinates. Rows index the 3D
// component, columns the local coordinate.
func EmbeddingJacobian(panel Panel) (dxxdX [3][2]float64) {
	switch panel {
	case PanelXPlus:
		dxxdX = [3][2]float64{{0, 0}, {1, 0}, {0, 1}}
	case PanelYPlus:
		dxxdX = [3][2]float64{{-1, 0}, {0, 0}, {0, 1}}
	case PanelXMinus:
		dxxdX = [3][2]float64{{0, 0}, {-1, 0}, {0, 1}}
	case PanelYMinus:
		dxxdX = [3][2]float64{{1, 0}, {0, 0}, {0, 1}}
	case PanelZPlus:
		dxxdX = [3][2]float64{{0, -1}, {1, 0}, {0, 0}}
	case PanelZMinus:
		dxxdX = [3][2]float64{{0, 1}, {1, 0}, {0, 0}}
	default:
		panic(fmt.Errorf("invalid panel index %d", int(panel)))
	}
	return
}

// SpherePoint projects the local panel coordinates onto the sphere of
// radius R.
func SpherePoint(panel Panel, x0, x1, l, R float64) (x [3]float64) {
	var (
		xx = Embed(panel, x0, x1, l)
	)
	oomod := R / math.Sqrt(xx[0]*xx[0]+xx[1]*xx[1]+xx[2]*xx[2])
	for i := 0; i < 3; i++ {
		x[i] = xx[i] * oomod
	}
	return
}
