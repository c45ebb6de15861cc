package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type GeometryParameters struct {
	Title           string  `yaml:"Title"`
	SphereRadius    float64 `yaml:"SphereRadius"`
	ElementsPerEdge int     `yaml:"ElementsPerEdge"` // Per panel, each panel carries ElementsPerEdge^2 elements
	QuadratureOrder int     `yaml:"QuadratureOrder"` // Gauss points per direction within each element
	Terrain         string  `yaml:"Terrain"`         // "default" (sinusoidal) or "flat"
	ParallelDegree  int     `yaml:"ParallelDegree"`
}

func (gp *GeometryParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, gp)
}

func (gp *GeometryParameters) SetDefaults() {
	if gp.SphereRadius == 0 {
		gp.SphereRadius = 1
	}
	if gp.ElementsPerEdge == 0 {
		gp.ElementsPerEdge = 4
	}
	if gp.QuadratureOrder == 0 {
		gp.QuadratureOrder = 4
	}
	if gp.ParallelDegree == 0 {
		gp.ParallelDegree = 1
	}
}

func (gp *GeometryParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("%8.5f\t\t= SphereRadius\n", gp.SphereRadius)
	fmt.Printf("[%d]\t\t\t\t= Elements Per Edge\n", gp.ElementsPerEdge)
	fmt.Printf("[%d]\t\t\t\t= Quadrature Order\n", gp.QuadratureOrder)
	fmt.Printf("[%s]\t\t\t= Terrain\n", gp.Terrain)
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree\n", gp.ParallelDegree)
}
