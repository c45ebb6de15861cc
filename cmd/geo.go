/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/notargets/cubedsphere/CS2D"
	"github.com/notargets/cubedsphere/InputParameters"
	"github.com/notargets/cubedsphere/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type ModelGeo struct {
	IPFile   string
	Parallel bool
	Profile  bool
}

// GeoCmd represents the geo command
var GeoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Computes the quadrature point geometric factors over the six cubed sphere panels",
	Long: `Builds a tensor product Gauss-Legendre quadrature grid on every panel of the
cubed sphere, computes the per point geometric factors (mass scaling, gradient
reconstruction pseudo-inverse, inverse metric tensor, terrain height) and
reports integration diagnostics`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mg := &ModelGeo{}
		if mg.IPFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mg.Parallel, _ = cmd.Flags().GetBool("parallel")
		mg.Profile, _ = cmd.Flags().GetBool("profile")
		gp := processGeoInput(mg)
		RunGeo(mg, gp)
	},
}

func init() {
	rootCmd.AddCommand(GeoCmd)
	GeoCmd.Flags().StringP("inputParametersFile", "I", "", "YAML input parameters file")
	GeoCmd.Flags().BoolP("parallel", "p", false, "split the quadrature points over ParallelDegree workers")
	GeoCmd.Flags().Bool("profile", false, "generate a CPU profile of the run")
}

func processGeoInput(mg *ModelGeo) (gp *InputParameters.GeometryParameters) {
	gp = &InputParameters.GeometryParameters{}
	if len(mg.IPFile) != 0 {
		var (
			data []byte
			err  error
		)
		if data, err = ioutil.ReadFile(mg.IPFile); err != nil {
			fmt.Printf("error: unable to read input parameters file: %s\n", err.Error())
			os.Exit(1)
		}
		if err = gp.Parse(data); err != nil {
			fmt.Printf("error: unable to parse input parameters file: %s\n", err.Error())
			exampleFile := `
########################################
Title: "Unit Sphere"
SphereRadius: 1.
ElementsPerEdge: 4
QuadratureOrder: 4
Terrain: flat
ParallelDegree: 4
########################################
`
			fmt.Printf("Example File Contents:\n%s\n", exampleFile)
			os.Exit(1)
		}
	}
	gp.SetDefaults()
	gp.Print()
	return
}

func RunGeo(mg *ModelGeo, gp *InputParameters.GeometryParameters) {
	if mg.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	hs, err := CS2D.TerrainByName(gp.Terrain)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var (
		R     = gp.SphereRadius
		l     = CS2D.HalfEdge(1) // unit sphere projection, R scales areas by R^2
		gi    = CS2D.SphereGrid(gp.ElementsPerEdge, gp.QuadratureOrder, l)
		qdata = make([]float64, CS2D.NQData*gi.K)
	)
	fmt.Printf("computing geometric factors at %d quadrature points on %d panels\n",
		gi.K, CS2D.NumPanels)
	if mg.Parallel {
		err = gi.ComputeGeometricFactorsParallel(hs, qdata, gp.ParallelDegree)
	} else {
		err = gi.ComputeGeometricFactors(hs, qdata)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var (
		area  = CS2D.SurfaceArea(qdata) * R * R
		exact = 4 * math.Pi * R * R
	)
	fmt.Printf("surface area = %v, exact = %v, error = %v\n",
		area, exact, math.Abs(area-exact))
	P := CS2D.PseudoInverse(qdata, 0)
	fmt.Printf("pseudo-inverse at point 0 = \n%v\n", mat.Formatted(P, mat.Squeeze()))
	hgts := utils.NewVector(gi.K)
	for i := 0; i < gi.K; i++ {
		hgts.Data()[i] = qdata[i*CS2D.NQData+CS2D.QHs]
	}
	fmt.Printf("terrain height min/max = %v/%v\n", hgts.Min(), hgts.Max())
}
