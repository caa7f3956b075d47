package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/table"

	"github.com/gosph/gosph/field"
	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/parallel"
)

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode. The code tries to fail gracefully if
	// the user provides incorrect input.

	var (
		convertStr    string
		exampleConfig string
	)
	vars := map[string]*string{
		"Convert":       &convertStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&parallel.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&convertStr, "Convert", "",
		"Configuration file for [Convert] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Convert'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Convert":
		wrap := DefaultConvertWrapper()
		err := gcfg.ReadFileInto(wrap, convertStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Convert

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidMethod() {
			log.Fatal(
				"Invalid/non-existent 'Method' value. Must be one of " +
					"'Sph', 'Spherical', and 'ZhuBridson'.",
			)
		} else if !con.ValidResolution() {
			log.Fatal("Invalid/non-existent 'Resolution' value.")
		} else if !con.ValidBounds() {
			log.Fatal("'Min' bounds must be strictly below 'Max' bounds.")
		} else if !con.ValidColumns() {
			log.Fatal("Column indices must be non-negative.")
		}

		if con.Threads > 0 {
			parallel.NumCores = con.Threads
		}

		if con.ValidLogFile() {
			f, err := os.Create(con.LogFile)
			if err != nil {
				log.Fatal(err.Error())
			}
			defer f.Close()
			log.SetOutput(f)
		}

		convertMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Convert":
			fmt.Println(ExampleConvertFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Convert'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gosph_cmd only "+
				"accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// convertMain reads a particle table, reconstructs the selected implicit
// field on a cubic grid, and writes the sampled grid as text.
func convertMain(con *ConvertConfig) {
	pts, err := readPoints(con)
	if err != nil {
		log.Fatal(err.Error())
	}
	if len(pts) == 0 {
		log.Fatal("Input file contains no particles.")
	}
	log.Printf("Read %d particles from %s", len(pts), con.Input)

	box := geom.NewBox(
		geom.Vec{con.MinX, con.MinY, con.MinZ},
		geom.Vec{con.MaxX, con.MaxY, con.MaxZ},
	)
	n := con.Resolution
	out := field.NewCellCenteredScalarGrid(n, n, n, box)

	h := con.KernelRadius
	if h <= 0 {
		// Fall back to twice the grid cell diagonal, a usable support
		// radius when the particles roughly fill the grid.
		cs := out.CellSize()
		h = 2 * math.Sqrt(cs[0]*cs[0]+cs[1]*cs[1]+cs[2]*cs[2])
		log.Printf("KernelRadius not set, using %g", h)
	}

	conv := makeConverter(con, h)
	conv.Convert(pts, out)

	if err := writeGrid(con.Output, out); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %d^3 grid to %s", n, con.Output)
}

func makeConverter(con *ConvertConfig, h float64) field.PointsToImplicit {
	switch con.Method {
	case "Sph":
		return field.NewSphPointsToImplicit(h, con.CutOffDensity, false)
	case "Spherical":
		r := con.Radius
		if r <= 0 {
			r = h / 4
			log.Printf("Radius not set, using %g", r)
		}
		return field.NewSphericalPointsToImplicit(r, false)
	case "ZhuBridson":
		return field.NewZhuBridsonPointsToImplicit(
			h, con.CutOffThreshold, false,
		)
	}
	panic("Impossible")
}

func readPoints(con *ConvertConfig) ([]geom.Vec, error) {
	colIdxs := []int{con.XColumn, con.YColumn, con.ZColumn}
	cols, err := table.ReadTable(con.Input, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	xs, ys, zs := cols[0], cols[1], cols[2]
	pts := make([]geom.Vec, len(xs))
	for i := range pts {
		pts[i] = geom.Vec{xs[i], ys[i], zs[i]}
	}
	return pts, nil
}

// writeGrid writes one sample per line in x-fastest order, preceded by a
// header comment recording the resolution and bounds.
func writeGrid(fname string, g *field.CellCenteredScalarGrid) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	nx, ny, nz := g.Resolution()
	box := g.BoundingBox()
	fmt.Fprintf(w, "# resolution: %d %d %d\n", nx, ny, nz)
	fmt.Fprintf(
		w, "# bounds: %g %g %g %g %g %g\n",
		box.Min[0], box.Min[1], box.Min[2],
		box.Max[0], box.Max[1], box.Max[2],
	)

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if _, err := fmt.Fprintf(w, "%g\n", g.At(i, j, k)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
