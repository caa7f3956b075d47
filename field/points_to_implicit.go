package field

import (
	"log"

	"github.com/gosph/gosph/geom"
)

// PointsToImplicit converts a raw point cloud into an implicit scalar
// field written into output. Implementations never take ownership of the
// grid and hold no state between calls, so distinct calls on distinct
// grids may run concurrently.
type PointsToImplicit interface {
	Convert(points []geom.Vec, output ScalarGrid)
}

// LevelSetSolver reinitializes a raw implicit field into a true signed
// distance field. The converters only need this one capability; a full
// level-set toolkit lives with the grid solvers, outside this package.
type LevelSetSolver interface {
	Reinitialize(input ScalarGrid, maxDistance float64, output ScalarGrid)
}

// validGrid checks the converter preconditions shared by every variant.
// Violations are recoverable pipeline mistakes, not bugs: log and have the
// caller return without touching the output.
func validGrid(output ScalarGrid) bool {
	if output == nil {
		log.Println("field: nil output grid, skipping conversion")
		return false
	}
	nx, ny, nz := output.Resolution()
	if nx == 0 || ny == 0 || nz == 0 {
		log.Printf("field: empty grid resolution (%d, %d, %d), "+
			"skipping conversion", nx, ny, nz)
		return false
	}
	b := output.BoundingBox()
	if b.IsEmpty() {
		log.Printf("field: empty grid bounding box %v, skipping conversion",
			b)
		return false
	}
	return true
}

// fillAndSwap samples f into a scratch copy of output and swaps the result
// in, so the output never holds a partially written field.
func fillAndSwap(output ScalarGrid, f func(geom.Vec) float64) {
	raw := output.Clone()
	raw.Fill(f)
	output.CopyFrom(raw)
}

// reinitializeIfRequested runs the optional SDF pass. With no solver
// wired, the raw field is returned as-is.
// TODO: wire a fast-marching solver here once the grid solver package
// grows one.
func reinitializeIfRequested(
	outputSdf bool, solver LevelSetSolver, maxDistance float64,
	output ScalarGrid,
) {
	if !outputSdf || solver == nil {
		return
	}
	raw := output.Clone()
	solver.Reinitialize(raw, maxDistance, output)
}
