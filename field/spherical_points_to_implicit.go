package field

import (
	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/neighbor"
)

// SphericalPointsToImplicit treats every point as a sphere and writes the
// distance to the union of spheres, clamped at twice the sphere radius.
// It is the cheapest converter: no kernel math, just a nearest-point
// query per cell.
type SphericalPointsToImplicit struct {
	// Radius is the sphere radius placed on every point.
	Radius float64
	// IsOutputSdf requests reinitialization into a signed distance field.
	IsOutputSdf bool
	// Solver is the optional level-set collaborator.
	Solver LevelSetSolver
}

// NewSphericalPointsToImplicit returns a converter with the given sphere
// radius.
func NewSphericalPointsToImplicit(
	radius float64, isOutputSdf bool,
) *SphericalPointsToImplicit {
	return &SphericalPointsToImplicit{Radius: radius, IsOutputSdf: isOutputSdf}
}

// Convert fills output with min(distance to any point within 2r) - r.
// Cells with no point within 2r get the clamp value 2r - r = r.
func (c *SphericalPointsToImplicit) Convert(
	points []geom.Vec, output ScalarGrid,
) {
	if !validGrid(output) {
		return
	}

	searcher := neighbor.NewBVHSearcher3()
	searcher.Build(points)

	searchRadius := 2 * c.Radius
	fillAndSwap(output, func(x geom.Vec) float64 {
		minDist := searchRadius
		searcher.ForEachNearbyPoint(
			x, searchRadius,
			func(_ int, p geom.Vec) {
				if dist := x.Dist(p); dist < minDist {
					minDist = dist
				}
			},
		)
		return minDist - c.Radius
	})

	reinitializeIfRequested(c.IsOutputSdf, c.Solver, searchRadius, output)
}
