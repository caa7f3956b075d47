package field

import (
	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/sph"
)

// SphPointsToImplicit builds a density field from the points with a full
// SPH pass and shifts it by a cut-off so the zero crossing approximates
// the free surface.
type SphPointsToImplicit struct {
	// KernelRadius is the SPH smoothing radius used for the transient
	// particle system.
	KernelRadius float64
	// CutOffDensity is subtracted from the interpolated occupancy, placing
	// the implicit surface where the occupancy equals it.
	CutOffDensity float64
	// IsOutputSdf requests reinitialization into a signed distance field.
	// Without a solver the raw shifted density field is returned.
	IsOutputSdf bool
	// Solver is the optional level-set collaborator used when IsOutputSdf
	// is set.
	Solver LevelSetSolver
}

// NewSphPointsToImplicit returns a converter with the given kernel radius
// and cut-off density.
func NewSphPointsToImplicit(
	kernelRadius, cutOffDensity float64, isOutputSdf bool,
) *SphPointsToImplicit {
	return &SphPointsToImplicit{
		KernelRadius:  kernelRadius,
		CutOffDensity: cutOffDensity,
		IsOutputSdf:   isOutputSdf,
	}
}

// Convert fills output with cutOffDensity minus the SPH interpolation of
// the constant 1 field, a density-normalized occupancy measure. Negative
// values are inside the fluid.
func (c *SphPointsToImplicit) Convert(
	points []geom.Vec, output ScalarGrid,
) {
	if !validGrid(output) {
		return
	}

	data := sph.NewSystemData(0)
	data.AddParticles(points, nil, nil)
	data.SetKernelRadius(c.KernelRadius)
	data.BuildNeighborSearcher()
	data.UpdateDensities()

	ones := make([]float64, data.Size())
	for i := range ones {
		ones[i] = 1
	}

	fillAndSwap(output, func(x geom.Vec) float64 {
		return c.CutOffDensity - data.Interpolate(x, ones)
	})

	reinitializeIfRequested(c.IsOutputSdf, c.Solver, c.KernelRadius, output)
}
