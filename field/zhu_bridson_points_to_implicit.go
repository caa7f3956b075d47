package field

import (
	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/neighbor"
)

// ZhuBridsonPointsToImplicit implements the blended-sphere surface of Zhu
// and Bridson: each cell measures its distance to the kernel-weighted
// average of the nearby point positions, which smooths the lumpy
// union-of-spheres look without a full SPH pass.
type ZhuBridsonPointsToImplicit struct {
	// KernelRadius is the support radius of the blending weight.
	KernelRadius float64
	// CutOffThreshold scales the kernel radius into the iso offset: the
	// surface sits CutOffThreshold * KernelRadius away from the averaged
	// position.
	CutOffThreshold float64
	// IsOutputSdf requests reinitialization into a signed distance field.
	IsOutputSdf bool
	// Solver is the optional level-set collaborator.
	Solver LevelSetSolver
}

// NewZhuBridsonPointsToImplicit returns a converter with the given kernel
// radius and cut-off threshold.
func NewZhuBridsonPointsToImplicit(
	kernelRadius, cutOffThreshold float64, isOutputSdf bool,
) *ZhuBridsonPointsToImplicit {
	return &ZhuBridsonPointsToImplicit{
		KernelRadius:    kernelRadius,
		CutOffThreshold: cutOffThreshold,
		IsOutputSdf:     isOutputSdf,
	}
}

// blendWeight is the Zhu-Bridson kernel k(s) = (1 - s^2)^3, zero at and
// beyond s = 1.
func blendWeight(s float64) float64 {
	x := 1 - s*s
	if x <= 0 {
		return 0
	}
	return x * x * x
}

// Convert fills output with |x - xAvg| - CutOffThreshold*KernelRadius,
// where xAvg is the weight-averaged position of the points within kernel
// radius. Cells with no points in range get the far value KernelRadius.
func (c *ZhuBridsonPointsToImplicit) Convert(
	points []geom.Vec, output ScalarGrid,
) {
	if !validGrid(output) {
		return
	}

	searcher := neighbor.NewBVHSearcher3()
	searcher.Build(points)

	fillAndSwap(output, func(x geom.Vec) float64 {
		wSum := 0.0
		xAvg := geom.Vec{}
		searcher.ForEachNearbyPoint(
			x, c.KernelRadius,
			func(_ int, p geom.Vec) {
				w := blendWeight(x.Dist(p) / c.KernelRadius)
				wSum += w
				xAvg = xAvg.Add(p.Scale(w))
			},
		)

		if wSum == 0 {
			return c.KernelRadius
		}
		xAvg = xAvg.Scale(1 / wSum)
		return x.Dist(xAvg) - c.CutOffThreshold*c.KernelRadius
	})

	reinitializeIfRequested(c.IsOutputSdf, c.Solver, c.KernelRadius, output)
}
