package sph

import (
	"fmt"

	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/parallel"
	"github.com/gosph/gosph/particle"
)

const (
	// WaterDensity is the default target density in kg/m^3.
	WaterDensity = 1000.0

	defaultTargetSpacing        = 0.1
	defaultRelativeKernelRadius = 1.8
)

// SystemData extends particle.SystemData with the per-particle and
// configuration state SPH solvers need: density and pressure arrays,
// a kernel radius tied to the target spacing, and a particle mass
// calibrated so a uniform packing reproduces the target density.
//
// The setter web maintains two invariants: kernelRadius equals
// relativeKernelRadius times targetSpacing, and mass is recalibrated
// whenever target density, spacing, or the radius ratio changes.
type SystemData struct {
	*particle.SystemData

	targetDensity        float64
	targetSpacing        float64
	relativeKernelRadius float64
	kernelRadius         float64

	densityIdx, pressureIdx int
}

// NewSystemData returns an SPH particle system with n zero-initialized
// particles, water density as the target, and the default spacing of 0.1.
func NewSystemData(n int) *SystemData {
	d := &SystemData{
		SystemData:           particle.NewSystemData(n),
		targetDensity:        WaterDensity,
		relativeKernelRadius: defaultRelativeKernelRadius,
	}
	d.densityIdx = d.AddScalarData(0)
	d.pressureIdx = d.AddScalarData(0)
	d.SetTargetSpacing(defaultTargetSpacing)
	return d
}

// Densities returns the per-particle density array.
func (d *SystemData) Densities() []float64 {
	return d.ScalarData(d.densityIdx)
}

// Pressures returns the per-particle pressure array.
func (d *SystemData) Pressures() []float64 {
	return d.ScalarData(d.pressureIdx)
}

// TargetDensity returns the bulk density the system is calibrated to.
func (d *SystemData) TargetDensity() float64 {
	return d.targetDensity
}

// SetTargetDensity sets the bulk density and recalibrates the particle
// mass.
func (d *SystemData) SetTargetDensity(rho float64) {
	if rho <= 0 {
		panic(fmt.Sprintf("sph: target density must be positive, got %g",
			rho))
	}
	d.targetDensity = rho
	d.computeMass()
}

// TargetSpacing returns the intended inter-particle distance.
func (d *SystemData) TargetSpacing() float64 {
	return d.targetSpacing
}

// SetTargetSpacing sets the intended inter-particle distance. The particle
// radius follows the spacing, the kernel radius keeps its fixed ratio to
// it, and the mass is recalibrated.
func (d *SystemData) SetTargetSpacing(s float64) {
	d.SetRadius(s)
	d.targetSpacing = s
	d.kernelRadius = d.relativeKernelRadius * s
	d.computeMass()
}

// RelativeKernelRadius returns the fixed ratio between kernel radius and
// target spacing.
func (d *SystemData) RelativeKernelRadius() float64 {
	return d.relativeKernelRadius
}

// SetRelativeKernelRadius sets the kernel-radius-to-spacing ratio and
// recalibrates.
func (d *SystemData) SetRelativeKernelRadius(r float64) {
	if r <= 0 {
		panic(fmt.Sprintf(
			"sph: relative kernel radius must be positive, got %g", r))
	}
	d.relativeKernelRadius = r
	d.kernelRadius = r * d.targetSpacing
	d.computeMass()
}

// KernelRadius returns the smoothing kernel support radius.
func (d *SystemData) KernelRadius() float64 {
	return d.kernelRadius
}

// SetKernelRadius sets the kernel radius directly; the target spacing is
// recomputed from the fixed ratio and the mass recalibrated.
func (d *SystemData) SetKernelRadius(h float64) {
	if h <= 0 {
		panic(fmt.Sprintf("sph: kernel radius must be positive, got %g", h))
	}
	d.SetTargetSpacing(h / d.relativeKernelRadius)
}

// BuildNeighborSearcher indexes current positions at the kernel radius.
func (d *SystemData) BuildNeighborSearcher() {
	d.SystemData.BuildNeighborSearcher(d.kernelRadius)
}

// BuildNeighborLists caches neighbor indices at the kernel radius.
// BuildNeighborSearcher must have been called since the last position
// change.
func (d *SystemData) BuildNeighborLists() {
	d.SystemData.BuildNeighborLists(d.kernelRadius)
}

// UpdateDensities recomputes every particle's density from the particles
// within kernel radius, itself included. The neighbor searcher must be up
// to date. Each particle writes only its own density slot, so the loop
// parallelizes safely.
func (d *SystemData) UpdateDensities() {
	positions := d.Positions()
	densities := d.Densities()
	mass := d.Mass()

	parallel.For(d.Size(), func(i int) {
		densities[i] = mass * d.SumOfKernelNearby(positions[i])
	})
}

// SumOfKernelNearby returns the summed kernel weight of all particles
// within kernel radius of origin.
func (d *SystemData) SumOfKernelNearby(origin geom.Vec) float64 {
	sum := 0.0
	kernel := NewStdKernel(d.kernelRadius)
	d.NeighborSearcher().ForEachNearbyPoint(
		origin, d.kernelRadius,
		func(_ int, p geom.Vec) {
			sum += kernel.Value(origin.Dist(p))
		},
	)
	return sum
}

// Interpolate reconstructs the continuous field described by the
// per-particle values at an arbitrary point. Densities must be up to date.
func (d *SystemData) Interpolate(origin geom.Vec, values []float64) float64 {
	sum := 0.0
	densities := d.Densities()
	mass := d.Mass()
	kernel := NewStdKernel(d.kernelRadius)

	d.NeighborSearcher().ForEachNearbyPoint(
		origin, d.kernelRadius,
		func(j int, p geom.Vec) {
			weight := mass / densities[j] * kernel.Value(origin.Dist(p))
			sum += weight * values[j]
		},
	)
	return sum
}

// InterpolateVec is Interpolate for per-particle vector values.
func (d *SystemData) InterpolateVec(
	origin geom.Vec, values []geom.Vec,
) geom.Vec {
	sum := geom.Vec{}
	densities := d.Densities()
	mass := d.Mass()
	kernel := NewStdKernel(d.kernelRadius)

	d.NeighborSearcher().ForEachNearbyPoint(
		origin, d.kernelRadius,
		func(j int, p geom.Vec) {
			weight := mass / densities[j] * kernel.Value(origin.Dist(p))
			sum = sum.Add(values[j].Scale(weight))
		},
	)
	return sum
}

// GradientAt estimates the field gradient at particle i using the
// symmetrized SPH form, which conserves the differentiated quantity
// between particle pairs. It iterates the precomputed neighbor list, so
// BuildNeighborLists must have been called.
func (d *SystemData) GradientAt(i int, values []float64) geom.Vec {
	sum := geom.Vec{}
	p := d.Positions()
	rho := d.Densities()
	mass := d.Mass()
	kernel := NewSpikyKernel(d.kernelRadius)

	for _, j := range d.NeighborLists()[i] {
		dist := p[i].Dist(p[j])
		if dist == 0 {
			continue
		}
		dir := p[j].Sub(p[i]).Scale(1 / dist)
		grad := kernel.Gradient(dist, dir)
		w := rho[i] * mass *
			(values[i]/(rho[i]*rho[i]) + values[j]/(rho[j]*rho[j]))
		sum = sum.Add(grad.Scale(w))
	}
	return sum
}

// LaplacianAt estimates the field Laplacian at particle i from its
// precomputed neighbor list.
func (d *SystemData) LaplacianAt(i int, values []float64) float64 {
	sum := 0.0
	p := d.Positions()
	rho := d.Densities()
	mass := d.Mass()
	kernel := NewSpikyKernel(d.kernelRadius)

	for _, j := range d.NeighborLists()[i] {
		dist := p[i].Dist(p[j])
		sum += mass * (values[j] - values[i]) / rho[j] *
			kernel.SecondDerivative(dist)
	}
	return sum
}

// computeMass calibrates the particle mass so a body-centered-cubic
// packing at the target spacing reproduces the target density. The number
// density is measured on a small lattice patch rather than on the live
// particles, so initializing particles on such a lattice hits the target
// density without a warm-up step.
func (d *SystemData) computeMass() {
	box := geom.NewBox(
		geom.Vec{
			-1.5 * d.kernelRadius,
			-1.5 * d.kernelRadius,
			-1.5 * d.kernelRadius,
		},
		geom.Vec{
			1.5 * d.kernelRadius,
			1.5 * d.kernelRadius,
			1.5 * d.kernelRadius,
		},
	)
	points := BccLatticePoints(box, d.targetSpacing)

	kernel := NewStdKernel(d.kernelRadius)
	maxNumberDensity := 0.0
	for i := range points {
		sum := 0.0
		for j := range points {
			sum += kernel.Value(points[i].Dist(points[j]))
		}
		if sum > maxNumberDensity {
			maxNumberDensity = sum
		}
	}

	if maxNumberDensity <= 0 {
		panic(fmt.Sprintf(
			"sph: degenerate kernel configuration: spacing %g, radius %g",
			d.targetSpacing, d.kernelRadius))
	}

	d.SetMass(d.targetDensity / maxNumberDensity)
}

// Set copies other into d. Configuration scalars and particle arrays are
// copied; the neighbor searcher and lists are not (see
// particle.SystemData.Set).
func (d *SystemData) Set(other *SystemData) {
	d.SystemData.Set(other.SystemData)
	d.targetDensity = other.targetDensity
	d.targetSpacing = other.targetSpacing
	d.relativeKernelRadius = other.relativeKernelRadius
	d.kernelRadius = other.kernelRadius
	d.densityIdx = other.densityIdx
	d.pressureIdx = other.pressureIdx
}

// Clone returns a deep copy of d without the cached neighbor lists.
func (d *SystemData) Clone() *SystemData {
	out := &SystemData{SystemData: particle.NewSystemData(0)}
	out.Set(d)
	return out
}

// BccLatticePoints returns the points of a body-centered-cubic lattice
// with the given cube edge length that fall inside the box. Layers
// alternate between corner and center positions every half spacing along
// z.
func BccLatticePoints(box geom.Box, spacing float64) []geom.Vec {
	half := spacing / 2

	points := []geom.Vec{}
	hasOffset := false
	for z := box.Min[2]; z <= box.Max[2]; z += half {
		offset := 0.0
		if hasOffset {
			offset = half
		}
		for y := box.Min[1] + offset; y <= box.Max[1]; y += spacing {
			for x := box.Min[0] + offset; x <= box.Max[0]; x += spacing {
				points = append(points, geom.Vec{x, y, z})
			}
		}
		hasOffset = !hasOffset
	}
	return points
}
