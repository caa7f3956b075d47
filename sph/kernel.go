/*package sph implements smoothed-particle-hydrodynamics state and kernel
math on top of the particle package.

Two kernel families are provided on purpose. The standard kernel is smooth
at the origin and integrates field quantities well, which is what density
estimation wants. The spiky kernel keeps a non-vanishing gradient near zero
distance, so pressure forces still push overlapping particles apart; using
the standard kernel there lets particles clump.

All kernels integrate to one over their support in their dimension.
*/
package sph

import (
	"math"

	"github.com/gosph/gosph/geom"
)

// StdKernel is the 3D standard (poly6) smoothing kernel with support
// radius h.
type StdKernel struct {
	h, h2, h3, h5 float64
}

// NewStdKernel returns a standard kernel with the given smoothing radius.
// Powers of h are cached at construction.
func NewStdKernel(h float64) StdKernel {
	h2 := h * h
	return StdKernel{h: h, h2: h2, h3: h2 * h, h5: h2 * h2 * h}
}

// Value returns the kernel weight at the given distance. It is zero at and
// beyond the support radius.
func (k StdKernel) Value(d float64) float64 {
	if d*d >= k.h2 {
		return 0
	}
	x := 1 - d*d/k.h2
	return 315.0 / (64.0 * math.Pi * k.h3) * x * x * x
}

// FirstDerivative returns dW/dd at the given distance.
func (k StdKernel) FirstDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d*d/k.h2
	return -945.0 / (32.0 * math.Pi * k.h5) * d * x * x
}

// SecondDerivative returns d2W/dd2 at the given distance.
func (k StdKernel) SecondDerivative(d float64) float64 {
	if d*d >= k.h2 {
		return 0
	}
	x := d * d / k.h2
	return 945.0 / (32.0 * math.Pi * k.h5) * (1 - x) * (5*x - 1)
}

// Gradient returns the kernel gradient given a distance and the unit
// direction from the kernel center to the sample point. The zero vector is
// returned for a zero direction (coincident points).
func (k StdKernel) Gradient(d float64, dir geom.Vec) geom.Vec {
	return dir.Scale(-k.FirstDerivative(d))
}

// GradientAt returns the kernel gradient at the offset p from the kernel
// center.
func (k StdKernel) GradientAt(p geom.Vec) geom.Vec {
	return k.Gradient(p.Len(), p.Normalize())
}

// SpikyKernel is the 3D spiky smoothing kernel with support radius h.
type SpikyKernel struct {
	h, h3, h4, h5 float64
}

// NewSpikyKernel returns a spiky kernel with the given smoothing radius.
func NewSpikyKernel(h float64) SpikyKernel {
	h2 := h * h
	return SpikyKernel{h: h, h3: h2 * h, h4: h2 * h2, h5: h2 * h2 * h}
}

// Value returns the kernel weight at the given distance.
func (k SpikyKernel) Value(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return 15.0 / (math.Pi * k.h3) * x * x * x
}

// FirstDerivative returns dW/dd at the given distance.
func (k SpikyKernel) FirstDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return -45.0 / (math.Pi * k.h4) * x * x
}

// SecondDerivative returns d2W/dd2 at the given distance.
func (k SpikyKernel) SecondDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return 90.0 / (math.Pi * k.h5) * x
}

// Gradient returns the kernel gradient given a distance and the unit
// direction from the kernel center to the sample point.
func (k SpikyKernel) Gradient(d float64, dir geom.Vec) geom.Vec {
	return dir.Scale(-k.FirstDerivative(d))
}

// GradientAt returns the kernel gradient at the offset p from the kernel
// center.
func (k SpikyKernel) GradientAt(p geom.Vec) geom.Vec {
	return k.Gradient(p.Len(), p.Normalize())
}
