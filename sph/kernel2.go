package sph

import (
	"math"

	"github.com/gosph/gosph/geom"
)

// StdKernel2 is the 2D standard smoothing kernel with support radius h.
// The normalization differs from the 3D kernel: it integrates to one over
// the disk rather than the ball.
type StdKernel2 struct {
	h, h2, h4, h6 float64
}

// NewStdKernel2 returns a 2D standard kernel with the given smoothing
// radius.
func NewStdKernel2(h float64) StdKernel2 {
	h2 := h * h
	return StdKernel2{h: h, h2: h2, h4: h2 * h2, h6: h2 * h2 * h2}
}

// Value returns the kernel weight at the given distance.
func (k StdKernel2) Value(d float64) float64 {
	if d*d >= k.h2 {
		return 0
	}
	x := 1 - d*d/k.h2
	return 4.0 / (math.Pi * k.h2) * x * x * x
}

// FirstDerivative returns dW/dd at the given distance.
func (k StdKernel2) FirstDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d*d/k.h2
	return -24.0 / (math.Pi * k.h4) * d * x * x
}

// SecondDerivative returns d2W/dd2 at the given distance.
func (k StdKernel2) SecondDerivative(d float64) float64 {
	if d*d >= k.h2 {
		return 0
	}
	x := d * d / k.h2
	return 24.0 / (math.Pi * k.h4) * (1 - x) * (5*x - 1)
}

// Gradient returns the kernel gradient given a distance and the unit
// direction from the kernel center to the sample point.
func (k StdKernel2) Gradient(d float64, dir geom.Vec2) geom.Vec2 {
	return dir.Scale(-k.FirstDerivative(d))
}

// GradientAt returns the kernel gradient at the offset p from the kernel
// center.
func (k StdKernel2) GradientAt(p geom.Vec2) geom.Vec2 {
	return k.Gradient(p.Len(), p.Normalize())
}

// SpikyKernel2 is the 2D spiky smoothing kernel with support radius h.
type SpikyKernel2 struct {
	h, h2, h3, h4 float64
}

// NewSpikyKernel2 returns a 2D spiky kernel with the given smoothing
// radius.
func NewSpikyKernel2(h float64) SpikyKernel2 {
	h2 := h * h
	return SpikyKernel2{h: h, h2: h2, h3: h2 * h, h4: h2 * h2}
}

// Value returns the kernel weight at the given distance.
func (k SpikyKernel2) Value(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return 10.0 / (math.Pi * k.h2) * x * x * x
}

// FirstDerivative returns dW/dd at the given distance.
func (k SpikyKernel2) FirstDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return -30.0 / (math.Pi * k.h3) * x * x
}

// SecondDerivative returns d2W/dd2 at the given distance.
func (k SpikyKernel2) SecondDerivative(d float64) float64 {
	if d >= k.h {
		return 0
	}
	x := 1 - d/k.h
	return 60.0 / (math.Pi * k.h4) * x
}

// Gradient returns the kernel gradient given a distance and the unit
// direction from the kernel center to the sample point.
func (k SpikyKernel2) Gradient(d float64, dir geom.Vec2) geom.Vec2 {
	return dir.Scale(-k.FirstDerivative(d))
}

// GradientAt returns the kernel gradient at the offset p from the kernel
// center.
func (k SpikyKernel2) GradientAt(p geom.Vec2) geom.Vec2 {
	return k.Gradient(p.Len(), p.Normalize())
}
