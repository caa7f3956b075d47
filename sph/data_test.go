package sph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosph/gosph/geom"
)

func TestRadiusSpacingInvariant(t *testing.T) {
	d := NewSystemData(0)

	d.SetTargetSpacing(0.05)
	assert.InDelta(t, 0.05*d.RelativeKernelRadius(), d.KernelRadius(), 1e-12)
	assert.Equal(t, 0.05, d.Radius())

	d.SetRelativeKernelRadius(2.5)
	assert.InDelta(t, 0.05*2.5, d.KernelRadius(), 1e-12)

	d.SetKernelRadius(1.0)
	assert.InDelta(t, 1.0/2.5, d.TargetSpacing(), 1e-12)
	assert.InDelta(t, 1.0, d.KernelRadius(), 1e-12)
}

func TestMassRecalibration(t *testing.T) {
	d := NewSystemData(0)
	m0 := d.Mass()

	d.SetTargetDensity(2000)
	assert.InDelta(t, 2*m0, d.Mass(), 1e-12*m0)

	d.SetTargetDensity(WaterDensity)
	assert.InDelta(t, m0, d.Mass(), 1e-12*m0)
}

func TestSingleParticleDensity(t *testing.T) {
	d := NewSystemData(0)
	d.SetTargetDensity(1000)
	d.SetTargetSpacing(0.1)
	d.AddParticles([]geom.Vec{{0, 0, 0}}, nil, nil)

	d.BuildNeighborSearcher()
	d.UpdateDensities()

	rho := d.Densities()[0]
	if rho <= 0 || math.IsInf(rho, 0) || math.IsNaN(rho) {
		t.Errorf("single particle density is %g", rho)
	}
}

func TestMassCalibrationRoundTrip(t *testing.T) {
	table := []struct {
		rho, spacing float64
	}{
		{1000, 0.1},
		{500, 0.05},
		{1273, 0.2},
	}

	for _, test := range table {
		d := NewSystemData(0)
		d.SetTargetDensity(test.rho)
		d.SetTargetSpacing(test.spacing)

		// A lattice patch large enough that the particle nearest its center
		// has a fully populated kernel support.
		ext := 3 * d.KernelRadius()
		box := geom.NewBox(
			geom.Vec{-ext, -ext, -ext}, geom.Vec{ext, ext, ext},
		)
		d.AddParticles(BccLatticePoints(box, test.spacing), nil, nil)

		d.BuildNeighborSearcher()
		d.UpdateDensities()

		center, centerDist := -1, math.MaxFloat64
		for i, p := range d.Positions() {
			if dist := p.Len(); dist < centerDist {
				center, centerDist = i, dist
			}
		}

		rho := d.Densities()[center]
		relErr := math.Abs(rho-test.rho) / test.rho
		if relErr > 0.05 {
			t.Errorf("rho = %g, spacing = %g: lattice density %g is %.1f%% "+
				"off target", test.rho, test.spacing, rho, 100*relErr)
		}
	}
}

func TestInterpolateConstantField(t *testing.T) {
	d := NewSystemData(0)
	d.SetTargetSpacing(0.1)

	ext := 3 * d.KernelRadius()
	box := geom.NewBox(geom.Vec{-ext, -ext, -ext}, geom.Vec{ext, ext, ext})
	d.AddParticles(BccLatticePoints(box, 0.1), nil, nil)

	d.BuildNeighborSearcher()
	d.UpdateDensities()

	ones := make([]float64, d.Size())
	for i := range ones {
		ones[i] = 1
	}

	// Interpolating the constant 1 field at an interior point should give
	// roughly 1: this is the occupancy measure the surface converters use.
	got := d.Interpolate(geom.Vec{0.01, 0.02, 0.0}, ones)
	assert.InDelta(t, 1.0, got, 0.05)

	// Far outside the particle cloud there is nothing to interpolate.
	assert.Equal(t, 0.0, d.Interpolate(geom.Vec{10, 10, 10}, ones))
}

func TestGradientOfLinearField(t *testing.T) {
	d := NewSystemData(0)
	d.SetTargetSpacing(0.1)

	ext := 3 * d.KernelRadius()
	box := geom.NewBox(geom.Vec{-ext, -ext, -ext}, geom.Vec{ext, ext, ext})
	d.AddParticles(BccLatticePoints(box, 0.1), nil, nil)

	d.BuildNeighborSearcher()
	d.BuildNeighborLists()
	d.UpdateDensities()

	// f(x) = x along the first axis.
	values := make([]float64, d.Size())
	for i, p := range d.Positions() {
		values[i] = p[0]
	}

	center, centerDist := -1, math.MaxFloat64
	for i, p := range d.Positions() {
		if dist := p.Len(); dist < centerDist {
			center, centerDist = i, dist
		}
	}

	grad := d.GradientAt(center, values)
	// The symmetrized estimator is not exact for linear fields, but the
	// gradient must point along +x and dominate the transverse components.
	if grad[0] <= 0 {
		t.Errorf("gradient of increasing field is %v", grad)
	}
	if math.Abs(grad[1]) > 0.2*grad[0] || math.Abs(grad[2]) > 0.2*grad[0] {
		t.Errorf("gradient %v is not aligned with the field axis", grad)
	}

	// A constant field has zero gradient by pair antisymmetry of the
	// kernel gradient.
	for i := range values {
		values[i] = 7
	}
	grad = d.GradientAt(center, values)
	if grad.Len() > 1e-3 {
		t.Errorf("gradient of constant field is %v", grad)
	}
}

func TestLaplacianOfConstantField(t *testing.T) {
	d := NewSystemData(0)
	d.SetTargetSpacing(0.1)

	ext := 2 * d.KernelRadius()
	box := geom.NewBox(geom.Vec{-ext, -ext, -ext}, geom.Vec{ext, ext, ext})
	d.AddParticles(BccLatticePoints(box, 0.1), nil, nil)

	d.BuildNeighborSearcher()
	d.BuildNeighborLists()
	d.UpdateDensities()

	values := make([]float64, d.Size())
	for i := range values {
		values[i] = 3
	}

	for i := 0; i < d.Size(); i += 50 {
		if lap := d.LaplacianAt(i, values); lap != 0 {
			t.Errorf("Laplacian of constant field at %d is %g", i, lap)
		}
	}
}

func TestCloneDoesNotShareNeighborState(t *testing.T) {
	d := NewSystemData(0)
	d.SetTargetSpacing(0.1)
	d.AddParticles([]geom.Vec{{0, 0, 0}, {0.05, 0, 0}}, nil, nil)
	d.BuildNeighborSearcher()
	d.BuildNeighborLists()

	c := d.Clone()
	assert.Equal(t, d.TargetDensity(), c.TargetDensity())
	assert.Equal(t, d.KernelRadius(), c.KernelRadius())
	assert.Equal(t, d.Mass(), c.Mass())
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, 0, len(c.NeighborLists()))
}

func TestBccLatticeSpacing(t *testing.T) {
	s := 0.1
	box := geom.NewBox(geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1})
	pts := BccLatticePoints(box, s)

	if len(pts) == 0 {
		t.Fatalf("empty lattice")
	}

	// Nearest-neighbor distance in a BCC lattice with edge s is s*sqrt(3)/2.
	want := s * math.Sqrt(3) / 2
	minDist := math.MaxFloat64
	for i := 0; i < 200 && i < len(pts); i++ {
		for j := range pts {
			if i == j {
				continue
			}
			if dist := pts[i].Dist(pts[j]); dist < minDist {
				minDist = dist
			}
		}
	}
	assert.InDelta(t, want, minDist, 1e-10)

	for _, p := range pts {
		if !box.Contains(p) {
			t.Errorf("lattice point %v outside the box", p)
		}
	}
}

func BenchmarkUpdateDensities(b *testing.B) {
	d := NewSystemData(0)
	ext := 3 * d.KernelRadius()
	box := geom.NewBox(geom.Vec{-ext, -ext, -ext}, geom.Vec{ext, ext, ext})
	d.AddParticles(BccLatticePoints(box, d.TargetSpacing()), nil, nil)
	d.BuildNeighborSearcher()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.UpdateDensities()
	}
}
