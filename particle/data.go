/*package particle holds the per-particle state of a simulation instant.

A SystemData is a struct-of-arrays: positions, velocities, and forces live
in attached vector arrays, and callers can register additional scalar or
vector arrays that are resized in lock-step with the particle count.

The neighbor searcher and the cached neighbor lists go stale the moment any
position changes. Nothing here detects that; callers must rebuild before
the next query. This is a documented precondition, not a runtime check.
*/
package particle

import (
	"fmt"

	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/neighbor"
	"github.com/gosph/gosph/parallel"
)

const (
	defaultRadius = 1e-3
	defaultMass   = 1e-3
)

// SystemData owns the particle arrays of a homogeneous particle set.
type SystemData struct {
	n      int
	radius float64
	mass   float64

	scalars [][]float64
	vectors [][]geom.Vec

	positionIdx, velocityIdx, forceIdx int

	searcher      neighbor.Searcher3
	neighborLists [][]int
}

// NewSystemData returns a system with n zero-initialized particles. The
// neighbor searcher defaults to the BVH-backed one; swap it with
// SetNeighborSearcher before the first build if another index fits better.
func NewSystemData(n int) *SystemData {
	d := &SystemData{
		radius:   defaultRadius,
		mass:     defaultMass,
		searcher: neighbor.NewBVHSearcher3(),
	}
	d.positionIdx = d.AddVectorData(geom.Vec{})
	d.velocityIdx = d.AddVectorData(geom.Vec{})
	d.forceIdx = d.AddVectorData(geom.Vec{})
	d.Resize(n)
	return d
}

// Size returns the particle count.
func (d *SystemData) Size() int {
	return d.n
}

// Resize sets the particle count. Every attached array is resized with it;
// new slots are zero filled.
func (d *SystemData) Resize(n int) {
	d.n = n
	for i := range d.scalars {
		d.scalars[i] = resizeScalars(d.scalars[i], n)
	}
	for i := range d.vectors {
		d.vectors[i] = resizeVectors(d.vectors[i], n)
	}
}

func resizeScalars(s []float64, n int) []float64 {
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		for i := old; i < n; i++ {
			s[i] = 0
		}
		return s
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}

func resizeVectors(s []geom.Vec, n int) []geom.Vec {
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		for i := old; i < n; i++ {
			s[i] = geom.Vec{}
		}
		return s
	}
	out := make([]geom.Vec, n)
	copy(out, s)
	return out
}

// Radius returns the representative particle radius.
func (d *SystemData) Radius() float64 {
	return d.radius
}

// SetRadius sets the representative particle radius, which must be
// positive.
func (d *SystemData) SetRadius(r float64) {
	if r <= 0 {
		panic(fmt.Sprintf("particle: radius must be positive, got %g", r))
	}
	d.radius = r
}

// Mass returns the per-particle mass.
func (d *SystemData) Mass() float64 {
	return d.mass
}

// SetMass sets the per-particle mass, which must be positive.
func (d *SystemData) SetMass(m float64) {
	if m <= 0 {
		panic(fmt.Sprintf("particle: mass must be positive, got %g", m))
	}
	d.mass = m
}

// AddScalarData registers a new per-particle scalar array filled with
// initial and returns its index handle.
func (d *SystemData) AddScalarData(initial float64) int {
	s := make([]float64, d.n)
	for i := range s {
		s[i] = initial
	}
	d.scalars = append(d.scalars, s)
	return len(d.scalars) - 1
}

// AddVectorData registers a new per-particle vector array filled with
// initial and returns its index handle.
func (d *SystemData) AddVectorData(initial geom.Vec) int {
	v := make([]geom.Vec, d.n)
	for i := range v {
		v[i] = initial
	}
	d.vectors = append(d.vectors, v)
	return len(d.vectors) - 1
}

// ScalarData returns the scalar array registered under idx. The slice
// aliases internal storage: writes are visible to the system, but the
// header is only valid until the next Resize or AddParticles.
func (d *SystemData) ScalarData(idx int) []float64 {
	return d.scalars[idx]
}

// VectorData returns the vector array registered under idx. Same aliasing
// rules as ScalarData.
func (d *SystemData) VectorData(idx int) []geom.Vec {
	return d.vectors[idx]
}

// Positions returns the position array.
func (d *SystemData) Positions() []geom.Vec {
	return d.vectors[d.positionIdx]
}

// Velocities returns the velocity array.
func (d *SystemData) Velocities() []geom.Vec {
	return d.vectors[d.velocityIdx]
}

// Forces returns the force array.
func (d *SystemData) Forces() []geom.Vec {
	return d.vectors[d.forceIdx]
}

// AddParticle appends one particle.
func (d *SystemData) AddParticle(pos, vel, force geom.Vec) {
	d.AddParticles([]geom.Vec{pos}, []geom.Vec{vel}, []geom.Vec{force})
}

// AddParticles appends a batch of particles. velocities and forces may be
// nil, in which case they default to zero; if given, their lengths must
// match positions. A non-matching non-nil slice is a caller bug.
func (d *SystemData) AddParticles(positions, velocities, forces []geom.Vec) {
	if velocities != nil && len(velocities) != len(positions) {
		panic(fmt.Sprintf("particle: %d positions but %d velocities",
			len(positions), len(velocities)))
	}
	if forces != nil && len(forces) != len(positions) {
		panic(fmt.Sprintf("particle: %d positions but %d forces",
			len(positions), len(forces)))
	}

	old := d.n
	d.Resize(old + len(positions))

	copy(d.Positions()[old:], positions)
	if velocities != nil {
		copy(d.Velocities()[old:], velocities)
	}
	if forces != nil {
		copy(d.Forces()[old:], forces)
	}
}

// NeighborSearcher returns the owned searcher. It reflects the positions as
// of the last BuildNeighborSearcher call.
func (d *SystemData) NeighborSearcher() neighbor.Searcher3 {
	return d.searcher
}

// SetNeighborSearcher replaces the searcher implementation. The new
// searcher is used as-is; call BuildNeighborSearcher to index the current
// positions.
func (d *SystemData) SetNeighborSearcher(s neighbor.Searcher3) {
	d.searcher = s
}

// BuildNeighborSearcher indexes the current positions. maxSearchRadius is a
// sizing hint for grid-backed searchers; the BVH ignores it.
func (d *SystemData) BuildNeighborSearcher(maxSearchRadius float64) {
	_ = maxSearchRadius
	d.searcher.Build(d.Positions())
}

// NeighborLists returns the cached per-particle neighbor index lists from
// the last BuildNeighborLists call. A particle is not its own neighbor in
// these lists.
func (d *SystemData) NeighborLists() [][]int {
	return d.neighborLists
}

// BuildNeighborLists caches, for every particle, the indices of the other
// particles within maxSearchRadius. BuildNeighborSearcher must have been
// called since the last position change.
func (d *SystemData) BuildNeighborLists(maxSearchRadius float64) {
	points := d.Positions()
	if cap(d.neighborLists) < d.n {
		d.neighborLists = make([][]int, d.n)
	}
	d.neighborLists = d.neighborLists[:d.n]

	parallel.For(d.n, func(i int) {
		list := d.neighborLists[i][:0]
		d.searcher.ForEachNearbyPoint(
			points[i], maxSearchRadius,
			func(j int, _ geom.Vec) {
				if j != i {
					list = append(list, j)
				}
			},
		)
		d.neighborLists[i] = list
	})
}

// Set copies other's particle arrays and configuration into d. The
// neighbor searcher is cloned so a swapped-in strategy survives the copy,
// but the cached neighbor lists are deliberately not: the copy must call
// BuildNeighborLists itself, which avoids sharing a possibly stale index
// between independent particle sets.
func (d *SystemData) Set(other *SystemData) {
	d.n = other.n
	d.radius = other.radius
	d.mass = other.mass
	d.positionIdx = other.positionIdx
	d.velocityIdx = other.velocityIdx
	d.forceIdx = other.forceIdx

	d.scalars = make([][]float64, len(other.scalars))
	for i := range other.scalars {
		d.scalars[i] = append([]float64{}, other.scalars[i]...)
	}
	d.vectors = make([][]geom.Vec, len(other.vectors))
	for i := range other.vectors {
		d.vectors[i] = append([]geom.Vec{}, other.vectors[i]...)
	}

	d.searcher = other.searcher.Clone()
	d.neighborLists = nil
}

// Clone returns a deep copy of d without the cached neighbor lists.
func (d *SystemData) Clone() *SystemData {
	out := &SystemData{}
	out.Set(d)
	return out
}
