package geom

import (
	"math"
)

// Ray is a half-infinite line with an origin and a unit direction.
type Ray struct {
	Origin, Dir Vec
}

// Ray2 is the two dimensional analogue of Ray.
type Ray2 struct {
	Origin, Dir Vec2
}

// PointAt returns Origin + t*Dir.
func (r *Ray) PointAt(t float64) Vec {
	return r.Origin.Add(r.Dir.Scale(t))
}

// PointAt returns Origin + t*Dir.
func (r *Ray2) PointAt(t float64) Vec2 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Intersects is the slab test: it returns the parametric entry and exit
// distances of the ray through the box and whether the ray hits it at all.
// Rays starting inside the box hit it with tMin = 0.
func (b *Box) Intersects(r *Ray) (tMin, tMax float64, ok bool) {
	tMin, tMax = 0, math.MaxFloat64
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			// Parallel to the slab: the slab constrains nothing if the
			// origin lies within it, boundary included. Resolving this
			// here keeps 0 * Inf out of the t computations below.
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, 0, false
			}
			continue
		}
		invD := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * invD
		t2 := (b.Max[i] - r.Origin[i]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// Intersects is the 2D slab test.
func (b *Box2) Intersects(r *Ray2) (tMin, tMax float64, ok bool) {
	tMin, tMax = 0, math.MaxFloat64
	for i := 0; i < 2; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, 0, false
			}
			continue
		}
		invD := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * invD
		t2 := (b.Max[i] - r.Origin[i]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
