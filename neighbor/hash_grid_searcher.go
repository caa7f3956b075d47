package neighbor

import (
	"math"

	"github.com/gosph/gosph/geom"
)

// HashGridSearcher3 buckets points into a sparse spatial hash with a fixed
// cell width. It is the cheap choice when points are roughly uniformly
// distributed and the query radius is close to the grid spacing it was
// created with; queries with much larger radii still work but touch more
// cells.
type HashGridSearcher3 struct {
	spacing float64
	points  []geom.Vec
	buckets map[[3]int][]int
}

// NewHashGridSearcher3 returns an unbuilt hash grid searcher with the given
// cell width. The spacing must be positive.
func NewHashGridSearcher3(spacing float64) *HashGridSearcher3 {
	if spacing <= 0 {
		panic("neighbor: hash grid spacing must be positive")
	}
	return &HashGridSearcher3{spacing: spacing}
}

func (s *HashGridSearcher3) cell(p geom.Vec) [3]int {
	return [3]int{
		int(math.Floor(p[0] / s.spacing)),
		int(math.Floor(p[1] / s.spacing)),
		int(math.Floor(p[2] / s.spacing)),
	}
}

// Build indexes the given points. Previous state is discarded.
func (s *HashGridSearcher3) Build(points []geom.Vec) {
	s.points = append(s.points[:0], points...)
	s.buckets = make(map[[3]int][]int, len(points))
	for i, p := range s.points {
		c := s.cell(p)
		s.buckets[c] = append(s.buckets[c], i)
	}
}

// ForEachNearbyPoint calls fn for every stored point within radius of
// origin, boundary inclusive.
func (s *HashGridSearcher3) ForEachNearbyPoint(
	origin geom.Vec, radius float64, fn func(i int, p geom.Vec),
) {
	if len(s.points) == 0 {
		return
	}

	r2 := radius * radius
	lo := s.cell(origin.Sub(geom.Vec{radius, radius, radius}))
	hi := s.cell(origin.Add(geom.Vec{radius, radius, radius}))

	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				for _, i := range s.buckets[[3]int{x, y, z}] {
					if s.points[i].DistSq(origin) <= r2 {
						fn(i, s.points[i])
					}
				}
			}
		}
	}
}

// HasNearbyPoint returns true if any stored point is within radius of
// origin. It stops at the first match.
func (s *HashGridSearcher3) HasNearbyPoint(
	origin geom.Vec, radius float64,
) bool {
	if len(s.points) == 0 {
		return false
	}

	r2 := radius * radius
	lo := s.cell(origin.Sub(geom.Vec{radius, radius, radius}))
	hi := s.cell(origin.Add(geom.Vec{radius, radius, radius}))

	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				for _, i := range s.buckets[[3]int{x, y, z}] {
					if s.points[i].DistSq(origin) <= r2 {
						return true
					}
				}
			}
		}
	}
	return false
}

// Clone returns an independent copy, buckets included.
func (s *HashGridSearcher3) Clone() Searcher3 {
	out := NewHashGridSearcher3(s.spacing)
	out.points = append([]geom.Vec{}, s.points...)
	out.buckets = make(map[[3]int][]int, len(s.buckets))
	for c, idxs := range s.buckets {
		out.buckets[c] = append([]int{}, idxs...)
	}
	return out
}
