package neighbor

import (
	"github.com/gosph/gosph/bvh"
	"github.com/gosph/gosph/geom"
)

// BVHSearcher3 backs neighbor queries with a bounding volume hierarchy over
// degenerate point boxes. It handles clustered, irregular point sets better
// than a fixed-resolution grid.
type BVHSearcher3 struct {
	points []geom.Vec
	tree   *bvh.Tree[int]
}

// NewBVHSearcher3 returns an unbuilt BVH-backed searcher.
func NewBVHSearcher3() *BVHSearcher3 {
	return &BVHSearcher3{tree: bvh.NewTree[int]()}
}

// Build indexes the given points. Previous state is discarded.
func (s *BVHSearcher3) Build(points []geom.Vec) {
	s.points = append(s.points[:0], points...)

	items := make([]int, len(points))
	bounds := make([]geom.Box, len(points))
	for i, p := range points {
		items[i] = i
		bounds[i] = geom.Box{Min: p, Max: p}
	}
	s.tree.Build(items, bounds)
}

// ForEachNearbyPoint calls fn for every stored point within radius of
// origin, boundary inclusive.
func (s *BVHSearcher3) ForEachNearbyPoint(
	origin geom.Vec, radius float64, fn func(i int, p geom.Vec),
) {
	r2 := radius * radius
	query := geom.NewBox(
		origin.Sub(geom.Vec{radius, radius, radius}),
		origin.Add(geom.Vec{radius, radius, radius}),
	)
	s.tree.ForEachIntersectingBox(
		query,
		func(i int, _ geom.Box) bool {
			return s.points[i].DistSq(origin) <= r2
		},
		func(i int) { fn(i, s.points[i]) },
	)
}

// HasNearbyPoint returns true if any stored point is within radius of
// origin. It stops at the first match.
func (s *BVHSearcher3) HasNearbyPoint(origin geom.Vec, radius float64) bool {
	r2 := radius * radius
	query := geom.NewBox(
		origin.Sub(geom.Vec{radius, radius, radius}),
		origin.Add(geom.Vec{radius, radius, radius}),
	)
	return s.tree.IntersectsBox(query, func(i int, _ geom.Box) bool {
		return s.points[i].DistSq(origin) <= r2
	})
}

// Clone returns an independent copy. The tree build is deterministic, so
// rebuilding from the copied points reproduces the original structure.
func (s *BVHSearcher3) Clone() Searcher3 {
	out := NewBVHSearcher3()
	out.Build(s.points)
	return out
}

// BVHSearcher2 is the two dimensional mirror of BVHSearcher3.
type BVHSearcher2 struct {
	points []geom.Vec2
	tree   *bvh.Tree2[int]
}

// NewBVHSearcher2 returns an unbuilt two dimensional BVH-backed searcher.
func NewBVHSearcher2() *BVHSearcher2 {
	return &BVHSearcher2{tree: bvh.NewTree2[int]()}
}

// Build indexes the given points. Previous state is discarded.
func (s *BVHSearcher2) Build(points []geom.Vec2) {
	s.points = append(s.points[:0], points...)

	items := make([]int, len(points))
	bounds := make([]geom.Box2, len(points))
	for i, p := range points {
		items[i] = i
		bounds[i] = geom.Box2{Min: p, Max: p}
	}
	s.tree.Build(items, bounds)
}

// ForEachNearbyPoint calls fn for every stored point within radius of
// origin, boundary inclusive.
func (s *BVHSearcher2) ForEachNearbyPoint(
	origin geom.Vec2, radius float64, fn func(i int, p geom.Vec2),
) {
	r2 := radius * radius
	query := geom.NewBox2(
		origin.Sub(geom.Vec2{radius, radius}),
		origin.Add(geom.Vec2{radius, radius}),
	)
	s.tree.ForEachIntersectingBox(
		query,
		func(i int, _ geom.Box2) bool {
			return s.points[i].DistSq(origin) <= r2
		},
		func(i int) { fn(i, s.points[i]) },
	)
}

// HasNearbyPoint returns true if any stored point is within radius of
// origin.
func (s *BVHSearcher2) HasNearbyPoint(origin geom.Vec2, radius float64) bool {
	r2 := radius * radius
	query := geom.NewBox2(
		origin.Sub(geom.Vec2{radius, radius}),
		origin.Add(geom.Vec2{radius, radius}),
	)
	return s.tree.IntersectsBox(query, func(i int, _ geom.Box2) bool {
		return s.points[i].DistSq(origin) <= r2
	})
}

// Clone returns an independent copy.
func (s *BVHSearcher2) Clone() Searcher2 {
	out := NewBVHSearcher2()
	out.Build(s.points)
	return out
}
