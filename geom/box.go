package geom

import (
	"math"
)

// Box is an axis-aligned bounding box in three dimensions. The zero value is
// not useful; use NewBox or Reset to get a valid empty box.
type Box struct {
	Min, Max Vec
}

// Box2 is an axis-aligned bounding box in two dimensions.
type Box2 struct {
	Min, Max Vec2
}

// NewBox returns a box spanning the two given corner points. The corners may
// be given in any order.
func NewBox(p1, p2 Vec) Box {
	b := Box{}
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(p1[i], p2[i])
		b.Max[i] = math.Max(p1[i], p2[i])
	}
	return b
}

// Reset puts the box into its empty state: +inf lower corner, -inf upper
// corner. Merging any point into a reset box gives a degenerate box around
// that point.
func (b *Box) Reset() {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Inf(+1)
		b.Max[i] = math.Inf(-1)
	}
}

// MergePoint grows the box to contain the point p.
func (b *Box) MergePoint(p Vec) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Merge grows the box to contain the box other.
func (b *Box) Merge(other Box) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], other.Min[i])
		b.Max[i] = math.Max(b.Max[i], other.Max[i])
	}
}

// Contains returns true if p is inside the box. Points on the boundary are
// inside.
func (b *Box) Contains(p Vec) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps returns true if the two boxes share any point.
func (b *Box) Overlaps(other Box) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < other.Min[i] || b.Min[i] > other.Max[i] {
			return false
		}
	}
	return true
}

// Clamp returns the point inside the box closest to p.
func (b *Box) Clamp(p Vec) Vec {
	out := p
	for i := 0; i < 3; i++ {
		if out[i] < b.Min[i] {
			out[i] = b.Min[i]
		}
		if out[i] > b.Max[i] {
			out[i] = b.Max[i]
		}
	}
	return out
}

// DistSq returns the squared distance from p to the closest point of the
// box. It is zero for points inside the box.
func (b *Box) DistSq(p Vec) float64 {
	return b.Clamp(p).DistSq(p)
}

// Width returns the extent of the box along dimension dim.
func (b *Box) Width(dim int) float64 {
	return b.Max[dim] - b.Min[dim]
}

// Mid returns the center of the box.
func (b *Box) Mid() Vec {
	return b.Min.Add(b.Max).Scale(0.5)
}

// IsEmpty returns true if the box has non-positive extent along any
// dimension.
func (b *Box) IsEmpty() bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] >= b.Max[i] {
			return true
		}
	}
	return false
}

// NewBox2 returns a 2D box spanning the two given corner points.
func NewBox2(p1, p2 Vec2) Box2 {
	b := Box2{}
	for i := 0; i < 2; i++ {
		b.Min[i] = math.Min(p1[i], p2[i])
		b.Max[i] = math.Max(p1[i], p2[i])
	}
	return b
}

// Reset puts the box into its empty state.
func (b *Box2) Reset() {
	for i := 0; i < 2; i++ {
		b.Min[i] = math.Inf(+1)
		b.Max[i] = math.Inf(-1)
	}
}

// MergePoint grows the box to contain the point p.
func (b *Box2) MergePoint(p Vec2) {
	for i := 0; i < 2; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Merge grows the box to contain the box other.
func (b *Box2) Merge(other Box2) {
	for i := 0; i < 2; i++ {
		b.Min[i] = math.Min(b.Min[i], other.Min[i])
		b.Max[i] = math.Max(b.Max[i], other.Max[i])
	}
}

// Contains returns true if p is inside the box.
func (b *Box2) Contains(p Vec2) bool {
	for i := 0; i < 2; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps returns true if the two boxes share any point.
func (b *Box2) Overlaps(other Box2) bool {
	for i := 0; i < 2; i++ {
		if b.Max[i] < other.Min[i] || b.Min[i] > other.Max[i] {
			return false
		}
	}
	return true
}

// Clamp returns the point inside the box closest to p.
func (b *Box2) Clamp(p Vec2) Vec2 {
	out := p
	for i := 0; i < 2; i++ {
		if out[i] < b.Min[i] {
			out[i] = b.Min[i]
		}
		if out[i] > b.Max[i] {
			out[i] = b.Max[i]
		}
	}
	return out
}

// DistSq returns the squared distance from p to the closest point of the
// box.
func (b *Box2) DistSq(p Vec2) float64 {
	return b.Clamp(p).DistSq(p)
}

// Width returns the extent of the box along dimension dim.
func (b *Box2) Width(dim int) float64 {
	return b.Max[dim] - b.Min[dim]
}

// Mid returns the center of the box.
func (b *Box2) Mid() Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// IsEmpty returns true if the box has non-positive extent along any
// dimension.
func (b *Box2) IsEmpty() bool {
	for i := 0; i < 2; i++ {
		if b.Min[i] >= b.Max[i] {
			return true
		}
	}
	return false
}
