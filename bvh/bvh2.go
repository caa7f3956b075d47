package bvh

import (
	"fmt"
	"math"

	"github.com/gosph/gosph/geom"
)

type node2 struct {
	flags byte
	item  int
	child int
	bound geom.Box2
}

func (n *node2) isLeaf() bool {
	return n.flags == leafFlag
}

// Tree2 is the two dimensional mirror of Tree. See the Tree documentation
// for the arena layout and query semantics.
type Tree2[T any] struct {
	items  []T
	bounds []geom.Box2
	nodes  []node2
	bound  geom.Box2
}

// NewTree2 returns an empty two dimensional tree.
func NewTree2[T any]() *Tree2[T] {
	t := &Tree2[T]{}
	t.bound.Reset()
	return t
}

// Build clears the previous tree and constructs a new one over the given
// items and their bounding boxes.
func (t *Tree2[T]) Build(items []T, bounds []geom.Box2) {
	if len(items) != len(bounds) {
		panic(fmt.Sprintf("bvh: Build got %d items but %d bounds",
			len(items), len(bounds)))
	}

	t.items = append(t.items[:0], items...)
	t.bounds = append(t.bounds[:0], bounds...)
	t.nodes = t.nodes[:0]
	t.bound.Reset()

	if len(items) == 0 {
		return
	}

	for _, b := range t.bounds {
		t.bound.Merge(b)
	}

	if cap(t.nodes) < 2*len(items)-1 {
		t.nodes = make([]node2, 0, 2*len(items)-1)
	}
	t.buildRecursive(0, len(t.items))
}

func (t *Tree2[T]) buildRecursive(start, end int) {
	if end-start == 1 {
		t.nodes = append(t.nodes, node2{
			flags: leafFlag, item: start, bound: t.bounds[start],
		})
		return
	}

	b := geom.Box2{}
	b.Reset()
	for i := start; i < end; i++ {
		b.Merge(t.bounds[i])
	}

	axis := 0
	if b.Width(1) > b.Width(0) {
		axis = 1
	}

	pivot := (b.Min[axis] + b.Max[axis]) / 2
	mid := t.partition(start, end, axis, pivot)
	if mid == start || mid == end {
		mid = start + (end-start)/2
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, node2{flags: byte(axis), bound: b})
	t.buildRecursive(start, mid)
	t.nodes[idx].child = len(t.nodes)
	t.buildRecursive(mid, end)
}

func (t *Tree2[T]) partition(start, end, axis int, pivot float64) int {
	mid := start
	for i := start; i < end; i++ {
		c := (t.bounds[i].Min[axis] + t.bounds[i].Max[axis]) / 2
		if c < pivot {
			t.items[mid], t.items[i] = t.items[i], t.items[mid]
			t.bounds[mid], t.bounds[i] = t.bounds[i], t.bounds[mid]
			mid++
		}
	}
	return mid
}

// NumItems returns the number of items in the tree.
func (t *Tree2[T]) NumItems() int {
	return len(t.items)
}

// NumNodes returns the number of nodes in the tree, leaves included.
func (t *Tree2[T]) NumNodes() int {
	return len(t.nodes)
}

// BoundingBox returns the union of every item's bound, or a reset box for
// an empty tree.
func (t *Tree2[T]) BoundingBox() geom.Box2 {
	return t.bound
}

// IsLeaf returns true if node i is a leaf.
func (t *Tree2[T]) IsLeaf(i int) bool {
	return t.nodes[i].isLeaf()
}

// NodeBound returns the bounding box of node i.
func (t *Tree2[T]) NodeBound(i int) geom.Box2 {
	return t.nodes[i].bound
}

// Children returns the child node indices of node i, or (-1, -1) for a
// leaf.
func (t *Tree2[T]) Children(i int) (first, second int) {
	if t.nodes[i].isLeaf() {
		return -1, -1
	}
	return i + 1, t.nodes[i].child
}

// Nearest returns the item minimizing dist(item, p) along with that
// distance. ok is false for an empty tree.
func (t *Tree2[T]) Nearest(
	p geom.Vec2, dist func(item T, p geom.Vec2) float64,
) (best T, bestDist float64, ok bool) {
	bestDist = math.MaxFloat64
	if len(t.nodes) == 0 {
		return best, bestDist, false
	}

	stack := make([]int, 0, 64)
	cur := 0
	for cur >= 0 {
		nd := &t.nodes[cur]
		if nd.isLeaf() {
			if d := dist(t.items[nd.item], p); d < bestDist {
				bestDist, best, ok = d, t.items[nd.item], true
			}
			cur, stack = pop2(stack, t, p, bestDist)
			continue
		}

		near, far := cur+1, nd.child
		dNear := math.Sqrt(t.nodes[near].bound.DistSq(p))
		dFar := math.Sqrt(t.nodes[far].bound.DistSq(p))
		if dFar < dNear {
			near, far = far, near
			dNear, dFar = dFar, dNear
		}

		if dNear >= bestDist {
			cur, stack = pop2(stack, t, p, bestDist)
			continue
		}
		if dFar < bestDist {
			stack = append(stack, far)
		}
		cur = near
	}

	return best, bestDist, ok
}

func pop2[T any](
	stack []int, t *Tree2[T], p geom.Vec2, bestDist float64,
) (int, []int) {
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if math.Sqrt(t.nodes[cur].bound.DistSq(p)) < bestDist {
			return cur, stack
		}
	}
	return -1, stack
}

// IntersectsBox returns true if any item passes test against the query box.
func (t *Tree2[T]) IntersectsBox(
	box geom.Box2, test func(item T, box geom.Box2) bool,
) bool {
	if len(t.nodes) == 0 {
		return false
	}

	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[cur]
		if !nd.bound.Overlaps(box) {
			continue
		}
		if nd.isLeaf() {
			if test(t.items[nd.item], box) {
				return true
			}
			continue
		}
		stack = append(stack, nd.child, cur+1)
	}
	return false
}

// ForEachIntersectingBox calls visit for every item that passes test
// against the query box. Visitation order is unspecified.
func (t *Tree2[T]) ForEachIntersectingBox(
	box geom.Box2, test func(item T, box geom.Box2) bool, visit func(item T),
) {
	if len(t.nodes) == 0 {
		return
	}

	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[cur]
		if !nd.bound.Overlaps(box) {
			continue
		}
		if nd.isLeaf() {
			if test(t.items[nd.item], box) {
				visit(t.items[nd.item])
			}
			continue
		}
		stack = append(stack, nd.child, cur+1)
	}
}

// IntersectsRay returns true if any item passes test against the query ray.
func (t *Tree2[T]) IntersectsRay(
	ray geom.Ray2, test func(item T, ray geom.Ray2) bool,
) bool {
	if len(t.nodes) == 0 {
		return false
	}

	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[cur]
		if _, _, ok := nd.bound.Intersects(&ray); !ok {
			continue
		}
		if nd.isLeaf() {
			if test(t.items[nd.item], ray) {
				return true
			}
			continue
		}
		near, far := cur+1, nd.child
		if ray.Dir[nd.flags] < 0 {
			near, far = far, near
		}
		stack = append(stack, far, near)
	}
	return false
}

// ForEachIntersectingRay calls visit for every item that passes test
// against the query ray. Visitation order is unspecified.
func (t *Tree2[T]) ForEachIntersectingRay(
	ray geom.Ray2, test func(item T, ray geom.Ray2) bool, visit func(item T),
) {
	if len(t.nodes) == 0 {
		return
	}

	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[cur]
		if _, _, ok := nd.bound.Intersects(&ray); !ok {
			continue
		}
		if nd.isLeaf() {
			if test(t.items[nd.item], ray) {
				visit(t.items[nd.item])
			}
			continue
		}
		stack = append(stack, nd.child, cur+1)
	}
}

// ClosestIntersection returns the item with the smallest parametric hit
// distance along the ray, as reported by test. Misses must be reported as
// math.MaxFloat64.
func (t *Tree2[T]) ClosestIntersection(
	ray geom.Ray2, test func(item T, ray geom.Ray2) float64,
) (best T, bestT float64, ok bool) {
	bestT = math.MaxFloat64
	if len(t.nodes) == 0 {
		return best, bestT, false
	}

	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[cur]
		tMin, _, hit := nd.bound.Intersects(&ray)
		if !hit || tMin > bestT {
			continue
		}
		if nd.isLeaf() {
			if d := test(t.items[nd.item], ray); d < bestT {
				bestT, best, ok = d, t.items[nd.item], true
			}
			continue
		}
		near, far := cur+1, nd.child
		if ray.Dir[nd.flags] < 0 {
			near, far = far, near
		}
		stack = append(stack, far, near)
	}

	return best, bestT, ok
}
