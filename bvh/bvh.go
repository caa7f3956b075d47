/*package bvh implements bounding volume hierarchies over arbitrary item
types. A tree is built once from a static item list and is immutable until
the next Build call. Queries take callbacks, so callers decide what
"distance" and "intersection" mean for their items.

The node arena uses an implicit layout: the first child of an internal node
at index i is always at index i+1, and only the second child index is
stored. This keeps left spines contiguous in memory during traversal.
*/
package bvh

import (
	"fmt"
	"math"

	"github.com/gosph/gosph/geom"
)

// leafFlag marks a leaf in the flags byte, which otherwise holds the split
// axis (0, 1, or 2) of an internal node.
const leafFlag = 3

type node struct {
	flags byte
	item  int // leaf: index into the tree's item array
	child int // internal: index of the second child
	bound geom.Box
}

func (n *node) isLeaf() bool {
	return n.flags == leafFlag
}

// Tree is a three dimensional bounding volume hierarchy over items of
// type T.
type Tree[T any] struct {
	items  []T
	bounds []geom.Box
	nodes  []node
	bound  geom.Box
}

// NewTree returns an empty tree. Queries against it return "not found"
// sentinels until Build is called.
func NewTree[T any]() *Tree[T] {
	t := &Tree[T]{}
	t.bound.Reset()
	return t
}

// Build clears the previous tree and constructs a new one over the given
// items and their bounding boxes. The two slices must have equal length;
// anything else is a caller bug. Items and bounds are copied, so the caller
// may mutate the originals afterward without affecting the tree.
func (t *Tree[T]) Build(items []T, bounds []geom.Box) {
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
		t.nodes = make([]node, 0, 2*len(items)-1)
	}
	t.buildRecursive(0, len(t.items))
}

// buildRecursive appends the subtree over items[start:end] to the node
// arena. It requires end > start.
func (t *Tree[T]) buildRecursive(start, end int) {
	if end-start == 1 {
		t.nodes = append(t.nodes, node{
			flags: leafFlag, item: start, bound: t.bounds[start],
		})
		return
	}

	b := geom.Box{}
	b.Reset()
	for i := start; i < end; i++ {
		b.Merge(t.bounds[i])
	}

	axis := 0
	if b.Width(1) > b.Width(axis) {
		axis = 1
	}
	if b.Width(2) > b.Width(axis) {
		axis = 2
	}

	pivot := (b.Min[axis] + b.Max[axis]) / 2
	mid := t.partition(start, end, axis, pivot)
	if mid == start || mid == end {
		// Coincident or clustered centroids: fall back to an even split so
		// the recursion always makes progress.
		mid = start + (end-start)/2
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{flags: byte(axis), bound: b})
	t.buildRecursive(start, mid)
	t.nodes[idx].child = len(t.nodes)
	t.buildRecursive(mid, end)
}

// partition reorders items[start:end] so that items whose bound centroid
// falls below pivot along axis come first, and returns the index of the
// first item at or above the pivot.
func (t *Tree[T]) partition(start, end, axis int, pivot float64) int {
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
func (t *Tree[T]) NumItems() int {
	return len(t.items)
}

// NumNodes returns the number of nodes in the tree, leaves included.
func (t *Tree[T]) NumNodes() int {
	return len(t.nodes)
}

// Item returns the item stored at internal index i. Indices correspond to
// the leaf order reported by IsLeaf/Children, not the original Build order.
func (t *Tree[T]) Item(i int) T {
	return t.items[i]
}

// BoundingBox returns the union of every item's bound, or a reset box for
// an empty tree.
func (t *Tree[T]) BoundingBox() geom.Box {
	return t.bound
}

// IsLeaf returns true if node i is a leaf.
func (t *Tree[T]) IsLeaf(i int) bool {
	return t.nodes[i].isLeaf()
}

// NodeBound returns the bounding box of node i.
func (t *Tree[T]) NodeBound(i int) geom.Box {
	return t.nodes[i].bound
}

// Children returns the child node indices of node i, or (-1, -1) for a
// leaf. The first child is always i+1.
func (t *Tree[T]) Children(i int) (first, second int) {
	if t.nodes[i].isLeaf() {
		return -1, -1
	}
	return i + 1, t.nodes[i].child
}

// Nearest returns the item minimizing dist(item, p) along with that
// distance. ok is false for an empty tree, in which case the distance is
// math.MaxFloat64.
func (t *Tree[T]) Nearest(
	p geom.Vec, dist func(item T, p geom.Vec) float64,
) (best T, bestDist float64, ok bool) {
	bestDist = math.MaxFloat64
	if len(t.nodes) == 0 {
		return best, bestDist, false
	}

	// Best-first depth-first search: descend into the closer child and
	// push the other only while its box could still beat the best found.
	stack := make([]int, 0, 64)
	cur := 0
	for cur >= 0 {
		nd := &t.nodes[cur]
		if nd.isLeaf() {
			if d := dist(t.items[nd.item], p); d < bestDist {
				bestDist, best, ok = d, t.items[nd.item], true
			}
			cur, stack = pop(stack, t, p, bestDist)
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
			cur, stack = pop(stack, t, p, bestDist)
			continue
		}
		if dFar < bestDist {
			stack = append(stack, far)
		}
		cur = near
	}

	return best, bestDist, ok
}

// pop discards stacked nodes whose box can no longer contain a closer item
// and returns the next node to visit, or -1 when the stack runs dry.
func pop[T any](
	stack []int, t *Tree[T], p geom.Vec, bestDist float64,
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
// Subtrees whose bound does not overlap the box are pruned.
func (t *Tree[T]) IntersectsBox(
	box geom.Box, test func(item T, box geom.Box) bool,
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

// IntersectsRay returns true if any item passes test against the query ray.
func (t *Tree[T]) IntersectsRay(
	ray geom.Ray, test func(item T, ray geom.Ray) bool,
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
		// Near child first, by the ray's sign along the split axis.
		near, far := cur+1, nd.child
		if ray.Dir[nd.flags] < 0 {
			near, far = far, near
		}
		stack = append(stack, far, near)
	}
	return false
}

// ForEachIntersectingBox calls visit for every item that passes test
// against the query box. Visitation order is unspecified.
func (t *Tree[T]) ForEachIntersectingBox(
	box geom.Box, test func(item T, box geom.Box) bool, visit func(item T),
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

// ForEachIntersectingRay calls visit for every item that passes test
// against the query ray. Visitation order is unspecified.
func (t *Tree[T]) ForEachIntersectingRay(
	ray geom.Ray, test func(item T, ray geom.Ray) bool, visit func(item T),
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
// distance along the ray, as reported by test. Items that miss must be
// reported by test as math.MaxFloat64. ok is false if nothing is hit.
func (t *Tree[T]) ClosestIntersection(
	ray geom.Ray, test func(item T, ray geom.Ray) float64,
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
