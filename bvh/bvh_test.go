package bvh

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/gosph/gosph/geom"
)

func randomBoxes(rnd *rand.Rand, n int) []geom.Box {
	boxes := make([]geom.Box, n)
	for i := range boxes {
		p := geom.Vec{rnd.Float64(), rnd.Float64(), rnd.Float64()}
		w := geom.Vec{
			0.01 + 0.1*rnd.Float64(),
			0.01 + 0.1*rnd.Float64(),
			0.01 + 0.1*rnd.Float64(),
		}
		boxes[i] = geom.NewBox(p, p.Add(w))
	}
	return boxes
}

func buildIndexTree(boxes []geom.Box) *Tree[int] {
	items := make([]int, len(boxes))
	for i := range items {
		items[i] = i
	}
	t := NewTree[int]()
	t.Build(items, boxes)
	return t
}

func TestEmptyTreeSentinels(t *testing.T) {
	tree := NewTree[int]()
	tree.Build(nil, nil)

	if _, d, ok := tree.Nearest(geom.Vec{}, func(int, geom.Vec) float64 {
		return 0
	}); ok || d != math.MaxFloat64 {
		t.Errorf("Nearest on empty tree returned (%g, %v)", d, ok)
	}

	box := geom.NewBox(geom.Vec{}, geom.Vec{1, 1, 1})
	if tree.IntersectsBox(box, func(int, geom.Box) bool { return true }) {
		t.Errorf("IntersectsBox on empty tree returned true")
	}

	ray := geom.Ray{Origin: geom.Vec{}, Dir: geom.Vec{1, 0, 0}}
	if _, _, ok := tree.ClosestIntersection(
		ray, func(int, geom.Ray) float64 { return 0 },
	); ok {
		t.Errorf("ClosestIntersection on empty tree returned ok")
	}

	if bound := tree.BoundingBox(); !bound.IsEmpty() {
		t.Errorf("empty tree bounding box is %v", bound)
	}
}

func TestBuildMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Build with mismatched lengths did not panic")
		}
	}()
	NewTree[int]().Build([]int{0, 1}, make([]geom.Box, 3))
}

func TestNearestAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 3, 10, 100, 500} {
		boxes := randomBoxes(rnd, n)
		tree := buildIndexTree(boxes)

		dist := func(i int, p geom.Vec) float64 {
			mid := boxes[i].Mid()
			return mid.Dist(p)
		}

		for q := 0; q < 20; q++ {
			p := geom.Vec{
				3*rnd.Float64() - 1, 3*rnd.Float64() - 1, 3*rnd.Float64() - 1,
			}

			wantIdx, wantDist := -1, math.MaxFloat64
			for i := 0; i < n; i++ {
				if d := dist(i, p); d < wantDist {
					wantIdx, wantDist = i, d
				}
			}

			gotIdx, gotDist, ok := tree.Nearest(p, dist)
			if !ok {
				t.Fatalf("n = %d: Nearest found nothing", n)
			}
			if gotIdx != wantIdx || gotDist != wantDist {
				t.Errorf("n = %d: Nearest(%v) = (%d, %g), brute force "+
					"gives (%d, %g)", n, p, gotIdx, gotDist, wantIdx, wantDist)
			}
		}
	}
}

func TestIntersectsBoxAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(43))
	boxes := randomBoxes(rnd, 200)
	tree := buildIndexTree(boxes)

	test := func(i int, q geom.Box) bool { return boxes[i].Overlaps(q) }

	for qi := 0; qi < 50; qi++ {
		p := geom.Vec{
			2*rnd.Float64() - 0.5, 2*rnd.Float64() - 0.5, 2*rnd.Float64() - 0.5,
		}
		q := geom.NewBox(p, p.Add(geom.Vec{0.2, 0.2, 0.2}))

		want := false
		wantSet := map[int]bool{}
		for i := range boxes {
			if boxes[i].Overlaps(q) {
				want = true
				wantSet[i] = true
			}
		}

		if got := tree.IntersectsBox(q, test); got != want {
			t.Errorf("IntersectsBox(%v) = %v, brute force gives %v",
				q, got, want)
		}

		got := []int{}
		tree.ForEachIntersectingBox(q, test, func(i int) {
			got = append(got, i)
		})
		sort.Ints(got)
		if len(got) != len(wantSet) {
			t.Errorf("ForEachIntersectingBox visited %d items, brute force "+
				"gives %d", len(got), len(wantSet))
			continue
		}
		for k, i := range got {
			if !wantSet[i] {
				t.Errorf("ForEachIntersectingBox visited stray item %d", i)
			}
			if k > 0 && got[k-1] == i {
				t.Errorf("ForEachIntersectingBox visited item %d twice", i)
			}
		}
	}
}

func TestIntersectsRayAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(44))
	boxes := randomBoxes(rnd, 200)
	tree := buildIndexTree(boxes)

	test := func(i int, r geom.Ray) bool {
		_, _, ok := boxes[i].Intersects(&r)
		return ok
	}

	for qi := 0; qi < 50; qi++ {
		dir := geom.Vec{
			rnd.Float64() - 0.5, rnd.Float64() - 0.5, rnd.Float64() - 0.5,
		}.Normalize()
		if dir.Len() == 0 {
			continue
		}
		r := geom.Ray{
			Origin: geom.Vec{
				2*rnd.Float64() - 0.5,
				2*rnd.Float64() - 0.5,
				2*rnd.Float64() - 0.5,
			},
			Dir: dir,
		}

		want := false
		for i := range boxes {
			if test(i, r) {
				want = true
				break
			}
		}

		if got := tree.IntersectsRay(r, test); got != want {
			t.Errorf("IntersectsRay(%v) = %v, brute force gives %v",
				r, got, want)
		}
	}
}

func TestClosestIntersectionAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(45))
	boxes := randomBoxes(rnd, 200)
	tree := buildIndexTree(boxes)

	test := func(i int, r geom.Ray) float64 {
		tMin, _, ok := boxes[i].Intersects(&r)
		if !ok {
			return math.MaxFloat64
		}
		return tMin
	}

	for qi := 0; qi < 50; qi++ {
		dir := geom.Vec{
			rnd.Float64() - 0.5, rnd.Float64() - 0.5, rnd.Float64() - 0.5,
		}.Normalize()
		if dir.Len() == 0 {
			continue
		}
		r := geom.Ray{Origin: geom.Vec{-1, -1, -1}, Dir: dir}

		wantIdx, wantT := -1, math.MaxFloat64
		for i := range boxes {
			if d := test(i, r); d < wantT {
				wantIdx, wantT = i, d
			}
		}

		gotIdx, gotT, ok := tree.ClosestIntersection(r, test)
		if ok != (wantIdx >= 0) {
			t.Errorf("ClosestIntersection ok = %v, brute force gives %v",
				ok, wantIdx >= 0)
			continue
		}
		if ok && (gotIdx != wantIdx || gotT != wantT) {
			t.Errorf("ClosestIntersection = (%d, %g), brute force gives "+
				"(%d, %g)", gotIdx, gotT, wantIdx, wantT)
		}
	}
}

func TestBuildDeterminism(t *testing.T) {
	rnd := rand.New(rand.NewSource(46))
	boxes := randomBoxes(rnd, 300)

	t1 := buildIndexTree(boxes)
	t2 := buildIndexTree(boxes)

	if t1.NumNodes() != t2.NumNodes() {
		t.Fatalf("node counts differ: %d vs %d", t1.NumNodes(), t2.NumNodes())
	}
	for i := 0; i < t1.NumNodes(); i++ {
		if t1.IsLeaf(i) != t2.IsLeaf(i) {
			t.Errorf("node %d leaf classification differs", i)
		}
		if t1.NodeBound(i) != t2.NodeBound(i) {
			t.Errorf("node %d bounds differ", i)
		}
	}
}

func TestTreeShape(t *testing.T) {
	rnd := rand.New(rand.NewSource(47))

	for _, n := range []int{1, 2, 17, 128} {
		boxes := randomBoxes(rnd, n)
		tree := buildIndexTree(boxes)

		if tree.NumItems() != n {
			t.Errorf("NumItems = %d, not %d", tree.NumItems(), n)
		}
		if tree.NumNodes() != 2*n-1 {
			t.Errorf("NumNodes = %d, not %d", tree.NumNodes(), 2*n-1)
		}

		leaves := 0
		for i := 0; i < tree.NumNodes(); i++ {
			if tree.IsLeaf(i) {
				leaves++
				if first, second := tree.Children(i); first != -1 ||
					second != -1 {
					t.Errorf("leaf %d has children (%d, %d)", i, first, second)
				}
			} else {
				first, second := tree.Children(i)
				if first != i+1 {
					t.Errorf("node %d first child is %d, not %d",
						i, first, i+1)
				}
				b := tree.NodeBound(i)
				for _, c := range []int{first, second} {
					cb := tree.NodeBound(c)
					if !b.Contains(cb.Min) || !b.Contains(cb.Max) {
						t.Errorf("node %d bound does not enclose child %d",
							i, c)
					}
				}
			}
		}
		if leaves != n {
			t.Errorf("tree has %d leaves, not %d", leaves, n)
		}
	}
}

func TestCoincidentItems(t *testing.T) {
	// Every centroid identical: the forced even split has to bottom out.
	b := geom.NewBox(geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1})
	boxes := make([]geom.Box, 33)
	for i := range boxes {
		boxes[i] = b
	}
	tree := buildIndexTree(boxes)

	if tree.NumNodes() != 2*33-1 {
		t.Errorf("NumNodes = %d, not %d", tree.NumNodes(), 2*33-1)
	}

	count := 0
	tree.ForEachIntersectingBox(
		b, func(int, geom.Box) bool { return true },
		func(int) { count++ },
	)
	if count != 33 {
		t.Errorf("visited %d coincident items, not 33", count)
	}
}

func BenchmarkBuild(b *testing.B) {
	rnd := rand.New(rand.NewSource(48))
	boxes := randomBoxes(rnd, 10_000)
	items := make([]int, len(boxes))
	for i := range items {
		items[i] = i
	}
	tree := NewTree[int]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Build(items, boxes)
	}
}

func BenchmarkNearest(b *testing.B) {
	rnd := rand.New(rand.NewSource(49))
	boxes := randomBoxes(rnd, 10_000)
	tree := buildIndexTree(boxes)
	dist := func(i int, p geom.Vec) float64 {
		mid := boxes[i].Mid()
		return mid.Dist(p)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Nearest(geom.Vec{0.5, 0.5, 0.5}, dist)
	}
}
