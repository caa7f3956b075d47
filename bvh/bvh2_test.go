package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gosph/gosph/geom"
)

func randomBoxes2(rnd *rand.Rand, n int) []geom.Box2 {
	boxes := make([]geom.Box2, n)
	for i := range boxes {
		p := geom.Vec2{rnd.Float64(), rnd.Float64()}
		w := geom.Vec2{0.01 + 0.1*rnd.Float64(), 0.01 + 0.1*rnd.Float64()}
		boxes[i] = geom.NewBox2(p, p.Add(w))
	}
	return boxes
}

func TestNearest2AgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(52))

	for _, n := range []int{1, 3, 50, 400} {
		boxes := randomBoxes2(rnd, n)
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		tree := NewTree2[int]()
		tree.Build(items, boxes)

		dist := func(i int, p geom.Vec2) float64 {
			return boxes[i].Mid().Dist(p)
		}

		for q := 0; q < 20; q++ {
			p := geom.Vec2{3*rnd.Float64() - 1, 3*rnd.Float64() - 1}

			wantIdx, wantDist := -1, math.MaxFloat64
			for i := 0; i < n; i++ {
				if d := dist(i, p); d < wantDist {
					wantIdx, wantDist = i, d
				}
			}

			gotIdx, gotDist, ok := tree.Nearest(p, dist)
			if !ok || gotIdx != wantIdx || gotDist != wantDist {
				t.Errorf("n = %d: Nearest(%v) = (%d, %g, %v), brute force "+
					"gives (%d, %g)",
					n, p, gotIdx, gotDist, ok, wantIdx, wantDist)
			}
		}
	}
}

func TestForEachIntersectingBox2AgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(53))
	boxes := randomBoxes2(rnd, 200)
	items := make([]int, len(boxes))
	for i := range items {
		items[i] = i
	}
	tree := NewTree2[int]()
	tree.Build(items, boxes)

	test := func(i int, q geom.Box2) bool { return boxes[i].Overlaps(q) }

	for qi := 0; qi < 50; qi++ {
		p := geom.Vec2{2*rnd.Float64() - 0.5, 2*rnd.Float64() - 0.5}
		q := geom.NewBox2(p, p.Add(geom.Vec2{0.2, 0.2}))

		wantSet := map[int]bool{}
		for i := range boxes {
			if boxes[i].Overlaps(q) {
				wantSet[i] = true
			}
		}

		gotSet := map[int]bool{}
		tree.ForEachIntersectingBox(q, test, func(i int) {
			if gotSet[i] {
				t.Errorf("item %d visited twice", i)
			}
			gotSet[i] = true
		})

		if len(gotSet) != len(wantSet) {
			t.Errorf("visited %d items, brute force gives %d",
				len(gotSet), len(wantSet))
		}
		for i := range gotSet {
			if !wantSet[i] {
				t.Errorf("visited stray item %d", i)
			}
		}
	}
}
