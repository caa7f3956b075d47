/*package field converts particle clouds into implicit scalar fields on
grids, the precursor to surface extraction.

The converters only know the ScalarGrid contract, never a concrete grid
type, so the surrounding framework can hand in whatever grid layout it
uses. Malformed inputs are soft failures: the converters log a diagnostic
and leave the output untouched. This is tooling for an offline content
pipeline, not a service.
*/
package field

import (
	"github.com/gosph/gosph/geom"
	"github.com/gosph/gosph/parallel"
)

// ScalarGrid is the grid contract the converters are written against.
//
// Fill evaluates f at the world-space sample position of every cell and
// stores the result. Clone returns an independent grid of the same shape,
// and CopyFrom overwrites this grid's values with those of a same-shape
// grid. Resolution and BoundingBox describe the sample layout.
type ScalarGrid interface {
	Resolution() (nx, ny, nz int)
	BoundingBox() geom.Box
	Fill(f func(x geom.Vec) float64)
	Clone() ScalarGrid
	CopyFrom(other ScalarGrid)
}

// CellCenteredScalarGrid stores one sample per cell center over an
// axis-aligned box.
type CellCenteredScalarGrid struct {
	res      [3]int
	origin   geom.Vec
	cellSize geom.Vec
	data     []float64
}

// NewCellCenteredScalarGrid returns a zero-filled grid with the given
// resolution spanning the given box.
func NewCellCenteredScalarGrid(
	nx, ny, nz int, bounds geom.Box,
) *CellCenteredScalarGrid {
	g := &CellCenteredScalarGrid{
		res:    [3]int{nx, ny, nz},
		origin: bounds.Min,
		data:   make([]float64, nx*ny*nz),
	}
	for i, n := range g.res {
		if n > 0 {
			g.cellSize[i] = bounds.Width(i) / float64(n)
		}
	}
	return g
}

// Resolution returns the cell counts along each axis.
func (g *CellCenteredScalarGrid) Resolution() (nx, ny, nz int) {
	return g.res[0], g.res[1], g.res[2]
}

// BoundingBox returns the world-space box the grid spans.
func (g *CellCenteredScalarGrid) BoundingBox() geom.Box {
	return geom.NewBox(g.origin, geom.Vec{
		g.origin[0] + g.cellSize[0]*float64(g.res[0]),
		g.origin[1] + g.cellSize[1]*float64(g.res[1]),
		g.origin[2] + g.cellSize[2]*float64(g.res[2]),
	})
}

// CellSize returns the world-space cell extents.
func (g *CellCenteredScalarGrid) CellSize() geom.Vec {
	return g.cellSize
}

func (g *CellCenteredScalarGrid) idx(i, j, k int) int {
	return i + g.res[0]*(j+g.res[1]*k)
}

// At returns the sample in cell (i, j, k).
func (g *CellCenteredScalarGrid) At(i, j, k int) float64 {
	return g.data[g.idx(i, j, k)]
}

// SetAt stores a sample in cell (i, j, k).
func (g *CellCenteredScalarGrid) SetAt(i, j, k int, v float64) {
	g.data[g.idx(i, j, k)] = v
}

// DataPosition returns the world-space sample position of cell (i, j, k).
func (g *CellCenteredScalarGrid) DataPosition(i, j, k int) geom.Vec {
	return geom.Vec{
		g.origin[0] + (float64(i)+0.5)*g.cellSize[0],
		g.origin[1] + (float64(j)+0.5)*g.cellSize[1],
		g.origin[2] + (float64(k)+0.5)*g.cellSize[2],
	}
}

// Fill evaluates f at every cell center in parallel.
func (g *CellCenteredScalarGrid) Fill(f func(x geom.Vec) float64) {
	nx, ny := g.res[0], g.res[1]
	parallel.For(len(g.data), func(idx int) {
		i := idx % nx
		j := (idx / nx) % ny
		k := idx / (nx * ny)
		g.data[idx] = f(g.DataPosition(i, j, k))
	})
}

// Clone returns an independent copy of the grid.
func (g *CellCenteredScalarGrid) Clone() ScalarGrid {
	out := &CellCenteredScalarGrid{
		res:      g.res,
		origin:   g.origin,
		cellSize: g.cellSize,
		data:     append([]float64{}, g.data...),
	}
	return out
}

// CopyFrom overwrites the grid's samples with those of other, which must
// be a same-shape CellCenteredScalarGrid.
func (g *CellCenteredScalarGrid) CopyFrom(other ScalarGrid) {
	src := other.(*CellCenteredScalarGrid)
	g.res = src.res
	g.origin = src.origin
	g.cellSize = src.cellSize
	g.data = append(g.data[:0], src.data...)
}

// Sample returns the trilinearly interpolated field value at a world-space
// position. Queries outside the grid clamp to the boundary samples.
func (g *CellCenteredScalarGrid) Sample(x geom.Vec) float64 {
	var c [3]int
	var f [3]float64
	for d := 0; d < 3; d++ {
		// continuous cell coordinate of the sample lattice
		t := (x[d]-g.origin[d])/g.cellSize[d] - 0.5
		lo := int(t)
		if t < 0 {
			lo = -1
		}
		frac := t - float64(lo)
		if lo < 0 {
			lo, frac = 0, 0
		}
		if lo >= g.res[d]-1 {
			lo, frac = g.res[d]-2, 1
			if g.res[d] == 1 {
				lo, frac = 0, 0
			}
		}
		c[d], f[d] = lo, frac
	}

	i, j, k := c[0], c[1], c[2]
	di, dj, dk := 1, 1, 1
	if g.res[0] == 1 {
		di = 0
	}
	if g.res[1] == 1 {
		dj = 0
	}
	if g.res[2] == 1 {
		dk = 0
	}

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }

	v00 := lerp(g.At(i, j, k), g.At(i+di, j, k), f[0])
	v10 := lerp(g.At(i, j+dj, k), g.At(i+di, j+dj, k), f[0])
	v01 := lerp(g.At(i, j, k+dk), g.At(i+di, j, k+dk), f[0])
	v11 := lerp(g.At(i, j+dj, k+dk), g.At(i+di, j+dj, k+dk), f[0])

	return lerp(lerp(v00, v10, f[1]), lerp(v01, v11, f[1]), f[2])
}
