/*package neighbor answers fixed-radius point queries over static point sets.

A searcher is built fresh from a point slice and is stateless between
builds. Queries are boundary inclusive: a point exactly at the query radius
counts as nearby. The interfaces exist so particle and surface code never
depends on a concrete spatial index; implementations are swappable.
*/
package neighbor

import (
	"github.com/gosph/gosph/geom"
)

// Searcher3 is a three dimensional point neighbor searcher.
//
// Build copies the points it is given. ForEachNearbyPoint calls fn with the
// index and position of every stored point within radius of origin; the
// radius is independent of any hint the searcher was created with.
// HasNearbyPoint short-circuits on the first match. Clone returns a deep
// copy that can be queried concurrently with the original.
type Searcher3 interface {
	Build(points []geom.Vec)
	ForEachNearbyPoint(origin geom.Vec, radius float64,
		fn func(i int, p geom.Vec))
	HasNearbyPoint(origin geom.Vec, radius float64) bool
	Clone() Searcher3
}

// Searcher2 is the two dimensional analogue of Searcher3.
type Searcher2 interface {
	Build(points []geom.Vec2)
	ForEachNearbyPoint(origin geom.Vec2, radius float64,
		fn func(i int, p geom.Vec2))
	HasNearbyPoint(origin geom.Vec2, radius float64) bool
	Clone() Searcher2
}
