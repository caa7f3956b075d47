/*package geom contains the vector, bounding box, and ray primitives used by
the spatial index and the SPH kernels.

Everything here is double precision. The kernel normalization constants and
the quadrature tests that check them lose too much accuracy in float32.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Vec2 is a two dimensional vector.
type Vec2 [2]float64

// Add returns u + v.
func (u Vec) Add(v Vec) Vec {
	return Vec{u[0] + v[0], u[1] + v[1], u[2] + v[2]}
}

// Sub returns u - v.
func (u Vec) Sub(v Vec) Vec {
	return Vec{u[0] - v[0], u[1] - v[1], u[2] - v[2]}
}

// Scale returns s * u.
func (u Vec) Scale(s float64) Vec {
	return Vec{u[0] * s, u[1] * s, u[2] * s}
}

// Dot returns the inner product of u and v.
func (u Vec) Dot(v Vec) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Cross returns the cross product of u and v.
func (u Vec) Cross(v Vec) Vec {
	return Vec{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Len returns the Euclidean length of u.
func (u Vec) Len() float64 {
	return math.Sqrt(u.Dot(u))
}

// LenSq returns the squared Euclidean length of u.
func (u Vec) LenSq() float64 {
	return u.Dot(u)
}

// Dist returns the Euclidean distance between u and v.
func (u Vec) Dist(v Vec) float64 {
	return u.Sub(v).Len()
}

// DistSq returns the squared Euclidean distance between u and v.
func (u Vec) DistSq(v Vec) float64 {
	return u.Sub(v).LenSq()
}

// Normalize returns a unit vector pointing in the direction of u. A
// zero-length input returns the zero vector rather than dividing by zero.
func (u Vec) Normalize() Vec {
	l := u.Len()
	if l == 0 {
		return Vec{}
	}
	return u.Scale(1 / l)
}

// Add returns u + v.
func (u Vec2) Add(v Vec2) Vec2 {
	return Vec2{u[0] + v[0], u[1] + v[1]}
}

// Sub returns u - v.
func (u Vec2) Sub(v Vec2) Vec2 {
	return Vec2{u[0] - v[0], u[1] - v[1]}
}

// Scale returns s * u.
func (u Vec2) Scale(s float64) Vec2 {
	return Vec2{u[0] * s, u[1] * s}
}

// Dot returns the inner product of u and v.
func (u Vec2) Dot(v Vec2) float64 {
	return u[0]*v[0] + u[1]*v[1]
}

// Len returns the Euclidean length of u.
func (u Vec2) Len() float64 {
	return math.Sqrt(u.Dot(u))
}

// LenSq returns the squared Euclidean length of u.
func (u Vec2) LenSq() float64 {
	return u.Dot(u)
}

// Dist returns the Euclidean distance between u and v.
func (u Vec2) Dist(v Vec2) float64 {
	return u.Sub(v).Len()
}

// DistSq returns the squared Euclidean distance between u and v.
func (u Vec2) DistSq(v Vec2) float64 {
	return u.Sub(v).LenSq()
}

// Normalize returns a unit vector pointing in the direction of u. A
// zero-length input returns the zero vector.
func (u Vec2) Normalize() Vec2 {
	l := u.Len()
	if l == 0 {
		return Vec2{}
	}
	return u.Scale(1 / l)
}
