// Package geom holds the spatial primitives the index algebra operates
// over: points, bounding regions, and the eight tree-child directions.
package geom

import "github.com/golang/geo/r3"

// Point is an ordered (x, y, z) triple. In 2D mode z is ignored by the
// geometry below but still carried, the way spatialmath carries a full
// r3.Vector even for planar geometry.
type Point = r3.Vector

// NewPoint is a convenience constructor for a Point.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}
