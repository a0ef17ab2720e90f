// Package geom provides the 2D primitives used by the pattern engine:
// points, affine matrices, rectangles, circles, line and arc segments and
// polygons, together with the tolerance constants that decide when two
// points are the same point.
//
// # Coordinate System
//
// Coordinates are ordinary Cartesian coordinates with Y increasing upward
// and angles in radians increasing counter-clockwise. Tile rotations that
// are stored in degrees are converted at the tile boundary.
//
// # Tolerances
//
// Floating-point results from repeated rotations and intersections never
// land exactly on each other. Two points closer than [Tolerance] are
// treated as identical by every consumer of this package. [NearTolerance]
// is the coarser distance used when cleaning up maps.
package geom

// Tolerance is the distance under which two points are the same vertex.
const Tolerance = 1e-7

// NearTolerance is the coarser distance used to merge near-duplicate
// vertices when a map is cleansed.
const NearTolerance = 1e-4

// angleTolerance bounds the difference between two angles (radians)
// that are considered equal.
const angleTolerance = 1e-6
