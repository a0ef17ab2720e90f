// Package cache provides the LRU cache used to memoise built geometry.
//
// Building a motif map is the expensive step of a prototype rebuild, and a
// tiling typically places the same tile shape in the same orientation many
// times. Cache keeps recently built maps keyed by a string derived from the
// tile geometry and motif parameters:
//
//	c := cache.New[string, *planar.Map](256)
//	m := c.GetOrCreate(key, func() *planar.Map { return mo.BuildMap(t) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
