// Package planar implements the map kernel: a planar graph of vertices
// and line, arc and chord edges with tolerance-based identity.
//
// A Map never holds two vertices closer than its tolerance. Inserting a
// point near an existing vertex returns that vertex, and inserting an
// edge between two already connected vertices returns the existing edge.
// These two rules let independently built sub-maps be merged into one
// seamless graph.
//
// Edges around every vertex are kept sorted by the angle at which they
// leave the vertex, so callers can walk faces with [Vertex.Next].
//
// Data-quality problems (zero-length edges, coincident inserts) are
// absorbed rather than reported. A Map is not safe for concurrent use.
package planar
