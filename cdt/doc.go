// Package cdt maintains a constrained Delaunay triangulation of a simple
// polygon under incremental point insertion.
//
// Representation: triangles live in an arena (slice + free list) so their ids
// stay stable while neighbours are edited. A directed half-edge map sends
// (a, b) to the triangle that contains a→b in counter-clockwise order; the
// neighbour across that edge is the triangle owning (b, a). Boundary segments
// are constrained: they are never flipped, only split at their midpoint.
//
// Construction ear-clips the boundary ring, then legalises every interior
// edge with Lawson flips driven by an explicit stack. Insertion locates the
// containing triangle by linear scan, splits it 1→3 (or 2→4 when the point
// falls on an edge) and re-legalises around the new vertex.
//
// Complexity:
//
//	– New:          O(n³) worst case for ear clipping, n = boundary size.
//	– Insert:       O(T) locate + amortised O(deg) flips.
//	– SplitSegment: O(T) + flips.
package cdt
