// Package renumber reorders mesh vertices to reduce the bandwidth of the
// vertex adjacency, using the reverse Cuthill–McKee ordering.
//
// Each connected component is traversed breadth-first from a
// pseudo-peripheral vertex (found by repeated BFS, keeping the lowest-degree
// vertex of the deepest level), visiting neighbours in ascending degree. The
// concatenated order is reversed. Ties break on the lower vertex index, so
// the result is deterministic.
//
// Renumbering never changes geometry or element orientation; only indices in
// Triangles, Quads and Boundary are rewritten.
package renumber
