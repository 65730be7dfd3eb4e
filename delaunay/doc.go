// Package delaunay builds the initial constrained Delaunay triangulation of a
// simple polygon, optionally seeded with interior points.
//
// Size control:
//
//	– WithMaxArea(A):  target edge length L = sqrt(4A/√3), the side of an
//	                   equilateral triangle of area A.
//	– WithDensity(L):  target edge length given directly.
//
// With a size control the boundary is densified to segments no longer than L
// (WithBoundaryRefinement(false) keeps the input boundary) and the interior
// is seeded with a hexagonal lattice of spacing L. Lattice points are kept
// only when strictly inside and at least L/2 from the boundary, so no Steiner
// point ever lands on or near a segment. Without a size control only the
// boundary vertices (plus WithInteriorPoints) are triangulated.
//
// For n boundary vertices and k interior points the result always has
// n + 2k − 2 triangles.
package delaunay
