// Package mesh defines the output container shared by every algorithm: an
// indexed vertex buffer plus triangle and quadrilateral elements that refer
// to vertices by position.
//
// Invariants maintained by AddTriangle / AddQuad:
//
//   - every index is in range and the corners of one element are distinct;
//   - elements are stored counter-clockwise (a clockwise triangle is
//     reversed on insertion);
//   - triangles have |Jacobian| above the scale-relative area tolerance,
//     quads have a positive Jacobian at every Gauss point.
//
// Boundary lists the boundary vertex indices in counter-clockwise ring
// order; those vertices are fixed for smoothing and annealing.
package mesh
