// Package geom is the geometry model of lvmesh: points, simple polygons and
// the pure predicates every meshing algorithm is built on.
//
// Conventions:
//
//   - Cross(a, b, c) is twice the signed area of triangle abc; > 0 means
//     counter-clockwise. Its magnitude doubles as the degeneracy measure.
//   - Every floating comparison uses a tolerance relative to the scale of the
//     input (bounding-box diagonal), see Tolerance.
//   - Polygon.Contains is strict: points on the boundary are NOT inside.
//
// Errors (sentinel, all wrap ErrGeometry):
//
//	– ErrTooFewPoints      fewer than 3 boundary points.
//	– ErrNonFinite         NaN or ±Inf coordinate.
//	– ErrCoincidentPoints  consecutive points coincide (including last→first).
//	– ErrDegenerate        zero-area (collinear) boundary.
//	– ErrSelfIntersecting  two boundary segments touch or cross.
//
// Point-in-ring and orientation queries are delegated to
// github.com/paulmach/orb so the polygon can be handed to GIS tooling as is.
package geom
