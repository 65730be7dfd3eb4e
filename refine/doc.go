// Package refine improves a triangle mesh by Steiner-point insertion until
// every triangle meets a quality threshold (and, optionally, an area bound)
// or an iteration budget runs out.
//
// Each iteration picks the worst offending triangle (ties go to the lowest
// triangle id; quality violations rank before size violations) and computes
// its circumcenter:
//
//   - strictly inside the domain and not encroaching any boundary segment:
//     the circumcenter is inserted and the triangulation re-legalised;
//   - otherwise the violated segment (crossed on the way to the
//     circumcenter, encroached by it, or nearest to it) is split at its
//     midpoint.
//
// Triangles whose candidate can be neither inserted nor resolved by a split
// are skipped for the rest of the run. The boundary shape never changes:
// segment splits only add collinear vertices.
package refine
