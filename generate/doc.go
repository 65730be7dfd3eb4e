// Package generate runs complete mesh-generation pipelines from a request.
//
// Pipelines:
//
//	delaunay:  Triangulate → Refine → Smooth
//	paving:    Pave → Smooth
//	annealing: Triangulate → Anneal → Smooth
//
// Generate runs in five steps:
//
//  1. the request is checked and resolved into a plan (algorithm, metric,
//     threshold); Request.WithDefaults fills missing fields beforehand;
//  2. the polygon is validated and oriented counter-clockwise;
//  3. the algorithm's pipeline builds the mesh;
//  4. the optional smoothing passes and reverse Cuthill–McKee renumbering
//     run on the result;
//  5. the final mesh is validated and summarised.
//
// Result.Converged reports whether the final mesh meets the quality
// threshold; a mesh that misses it is still a successful result.
//
// Batch runs independent requests concurrently on an errgroup, at most limit
// at a time. Each request owns its polygon and mesh, so no state is shared
// between goroutines; results keep the input order.
//
// Complexity: dominated by the chosen pipeline (see the refine, paving and
// anneal packages); renumbering adds O(V log V + E) and statistics O(V + E).
//
// Errors:
//
//   - ErrInvalidRequest wraps every request field problem.
//   - Geometry errors from geom (too few points, self-intersection, ...) and
//     mesh or algorithm errors pass through wrapped.
package generate
