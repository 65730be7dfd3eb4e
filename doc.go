// Package lvmesh is a 2D finite-element mesh generator for simple closed
// polygons, from a constrained Delaunay kernel to quad-dominant paving and
// simulated-annealing quality optimization.
//
// 🚀 What is lvmesh?
//
//	A pure-Go engine that turns a boundary polygon into an analysis-ready mesh:
//		• Geometry model: points, polygons, robust-ish predicates (geom/)
//		• Quality metrics: minimum angle, aspect ratio, Jacobian (quality/)
//		• Constrained triangulation kernel with edge-flip legalization (cdt/)
//		• Delaunay triangulator with boundary densification & hex seeding (delaunay/)
//		• Ruppert-style refinement under an iteration budget (refine/)
//		• Advancing-front quad-dominant paving (paving/)
//		• Simulated annealing optimizer with a seedable RNG (anneal/)
//		• Synchronous Laplacian smoothing with rollback (smooth/)
//		• Bandwidth-reducing vertex renumbering (renumber/)
//		• Request pipeline, export codecs, HTTP service and CLI
//
// ✨ Guarantees:
//
//   - Every stored triangle is counter-clockwise with strictly positive area.
//   - Boundary vertices never move; element areas always sum to the polygon area.
//   - Running out of iterations is a reported state (Converged=false), not an error.
//   - Invalid polygons are rejected before any work (geom.ErrGeometry).
//
// Layout:
//
//	geom/        Point, Polygon, predicates, validation
//	quality/     per-element metrics, penalties, aggregate stats
//	mesh/        Mesh, Triangle, Quad, adjacency, Stats
//	cdt/         arena-backed constrained triangulation kernel
//	delaunay/    Triangulate
//	refine/      Refine
//	paving/      Pave
//	anneal/      Anneal
//	smooth/      Smooth
//	renumber/    reverse Cuthill–McKee vertex ordering
//	generate/    Request, Generate, Batch
//	export/      Record, JSON / CSV / GeoJSON
//	config/      YAML service configuration
//	server/      gin HTTP surface
//	cmd/lvmesh   command-line front end
//
// Quick ASCII example (square, no refinement):
//
//	3───2
//	│ ╱ │
//	0───1
//
// yields exactly n−2 = 2 triangles.
//
//	go get github.com/katalvlaran/lvmesh
package lvmesh
