package cdt

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/mesh"
)

// Sentinel errors. Each wraps mesh.ErrMesh.
var (
	// ErrNoEar indicates ear clipping found no valid ear; the ring is not a
	// simple counter-clockwise polygon.
	ErrNoEar = fmt.Errorf("%w: cdt: no ear found while clipping boundary", mesh.ErrMesh)

	// ErrPointOutside indicates an insertion point outside every triangle.
	ErrPointOutside = fmt.Errorf("%w: cdt: point outside triangulation", mesh.ErrMesh)

	// ErrDuplicatePoint indicates an insertion point coinciding with a vertex.
	ErrDuplicatePoint = fmt.Errorf("%w: cdt: point coincides with a vertex", mesh.ErrMesh)

	// ErrNotSegment indicates SplitSegment on an unconstrained edge.
	ErrNotSegment = fmt.Errorf("%w: cdt: edge is not a boundary segment", mesh.ErrMesh)

	// ErrBadTopology indicates a mesh whose half-edges are not a manifold.
	ErrBadTopology = fmt.Errorf("%w: cdt: non-manifold triangulation", mesh.ErrMesh)
)
