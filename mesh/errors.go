package mesh

import (
	"errors"
	"fmt"
)

// ErrMesh is the umbrella for internal meshing failures (as opposed to
// invalid input, see geom.ErrGeometry).
var ErrMesh = errors.New("mesh: meshing failure")

// Sentinel errors. Each wraps ErrMesh.
var (
	// ErrNilMesh indicates a nil *Mesh argument.
	ErrNilMesh = fmt.Errorf("%w: mesh is nil", ErrMesh)

	// ErrIndexOutOfRange indicates an element corner outside the vertex buffer.
	ErrIndexOutOfRange = fmt.Errorf("%w: vertex index out of range", ErrMesh)

	// ErrDuplicateIndex indicates an element that repeats a corner.
	ErrDuplicateIndex = fmt.Errorf("%w: element repeats a vertex", ErrMesh)

	// ErrDegenerateElement indicates a (nearly) zero-area element or a
	// non-convex quad.
	ErrDegenerateElement = fmt.Errorf("%w: degenerate element", ErrMesh)

	// ErrInverted indicates an element with non-positive Jacobian.
	ErrInverted = fmt.Errorf("%w: inverted element", ErrMesh)

	// ErrQuadElements indicates a triangle-only operation given quads.
	ErrQuadElements = fmt.Errorf("%w: operation requires a triangle-only mesh", ErrMesh)
)
