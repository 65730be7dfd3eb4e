package geom

import (
	"errors"
	"fmt"
)

// ErrGeometry is the umbrella for every invalid-input condition. Callers that
// only care about "bad polygon vs. everything else" match it with errors.Is.
var ErrGeometry = errors.New("geom: invalid geometry")

// Sentinel errors returned by polygon validation. Each wraps ErrGeometry.
var (
	// ErrTooFewPoints indicates a boundary with fewer than 3 points.
	ErrTooFewPoints = fmt.Errorf("%w: fewer than 3 boundary points", ErrGeometry)

	// ErrNonFinite indicates a NaN or infinite coordinate.
	ErrNonFinite = fmt.Errorf("%w: non-finite coordinate", ErrGeometry)

	// ErrCoincidentPoints indicates two consecutive boundary points that coincide
	// within tolerance (the closing pair last→first included).
	ErrCoincidentPoints = fmt.Errorf("%w: coincident consecutive points", ErrGeometry)

	// ErrDegenerate indicates a boundary whose enclosed area is zero.
	ErrDegenerate = fmt.Errorf("%w: degenerate (zero-area) polygon", ErrGeometry)

	// ErrSelfIntersecting indicates two boundary segments that cross or touch.
	ErrSelfIntersecting = fmt.Errorf("%w: self-intersecting polygon", ErrGeometry)
)
