package delaunay

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvmesh/geom"
)

// ErrBadSize indicates a size control that is negative or non-finite.
var ErrBadSize = errors.New("delaunay: size control must be a positive finite number")

// Options configures Triangulate.
type Options struct {
	// MaxArea is the target element area (0 = unset).
	MaxArea float64
	// Density is the target edge length; takes precedence over MaxArea.
	Density float64
	// RefineBoundary densifies the boundary to the target edge length.
	RefineBoundary bool
	// Interior lists extra Steiner points; those not strictly inside are skipped.
	Interior []geom.Point
}

// DefaultOptions returns options with no size control and boundary
// refinement enabled.
func DefaultOptions() Options {
	return Options{RefineBoundary: true}
}

// Option mutates Options.
type Option func(*Options)

// WithMaxArea sets the target element area. Panics on a negative or
// non-finite value; 0 clears it.
func WithMaxArea(a float64) Option {
	if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		panic(ErrBadSize)
	}

	return func(o *Options) { o.MaxArea = a }
}

// WithDensity sets the target edge length directly. Panics on a negative or
// non-finite value; 0 clears it.
func WithDensity(l float64) Option {
	if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		panic(ErrBadSize)
	}

	return func(o *Options) { o.Density = l }
}

// WithBoundaryRefinement toggles boundary densification.
func WithBoundaryRefinement(on bool) Option {
	return func(o *Options) { o.RefineBoundary = on }
}

// WithInteriorPoints adds explicit Steiner points.
func WithInteriorPoints(pts ...geom.Point) Option {
	return func(o *Options) { o.Interior = append(o.Interior, pts...) }
}

// EdgeLength returns the target edge length implied by o, or 0.
func (o Options) EdgeLength() float64 {
	if o.Density > 0 {
		return o.Density
	}
	if o.MaxArea > 0 {
		return TargetEdge(o.MaxArea)
	}

	return 0
}

// TargetEdge returns the side of the equilateral triangle of area a.
func TargetEdge(a float64) float64 {
	return math.Sqrt(4 * a / math.Sqrt(3))
}
