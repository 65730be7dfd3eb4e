package paving

import (
	"errors"
	"math"
)

// Sentinel errors for option validation.
var (
	// ErrNoSize indicates that neither MaxArea nor Density was given.
	ErrNoSize = errors.New("paving: element size required (max area or density)")

	// ErrBadSize indicates a negative or non-finite size control.
	ErrBadSize = errors.New("paving: size must be a positive finite number")

	// ErrBadAngle indicates a minimum angle outside [0, 90).
	ErrBadAngle = errors.New("paving: min angle must be in [0, 90)")
)

// Options configures Pave.
type Options struct {
	// MaxArea sets the element size h = sqrt(MaxArea).
	MaxArea float64
	// Density sets h directly; takes precedence over MaxArea.
	Density float64
	// MinAngle rejects rows containing an element with a smaller corner
	// angle in degrees (0 = convexity only).
	MinAngle float64
	// MaxRows caps the number of rows (0 = until the front collapses).
	MaxRows int
}

// DefaultOptions returns options without a size; Pave requires one.
func DefaultOptions() Options { return Options{} }

// Option mutates Options.
type Option func(*Options)

// WithMaxArea sets the target element area. Panics on invalid values.
func WithMaxArea(a float64) Option {
	if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		panic(ErrBadSize)
	}

	return func(o *Options) { o.MaxArea = a }
}

// WithDensity sets the element size directly. Panics on invalid values.
func WithDensity(h float64) Option {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		panic(ErrBadSize)
	}

	return func(o *Options) { o.Density = h }
}

// WithMinAngle sets the per-element corner angle floor for row acceptance.
func WithMinAngle(deg float64) Option {
	if deg < 0 || deg >= 90 || math.IsNaN(deg) {
		panic(ErrBadAngle)
	}

	return func(o *Options) { o.MinAngle = deg }
}

// WithMaxRows caps the number of rows. Negative values are treated as 0.
func WithMaxRows(n int) Option {
	if n < 0 {
		n = 0
	}

	return func(o *Options) { o.MaxRows = n }
}

// size returns h, or 0 when no size control is set.
func (o Options) size() float64 {
	if o.Density > 0 {
		return o.Density
	}
	if o.MaxArea > 0 {
		return math.Sqrt(o.MaxArea)
	}

	return 0
}
