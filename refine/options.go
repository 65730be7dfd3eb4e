package refine

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvmesh/quality"
)

// DefaultMaxIterations bounds the number of insertions when unset.
const DefaultMaxIterations = 1000

// Sentinel errors for option validation.
var (
	// ErrBadThreshold indicates a non-positive or non-finite threshold.
	ErrBadThreshold = errors.New("refine: threshold must be positive and finite")

	// ErrBadIterations indicates a negative iteration budget.
	ErrBadIterations = errors.New("refine: max iterations must be non-negative")

	// ErrBadMaxArea indicates a negative or non-finite area bound.
	ErrBadMaxArea = errors.New("refine: max area must be non-negative and finite")
)

// Options configures Refine.
type Options struct {
	Metric        quality.Metric
	Threshold     float64 // 0 selects Metric.DefaultThreshold()
	MaxIterations int
	MaxArea       float64 // 0 disables the size criterion
}

// DefaultOptions returns Angle ≥ 20° with a budget of 1000 insertions.
func DefaultOptions() Options {
	return Options{
		Metric:        quality.Angle,
		MaxIterations: DefaultMaxIterations,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithMetric selects the quality metric.
func WithMetric(m quality.Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithThreshold sets the quality threshold. Panics on invalid values.
func WithThreshold(v float64) Option {
	if !(v > 0) || math.IsInf(v, 0) {
		panic(ErrBadThreshold)
	}

	return func(o *Options) { o.Threshold = v }
}

// WithMaxIterations sets the insertion budget. Panics when negative.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(ErrBadIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithMaxArea enables the size criterion. Panics on invalid values.
func WithMaxArea(a float64) Option {
	if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		panic(ErrBadMaxArea)
	}

	return func(o *Options) { o.MaxArea = a }
}

func (o Options) threshold() float64 {
	if o.Threshold > 0 {
		return o.Threshold
	}

	return o.Metric.DefaultThreshold()
}
