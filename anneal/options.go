package anneal

import (
	"errors"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/quality"
)

// Schedule defaults.
const (
	DefaultTemperature   = 1000.0
	DefaultCoolingRate   = 0.995
	DefaultMinTemp       = 0.1
	DefaultMaxIterations = 10000
	DefaultStepScale     = 0.25
)

// Sentinel errors for option validation.
var (
	// ErrBadTemperature indicates a non-positive temperature or floor.
	ErrBadTemperature = errors.New("anneal: temperatures must be positive and finite")

	// ErrBadCooling indicates a cooling rate outside (0, 1).
	ErrBadCooling = errors.New("anneal: cooling rate must be in (0, 1)")

	// ErrBadIterations indicates a negative iteration budget.
	ErrBadIterations = errors.New("anneal: max iterations must be non-negative")

	// ErrBadStep indicates a non-positive step scale.
	ErrBadStep = errors.New("anneal: step scale must be positive and finite")

	// ErrBadWeight indicates a negative size weight.
	ErrBadWeight = errors.New("anneal: size weight must be non-negative")

	// ErrBadThreshold indicates a non-positive threshold.
	ErrBadThreshold = errors.New("anneal: threshold must be positive and finite")
)

// Options configures Anneal.
type Options struct {
	Metric        quality.Metric
	Threshold     float64 // 0 selects Metric.DefaultThreshold()
	MaxIterations int
	Temperature   float64 // initial temperature T0
	CoolingRate   float64 // T ← T·CoolingRate after every proposal
	MinTemp       float64 // stop below this temperature

	// StepScale sizes proposals: radius = StepScale · mean incident edge
	// length · T/T0.
	StepScale float64
	// SizeWeight adds SizeWeight·|area−mean|/mean per element.
	SizeWeight float64

	// Seed drives the default RNG (0 = fixed default). Ignored when Rand is set.
	Seed int64
	Rand *rand.Rand
	// Restarts > 1 reruns the schedule from the input positions on derived
	// RNG streams and keeps the best outcome.
	Restarts int

	// Seeding, when set, replaces the input mesh by a fresh triangulation of
	// the polygon at SeedArea before annealing.
	Seeding  *geom.Polygon
	SeedArea float64
}

// DefaultOptions returns the schedule T0=1000, ×0.995, floor 0.1, 10000
// iterations, Angle ≥ 20°.
func DefaultOptions() Options {
	return Options{
		Metric:        quality.Angle,
		MaxIterations: DefaultMaxIterations,
		Temperature:   DefaultTemperature,
		CoolingRate:   DefaultCoolingRate,
		MinTemp:       DefaultMinTemp,
		StepScale:     DefaultStepScale,
		Restarts:      1,
	}
}

// Option mutates Options.
type Option func(*Options)

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// WithMetric selects the quality metric.
func WithMetric(m quality.Metric) Option { return func(o *Options) { o.Metric = m } }

// WithThreshold sets the quality threshold. Panics on invalid values.
func WithThreshold(v float64) Option {
	if !positive(v) {
		panic(ErrBadThreshold)
	}

	return func(o *Options) { o.Threshold = v }
}

// WithMaxIterations sets the proposal budget. Panics when negative.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(ErrBadIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithSchedule sets initial temperature, cooling rate and floor.
// Panics on invalid values.
func WithSchedule(t0, cooling, floor float64) Option {
	if !positive(t0) || !positive(floor) {
		panic(ErrBadTemperature)
	}
	if !(cooling > 0 && cooling < 1) {
		panic(ErrBadCooling)
	}

	return func(o *Options) { o.Temperature, o.CoolingRate, o.MinTemp = t0, cooling, floor }
}

// WithStepScale sets the proposal radius factor. Panics on invalid values.
func WithStepScale(s float64) Option {
	if !positive(s) {
		panic(ErrBadStep)
	}

	return func(o *Options) { o.StepScale = s }
}

// WithSizeWeight enables the size-uniformity term. Panics when negative.
func WithSizeWeight(w float64) Option {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		panic(ErrBadWeight)
	}

	return func(o *Options) { o.SizeWeight = w }
}

// WithSeed sets the RNG seed (0 = fixed default).
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// WithRand injects the random source. The annealer consumes it; do not
// share it across goroutines.
func WithRand(r *rand.Rand) Option { return func(o *Options) { o.Rand = r } }

// WithRestarts sets the number of independent runs (values < 1 mean 1).
func WithRestarts(n int) Option {
	if n < 1 {
		n = 1
	}

	return func(o *Options) { o.Restarts = n }
}

// WithSeeding re-triangulates poly at maxArea before annealing.
func WithSeeding(poly geom.Polygon, maxArea float64) Option {
	return func(o *Options) {
		p := poly
		o.Seeding, o.SeedArea = &p, maxArea
	}
}

func (o Options) threshold() float64 {
	if o.Threshold > 0 {
		return o.Threshold
	}

	return o.Metric.DefaultThreshold()
}
