package generate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/quality"
)

// Algorithm selects the pipeline.
type Algorithm string

// Supported algorithms.
const (
	Delaunay  Algorithm = "delaunay"
	Paving    Algorithm = "paving"
	Annealing Algorithm = "annealing"
)

// Sentinel errors.
var (
	// ErrInvalidRequest indicates a request field outside its domain.
	ErrInvalidRequest = errors.New("generate: invalid request")

	// ErrUnknownAlgorithm indicates an unrecognised algorithm name.
	ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", ErrInvalidRequest)
)

// ParseAlgorithm maps a name to an Algorithm. Empty selects Delaunay.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return Delaunay, nil
	case Delaunay, Paving, Annealing:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// AnnealingParams tunes the annealing pipeline. Zero fields keep the
// annealer's defaults.
type AnnealingParams struct {
	Temperature   float64 `json:"temperature,omitempty" yaml:"temperature"`
	CoolingRate   float64 `json:"cooling_rate,omitempty" yaml:"cooling_rate"`
	MinTemp       float64 `json:"min_temperature,omitempty" yaml:"min_temperature"`
	MaxIterations int     `json:"max_iterations,omitempty" yaml:"max_iterations"`
	StepScale     float64 `json:"step_scale,omitempty" yaml:"step_scale"`
	SizeWeight    float64 `json:"size_weight,omitempty" yaml:"size_weight"`
	Restarts      int     `json:"restarts,omitempty" yaml:"restarts"`
}

// Request is one mesh-generation job.
type Request struct {
	Geometry geom.Polygon `json:"geometry"`
	// GeometryID refers to a stored geometry (server only).
	GeometryID string `json:"geometry_id,omitempty"`

	Algorithm string `json:"algorithm,omitempty"`
	// MaxArea and Density are alternative size controls; Density (target
	// edge length, smaller is finer) wins when both are set.
	MaxArea float64 `json:"max_area,omitempty"`
	Density float64 `json:"density,omitempty"`

	Metric    string  `json:"metric,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	// MinAngle is shorthand for metric "angle" with this threshold.
	MinAngle float64 `json:"min_angle,omitempty"`

	MaxIterations   int   `json:"max_iterations,omitempty"`
	SmoothingPasses int   `json:"smoothing_passes,omitempty"`
	Seed            int64 `json:"seed,omitempty"`
	// Renumber applies a bandwidth-reducing vertex ordering to the result.
	Renumber bool `json:"renumber,omitempty"`

	Annealing *AnnealingParams `json:"annealing,omitempty"`
}

// Defaults fills unset request fields; loaded from service configuration.
type Defaults struct {
	Algorithm       string  `yaml:"algorithm"`
	MaxArea         float64 `yaml:"max_area"`
	Metric          string  `yaml:"metric"`
	Threshold       float64 `yaml:"threshold"`
	MaxIterations   int     `yaml:"max_iterations"`
	SmoothingPasses int     `yaml:"smoothing_passes"`
	Seed            int64   `yaml:"seed"`
}

// WithDefaults returns r with zero fields taken from d. A size given as
// Density suppresses the default MaxArea, and MinAngle suppresses the
// default metric and threshold.
func (r Request) WithDefaults(d Defaults) Request {
	if r.Algorithm == "" {
		r.Algorithm = d.Algorithm
	}
	if r.MaxArea == 0 && r.Density == 0 {
		r.MaxArea = d.MaxArea
	}
	if r.Metric == "" && r.MinAngle == 0 {
		r.Metric = d.Metric
	}
	if r.Threshold == 0 && r.MinAngle == 0 {
		r.Threshold = d.Threshold
	}
	if r.MaxIterations == 0 {
		r.MaxIterations = d.MaxIterations
	}
	if r.SmoothingPasses == 0 {
		r.SmoothingPasses = d.SmoothingPasses
	}
	if r.Seed == 0 {
		r.Seed = d.Seed
	}

	return r
}

// plan is a validated request.
type plan struct {
	algo   Algorithm
	metric quality.Metric
	thr    float64
}

func finiteNonNeg(v float64) bool { return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// plan validates r field by field.
func (r Request) plan() (plan, error) {
	var p plan
	var err error
	if p.algo, err = ParseAlgorithm(r.Algorithm); err != nil {
		return p, err
	}
	if p.metric, err = quality.ParseMetric(r.Metric); err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if !finiteNonNeg(r.MaxArea) || !finiteNonNeg(r.Density) {
		return p, fmt.Errorf("%w: size control must be non-negative and finite", ErrInvalidRequest)
	}
	if !finiteNonNeg(r.Threshold) || !finiteNonNeg(r.MinAngle) {
		return p, fmt.Errorf("%w: threshold must be non-negative and finite", ErrInvalidRequest)
	}
	if r.MaxIterations < 0 || r.SmoothingPasses < 0 {
		return p, fmt.Errorf("%w: counts must be non-negative", ErrInvalidRequest)
	}
	if a := r.Annealing; a != nil {
		if !finiteNonNeg(a.Temperature) || !finiteNonNeg(a.MinTemp) ||
			!finiteNonNeg(a.StepScale) || !finiteNonNeg(a.SizeWeight) {
			return p, fmt.Errorf("%w: annealing parameters must be non-negative and finite", ErrInvalidRequest)
		}
		if !finiteNonNeg(a.CoolingRate) || a.CoolingRate >= 1 {
			return p, fmt.Errorf("%w: cooling rate %g must be below 1", ErrInvalidRequest, a.CoolingRate)
		}
		if a.MaxIterations < 0 || a.Restarts < 0 {
			return p, fmt.Errorf("%w: annealing counts must be non-negative", ErrInvalidRequest)
		}
	}
	switch {
	case r.Threshold > 0:
		p.thr = r.Threshold
	case r.MinAngle > 0 && p.metric == quality.Angle:
		p.thr = r.MinAngle
	default:
		p.thr = p.metric.DefaultThreshold()
	}
	if p.metric == quality.Angle && p.thr >= 60 {
		return p, fmt.Errorf("%w: min angle %g is unattainable", ErrInvalidRequest, p.thr)
	}
	if p.metric == quality.AspectRatio && p.thr < 1 {
		return p, fmt.Errorf("%w: aspect ratio %g is below 1", ErrInvalidRequest, p.thr)
	}

	return p, nil
}

// Check validates r without running it. Geometry is not inspected.
func Check(r Request) error {
	_, err := r.plan()

	return err
}
