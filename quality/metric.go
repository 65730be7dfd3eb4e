package quality

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvmesh/geom"
)

// Metric selects which quality measure drives optimisation.
type Metric int

const (
	// Angle is the minimum interior angle in degrees (maximise).
	Angle Metric = iota
	// AspectRatio is the normalised edge/inradius ratio (minimise).
	AspectRatio
)

// Default thresholds per metric.
const (
	DefaultMinAngle       = 20.0
	DefaultMaxAspectRatio = 2.0
)

// penaltyCap bounds the penalty of a degenerate element so sums stay finite.
const penaltyCap = 1e6

// ErrUnknownMetric is returned by ParseMetric for unrecognised names.
var ErrUnknownMetric = errors.New("quality: unknown metric")

// String implements fmt.Stringer.
func (m Metric) String() string {
	switch m {
	case Angle:
		return "angle"
	case AspectRatio:
		return "aspect_ratio"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(b []byte) error {
	v, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// ParseMetric maps a name to a Metric. Empty selects Angle.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "angle", "min_angle", "minangle":
		return Angle, nil
	case "aspect", "aspect_ratio", "aspectratio":
		return AspectRatio, nil
	default:
		return Angle, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// DefaultThreshold returns the conventional threshold for m.
func (m Metric) DefaultThreshold() float64 {
	if m == AspectRatio {
		return DefaultMaxAspectRatio
	}

	return DefaultMinAngle
}

// Triangle evaluates m on triangle abc.
func (m Metric) Triangle(a, b, c geom.Point) float64 {
	if m == AspectRatio {
		return TriangleAspectRatio(a, b, c)
	}

	return MinAngle(a, b, c)
}

// Quad evaluates m on quadrilateral q.
func (m Metric) Quad(q [4]geom.Point) float64 {
	if m == AspectRatio {
		return QuadEdgeRatio(q)
	}

	return QuadMinAngle(q)
}

// Violates reports whether value fails threshold under m.
func (m Metric) Violates(value, threshold float64) bool {
	if m == AspectRatio {
		return value > threshold
	}

	return value < threshold
}

// Worse reports whether a is strictly worse than b under m.
func (m Metric) Worse(a, b float64) bool {
	if m == AspectRatio {
		return a > b
	}

	return a < b
}

// Penalty is the non-negative distance of value from satisfying threshold.
// Zero iff the element meets the threshold.
func (m Metric) Penalty(value, threshold float64) float64 {
	var p float64
	if m == AspectRatio {
		p = value - threshold
	} else {
		p = threshold - value
	}
	if p <= 0 {
		return 0
	}
	if math.IsInf(p, 1) || math.IsNaN(p) || p > penaltyCap {
		return penaltyCap
	}

	return p
}
