package mesh

import (
	"math"

	"github.com/katalvlaran/lvmesh/quality"
)

// Stats is the summary attached to every generated mesh.
type Stats struct {
	Vertices  int     `json:"vertices"`
	Triangles int     `json:"triangles"`
	Quads     int     `json:"quads"`
	Area      float64 `json:"area"`

	Metric          quality.Metric `json:"metric"`
	TriangleQuality quality.Stats  `json:"triangle_quality"`
	QuadQuality     quality.Stats  `json:"quad_quality"`

	// MinJacobian / MaxJacobian / AvgJacobian cover all elements (twice the
	// area for triangles, the smallest Gauss-point value for quads).
	MinJacobian float64 `json:"min_jacobian"`
	MaxJacobian float64 `json:"max_jacobian"`
	AvgJacobian float64 `json:"avg_jacobian"`
}

// Stats computes counts, total area, per-kind quality and Jacobian ranges.
//
// Complexity: O(T + Q).
func (m *Mesh) Stats(metric quality.Metric) Stats {
	st := Stats{
		Vertices:  len(m.Vertices),
		Triangles: len(m.Triangles),
		Quads:     len(m.Quads),
		Area:      m.Area(),
		Metric:    metric,
	}
	tq := make([]float64, 0, len(m.Triangles))
	qq := make([]float64, 0, len(m.Quads))
	jac := make([]float64, 0, m.ElementCount())
	for _, t := range m.Triangles {
		a, b, c := m.TrianglePoints(t)
		tq = append(tq, metric.Triangle(a, b, c))
		jac = append(jac, quality.Jacobian(a, b, c))
	}
	for _, q := range m.Quads {
		p := m.quadPoints(q)
		qq = append(qq, metric.Quad(p))
		jac = append(jac, quality.QuadMinJacobian(p))
	}
	st.TriangleQuality = quality.Summarize(metric, tq)
	st.QuadQuality = quality.Summarize(metric, qq)
	if len(jac) > 0 {
		st.MinJacobian, st.MaxJacobian = math.Inf(1), math.Inf(-1)
		var sum float64
		for _, j := range jac {
			st.MinJacobian = math.Min(st.MinJacobian, j)
			st.MaxJacobian = math.Max(st.MaxJacobian, j)
			sum += j
		}
		st.AvgJacobian = sum / float64(len(jac))
	}

	return st
}

// WorstQuality returns the worst element value under metric across both
// element kinds, and false for an empty mesh.
func (m *Mesh) WorstQuality(metric quality.Metric) (float64, bool) {
	var worst float64
	found := false
	for _, t := range m.Triangles {
		v := metric.Triangle(m.TrianglePoints(t))
		if !found || metric.Worse(v, worst) {
			worst, found = v, true
		}
	}
	for _, q := range m.Quads {
		v := metric.Quad(m.quadPoints(q))
		if !found || metric.Worse(v, worst) {
			worst, found = v, true
		}
	}

	return worst, found
}

// Quality summarises metric over every element, triangles and quads alike.
func (m *Mesh) Quality(metric quality.Metric) quality.Stats {
	vals := make([]float64, 0, m.ElementCount())
	for _, t := range m.Triangles {
		vals = append(vals, metric.Triangle(m.TrianglePoints(t)))
	}
	for _, q := range m.Quads {
		vals = append(vals, metric.Quad(m.quadPoints(q)))
	}

	return quality.Summarize(metric, vals)
}
