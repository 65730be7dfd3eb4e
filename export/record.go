package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/quality"
)

// Sentinel errors.
var (
	// ErrRecord indicates a record that does not describe a valid mesh.
	ErrRecord = errors.New("export: malformed record")

	// ErrGeoJSON indicates GeoJSON input without usable element polygons.
	ErrGeoJSON = errors.New("export: unusable geojson")
)

// Record is the exchange form of a mesh.
type Record struct {
	Name      string       `json:"name,omitempty"`
	Vertices  [][2]float64 `json:"vertices"`
	Boundary  []int        `json:"boundary"`
	Triangles [][3]int     `json:"triangles"`
	Quads     [][4]int     `json:"quads"`
	Stats     *mesh.Stats  `json:"stats,omitempty"`
}

// FromMesh snapshots m. Slices are copied; m is not retained.
func FromMesh(m *mesh.Mesh) Record {
	r := Record{
		Name:      m.Name,
		Vertices:  make([][2]float64, len(m.Vertices)),
		Boundary:  append([]int{}, m.Boundary...),
		Triangles: make([][3]int, len(m.Triangles)),
		Quads:     make([][4]int, len(m.Quads)),
	}
	for i, p := range m.Vertices {
		r.Vertices[i] = [2]float64{p.X, p.Y}
	}
	for i, t := range m.Triangles {
		r.Triangles[i] = t
	}
	for i, q := range m.Quads {
		r.Quads[i] = q
	}

	return r
}

// WithStats returns r carrying m's statistics under metric.
func (r Record) WithStats(m *mesh.Mesh, metric quality.Metric) Record {
	st := sanitizeStats(m.Stats(metric))
	r.Stats = &st

	return r
}

// ToMesh rebuilds the mesh described by r and validates it. Element order
// and corner order are preserved as given; empty lists stay nil. A record
// without a boundary gets the ring traced from the free element edges.
func (r Record) ToMesh() (*mesh.Mesh, error) {
	m := &mesh.Mesh{
		Name:     r.Name,
		Vertices: make([]geom.Point, len(r.Vertices)),
	}
	for i, v := range r.Vertices {
		p := geom.Pt(v[0], v[1])
		if !p.Finite() {
			return nil, fmt.Errorf("%w: vertex %d: %w", ErrRecord, i, geom.ErrNonFinite)
		}
		m.Vertices[i] = p
	}
	if len(r.Boundary) > 0 {
		m.Boundary = append([]int(nil), r.Boundary...)
	}
	for _, t := range r.Triangles {
		m.Triangles = append(m.Triangles, t)
	}
	for _, q := range r.Quads {
		m.Quads = append(m.Quads, q)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecord, err)
	}
	if len(m.Boundary) == 0 {
		m.Boundary, _ = m.TraceBoundary()
	}

	return m, nil
}

func finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}

	return v
}

func sanitizeQuality(s quality.Stats) quality.Stats {
	s.Avg, s.Min, s.Max, s.Worst = finite(s.Avg), finite(s.Min), finite(s.Max), finite(s.Worst)

	return s
}

func sanitizeStats(st mesh.Stats) mesh.Stats {
	st.Area = finite(st.Area)
	st.TriangleQuality = sanitizeQuality(st.TriangleQuality)
	st.QuadQuality = sanitizeQuality(st.QuadQuality)
	st.MinJacobian = finite(st.MinJacobian)
	st.MaxJacobian = finite(st.MaxJacobian)
	st.AvgJacobian = finite(st.AvgJacobian)

	return st
}
