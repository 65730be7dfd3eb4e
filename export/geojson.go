package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/quality"
)

// Feature kinds, stored in the "kind" property.
const (
	KindTriangle = "triangle"
	KindQuad     = "quad"
	KindBoundary = "boundary"
)

func geomPoint(p orb.Point) geom.Point { return geom.Pt(p[0], p[1]) }

func ring(m *mesh.Mesh, idx []int) orb.Ring {
	r := make(orb.Ring, 0, len(idx)+1)
	for _, i := range idx {
		r = append(r, orb.Point{m.Vertices[i].X, m.Vertices[i].Y})
	}

	return append(r, r[0])
}

// GeoJSON returns m as a FeatureCollection: the boundary polygon first, then
// one polygon per triangle and per quad with properties kind, index,
// quality (under metric) and jacobian.
func GeoJSON(m *mesh.Mesh, metric quality.Metric) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(m.Boundary) >= 3 {
		f := geojson.NewFeature(orb.Polygon{ring(m, m.Boundary)})
		f.Properties["kind"] = KindBoundary
		f.Properties["name"] = m.Name
		fc.Append(f)
	}
	for i, t := range m.Triangles {
		a, b, c := m.TrianglePoints(t)
		f := geojson.NewFeature(orb.Polygon{ring(m, t[:])})
		f.Properties["kind"] = KindTriangle
		f.Properties["index"] = i
		f.Properties["quality"] = finite(metric.Triangle(a, b, c))
		f.Properties["jacobian"] = finite(quality.Jacobian(a, b, c))
		fc.Append(f)
	}
	for i, q := range m.Quads {
		p := m.QuadPoints(q)
		f := geojson.NewFeature(orb.Polygon{ring(m, q[:])})
		f.Properties["kind"] = KindQuad
		f.Properties["index"] = i
		f.Properties["quality"] = finite(metric.Quad(p))
		f.Properties["jacobian"] = finite(quality.QuadMinJacobian(p))
		fc.Append(f)
	}

	return fc
}

// FromGeoJSON rebuilds a mesh from a FeatureCollection produced by GeoJSON
// (or any collection of triangle and quad polygons). Vertices with equal
// coordinates are merged; boundary vertices, when a boundary feature is
// present, take the first indices in ring order; without one the boundary
// is traced from the free element edges. Element kind follows the ring
// length. The result is validated.
func FromGeoJSON(data []byte) (*mesh.Mesh, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeoJSON, err)
	}
	m := &mesh.Mesh{}
	ids := make(map[orb.Point]int)
	index := func(p orb.Point) int {
		if i, ok := ids[p]; ok {
			return i
		}
		ids[p] = len(m.Vertices)
		m.Vertices = append(m.Vertices, geomPoint(p))

		return ids[p]
	}
	corners := func(r orb.Ring) []int {
		if len(r) > 1 && r[0] == r[len(r)-1] {
			r = r[:len(r)-1]
		}
		out := make([]int, len(r))
		for i, p := range r {
			out[i] = index(p)
		}

		return out
	}

	var elements [][]int
	for i, f := range fc.Features {
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok || len(poly) == 0 {
			continue
		}
		if f.Properties.MustString("kind", "") == KindBoundary {
			m.Name = f.Properties.MustString("name", "")
			m.Boundary = corners(poly[0])
			continue
		}
		c := corners(poly[0])
		if len(c) != 3 && len(c) != 4 {
			return nil, fmt.Errorf("%w: feature %d has %d corners", ErrGeoJSON, i, len(c))
		}
		elements = append(elements, c)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: no element polygons", ErrGeoJSON)
	}
	for _, c := range elements {
		if len(c) == 3 {
			m.Triangles = append(m.Triangles, mesh.Triangle{c[0], c[1], c[2]})
		} else {
			m.Quads = append(m.Quads, mesh.Quad{c[0], c[1], c[2], c[3]})
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeoJSON, err)
	}
	if len(m.Boundary) == 0 {
		m.Boundary, _ = m.TraceBoundary()
	}

	return m, nil
}
