package export_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/export"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/paving"
	"github.com/katalvlaran/lvmesh/quality"
)

func square() geom.Polygon {
	return geom.Polygon{Name: "sq", Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}}
}

func triMesh(t *testing.T) (geom.Polygon, *mesh.Mesh) {
	t.Helper()
	p, err := geom.NewPolygon("tri", []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}})
	require.NoError(t, err)
	m := mesh.New(p)
	_, err = m.AddTriangle(0, 1, 2)
	require.NoError(t, err)

	return p, m
}

func roundTrip(t *testing.T, m *mesh.Mesh) *mesh.Mesh {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, export.FromMesh(m).WithStats(m, quality.Angle)))
	rec, err := export.ReadJSON(&buf)
	require.NoError(t, err)
	require.NotNil(t, rec.Stats)
	assert.Equal(t, len(m.Triangles), rec.Stats.Triangles)
	out, err := rec.ToMesh()
	require.NoError(t, err)

	return out
}

// Exporting and re-importing reproduces coordinates and connectivity.
func TestRoundTrip_Identity(t *testing.T) {
	tri, err := delaunay.Triangulate(square(), delaunay.WithMaxArea(300))
	require.NoError(t, err)
	quads, err := paving.Pave(square(), paving.WithDensity(20))
	require.NoError(t, err)
	require.NotEmpty(t, quads.Quads)

	for _, m := range []*mesh.Mesh{tri, quads} {
		got := roundTrip(t, m)
		assert.Equal(t, m.Name, got.Name)
		assert.Equal(t, m.Vertices, got.Vertices)
		assert.Equal(t, m.Boundary, got.Boundary)
		assert.Equal(t, m.Triangles, got.Triangles)
		assert.Equal(t, m.Quads, got.Quads)
	}
}

func TestToMesh_TracesMissingBoundary(t *testing.T) {
	m, err := delaunay.Triangulate(square(), delaunay.WithMaxArea(300))
	require.NoError(t, err)
	rec := export.FromMesh(m)
	rec.Boundary = nil

	got, err := rec.ToMesh()
	require.NoError(t, err)
	require.NotEmpty(t, got.Boundary)
	assert.Equal(t, m.BoundaryMask(), got.BoundaryMask())
	assert.Len(t, got.Boundary, len(got.FreeEdges()))
	assert.Nil(t, got.Quads)
}

func TestFromGeoJSON_TracesMissingBoundary(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,0]]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[10,10],[0,10],[0,0]]]}}]}`
	m, err := export.FromGeoJSON([]byte(fc))
	require.NoError(t, err)
	require.Len(t, m.Boundary, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Boundary)
	assert.Equal(t, []bool{true, true, true, true}, m.BoundaryMask())
}

func TestToMesh_Rejects(t *testing.T) {
	base := export.Record{
		Vertices:  [][2]float64{{0, 0}, {1, 0}, {0, 1}},
		Boundary:  []int{0, 1, 2},
		Triangles: [][3]int{{0, 1, 2}},
	}
	_, err := base.ToMesh()
	require.NoError(t, err)

	bad := base
	bad.Triangles = [][3]int{{0, 2, 1}}
	_, err = bad.ToMesh()
	assert.ErrorIs(t, err, export.ErrRecord)
	assert.ErrorIs(t, err, mesh.ErrInverted)

	bad = base
	bad.Triangles = [][3]int{{0, 1, 7}}
	_, err = bad.ToMesh()
	assert.ErrorIs(t, err, mesh.ErrIndexOutOfRange)

	bad = base
	bad.Vertices = [][2]float64{{0, 0}, {math.Inf(1), 0}, {0, 1}}
	_, err = bad.ToMesh()
	assert.ErrorIs(t, err, geom.ErrNonFinite)
}

func TestReadJSON_Errors(t *testing.T) {
	_, err := export.ReadJSON(strings.NewReader(`{"vertices": [[0,0]], "colour": "red"}`))
	assert.ErrorIs(t, err, export.ErrRecord)
	_, err = export.ReadJSON(strings.NewReader(`{`))
	assert.ErrorIs(t, err, export.ErrRecord)
}

func TestWriteJSON_SanitisesInfinity(t *testing.T) {
	_, m := triMesh(t)
	rec := export.FromMesh(m)
	st := m.Stats(quality.AspectRatio)
	st.TriangleQuality.Worst = math.Inf(1)
	st.MinJacobian = math.NaN()
	rec.Stats = &st

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, rec))
	back, err := export.ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, back.Stats.TriangleQuality.Worst)
	assert.Zero(t, back.Stats.MinJacobian)
	assert.Equal(t, quality.AspectRatio, back.Stats.Metric)
}

func TestWriteCSV(t *testing.T) {
	p, m := triMesh(t)
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, p, m))
	want := strings.Join([]string{
		"Type,Index,X,Y,Additional_Info",
		"Point,0,0,0,Boundary_Point_0",
		"Point,1,100,0,Boundary_Point_1",
		"Point,2,50,100,Boundary_Point_2",
		"Mesh_Vertex,0,0,0,Mesh_Node",
		"Mesh_Vertex,1,100,0,Mesh_Node",
		"Mesh_Vertex,2,50,100,Mesh_Node",
		"Triangle,0,0,1,Triangle_Nodes_2",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_QuadsAndNoMesh(t *testing.T) {
	p, err := geom.NewPolygon("u", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, err)
	m := mesh.New(p)
	_, err = m.AddQuad(0, 1, 2, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, p, m))
	assert.Contains(t, buf.String(), "Quad,0,0,1,Quad_Nodes_2_3\n")

	buf.Reset()
	require.NoError(t, export.WriteCSV(&buf, p, nil))
	assert.Equal(t, 5, strings.Count(buf.String(), "\n"))
	assert.NotContains(t, buf.String(), "Mesh_Vertex")
}

func TestGeoJSON_RoundTrip(t *testing.T) {
	m, err := paving.Pave(square(), paving.WithDensity(20), paving.WithMaxRows(1))
	require.NoError(t, err)

	fc := export.GeoJSON(m, quality.Angle)
	require.Len(t, fc.Features, 1+m.ElementCount())
	assert.Equal(t, export.KindBoundary, fc.Features[0].Properties["kind"])
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	got, err := export.FromGeoJSON(data)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Len(t, got.Vertices, len(m.Vertices))
	assert.Len(t, got.Triangles, len(m.Triangles))
	assert.Len(t, got.Quads, len(m.Quads))
	assert.InDelta(t, m.Area(), got.Area(), 1e-6)
	for i, b := range got.Boundary {
		assert.Equal(t, m.Vertices[m.Boundary[i]], got.Vertices[b])
	}
	for i, q := range got.Quads {
		assert.Equal(t, m.QuadPoints(m.Quads[i]), got.QuadPoints(q))
	}
}

func TestFromGeoJSON_Errors(t *testing.T) {
	_, err := export.FromGeoJSON([]byte(`not json`))
	assert.ErrorIs(t, err, export.ErrGeoJSON)
	_, err = export.FromGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, export.ErrGeoJSON)
	pent := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		"geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[3,1],[1,2],[0,1],[0,0]]]}}]}`
	_, err = export.FromGeoJSON([]byte(pent))
	assert.ErrorIs(t, err, export.ErrGeoJSON)
}
