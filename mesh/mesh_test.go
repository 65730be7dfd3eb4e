package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/quality"
)

const epsM = 1e-9

func unitSquareMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	poly, err := geom.NewPolygon("unit", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, err)

	return mesh.New(poly)
}

func TestNew_BoundaryRing(t *testing.T) {
	m := unitSquareMesh(t)
	assert.Equal(t, "unit", m.Name)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Boundary)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []bool{true, true, true, true}, m.BoundaryMask())
}

func TestAddTriangle_ReversesClockwise(t *testing.T) {
	m := unitSquareMesh(t)
	i, err := m.AddTriangle(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, mesh.Triangle{0, 1, 2}, m.Triangles[i])
	require.NoError(t, m.Validate())
}

func TestAddTriangle_Errors(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddTriangle(0, 1, 9)
	require.ErrorIs(t, err, mesh.ErrIndexOutOfRange)
	_, err = m.AddTriangle(0, 1, 1)
	require.ErrorIs(t, err, mesh.ErrDuplicateIndex)

	c := m.AddVertex(geom.Pt(2, 0))
	_, err = m.AddTriangle(0, 1, c)
	require.ErrorIs(t, err, mesh.ErrDegenerateElement)
	assert.ErrorIs(t, err, mesh.ErrMesh)
	assert.Empty(t, m.Triangles)
}

func TestAddQuad(t *testing.T) {
	m := unitSquareMesh(t)
	i, err := m.AddQuad(0, 3, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, mesh.Quad{0, 1, 2, 3}, m.Quads[i])
	assert.InDelta(t, 1.0, m.Area(), epsM)

	d := m.AddVertex(geom.Pt(0.2, 0.2))
	_, err = m.AddQuad(0, 1, d, 3)
	require.ErrorIs(t, err, mesh.ErrDegenerateElement)
}

func TestValidate_DetectsInversion(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	m.Vertices[2] = geom.Pt(0.5, -1)
	require.ErrorIs(t, m.Validate(), mesh.ErrInverted)

	var nilMesh *mesh.Mesh
	require.ErrorIs(t, nilMesh.Validate(), mesh.ErrNilMesh)
}

func TestNeighborsAndIncidence(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = m.AddTriangle(0, 2, 3)
	require.NoError(t, err)

	nb := m.Neighbors()
	assert.Equal(t, []int{1, 2, 3}, nb[0])
	assert.Equal(t, []int{0, 2}, nb[1])
	assert.Equal(t, []int{0, 1, 3}, nb[2])

	inc := m.Incidence()
	assert.Len(t, inc[0], 2)
	assert.Len(t, inc[1], 1)
	assert.True(t, m.ElementValid(inc[1][0], 0))
	assert.InDelta(t, 0.5, m.ElementArea(inc[1][0]), epsM)
	assert.InDelta(t, 45.0, m.ElementQuality(inc[1][0], quality.Angle), 1e-6)
}

func TestNeighbors_QuadDiagonalsExcluded(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddQuad(0, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, m.Neighbors()[0])
}

func TestStats(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = m.AddTriangle(0, 2, 3)
	require.NoError(t, err)

	st := m.Stats(quality.Angle)
	assert.Equal(t, 4, st.Vertices)
	assert.Equal(t, 2, st.Triangles)
	assert.Equal(t, 0, st.Quads)
	assert.InDelta(t, 1.0, st.Area, epsM)
	assert.InDelta(t, 45.0, st.TriangleQuality.Worst, 1e-6)
	assert.InDelta(t, 1.0, st.MinJacobian, epsM)
	assert.InDelta(t, 1.0, st.MaxJacobian, epsM)
	assert.Equal(t, quality.Stats{}, st.QuadQuality)

	w, ok := m.WorstQuality(quality.Angle)
	require.True(t, ok)
	assert.InDelta(t, 45.0, w, 1e-6)

	q := m.Quality(quality.Angle)
	assert.Equal(t, 2, q.Count)
	assert.InDelta(t, 45.0, q.Min, 1e-6)
}

func TestClone_IsDeep(t *testing.T) {
	m := unitSquareMesh(t)
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	c := m.Clone()
	c.Vertices[0] = geom.Pt(-1, -1)
	c.Triangles[0] = mesh.Triangle{0, 2, 3}
	assert.Equal(t, geom.Pt(0, 0), m.Vertices[0])
	assert.Equal(t, mesh.Triangle{0, 1, 2}, m.Triangles[0])
}

// fan returns the unit square split into four triangles around a centre
// vertex, with no Boundary recorded.
func fan(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := &mesh.Mesh{Vertices: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5}}}
	for _, tri := range [][3]int{{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}} {
		_, err := m.AddTriangle(tri[0], tri[1], tri[2])
		require.NoError(t, err)
	}
	require.NoError(t, m.Validate())

	return m
}

func TestBoundaryMask_WithoutBoundary(t *testing.T) {
	m := fan(t)
	assert.Empty(t, m.Boundary)
	assert.Equal(t, []bool{true, true, true, true, false}, m.BoundaryMask())
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, m.FreeEdges())
}

func TestTraceBoundary(t *testing.T) {
	m := fan(t)
	ring, ok := m.TraceBoundary()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3}, ring)

	q := unitSquareMesh(t)
	_, err := q.AddQuad(0, 1, 2, 3)
	require.NoError(t, err)
	ring, ok = q.TraceBoundary()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3}, ring)

	// Two triangles touching at one vertex do not form a single ring.
	pinch := &mesh.Mesh{Vertices: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}}
	_, err = pinch.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = pinch.AddTriangle(2, 3, 4)
	require.NoError(t, err)
	_, ok = pinch.TraceBoundary()
	assert.False(t, ok)

	_, ok = (&mesh.Mesh{}).TraceBoundary()
	assert.False(t, ok)
}
