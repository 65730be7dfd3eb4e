package renumber_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/renumber"
)

// strip builds n unit quads in a row, bottom vertices numbered before top
// ones, which gives bandwidth n+1.
func strip(t *testing.T, n int) *mesh.Mesh {
	t.Helper()
	m := &mesh.Mesh{Name: "strip"}
	for i := 0; i <= n; i++ {
		m.AddVertex(geom.Pt(float64(i), 0))
	}
	for i := 0; i <= n; i++ {
		m.AddVertex(geom.Pt(float64(i), 1))
	}
	top := n + 1
	for i := 0; i < n; i++ {
		_, err := m.AddQuad(i, i+1, top+i+1, top+i)
		require.NoError(t, err)
	}
	for i := 0; i <= n; i++ {
		m.Boundary = append(m.Boundary, i)
	}
	for i := n; i >= 0; i-- {
		m.Boundary = append(m.Boundary, top+i)
	}

	return m
}

func TestRenumber_Strip(t *testing.T) {
	const n = 12
	m := strip(t, n)
	before := m.Clone()
	require.Equal(t, n+1, renumber.Bandwidth(m))

	res, err := renumber.Renumber(m)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Components)
	assert.Equal(t, n+1, res.Before)
	assert.LessOrEqual(t, res.After, 3)
	assert.Equal(t, res.After, renumber.Bandwidth(m))
	require.NoError(t, m.Validate())
	assert.InDelta(t, before.Area(), m.Area(), 1e-12)

	for old, p := range res.Perm {
		assert.Equal(t, before.Vertices[old], m.Vertices[p])
		assert.Equal(t, old, res.Order[p])
	}
	for i, q := range m.Quads {
		assert.Equal(t, before.QuadPoints(before.Quads[i]), m.QuadPoints(q))
	}
	for i, b := range m.Boundary {
		assert.Equal(t, before.Vertices[before.Boundary[i]], m.Vertices[b])
	}
}

func TestCuthillMcKee_Deterministic(t *testing.T) {
	a, err := renumber.CuthillMcKee(strip(t, 8))
	require.NoError(t, err)
	b, err := renumber.CuthillMcKee(strip(t, 8))
	require.NoError(t, err)
	assert.Equal(t, a.Order, b.Order)
}

func TestCuthillMcKee_Components(t *testing.T) {
	m := &mesh.Mesh{Vertices: []geom.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6},
		{X: 9, Y: 9},
	}}
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = m.AddTriangle(3, 4, 5)
	require.NoError(t, err)

	res, err := renumber.CuthillMcKee(m)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Components)
	assert.Len(t, res.Order, 7)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6}, res.Order)
}

func TestRenumber_KeepsGoodOrdering(t *testing.T) {
	m := &mesh.Mesh{Vertices: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	res, err := renumber.Renumber(m)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Perm)
	assert.Equal(t, mesh.Triangle{0, 1, 2}, m.Triangles[0])
}

func TestApply_Errors(t *testing.T) {
	m := strip(t, 2)
	assert.ErrorIs(t, renumber.Apply(m, []int{0, 1}), renumber.ErrBadPermutation)
	perm := make([]int, len(m.Vertices))
	assert.ErrorIs(t, renumber.Apply(m, perm), renumber.ErrBadPermutation)
	assert.ErrorIs(t, renumber.Apply(nil, nil), mesh.ErrNilMesh)
	_, err := renumber.CuthillMcKee(nil)
	assert.ErrorIs(t, err, mesh.ErrMesh)
}
