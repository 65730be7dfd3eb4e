package cdt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

const epsArea = 1e-9

func ringOf(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}

	return r
}

func square() []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func requireValid(t *testing.T, tr *cdt.Triangulation) *mesh.Mesh {
	t.Helper()
	m := tr.ToMesh("t")
	require.NoError(t, m.Validate())
	assert.Zero(t, tr.IllegalEdges())

	return m
}

func TestNew_Square(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	m := requireValid(t, tr)
	assert.InDelta(t, 10000.0, m.Area(), epsArea)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Boundary)
}

func TestNew_ClockwiseRingIsReversed(t *testing.T) {
	tr, err := cdt.New(square(), []int{3, 2, 1, 0})
	require.NoError(t, err)
	m := requireValid(t, tr)
	assert.InDelta(t, 10000.0, m.Area(), epsArea)
}

func TestNew_LShapeAndDensified(t *testing.T) {
	l := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 50, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 100}}
	tr, err := cdt.New(l, ringOf(6))
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Len())
	m := requireValid(t, tr)
	assert.InDelta(t, 7500.0, m.Area(), epsArea)

	poly, err := geom.NewPolygon("", square())
	require.NoError(t, err)
	d := poly.Densify(20)
	tr, err = cdt.New(d.Points, ringOf(d.Len()))
	require.NoError(t, err)
	assert.Equal(t, d.Len()-2, tr.Len())
	m = requireValid(t, tr)
	assert.InDelta(t, 10000.0, m.Area(), epsArea)
}

func TestNew_Errors(t *testing.T) {
	_, err := cdt.New(square(), []int{0, 1})
	require.ErrorIs(t, err, cdt.ErrNoEar)

	_, err = cdt.New(square(), []int{0, 1, 7})
	require.ErrorIs(t, err, mesh.ErrIndexOutOfRange)

	bowtie := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	_, err = cdt.New(bowtie, ringOf(4))
	require.ErrorIs(t, err, mesh.ErrMesh)
}

func TestInsert_Interior(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	v, err := tr.Insert(geom.Pt(30, 40))
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, tr.Len())
	_, err = tr.Insert(geom.Pt(70, 60))
	require.NoError(t, err)
	assert.Equal(t, 6, tr.Len())
	m := requireValid(t, tr)
	assert.InDelta(t, 10000.0, m.Area(), epsArea)
}

func TestInsert_OnInteriorEdge(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	// The center lies on the diagonal of either 2-triangle split.
	_, err = tr.Insert(geom.Pt(50, 50))
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Len())
	requireValid(t, tr)
}

func TestInsert_OnBoundarySplitsSegment(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	v, err := tr.Insert(geom.Pt(50, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []int{0, v, 1, 2, 3}, tr.Ring())
	assert.True(t, tr.IsSegment(0, v))
	assert.True(t, tr.IsSegment(v, 1))
	assert.False(t, tr.IsSegment(0, 1))
	requireValid(t, tr)
}

func TestInsert_Errors(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	_, err = tr.Insert(geom.Pt(150, 50))
	require.ErrorIs(t, err, cdt.ErrPointOutside)
	_, err = tr.Insert(geom.Pt(100, 100))
	require.ErrorIs(t, err, cdt.ErrDuplicatePoint)
	assert.Equal(t, -1, tr.Locate(geom.Pt(-1, -1)))
	assert.GreaterOrEqual(t, tr.Locate(geom.Pt(10, 10)), 0)
}

func TestSplitSegment(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	v, err := tr.SplitSegment(3, 0)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(0, 50), tr.Points()[v])
	assert.Equal(t, []int{0, 1, 2, 3, v}, tr.Ring())
	assert.Len(t, tr.Segments(), 5)
	requireValid(t, tr)

	_, err = tr.SplitSegment(0, 2)
	require.ErrorIs(t, err, cdt.ErrNotSegment)
}

func TestFromMesh_RoundTrip(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	_, err = tr.Insert(geom.Pt(25, 60))
	require.NoError(t, err)
	m := tr.ToMesh("rt")

	back, err := cdt.FromMesh(m)
	require.NoError(t, err)
	assert.Equal(t, tr.Len(), back.Len())
	assert.ElementsMatch(t, m.Triangles, back.Triangles())
	assert.True(t, back.IsSegment(1, 2))

	_, err = back.Insert(geom.Pt(75, 20))
	require.NoError(t, err)
	requireValid(t, back)
}

func TestFromMesh_Errors(t *testing.T) {
	_, err := cdt.FromMesh(nil)
	require.ErrorIs(t, err, mesh.ErrNilMesh)

	poly, err := geom.NewPolygon("", square())
	require.NoError(t, err)
	m := mesh.New(poly)
	_, err = m.AddQuad(0, 1, 2, 3)
	require.NoError(t, err)
	_, err = cdt.FromMesh(m)
	require.ErrorIs(t, err, mesh.ErrQuadElements)

	m = mesh.New(poly)
	m.Triangles = []mesh.Triangle{{0, 1, 2}, {0, 1, 3}}
	_, err = cdt.FromMesh(m)
	require.ErrorIs(t, err, cdt.ErrBadTopology)
}

func TestLegalize_ManyPoints(t *testing.T) {
	tr, err := cdt.New(square(), ringOf(4))
	require.NoError(t, err)
	for i := 1; i < 10; i++ {
		for j := 1; j < 10; j++ {
			// Staggered lattice avoids exact cocircularity.
			x := float64(i)*10 + float64(j%3)
			y := float64(j)*10 + float64(i%2)
			_, err := tr.Insert(geom.Pt(x, y))
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 4+2*81-2, tr.Len())
	tr.Legalize()
	m := requireValid(t, tr)
	assert.InDelta(t, 10000.0, m.Area(), 1e-6)
}
