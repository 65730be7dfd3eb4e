package delaunay_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

const epsArea = 1e-6

func poly(t *testing.T, pts ...geom.Point) geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon("p", pts)
	require.NoError(t, err)

	return p
}

func square(t *testing.T) geom.Polygon {
	return poly(t, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100))
}

// checkTriangulation asserts the structural guarantees every output shares.
func checkTriangulation(t *testing.T, m *mesh.Mesh, area float64) {
	t.Helper()
	require.NoError(t, m.Validate())
	assert.Empty(t, m.Quads)
	assert.InDelta(t, area, m.Area(), epsArea*area)
	n := len(m.Boundary)
	k := len(m.Vertices) - n
	assert.Equal(t, n+2*k-2, len(m.Triangles))
}

func TestTriangulate_Square(t *testing.T) {
	m, err := delaunay.Triangulate(square(t))
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 2)
	assert.Len(t, m.Vertices, 4)
	checkTriangulation(t, m, 10000)
	for _, tri := range m.Triangles {
		a, b, c := m.TrianglePoints(tri)
		assert.Greater(t, geom.Cross(a, b, c), 0.0)
	}
}

func TestTriangulate_ConvexNoSteiner(t *testing.T) {
	// Regular hexagon: n−2 triangles with positive orientation.
	var pts []geom.Point
	for i := 0; i < 6; i++ {
		th := float64(i) * math.Pi / 3
		pts = append(pts, geom.Pt(10*math.Cos(th), 10*math.Sin(th)))
	}
	m, err := delaunay.Triangulate(poly(t, pts...))
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 4)
	checkTriangulation(t, m, poly(t, pts...).Area())
}

func TestTriangulate_MaxArea(t *testing.T) {
	m, err := delaunay.Triangulate(square(t), delaunay.WithMaxArea(200))
	require.NoError(t, err)
	checkTriangulation(t, m, 10000)
	assert.Len(t, m.Boundary, 20)
	assert.Greater(t, len(m.Vertices), len(m.Boundary))

	l := delaunay.TargetEdge(200)
	p := square(t)
	for v := len(m.Boundary); v < len(m.Vertices); v++ {
		d, _ := p.BoundaryDist(m.Vertices[v])
		assert.GreaterOrEqual(t, d, l/2-1e-9)
	}
	for i := 0; i < len(m.Boundary); i++ {
		a := m.Vertices[m.Boundary[i]]
		b := m.Vertices[m.Boundary[(i+1)%len(m.Boundary)]]
		assert.LessOrEqual(t, geom.Dist(a, b), l+1e-9)
	}
}

func TestTriangulate_WithoutBoundaryRefinement(t *testing.T) {
	m, err := delaunay.Triangulate(square(t),
		delaunay.WithMaxArea(200), delaunay.WithBoundaryRefinement(false))
	require.NoError(t, err)
	assert.Len(t, m.Boundary, 4)
	checkTriangulation(t, m, 10000)
}

func TestTriangulate_DensityAndLShape(t *testing.T) {
	l := poly(t, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 50),
		geom.Pt(50, 50), geom.Pt(50, 100), geom.Pt(0, 100))
	m, err := delaunay.Triangulate(l, delaunay.WithDensity(10))
	require.NoError(t, err)
	checkTriangulation(t, m, 7500)
	for v := len(m.Boundary); v < len(m.Vertices); v++ {
		assert.True(t, l.Contains(m.Vertices[v]))
	}
}

func TestTriangulate_ClockwiseInput(t *testing.T) {
	cw := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}}}
	m, err := delaunay.Triangulate(cw, delaunay.WithMaxArea(500))
	require.NoError(t, err)
	checkTriangulation(t, m, 10000)
}

func TestTriangulate_InteriorPoints(t *testing.T) {
	m, err := delaunay.Triangulate(square(t),
		delaunay.WithInteriorPoints(geom.Pt(50, 50), geom.Pt(200, 200), geom.Pt(0, 50)))
	require.NoError(t, err)
	// Only the centre is strictly inside.
	assert.Len(t, m.Vertices, 5)
	assert.Len(t, m.Triangles, 4)
	checkTriangulation(t, m, 10000)
}

func TestTriangulate_InvalidPolygon(t *testing.T) {
	_, err := delaunay.Triangulate(geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}})
	require.ErrorIs(t, err, geom.ErrTooFewPoints)

	bowtie := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 1}}}
	_, err = delaunay.Triangulate(bowtie)
	require.ErrorIs(t, err, geom.ErrGeometry)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { delaunay.WithMaxArea(-1) })
	assert.Panics(t, func() { delaunay.WithDensity(math.NaN()) })
	assert.NotPanics(t, func() { delaunay.WithMaxArea(0) })
}

func TestLattice(t *testing.T) {
	p := square(t)
	assert.Nil(t, delaunay.Lattice(p, 0))
	pts := delaunay.Lattice(p, 20)
	require.NotEmpty(t, pts)
	for _, q := range pts {
		d, _ := p.BoundaryDist(q)
		assert.GreaterOrEqual(t, d, 10.0-1e-9)
	}
	assert.InDelta(t, 20.0, delaunay.TargetEdge(100*math.Sqrt(3)), 1e-9)
}
