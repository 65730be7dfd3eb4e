package paving_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/paving"
	"github.com/katalvlaran/lvmesh/quality"
)

func square() geom.Polygon {
	return geom.Polygon{Name: "sq", Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}}
}

func TestPave_SquareHasQuads(t *testing.T) {
	m, err := paving.Pave(square(), paving.WithMaxArea(300))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.NotEmpty(t, m.Quads)
	assert.NotEmpty(t, m.Triangles)
	assert.InDelta(t, 10000.0, m.Area(), 1e-6)
	assert.Equal(t, "sq", m.Name)

	for _, q := range m.Quads {
		assert.Greater(t, quality.QuadMinJacobian(m.QuadPoints(q)), 0.0)
	}
	st := m.Stats(quality.Angle)
	assert.Equal(t, len(m.Quads), st.Quads)
	assert.Greater(t, st.QuadQuality.Min, 0.0)
}

func TestPave_BoundaryIsDensifiedRing(t *testing.T) {
	m, err := paving.Pave(square(), paving.WithDensity(20))
	require.NoError(t, err)
	assert.Len(t, m.Boundary, 20)
	for i, v := range m.Boundary {
		assert.Equal(t, i, v)
	}
	assert.InDelta(t, 10000.0, m.Area(), 1e-6)
}

func TestPave_OneRow(t *testing.T) {
	m, err := paving.Pave(square(), paving.WithDensity(20), paving.WithMaxRows(1))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	// Each boundary edge yields one element of the row: 12 quads plus two
	// triangles at each corner, where the offsets merge.
	assert.Len(t, m.Quads, 12)
	assert.Equal(t, 8, countRowTriangles(m.Triangles, m.Boundary))
	assert.InDelta(t, 10000.0, m.Area(), 1e-6)
}

// countRowTriangles counts triangles with an edge on the boundary ring.
func countRowTriangles(tris []mesh.Triangle, boundary []int) int {
	on := make(map[[2]int]bool)
	for i := range boundary {
		on[[2]int{boundary[i], boundary[(i+1)%len(boundary)]}] = true
	}
	n := 0
	for _, t := range tris {
		for k := 0; k < 3; k++ {
			if on[[2]int{t[k], t[(k+1)%3]}] {
				n++

				break
			}
		}
	}

	return n
}

func TestPave_LShape(t *testing.T) {
	l := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 50, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 100}}}
	m, err := paving.Pave(l, paving.WithDensity(10), paving.WithMinAngle(20))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.NotEmpty(t, m.Quads)
	assert.InDelta(t, 7500.0, m.Area(), 1e-6)
}

func TestPave_AcuteTriangleHasQuads(t *testing.T) {
	tri := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}}}
	for _, area := range []float64{25, 100} {
		for _, minAngle := range []float64{0, 20} {
			m, err := paving.Pave(tri, paving.WithMaxArea(area), paving.WithMinAngle(minAngle))
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.NotEmpty(t, m.Quads, "max area %v, min angle %v", area, minAngle)
			assert.InDelta(t, 5000.0, m.Area(), 1e-6)
			for _, q := range m.Quads {
				assert.True(t, quality.QuadConvex(m.QuadPoints(q), 0))
			}
		}
	}
}

func TestPave_TrapezoidIsQuadDominant(t *testing.T) {
	trap := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 70, Y: 50}, {X: 30, Y: 50}}}
	m, err := paving.Pave(trap, paving.WithMaxArea(25))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Greater(t, len(m.Quads), len(m.Triangles))
	assert.InDelta(t, 3500.0, m.Area(), 1e-6)
}

func TestPave_AcuteTriangleIsQuadDominant(t *testing.T) {
	tri := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}}}
	m, err := paving.Pave(tri, paving.WithMaxArea(25))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Greater(t, len(m.Quads), len(m.Triangles))
}

func TestPave_WarnsWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	lvmesh.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { lvmesh.SetLogger(nil) })

	_, err := paving.Pave(square(), paving.WithMaxArea(300))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = paving.Pave(square(), paving.WithMaxArea(300), paving.WithMinAngle(60))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "paving: no row fits")
}

func TestPave_SmallDomainFallsBackToTriangles(t *testing.T) {
	tri := geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}}
	m, err := paving.Pave(tri, paving.WithDensity(20))
	require.NoError(t, err)
	assert.Empty(t, m.Quads)
	assert.Len(t, m.Triangles, 1)
	assert.InDelta(t, 40.0, m.Area(), 1e-9)
}

func TestPave_StrictAngleRejectsRows(t *testing.T) {
	m, err := paving.Pave(square(), paving.WithMaxArea(300), paving.WithMinAngle(60))
	require.NoError(t, err)
	assert.Empty(t, m.Quads)
	assert.InDelta(t, 10000.0, m.Area(), 1e-6)
}

func TestPave_Errors(t *testing.T) {
	_, err := paving.Pave(square())
	require.ErrorIs(t, err, paving.ErrNoSize)

	_, err = paving.Pave(geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}, paving.WithDensity(1))
	require.ErrorIs(t, err, geom.ErrTooFewPoints)

	assert.Panics(t, func() { paving.WithMaxArea(-1) })
	assert.Panics(t, func() { paving.WithMinAngle(90) })
}
