package smooth

import (
	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Result reports what Smooth did.
type Result struct {
	Passes     int `json:"passes"`
	Moved      int `json:"moved"`       // vertex moves kept, summed over passes
	RolledBack int `json:"rolled_back"` // vertex moves undone, summed over passes
}

// Smooth runs passes Jacobi passes over m in place. passes <= 0 or a nil
// mesh is a no-op.
//
// Complexity: O(passes · (V + E)).
func Smooth(m *mesh.Mesh, passes int) Result {
	var res Result
	if m == nil || passes <= 0 {
		return res
	}
	fixed := m.BoundaryMask()
	nb := m.Neighbors()
	inc := m.Incidence()
	tol := m.Tolerance().Area
	old := make([]geom.Point, len(m.Vertices))
	moved := make([]bool, len(m.Vertices))

	for pass := 0; pass < passes; pass++ {
		// 1) Snapshot.
		copy(old, m.Vertices)
		// 2) Move interior vertices to their neighbour centroid.
		for v := range m.Vertices {
			moved[v] = false
			if fixed[v] || len(nb[v]) == 0 {
				continue
			}
			var c geom.Point
			for _, w := range nb[v] {
				c = c.Add(old[w])
			}
			m.Vertices[v] = c.Scale(1 / float64(len(nb[v])))
			moved[v] = m.Vertices[v] != old[v]
		}
		// 3) Undo moves that inverted an element.
		kept, undone := rollback(m, inc, moved, old, tol)
		res.Moved += kept
		res.RolledBack += undone
		res.Passes++
	}
	lvmesh.Logger().Debug("smooth: done",
		"name", m.Name, "passes", res.Passes, "moved", res.Moved, "rolled_back", res.RolledBack)

	return res
}

// rollback restores moved corners of inverted elements until none remain.
// Each sweep restores at least one vertex, so it ends within V sweeps.
func rollback(m *mesh.Mesh, inc [][]mesh.ElementRef, moved []bool, old []geom.Point, tol float64) (kept, undone int) {
	for {
		restored := 0
		for v, mv := range moved {
			if !mv {
				continue
			}
			for _, e := range inc[v] {
				if m.ElementValid(e, tol) {
					continue
				}
				restored += restoreElement(m, e, moved, old)
			}
		}
		undone += restored
		if restored == 0 {
			break
		}
	}
	for _, mv := range moved {
		if mv {
			kept++
		}
	}

	return kept, undone
}

func restoreElement(m *mesh.Mesh, e mesh.ElementRef, moved []bool, old []geom.Point) int {
	var corners []int
	if e.Quad {
		q := m.Quads[e.Index]
		corners = q[:]
	} else {
		t := m.Triangles[e.Index]
		corners = t[:]
	}
	n := 0
	for _, v := range corners {
		if moved[v] {
			m.Vertices[v] = old[v]
			moved[v] = false
			n++
		}
	}

	return n
}
