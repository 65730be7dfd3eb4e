package cdt

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Insert adds p as a new vertex and restores the Delaunay property around
// it. It returns the new vertex index.
//
// A point on a boundary segment splits that segment; a point on an interior
// edge splits both adjacent triangles.
func (t *Triangulation) Insert(p geom.Point) (int, error) {
	if !p.Finite() {
		return -1, fmt.Errorf("%w: %v", geom.ErrNonFinite, p)
	}
	id, k, err := t.locate(p)
	if err != nil {
		return -1, err
	}
	v := len(t.pts)
	t.pts = append(t.pts, p)
	if k < 0 {
		t.split3(id, v)
	} else {
		t.splitEdge(id, k, v)
	}

	return v, nil
}

// Locate returns the id of a live triangle containing p (boundary included),
// or -1.
func (t *Triangulation) Locate(p geom.Point) int {
	id, _, err := t.locate(p)
	if err != nil {
		return -1
	}

	return id
}

// locate finds the triangle containing p. k is the local index of the edge
// v[k]→v[k+1] that p lies on, or -1 for a strictly interior point.
//
// Complexity: O(T).
func (t *Triangulation) locate(p geom.Point) (id, k int, err error) {
	for i, s := range t.slots {
		if s.dead {
			continue
		}
		zero, on := 0, -1
		inside := true
		for j := 0; j < 3; j++ {
			o := geom.Orient(t.pts[s.v[j]], t.pts[s.v[(j+1)%3]], p, t.tol)
			if o < 0 {
				inside = false

				break
			}
			if o == 0 {
				zero++
				on = j
			}
		}
		if !inside {
			continue
		}
		for _, v := range s.v {
			if geom.Dist(t.pts[v], p) <= t.tol.Length {
				return -1, -1, fmt.Errorf("%w: vertex %d", ErrDuplicatePoint, v)
			}
		}
		switch zero {
		case 0:
			return i, -1, nil
		case 1:
			return i, on, nil
		default:
			return -1, -1, ErrDuplicatePoint
		}
	}

	return -1, -1, fmt.Errorf("%w: (%g, %g)", ErrPointOutside, p.X, p.Y)
}

// split3 replaces triangle id by three triangles fanning from vertex p.
func (t *Triangulation) split3(id, p int) {
	v := t.slots[id].v
	a, b, c := v[0], v[1], v[2]
	t.removeTri(id)
	t.addTri(a, b, p)
	t.addTri(b, c, p)
	t.addTri(c, a, p)
	t.legalize([]edge{{a, b}, {b, c}, {c, a}})
}

// splitEdge inserts p on edge v[k]→v[k+1] of triangle id, splitting the
// neighbour across it as well when one exists.
func (t *Triangulation) splitEdge(id, k, p int) {
	v := t.slots[id].v
	a, b, c := v[k], v[(k+1)%3], v[(k+2)%3]
	u, hasU := t.half[edge{b, a}]
	d := -1
	if hasU {
		d = t.third(u, b, a)
		t.removeTri(u)
	}
	t.removeTri(id)
	t.addTri(a, p, c)
	t.addTri(p, b, c)
	stack := []edge{{c, a}, {b, c}}
	if hasU {
		t.addTri(b, p, d)
		t.addTri(p, a, d)
		stack = append(stack, edge{d, b}, edge{a, d})
	}
	if key := (edge{a, b}).key(); t.isFixed(key) {
		delete(t.fixed, key)
		t.fixed[edge{a, p}.key()] = struct{}{}
		t.fixed[edge{p, b}.key()] = struct{}{}
		t.ringInsert(a, b, p)
	}
	t.legalize(stack)
}

func (t *Triangulation) isFixed(key edge) bool {
	_, ok := t.fixed[key]

	return ok
}

// ringInsert places p between the ring neighbours a and b.
func (t *Triangulation) ringInsert(a, b, p int) {
	n := len(t.ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if (t.ring[i] == a && t.ring[j] == b) || (t.ring[i] == b && t.ring[j] == a) {
			t.ring = append(t.ring, 0)
			copy(t.ring[i+2:], t.ring[i+1:])
			t.ring[i+1] = p

			return
		}
	}
}

// SplitSegment inserts the midpoint of boundary segment (a, b) and returns
// its index.
func (t *Triangulation) SplitSegment(a, b int) (int, error) {
	if !t.IsSegment(a, b) {
		return -1, fmt.Errorf("%w: (%d, %d)", ErrNotSegment, a, b)
	}
	id, ok := t.half[edge{a, b}]
	if !ok {
		a, b = b, a
		if id, ok = t.half[edge{a, b}]; !ok {
			return -1, fmt.Errorf("%w: segment (%d, %d) has no triangle", ErrBadTopology, a, b)
		}
	}
	mid := geom.Midpoint(t.pts[a], t.pts[b])
	if geom.Dist(mid, t.pts[a]) <= t.tol.Length {
		return -1, fmt.Errorf("%w: segment (%d, %d) too short to split", ErrDuplicatePoint, a, b)
	}
	k := 0
	for k < 3 && t.slots[id].v[k] != a {
		k++
	}
	p := len(t.pts)
	t.pts = append(t.pts, mid)
	t.splitEdge(id, k, p)

	return p, nil
}

// legalize flips non-Delaunay unconstrained edges until the stack drains.
// Each stack entry is a directed edge (x, y) whose owner is (x, y, c); the
// edge is illegal when the opposite vertex d lies strictly inside the
// circumcircle of (x, y, c).
func (t *Triangulation) legalize(stack []edge) {
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := e[0], e[1]
		id, ok := t.half[e]
		if !ok || t.isFixed(e.key()) {
			continue
		}
		u, ok := t.half[edge{y, x}]
		if !ok {
			continue
		}
		c := t.third(id, x, y)
		d := t.third(u, y, x)
		px, py, pc, pd := t.pts[x], t.pts[y], t.pts[c], t.pts[d]
		if !geom.InCircumcircle(px, py, pc, pd) {
			continue
		}
		// The quad x-d-y-c must be strictly convex for the flip to be valid.
		if geom.Cross(px, pd, pc) <= t.tol.Area || geom.Cross(pd, py, pc) <= t.tol.Area {
			continue
		}
		t.removeTri(id)
		t.removeTri(u)
		t.addTri(x, d, c)
		t.addTri(d, y, c)
		stack = append(stack, edge{x, d}, edge{d, y}, edge{y, c}, edge{c, x})
	}
}

// legalizeAll runs legalize over every edge, in triangle-id order.
func (t *Triangulation) legalizeAll() {
	stack := make([]edge, 0, 3*t.Len())
	t.Each(func(_ int, tri mesh.Triangle) {
		stack = append(stack, edge{tri[0], tri[1]}, edge{tri[1], tri[2]}, edge{tri[2], tri[0]})
	})
	t.legalize(stack)
}

// Legalize re-runs edge flipping over the whole triangulation. It is a no-op
// on a triangulation that is already constrained Delaunay.
func (t *Triangulation) Legalize() { t.legalizeAll() }
