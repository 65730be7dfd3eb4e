package cdt

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// edge is a directed vertex pair.
type edge [2]int

// key returns the undirected form of e.
func (e edge) key() edge {
	if e[0] > e[1] {
		return edge{e[1], e[0]}
	}

	return e
}

type slot struct {
	v    [3]int
	dead bool
}

// Triangulation is a mutable constrained Delaunay triangulation.
// It is not safe for concurrent use.
type Triangulation struct {
	pts   []geom.Point
	slots []slot
	free  []int
	half  map[edge]int
	fixed map[edge]struct{}
	ring  []int
	tol   geom.Tolerance
}

// New triangulates the polygon whose boundary is ring (indices into pts).
// Vertices of pts that are not on the ring are kept in the vertex buffer but
// not triangulated; use Insert to add interior points. pts is copied.
func New(pts []geom.Point, ring []int) (*Triangulation, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("%w: ring has %d vertices", ErrNoEar, len(ring))
	}
	t := newEmpty(pts, ring)
	for _, v := range t.ring {
		if v < 0 || v >= len(t.pts) {
			return nil, fmt.Errorf("%w: ring vertex %d", mesh.ErrIndexOutOfRange, v)
		}
	}
	ringPts := make([]geom.Point, len(t.ring))
	for i, v := range t.ring {
		ringPts[i] = t.pts[v]
	}
	if geom.SignedArea(ringPts) < 0 {
		for i, j := 0, len(t.ring)-1; i < j; i, j = i+1, j-1 {
			t.ring[i], t.ring[j] = t.ring[j], t.ring[i]
		}
	}
	t.tol = geom.NewTolerance(geom.ScaleOf(ringPts))
	if err := t.earClip(); err != nil {
		return nil, err
	}
	t.constrainRing()
	t.legalizeAll()

	return t, nil
}

// FromMesh rebuilds a triangulation from a triangle-only mesh. The mesh's
// Boundary ring becomes the constrained segment set.
func FromMesh(m *mesh.Mesh) (*Triangulation, error) {
	if m == nil {
		return nil, mesh.ErrNilMesh
	}
	if len(m.Quads) > 0 {
		return nil, mesh.ErrQuadElements
	}
	t := newEmpty(m.Vertices, m.Boundary)
	t.tol = m.Tolerance()
	for i, tri := range m.Triangles {
		for k := 0; k < 3; k++ {
			if _, dup := t.half[edge{tri[k], tri[(k+1)%3]}]; dup {
				return nil, fmt.Errorf("%w: triangle %d repeats directed edge", ErrBadTopology, i)
			}
		}
		t.addTri(tri[0], tri[1], tri[2])
	}
	t.constrainRing()

	return t, nil
}

func newEmpty(pts []geom.Point, ring []int) *Triangulation {
	return &Triangulation{
		pts:   append([]geom.Point(nil), pts...),
		half:  make(map[edge]int),
		fixed: make(map[edge]struct{}),
		ring:  append([]int(nil), ring...),
	}
}

func (t *Triangulation) constrainRing() {
	n := len(t.ring)
	for i := 0; i < n; i++ {
		t.fixed[edge{t.ring[i], t.ring[(i+1)%n]}.key()] = struct{}{}
	}
}

// Points returns the vertex buffer. The slice is owned by t; do not modify it.
func (t *Triangulation) Points() []geom.Point { return t.pts }

// Ring returns a copy of the boundary ring in counter-clockwise order,
// including vertices added by SplitSegment.
func (t *Triangulation) Ring() []int { return append([]int(nil), t.ring...) }

// Tolerance returns the tolerances used by t.
func (t *Triangulation) Tolerance() geom.Tolerance { return t.tol }

// Len returns the number of live triangles.
func (t *Triangulation) Len() int { return len(t.slots) - len(t.free) }

// IsSegment reports whether (a, b) is a constrained boundary segment.
func (t *Triangulation) IsSegment(a, b int) bool {
	_, ok := t.fixed[edge{a, b}.key()]

	return ok
}

// Segments returns the boundary segments in ring order.
func (t *Triangulation) Segments() [][2]int {
	n := len(t.ring)
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{t.ring[i], t.ring[(i+1)%n]}
	}

	return out
}

// Each calls fn for every live triangle in id order. Ids are stable until the
// next mutation.
func (t *Triangulation) Each(fn func(id int, tri mesh.Triangle)) {
	for id, s := range t.slots {
		if !s.dead {
			fn(id, mesh.Triangle(s.v))
		}
	}
}

// Triangles returns the live triangles in id order.
func (t *Triangulation) Triangles() []mesh.Triangle {
	out := make([]mesh.Triangle, 0, t.Len())
	t.Each(func(_ int, tri mesh.Triangle) { out = append(out, tri) })

	return out
}

// ToMesh exports the triangulation as a new mesh named name.
func (t *Triangulation) ToMesh(name string) *mesh.Mesh {
	return &mesh.Mesh{
		Name:      name,
		Vertices:  append([]geom.Point(nil), t.pts...),
		Triangles: t.Triangles(),
		Boundary:  t.Ring(),
	}
}

// addTri stores the counter-clockwise triangle (a, b, c).
func (t *Triangulation) addTri(a, b, c int) int {
	var id int
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = slot{v: [3]int{a, b, c}}
	} else {
		id = len(t.slots)
		t.slots = append(t.slots, slot{v: [3]int{a, b, c}})
	}
	t.half[edge{a, b}] = id
	t.half[edge{b, c}] = id
	t.half[edge{c, a}] = id

	return id
}

func (t *Triangulation) removeTri(id int) {
	v := t.slots[id].v
	for k := 0; k < 3; k++ {
		e := edge{v[k], v[(k+1)%3]}
		if t.half[e] == id {
			delete(t.half, e)
		}
	}
	t.slots[id].dead = true
	t.free = append(t.free, id)
}

// third returns the vertex of triangle id that is neither a nor b.
func (t *Triangulation) third(id, a, b int) int {
	for _, v := range t.slots[id].v {
		if v != a && v != b {
			return v
		}
	}

	return -1
}

// earClip triangulates the boundary ring by repeatedly cutting convex ears
// that contain no other ring vertex (boundary included).
func (t *Triangulation) earClip() error {
	idx := append([]int(nil), t.ring...)
	start := 0
	for len(idx) > 3 {
		n := len(idx)
		clipped := false
		for k := 0; k < n; k++ {
			i := (start + k) % n
			p, c, nx := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if !t.isEar(idx, p, c, nx) {
				continue
			}
			t.addTri(p, c, nx)
			idx = append(idx[:i], idx[i+1:]...)
			start = i % len(idx)
			clipped = true

			break
		}
		if !clipped {
			return fmt.Errorf("%w: %d vertices left", ErrNoEar, len(idx))
		}
	}
	if geom.Cross(t.pts[idx[0]], t.pts[idx[1]], t.pts[idx[2]]) <= t.tol.Area {
		return fmt.Errorf("%w: final triangle is degenerate", ErrNoEar)
	}
	t.addTri(idx[0], idx[1], idx[2])

	return nil
}

func (t *Triangulation) isEar(idx []int, p, c, n int) bool {
	a, b, d := t.pts[p], t.pts[c], t.pts[n]
	if geom.Cross(a, b, d) <= t.tol.Area {
		return false
	}
	for _, v := range idx {
		if v == p || v == c || v == n {
			continue
		}
		q := t.pts[v]
		if geom.Orient(a, b, q, t.tol) >= 0 &&
			geom.Orient(b, d, q, t.tol) >= 0 &&
			geom.Orient(d, a, q, t.tol) >= 0 {
			return false
		}
	}

	return true
}

// IllegalEdges counts unconstrained interior edges that violate the empty
// circumcircle condition. Zero for a constrained Delaunay triangulation.
func (t *Triangulation) IllegalEdges() int {
	n := 0
	for e, id := range t.half {
		if e[0] > e[1] || t.isFixed(e.key()) {
			continue
		}
		u, ok := t.half[edge{e[1], e[0]}]
		if !ok {
			continue
		}
		c := t.third(id, e[0], e[1])
		d := t.third(u, e[1], e[0])
		if geom.InCircumcircle(t.pts[e[0]], t.pts[e[1]], t.pts[c], t.pts[d]) {
			n++
		}
	}

	return n
}
