package paving

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/quality"
)

// cornerAngle is the interior front angle, in degrees, below which the
// vertex is cut off with a corner triangle before the row is offset.
const cornerAngle = 75.0

// ref names a corner of a row element: a vertex of the current front
// (inner == false) or an offset cluster of the new loop.
type ref struct {
	inner bool
	i     int
}

// row is the accepted part of one layer between the front and its offset.
type row struct {
	inner    []geom.Point
	elements [][]ref // 3 or 4 corners, counter-clockwise
	front    []ref   // the front left behind by elements
}

// Pave meshes poly with rows of quads advancing from the boundary and closes
// the remainder with triangles.
//
// Each row runs in three steps:
//  1. Clip: front vertices sharper than cornerAngle are cut off with a
//     corner triangle.
//  2. Offset: every front vertex moves inward by h; offsets closer than h/2
//     merge, turning the element between them into a triangle.
//  3. Accept: elements are kept one by one while they are well shaped and do
//     not overlap an accepted one; the rest of the front stays in place.
//
// Complexity: O(R · n²) for R rows over a front of n vertices, plus the
// fallback triangulation.
func Pave(poly geom.Polygon, opts ...Option) (*mesh.Mesh, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	h := o.size()
	if h == 0 {
		return nil, ErrNoSize
	}
	p, err := geom.NewPolygon(poly.Name, poly.Points)
	if err != nil {
		return nil, err
	}
	p = p.Densify(h)
	tol := p.Tolerance()
	m := mesh.New(p)
	front := append([]int(nil), m.Boundary...)

	rows := 0
	for o.MaxRows == 0 || rows < o.MaxRows {
		if geom.SignedArea(pointsOf(m, front)) < 2*h*h {
			break
		}
		front = clipCorners(m, front, o.MinAngle, tol)
		r, ok := buildRow(pointsOf(m, front), h, o.MinAngle, tol)
		if !ok {
			break
		}
		if front, err = commit(m, front, r); err != nil {
			return nil, fmt.Errorf("paving: row %d: %w", rows+1, err)
		}
		rows++
	}
	if rows == 0 {
		lvmesh.Logger().Warn("paving: no row fits, falling back to triangles",
			"name", m.Name, "size", h, "front", len(front))
	}
	if err := closeResidual(m, front, h); err != nil {
		return nil, fmt.Errorf("paving: residual: %w", err)
	}
	lvmesh.Logger().Debug("paving: done",
		"name", m.Name, "rows", rows, "quads", len(m.Quads),
		"triangles", len(m.Triangles), "size", h)

	return m, nil
}

func pointsOf(m *mesh.Mesh, idx []int) []geom.Point {
	out := make([]geom.Point, len(idx))
	for i, v := range idx {
		out[i] = m.Vertices[v]
	}

	return out
}

// interiorAngle returns the angle inside a counter-clockwise front at cur,
// in degrees within (0, 360).
func interiorAngle(prev, cur, next geom.Point) float64 {
	u, v := next.Sub(cur), prev.Sub(cur)
	a := math.Atan2(u.X*v.Y-u.Y*v.X, u.Dot(v))
	if a < 0 {
		a += 2 * math.Pi
	}

	return a * 180 / math.Pi
}

// clipCorners replaces every acute front vertex by a corner triangle on its
// two neighbours. The vertex following a cut is left for the next row.
func clipCorners(m *mesh.Mesh, front []int, minAngle float64, tol geom.Tolerance) []int {
	for i := 0; i < len(front) && len(front) > 4; i++ {
		n := len(front)
		p, c, nx := front[(i+n-1)%n], front[i], front[(i+1)%n]
		a, b, d := m.Vertices[p], m.Vertices[c], m.Vertices[nx]
		if interiorAngle(a, b, d) >= cornerAngle || geom.Cross(a, b, d) <= tol.Area ||
			quality.MinAngle(a, b, d) < minAngle || !earClear(m, front, i, tol) {
			continue
		}
		if _, err := m.AddTriangle(p, c, nx); err != nil {
			continue
		}
		front = append(front[:i], front[i+1:]...)
	}

	return front
}

// earClear reports whether the corner triangle at front[i] holds no other
// front vertex and its new edge crosses no front edge.
func earClear(m *mesh.Mesh, front []int, i int, tol geom.Tolerance) bool {
	n := len(front)
	p, c, nx := front[(i+n-1)%n], front[i], front[(i+1)%n]
	a, b, d := m.Vertices[p], m.Vertices[c], m.Vertices[nx]
	for _, v := range front {
		if v == p || v == c || v == nx {
			continue
		}
		x := m.Vertices[v]
		if geom.Cross(a, b, x) >= 0 && geom.Cross(b, d, x) >= 0 && geom.Cross(d, a, x) >= 0 {
			return false
		}
	}
	for k := 0; k < n; k++ {
		u, w := front[k], front[(k+1)%n]
		if u == p || w == p || u == nx || w == nx {
			continue
		}
		if geom.SegmentsIntersect(d, a, m.Vertices[u], m.Vertices[w], tol) {
			return false
		}
	}

	return true
}

// buildRow offsets the front fp by h and keeps the elements that fit.
func buildRow(fp []geom.Point, h, minAngle float64, tol geom.Tolerance) (row, bool) {
	n := len(fp)
	q := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		off, ok := offset(fp[(i+n-1)%n], fp[i], fp[(i+1)%n], h)
		if !ok {
			return row{}, false
		}
		q[i] = off
	}
	cl, centers, ok := cluster(q, h/2)
	if !ok {
		return row{}, false
	}
	r := row{inner: centers}
	outer := geom.Polygon{Points: fp}
	var placed [][]geom.Point
	var walk []ref
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		e := []ref{{false, i}, {false, j}, {true, cl[j]}, {true, cl[i]}}
		if cl[i] == cl[j] {
			e = e[:3]
		}
		pts := r.points(e, fp)
		if !r.fits(e, pts, outer, minAngle, tol) || overlapsAny(pts, placed, tol) {
			walk = append(walk, ref{false, i}, ref{false, j})

			continue
		}
		placed = append(placed, pts)
		r.elements = append(r.elements, e)
		walk = append(walk, ref{false, i}, ref{true, cl[i]}, ref{true, cl[j]}, ref{false, j})
	}
	if len(r.elements) == 0 {
		return row{}, false
	}
	r.front = collapse(walk)
	if len(r.front) < 3 {
		return row{}, false
	}
	loop := geom.Polygon{Points: r.points(r.front, fp)}
	if loop.Validate() != nil || loop.SignedArea() <= 0 {
		return row{}, false
	}

	return r, true
}

// points resolves refs against the front fp and the row's offset loop.
func (r row) points(refs []ref, fp []geom.Point) []geom.Point {
	out := make([]geom.Point, len(refs))
	for k, c := range refs {
		if c.inner {
			out[k] = r.inner[c.i]
		} else {
			out[k] = fp[c.i]
		}
	}

	return out
}

// offset moves cur inward (to the left of the counter-clockwise front) by h
// along the bisector of its two edges.
func offset(prev, cur, next geom.Point, h float64) (geom.Point, bool) {
	d1, d2 := cur.Sub(prev), next.Sub(cur)
	l1, l2 := d1.Norm(), d2.Norm()
	if l1 == 0 || l2 == 0 {
		return geom.Point{}, false
	}
	n1 := geom.Pt(-d1.Y/l1, d1.X/l1)
	n2 := geom.Pt(-d2.Y/l2, d2.X/l2)
	b := n1.Add(n2)
	bl := b.Norm()
	if bl < 1e-9 {
		return geom.Point{}, false
	}
	b = b.Scale(1 / bl)
	c := b.Dot(n1)
	if c < 0.5 {
		c = 0.5
	}

	return cur.Add(b.Scale(h / c)), true
}

// cluster merges runs of consecutive points closer than merge. It returns the
// cluster id of every point and the cluster centroids in loop order.
func cluster(q []geom.Point, merge float64) ([]int, []geom.Point, bool) {
	n := len(q)
	start := -1
	for i := 0; i < n; i++ {
		if geom.Dist(q[(i+n-1)%n], q[i]) >= merge {
			start = i

			break
		}
	}
	if start < 0 {
		return nil, nil, false
	}
	cl := make([]int, n)
	var sums []geom.Point
	var counts []float64
	for s := 0; s < n; s++ {
		i := (start + s) % n
		if s == 0 || geom.Dist(q[(i+n-1)%n], q[i]) >= merge {
			sums = append(sums, geom.Point{})
			counts = append(counts, 0)
		}
		k := len(sums) - 1
		sums[k] = sums[k].Add(q[i])
		counts[k]++
		cl[i] = k
	}
	if len(sums) < 3 {
		return nil, nil, false
	}
	centers := make([]geom.Point, len(sums))
	for k := range sums {
		centers[k] = sums[k].Scale(1 / counts[k])
	}

	return cl, centers, true
}

// fits applies the element acceptance rules against the current front:
// shape and angle floor, offset corners strictly inside, and no new edge
// meeting a front edge away from the element's own front vertices.
func (r row) fits(e []ref, pts []geom.Point, outer geom.Polygon, minAngle float64, tol geom.Tolerance) bool {
	if len(e) == 3 {
		if geom.Cross(pts[0], pts[1], pts[2]) <= tol.Area ||
			quality.MinAngle(pts[0], pts[1], pts[2]) < minAngle {
			return false
		}
	} else {
		q := [4]geom.Point{pts[0], pts[1], pts[2], pts[3]}
		if !quality.QuadConvex(q, tol.Area) || quality.QuadMinJacobian(q) <= 0 ||
			quality.QuadMinAngle(q) < minAngle {
			return false
		}
	}
	for _, c := range e {
		if c.inner && !outer.Contains(r.inner[c.i]) {
			return false
		}
	}
	touches := func(c ref, v int) bool { return !c.inner && c.i == v }
	n, k := len(outer.Points), len(e)
	// Edge 0 lies on the front; the others are new.
	for s := 1; s < k; s++ {
		a, b := e[s], e[(s+1)%k]
		for j := 0; j < n; j++ {
			jn := (j + 1) % n
			if touches(a, j) || touches(a, jn) || touches(b, j) || touches(b, jn) {
				continue
			}
			c, d := outer.Edge(j)
			if geom.SegmentsIntersect(pts[s], pts[(s+1)%k], c, d, tol) {
				return false
			}
		}
	}

	return true
}

// overlapsAny reports whether the convex element pts shares interior with
// any of placed.
func overlapsAny(pts []geom.Point, placed [][]geom.Point, tol geom.Tolerance) bool {
	for _, o := range placed {
		if !separated(pts, o, tol) && !separated(o, pts, tol) {
			return true
		}
	}

	return false
}

// separated reports whether some edge line of convex a has every point of b
// on or right of it. Convex polygons with disjoint interiors always have
// such an edge in a or in b.
func separated(a, b []geom.Point, tol geom.Tolerance) bool {
	for i := range a {
		u, v := a[i], a[(i+1)%len(a)]
		lim := tol.Length * geom.Dist(u, v)
		out := true
		for _, x := range b {
			if geom.Cross(u, v, x) > lim {
				out = false

				break
			}
		}
		if out {
			return true
		}
	}

	return false
}

// collapse folds the walk left by a row into a simple loop: a spoke walked
// out and straight back (a b a) disappears, as do repeated refs.
func collapse(w []ref) []ref {
	for changed := true; changed && len(w) >= 3; {
		changed = false
		n := len(w)
		for i := 0; i < n; i++ {
			a, b, c := w[i], w[(i+1)%n], w[(i+2)%n]
			if a == b {
				w = without(w, (i+1)%n, -1)
				changed = true

				break
			}
			if a == c {
				w = without(w, (i+1)%n, (i+2)%n)
				changed = true

				break
			}
		}
	}

	return w
}

// without returns w minus the entries at positions i and j.
func without(w []ref, i, j int) []ref {
	out := make([]ref, 0, len(w))
	for k, c := range w {
		if k != i && k != j {
			out = append(out, c)
		}
	}

	return out
}

// commit appends the row to m and returns the new front. Offset points are
// added only when an accepted element uses them.
func commit(m *mesh.Mesh, front []int, r row) ([]int, error) {
	ids := make(map[int]int, len(r.inner))
	idx := func(c ref) int {
		if !c.inner {
			return front[c.i]
		}
		v, ok := ids[c.i]
		if !ok {
			v = m.AddVertex(r.inner[c.i])
			ids[c.i] = v
		}

		return v
	}
	for _, e := range r.elements {
		var err error
		if len(e) == 3 {
			_, err = m.AddTriangle(idx(e[0]), idx(e[1]), idx(e[2]))
		} else {
			_, err = m.AddQuad(idx(e[0]), idx(e[1]), idx(e[2]), idx(e[3]))
		}
		if err != nil {
			return nil, err
		}
	}
	next := make([]int, len(r.front))
	for k, c := range r.front {
		next[k] = idx(c)
	}

	return next, nil
}

// closeResidual triangulates the region enclosed by front, seeding interior
// points at spacing h.
func closeResidual(m *mesh.Mesh, front []int, h float64) error {
	t, err := cdt.New(m.Vertices, front)
	if err != nil {
		return err
	}
	rp := geom.Polygon{Points: pointsOf(m, front)}
	for _, s := range delaunay.Lattice(rp, h) {
		if _, err := t.Insert(s); err != nil && !errors.Is(err, cdt.ErrDuplicatePoint) {
			return err
		}
	}
	pts := t.Points()
	m.Vertices = append(m.Vertices, pts[len(m.Vertices):]...)
	m.Triangles = append(m.Triangles, t.Triangles()...)

	return nil
}
