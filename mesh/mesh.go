package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/quality"
)

// Triangle holds three vertex indices in counter-clockwise order.
type Triangle [3]int

// Quad holds four vertex indices in counter-clockwise order.
type Quad [4]int

// Mesh is an indexed 2D mesh of triangles and quads.
type Mesh struct {
	Name      string
	Vertices  []geom.Point
	Triangles []Triangle
	Quads     []Quad
	Boundary  []int
}

// New returns a mesh whose vertices and boundary ring are the points of poly.
func New(poly geom.Polygon) *Mesh {
	m := &Mesh{
		Name:     poly.Name,
		Vertices: append([]geom.Point(nil), poly.Points...),
		Boundary: make([]int, len(poly.Points)),
	}
	for i := range m.Boundary {
		m.Boundary[i] = i
	}

	return m
}

// AddVertex appends p and returns its index.
func (m *Mesh) AddVertex(p geom.Point) int {
	m.Vertices = append(m.Vertices, p)

	return len(m.Vertices) - 1
}

// Tolerance returns the tolerances for the scale of the vertex buffer.
func (m *Mesh) Tolerance() geom.Tolerance {
	return geom.NewTolerance(geom.ScaleOf(m.Vertices))
}

// AddTriangle appends triangle (a,b,c), reversing it when clockwise, and
// returns its index.
func (m *Mesh) AddTriangle(a, b, c int) (int, error) {
	if err := m.checkIndices(a, b, c); err != nil {
		return -1, err
	}
	j := geom.Cross(m.Vertices[a], m.Vertices[b], m.Vertices[c])
	if math.Abs(j) <= m.Tolerance().Area {
		return -1, fmt.Errorf("%w: triangle (%d,%d,%d)", ErrDegenerateElement, a, b, c)
	}
	if j < 0 {
		b, c = c, b
	}
	m.Triangles = append(m.Triangles, Triangle{a, b, c})

	return len(m.Triangles) - 1, nil
}

// AddQuad appends quad (a,b,c,d), reversing it when clockwise, and returns
// its index. Non-convex quads are rejected.
func (m *Mesh) AddQuad(a, b, c, d int) (int, error) {
	if err := m.checkIndices(a, b, c, d); err != nil {
		return -1, err
	}
	q := Quad{a, b, c, d}
	qp := m.quadPoints(q)
	if geom.SignedArea(qp[:]) < 0 {
		q = Quad{a, d, c, b}
	}
	if !quality.QuadConvex(m.quadPoints(q), m.Tolerance().Area) {
		return -1, fmt.Errorf("%w: quad (%d,%d,%d,%d) is not convex", ErrDegenerateElement, a, b, c, d)
	}
	m.Quads = append(m.Quads, q)

	return len(m.Quads) - 1, nil
}

func (m *Mesh) checkIndices(idx ...int) error {
	for i, v := range idx {
		if v < 0 || v >= len(m.Vertices) {
			return fmt.Errorf("%w: %d (have %d vertices)", ErrIndexOutOfRange, v, len(m.Vertices))
		}
		for _, w := range idx[:i] {
			if v == w {
				return fmt.Errorf("%w: %v", ErrDuplicateIndex, idx)
			}
		}
	}

	return nil
}

// TrianglePoints returns the corner coordinates of triangle t.
func (m *Mesh) TrianglePoints(t Triangle) (geom.Point, geom.Point, geom.Point) {
	return m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
}

// QuadPoints returns the corner coordinates of quad q.
func (m *Mesh) QuadPoints(q Quad) [4]geom.Point { return m.quadPoints(q) }

func (m *Mesh) quadPoints(q Quad) [4]geom.Point {
	return [4]geom.Point{m.Vertices[q[0]], m.Vertices[q[1]], m.Vertices[q[2]], m.Vertices[q[3]]}
}

// Validate re-checks every element: indices in range, distinct corners and a
// positive Jacobian. It does not reorder anything.
func (m *Mesh) Validate() error {
	if m == nil {
		return ErrNilMesh
	}
	for i, t := range m.Triangles {
		if err := m.checkIndices(t[0], t[1], t[2]); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
		if quality.Jacobian(m.TrianglePoints(t)) <= 0 {
			return fmt.Errorf("%w: triangle %d", ErrInverted, i)
		}
	}
	for i, q := range m.Quads {
		if err := m.checkIndices(q[0], q[1], q[2], q[3]); err != nil {
			return fmt.Errorf("quad %d: %w", i, err)
		}
		if quality.QuadMinJacobian(m.quadPoints(q)) <= 0 {
			return fmt.Errorf("%w: quad %d", ErrInverted, i)
		}
	}
	for _, b := range m.Boundary {
		if b < 0 || b >= len(m.Vertices) {
			return fmt.Errorf("boundary: %w: %d", ErrIndexOutOfRange, b)
		}
	}

	return nil
}

// ElementCount returns the number of triangles plus quads.
func (m *Mesh) ElementCount() int { return len(m.Triangles) + len(m.Quads) }

// Area returns the summed element area.
func (m *Mesh) Area() float64 {
	var s float64
	for _, t := range m.Triangles {
		s += quality.TriangleArea(m.TrianglePoints(t))
	}
	for _, q := range m.Quads {
		s += quality.QuadArea(m.quadPoints(q))
	}

	return s
}

// BoundaryMask returns mask[v] == true for every boundary vertex: those
// listed in Boundary and every endpoint of a free edge, so a mesh with an
// empty or partial Boundary still pins its hull.
func (m *Mesh) BoundaryMask() []bool {
	mask := make([]bool, len(m.Vertices))
	for _, b := range m.Boundary {
		if b >= 0 && b < len(mask) {
			mask[b] = true
		}
	}
	for _, e := range m.FreeEdges() {
		for _, v := range e {
			if v >= 0 && v < len(mask) {
				mask[v] = true
			}
		}
	}

	return mask
}

// eachEdge calls fn for every directed element edge in corner order.
func (m *Mesh) eachEdge(fn func(a, b int)) {
	for _, t := range m.Triangles {
		fn(t[0], t[1])
		fn(t[1], t[2])
		fn(t[2], t[0])
	}
	for _, q := range m.Quads {
		for i := 0; i < 4; i++ {
			fn(q[i], q[(i+1)%4])
		}
	}
}

// FreeEdges returns the directed element edges whose reverse belongs to no
// element, in element order. For a conforming CCW mesh these are the hull
// edges, oriented with the domain on their left.
//
// Complexity: O(T + Q).
func (m *Mesh) FreeEdges() [][2]int {
	seen := make(map[[2]int]bool, 3*len(m.Triangles)+4*len(m.Quads))
	m.eachEdge(func(a, b int) { seen[[2]int{a, b}] = true })
	var out [][2]int
	m.eachEdge(func(a, b int) {
		if !seen[[2]int{b, a}] {
			out = append(out, [2]int{a, b})
		}
	})

	return out
}

// TraceBoundary chains FreeEdges into a single closed ring starting at the
// lowest vertex index. It reports false when the free edges do not form
// exactly one simple loop (holes, disjoint parts, pinched vertices).
func (m *Mesh) TraceBoundary() ([]int, bool) {
	free := m.FreeEdges()
	if len(free) < 3 {
		return nil, false
	}
	next := make(map[int]int, len(free))
	start := free[0][0]
	for _, e := range free {
		if _, dup := next[e[0]]; dup {
			return nil, false
		}
		next[e[0]] = e[1]
		if e[0] < start {
			start = e[0]
		}
	}
	ring := make([]int, 0, len(free))
	for v := start; ; {
		ring = append(ring, v)
		w, ok := next[v]
		if !ok {
			return nil, false
		}
		if v = w; v == start {
			break
		}
		if len(ring) > len(free) {
			return nil, false
		}
	}
	if len(ring) != len(free) {
		return nil, false
	}

	return ring, true
}

// Neighbors returns, for every vertex, the sorted distinct vertices sharing
// an element edge with it. Quad diagonals are not edges.
//
// Complexity: O(V + E log E).
func (m *Mesh) Neighbors() [][]int {
	adj := make([][]int, len(m.Vertices))
	m.eachEdge(func(a, b int) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	})
	for v := range adj {
		sort.Ints(adj[v])
		adj[v] = dedupSorted(adj[v])
	}

	return adj
}

// ElementRef addresses one element: a triangle when Quad is false.
type ElementRef struct {
	Quad  bool
	Index int
}

// Incidence returns, for every vertex, the elements that use it.
func (m *Mesh) Incidence() [][]ElementRef {
	inc := make([][]ElementRef, len(m.Vertices))
	for i, t := range m.Triangles {
		for _, v := range t {
			inc[v] = append(inc[v], ElementRef{Index: i})
		}
	}
	for i, q := range m.Quads {
		for _, v := range q {
			inc[v] = append(inc[v], ElementRef{Quad: true, Index: i})
		}
	}

	return inc
}

// ElementValid reports whether element e has a positive Jacobian above tol.
func (m *Mesh) ElementValid(e ElementRef, tol float64) bool {
	if e.Quad {
		return quality.QuadMinJacobian(m.quadPoints(m.Quads[e.Index])) > 0 &&
			quality.QuadConvex(m.quadPoints(m.Quads[e.Index]), tol)
	}

	return quality.Jacobian(m.TrianglePoints(m.Triangles[e.Index])) > tol
}

// ElementQuality evaluates metric on element e.
func (m *Mesh) ElementQuality(e ElementRef, metric quality.Metric) float64 {
	if e.Quad {
		return metric.Quad(m.quadPoints(m.Quads[e.Index]))
	}

	return metric.Triangle(m.TrianglePoints(m.Triangles[e.Index]))
}

// ElementArea returns the signed area of element e.
func (m *Mesh) ElementArea(e ElementRef) float64 {
	if e.Quad {
		return quality.QuadArea(m.quadPoints(m.Quads[e.Index]))
	}

	return quality.TriangleArea(m.TrianglePoints(m.Triangles[e.Index]))
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}

	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]geom.Point(nil), m.Vertices...),
		Triangles: append([]Triangle(nil), m.Triangles...),
		Quads:     append([]Quad(nil), m.Quads...),
		Boundary:  append([]int(nil), m.Boundary...),
	}
}

func dedupSorted(s []int) []int {
	if len(s) < 2 {
		return s
	}
	w := 1
	for r := 1; r < len(s); r++ {
		if s[r] != s[w-1] {
			s[w] = s[r]
			w++
		}
	}

	return s[:w]
}
