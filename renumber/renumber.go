package renumber

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// ErrBadPermutation indicates a permutation of the wrong length or with
// repeated targets.
var ErrBadPermutation = fmt.Errorf("%w: invalid vertex permutation", mesh.ErrMesh)

// Result describes an ordering.
type Result struct {
	// Order lists old vertex indices in their new order (new → old).
	Order []int
	// Perm maps old vertex indices to new ones (old → new).
	Perm []int
	// Components is the number of connected components.
	Components int
	// Before and After are the adjacency bandwidths.
	Before, After int
}

// queueItem pairs a vertex with its BFS depth.
type queueItem struct {
	id    int
	depth int
}

// walker holds the adjacency and scratch state reused across traversals.
type walker struct {
	nb    [][]int
	seen  []bool // permanent: vertex already placed
	mark  []int  // per traversal stamp
	stamp int
	queue []queueItem
}

// bfs traverses the component of start, skipping placed vertices. With
// byDegree the neighbours of each vertex are enqueued in ascending degree.
// It returns the visit order and the depth of the last vertex.
func (w *walker) bfs(start int, byDegree bool) ([]int, int) {
	w.stamp++
	w.queue = w.queue[:0]
	w.queue = append(w.queue, queueItem{id: start})
	w.mark[start] = w.stamp
	var order []int
	depth := 0
	for head := 0; head < len(w.queue); head++ {
		it := w.queue[head]
		order = append(order, it.id)
		depth = it.depth
		next := w.nb[it.id]
		if byDegree {
			next = append([]int(nil), next...)
			sort.SliceStable(next, func(i, j int) bool {
				return len(w.nb[next[i]]) < len(w.nb[next[j]])
			})
		}
		for _, v := range next {
			if w.seen[v] || w.mark[v] == w.stamp {
				continue
			}
			w.mark[v] = w.stamp
			w.queue = append(w.queue, queueItem{id: v, depth: it.depth + 1})
		}
	}

	return order, depth
}

// peripheral walks from start towards a pseudo-peripheral vertex. The
// queue always holds the traversal rooted at start.
func (w *walker) peripheral(start int) int {
	_, ecc := w.bfs(start, false)
	for {
		best := -1
		for _, it := range w.queue {
			if it.depth != ecc {
				continue
			}
			if best < 0 || len(w.nb[it.id]) < len(w.nb[best]) {
				best = it.id
			}
		}
		_, e := w.bfs(best, false)
		if e <= ecc {
			return start
		}
		start, ecc = best, e
	}
}

// Bandwidth returns max |i−j| over vertex pairs sharing an element edge.
func Bandwidth(m *mesh.Mesh) int {
	bw := 0
	for i, ns := range m.Neighbors() {
		for _, j := range ns {
			if d := j - i; d > bw {
				bw = d
			}
		}
	}

	return bw
}

// CuthillMcKee computes the reverse Cuthill–McKee ordering of m without
// modifying it.
//
// Complexity: O(C·(V + E)·D) worst case for C components and D BFS rounds
// of the peripheral search, typically a handful.
func CuthillMcKee(m *mesh.Mesh) (Result, error) {
	if m == nil {
		return Result{}, mesh.ErrNilMesh
	}
	n := len(m.Vertices)
	w := &walker{
		nb:    m.Neighbors(),
		seen:  make([]bool, n),
		mark:  make([]int, n),
		queue: make([]queueItem, 0, n),
	}
	// Component seeds: unplaced vertices in ascending degree, then index.
	cand := make([]int, n)
	for i := range cand {
		cand[i] = i
	}
	sort.SliceStable(cand, func(i, j int) bool { return len(w.nb[cand[i]]) < len(w.nb[cand[j]]) })

	res := Result{Order: make([]int, 0, n), Perm: make([]int, n), Before: Bandwidth(m)}
	for _, s := range cand {
		if w.seen[s] {
			continue
		}
		res.Components++
		order, _ := w.bfs(w.peripheral(s), true)
		for _, v := range order {
			w.seen[v] = true
		}
		res.Order = append(res.Order, order...)
	}
	for i, j := 0, len(res.Order)-1; i < j; i, j = i+1, j-1 {
		res.Order[i], res.Order[j] = res.Order[j], res.Order[i]
	}
	for newID, old := range res.Order {
		res.Perm[old] = newID
	}
	res.After = bandwidthUnder(w.nb, res.Perm)

	return res, nil
}

func bandwidthUnder(nb [][]int, perm []int) int {
	bw := 0
	for i, ns := range nb {
		for _, j := range ns {
			d := perm[i] - perm[j]
			if d < 0 {
				d = -d
			}
			if d > bw {
				bw = d
			}
		}
	}

	return bw
}

// Apply relabels m in place: vertex i moves to index perm[i].
func Apply(m *mesh.Mesh, perm []int) error {
	if m == nil {
		return mesh.ErrNilMesh
	}
	if len(perm) != len(m.Vertices) {
		return fmt.Errorf("%w: length %d, have %d vertices", ErrBadPermutation, len(perm), len(m.Vertices))
	}
	used := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || used[p] {
			return fmt.Errorf("%w: target %d", ErrBadPermutation, p)
		}
		used[p] = true
	}
	verts := make([]geom.Point, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[perm[i]] = v
	}
	copy(m.Vertices, verts)
	for i := range m.Triangles {
		for k := range m.Triangles[i] {
			m.Triangles[i][k] = perm[m.Triangles[i][k]]
		}
	}
	for i := range m.Quads {
		for k := range m.Quads[i] {
			m.Quads[i][k] = perm[m.Quads[i][k]]
		}
	}
	for i, b := range m.Boundary {
		m.Boundary[i] = perm[b]
	}

	return nil
}

// Renumber computes the reverse Cuthill–McKee ordering and applies it. The
// mesh is left untouched when the ordering would not lower the bandwidth.
func Renumber(m *mesh.Mesh) (Result, error) {
	res, err := CuthillMcKee(m)
	if err != nil {
		return res, err
	}
	if res.After >= res.Before {
		res.After = res.Before
		for i := range res.Perm {
			res.Perm[i], res.Order[i] = i, i
		}

		return res, nil
	}
	if err := Apply(m, res.Perm); err != nil {
		return res, err
	}
	lvmesh.Logger().Debug("renumber: applied",
		"name", m.Name, "components", res.Components, "before", res.Before, "after", res.After)

	return res, nil
}
