package refine

import (
	"math"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// minSegmentFactor: segments shorter than this multiple of the length
// tolerance are never split.
const minSegmentFactor = 1e3

// Result reports the outcome of Refine. Converged is false when the budget
// ran out (or only skipped triangles remain) with violations left; that is a
// partial success, not an error.
type Result struct {
	Mesh       *mesh.Mesh
	Converged  bool
	Iterations int
	// Trace holds the worst triangle quality after each iteration.
	Trace []float64
	// Skipped counts triangles whose candidate could not be placed.
	Skipped int
}

// runner carries the per-call state of one refinement.
type runner struct {
	t      *cdt.Triangulation
	opts   Options
	thr    float64
	domain geom.Polygon
	minSeg float64
	skip   map[[3]int]struct{}
}

// Refine inserts Steiner points into m until every triangle meets the
// threshold or MaxIterations insertions have been made. m must be a
// triangle-only mesh whose Boundary ring encloses it; it is replaced in
// place by the refined mesh, which is also returned in Result.Mesh.
//
// Complexity: O(MaxIterations · T).
func Refine(m *mesh.Mesh, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, mesh.ErrNilMesh
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	t, err := cdt.FromMesh(m)
	if err != nil {
		return Result{}, err
	}
	r := &runner{
		t:      t,
		opts:   o,
		thr:    o.threshold(),
		domain: boundaryPolygon(m),
		minSeg: t.Tolerance().Length * minSegmentFactor,
		skip:   make(map[[3]int]struct{}),
	}
	res := r.run()
	out := t.ToMesh(m.Name)
	*m = *out
	res.Mesh = m
	if !res.Converged {
		lvmesh.Logger().Warn("refine: budget exhausted before threshold",
			"name", m.Name, "metric", o.Metric.String(), "threshold", r.thr,
			"iterations", res.Iterations, "skipped", res.Skipped)
	}
	lvmesh.Logger().Debug("refine: done",
		"name", m.Name, "metric", o.Metric.String(), "threshold", r.thr,
		"iterations", res.Iterations, "converged", res.Converged,
		"triangles", len(m.Triangles), "skipped", res.Skipped)

	return res, nil
}

func boundaryPolygon(m *mesh.Mesh) geom.Polygon {
	pts := make([]geom.Point, len(m.Boundary))
	for i, v := range m.Boundary {
		pts[i] = m.Vertices[v]
	}

	return geom.Polygon{Name: m.Name, Points: pts}
}

func (r *runner) run() Result {
	var res Result
	for res.Iterations < r.opts.MaxIterations {
		tri, ok := r.worst()
		if !ok {
			break
		}
		if !r.step(tri) {
			r.skip[key(tri)] = struct{}{}
			res.Skipped++

			continue
		}
		res.Iterations++
		res.Trace = append(res.Trace, r.worstValue())
	}
	res.Converged = !r.violated()

	return res
}

func key(t mesh.Triangle) [3]int {
	k := [3]int(t)
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	if k[1] > k[2] {
		k[1], k[2] = k[2], k[1]
	}
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}

	return k
}

// worst returns the triangle to fix next: the worst quality violator, else
// the largest triangle above MaxArea. Skipped triangles are ignored.
func (r *runner) worst() (mesh.Triangle, bool) {
	pts := r.t.Points()
	metric := r.opts.Metric
	var (
		bestQ, bestA   mesh.Triangle
		bestQV, bestAV float64
		haveQ, haveA   bool
	)
	r.t.Each(func(_ int, tri mesh.Triangle) {
		if _, s := r.skip[key(tri)]; s {
			return
		}
		a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
		if v := metric.Triangle(a, b, c); metric.Violates(v, r.thr) {
			if !haveQ || metric.Worse(v, bestQV) {
				bestQ, bestQV, haveQ = tri, v, true
			}

			return
		}
		if r.opts.MaxArea > 0 && !haveQ {
			if ar := geom.Cross(a, b, c) / 2; ar > r.opts.MaxArea && (!haveA || ar > bestAV) {
				bestA, bestAV, haveA = tri, ar, true
			}
		}
	})
	if haveQ {
		return bestQ, true
	}

	return bestA, haveA
}

// violated reports whether any triangle, skipped or not, still fails.
func (r *runner) violated() bool {
	pts := r.t.Points()
	bad := false
	r.t.Each(func(_ int, tri mesh.Triangle) {
		a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
		if r.opts.Metric.Violates(r.opts.Metric.Triangle(a, b, c), r.thr) {
			bad = true
		}
		if r.opts.MaxArea > 0 && geom.Cross(a, b, c)/2 > r.opts.MaxArea {
			bad = true
		}
	})

	return bad
}

func (r *runner) worstValue() float64 {
	pts := r.t.Points()
	metric := r.opts.Metric
	var w float64
	first := true
	r.t.Each(func(_ int, tri mesh.Triangle) {
		v := metric.Triangle(pts[tri[0]], pts[tri[1]], pts[tri[2]])
		if first || metric.Worse(v, w) {
			w, first = v, false
		}
	})

	return w
}

// step tries to fix tri. It reports false when nothing was inserted.
func (r *runner) step(tri mesh.Triangle) bool {
	pts := r.t.Points()
	a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
	cc, ok := geom.Circumcenter(a, b, c)
	if !ok {
		return false
	}
	seg, found := r.crossedSegment(geom.Centroid(a, b, c), cc)
	if !found {
		seg, found = r.encroachedSegment(cc)
	}
	if !found && !r.domain.Contains(cc) {
		seg, found = r.nearestSegment(cc)
	}
	if found {
		p, q := r.t.Points()[seg[0]], r.t.Points()[seg[1]]
		if geom.Dist(p, q) < r.minSeg {
			return false
		}
		_, err := r.t.SplitSegment(seg[0], seg[1])

		return err == nil
	}
	_, err := r.t.Insert(cc)

	return err == nil
}

// crossedSegment returns the boundary segment first crossed by the walk
// from -> to.
func (r *runner) crossedSegment(from, to geom.Point) ([2]int, bool) {
	pts := r.t.Points()
	tol := r.t.Tolerance()
	best, bestT := [2]int{}, math.Inf(1)
	for _, s := range r.t.Segments() {
		p, q := pts[s[0]], pts[s[1]]
		if !geom.SegmentsIntersect(from, to, p, q, tol) {
			continue
		}
		tt, ok := geom.SegmentIntersection(from, to, p, q)
		if !ok {
			tt = 0
		}
		if tt < bestT {
			best, bestT = s, tt
		}
	}

	return best, !math.IsInf(bestT, 1)
}

// encroachedSegment returns the segment whose diametral circle contains p
// most deeply.
func (r *runner) encroachedSegment(p geom.Point) ([2]int, bool) {
	pts := r.t.Points()
	best, bestRatio := [2]int{}, 1.0
	found := false
	for _, s := range r.t.Segments() {
		a, b := pts[s[0]], pts[s[1]]
		half := geom.Dist(a, b) / 2
		if half == 0 {
			continue
		}
		if ratio := geom.Dist(geom.Midpoint(a, b), p) / half; ratio < bestRatio {
			best, bestRatio, found = s, ratio, true
		}
	}

	return best, found
}

func (r *runner) nearestSegment(p geom.Point) ([2]int, bool) {
	pts := r.t.Points()
	best, bestD := [2]int{}, math.Inf(1)
	for _, s := range r.t.Segments() {
		if d := geom.DistToSegment(pts[s[0]], pts[s[1]], p); d < bestD {
			best, bestD = s, d
		}
	}

	return best, !math.IsInf(bestD, 1)
}
