package anneal

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Result reports the outcome of Anneal.
type Result struct {
	Mesh *mesh.Mesh
	// Converged is true when the final objective is zero.
	Converged      bool
	Iterations     int
	Accepted       int
	InitialPenalty float64
	FinalPenalty   float64
}

// runner holds the per-call state shared by all restarts.
type runner struct {
	m      *mesh.Mesh
	o      Options
	thr    float64
	inc    [][]mesh.ElementRef
	nb     [][]int
	movers []int
	tol    float64
	mean   float64 // mean element area for the size term
}

// outcome is the result of one schedule run.
type outcome struct {
	best       []geom.Point
	penalty    float64
	iterations int
	accepted   int
}

// Anneal improves m in place and returns it in Result.Mesh.
//
// Complexity: O(Restarts · MaxIterations · deg), deg = incident elements.
func Anneal(m *mesh.Mesh, opts ...Option) (Result, error) {
	// 1) Resolve options and the input mesh.
	if m == nil {
		return Result{}, mesh.ErrNilMesh
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Seeding != nil {
		seeded, err := delaunay.Triangulate(*o.Seeding, delaunay.WithMaxArea(o.SeedArea))
		if err != nil {
			return Result{}, err
		}
		*m = *seeded
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	// 2) Score the input; nothing to do when it already passes or every
	// vertex is pinned.
	r := newRunner(m, o)
	initial := r.total()
	res := Result{Mesh: m, InitialPenalty: initial, FinalPenalty: initial}
	if initial == 0 || len(r.movers) == 0 {
		res.Converged = initial == 0

		return res, nil
	}

	// 3) Run the schedule once per restart, each from the input positions.
	rs := newStreams(o)
	start := append([]geom.Point(nil), m.Vertices...)
	var best outcome
	for k := 0; k < o.Restarts; k++ {
		if k > 0 {
			copy(m.Vertices, start)
		}
		rng := rs.restart(k)
		out := r.run(rng, initial)
		if k == 0 || out.penalty < best.penalty {
			best = out
		}
	}
	// 4) Keep the best state of the best restart.
	copy(m.Vertices, best.best)
	res.Iterations, res.Accepted = best.iterations, best.accepted
	res.FinalPenalty = best.penalty
	res.Converged = best.penalty == 0
	lvmesh.Logger().Debug("anneal: done",
		"name", m.Name, "iterations", res.Iterations, "accepted", res.Accepted,
		"initial", res.InitialPenalty, "final", res.FinalPenalty, "restarts", o.Restarts)

	return res, nil
}

func newRunner(m *mesh.Mesh, o Options) *runner {
	r := &runner{
		m:   m,
		o:   o,
		thr: o.threshold(),
		inc: m.Incidence(),
		nb:  m.Neighbors(),
		tol: m.Tolerance().Area,
	}
	fixed := m.BoundaryMask()
	for v := range m.Vertices {
		if !fixed[v] && len(r.inc[v]) > 0 {
			r.movers = append(r.movers, v)
		}
	}
	if n := m.ElementCount(); n > 0 {
		r.mean = m.Area() / float64(n)
	}

	return r
}

func (r *runner) penalty(e mesh.ElementRef) float64 {
	p := r.o.Metric.Penalty(r.m.ElementQuality(e, r.o.Metric), r.thr)
	if r.o.SizeWeight > 0 && r.mean > 0 {
		p += r.o.SizeWeight * math.Abs(r.m.ElementArea(e)-r.mean) / r.mean
	}

	return p
}

func (r *runner) local(v int) float64 {
	var s float64
	for _, e := range r.inc[v] {
		s += r.penalty(e)
	}

	return s
}

func (r *runner) total() float64 {
	var s float64
	for i := range r.m.Triangles {
		s += r.penalty(mesh.ElementRef{Index: i})
	}
	for i := range r.m.Quads {
		s += r.penalty(mesh.ElementRef{Quad: true, Index: i})
	}

	return s
}

func (r *runner) valid(v int) bool {
	for _, e := range r.inc[v] {
		if !r.m.ElementValid(e, r.tol) {
			return false
		}
	}

	return true
}

// reach returns the mean length of the edges around v.
func (r *runner) reach(v int) float64 {
	if len(r.nb[v]) == 0 {
		return 0
	}
	var s float64
	for _, w := range r.nb[v] {
		s += geom.Dist(r.m.Vertices[v], r.m.Vertices[w])
	}

	return s / float64(len(r.nb[v]))
}

// run executes one cooling schedule from the current positions.
func (r *runner) run(rng *rand.Rand, initial float64) outcome {
	cur := initial
	out := outcome{best: append([]geom.Point(nil), r.m.Vertices...), penalty: initial}
	temp := r.o.Temperature
	for out.iterations < r.o.MaxIterations && temp >= r.o.MinTemp && cur > 0 {
		out.iterations++
		v := r.movers[rng.Intn(len(r.movers))]
		rad := r.o.StepScale * r.reach(v) * temp / r.o.Temperature
		step := geom.Pt((2*rng.Float64()-1)*rad, (2*rng.Float64()-1)*rad)
		// The acceptance draw happens on every proposal to keep streams
		// aligned across rejections.
		u := rng.Float64()
		t := temp
		temp *= r.o.CoolingRate

		old := r.m.Vertices[v]
		before := r.local(v)
		r.m.Vertices[v] = old.Add(step)
		if !r.valid(v) {
			r.m.Vertices[v] = old

			continue
		}
		delta := r.local(v) - before
		if delta > 0 && u >= math.Exp(-delta/t) {
			r.m.Vertices[v] = old

			continue
		}
		out.accepted++
		cur += delta
		if cur < 1e-9 {
			// Resynchronise the running sum before declaring convergence.
			cur = r.total()
		}
		if cur < out.penalty {
			out.penalty = cur
			copy(out.best, r.m.Vertices)
		}
	}

	return out
}
