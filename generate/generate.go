package generate

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/anneal"
	"github.com/katalvlaran/lvmesh/delaunay"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/paving"
	"github.com/katalvlaran/lvmesh/quality"
	"github.com/katalvlaran/lvmesh/refine"
	"github.com/katalvlaran/lvmesh/renumber"
	"github.com/katalvlaran/lvmesh/smooth"
)

// defaultPavingElements sizes paving requests that carry no size control:
// MaxArea = polygon area / defaultPavingElements.
const defaultPavingElements = 100

// Result is the outcome of one request.
type Result struct {
	Mesh       *mesh.Mesh
	Algorithm  Algorithm
	Metric     quality.Metric
	Threshold  float64
	Converged  bool
	Iterations int
	Stats      mesh.Stats
	Smoothing  smooth.Result
	// Bandwidth is the vertex adjacency bandwidth of the final numbering.
	Bandwidth int
}

// Generate validates req and runs its pipeline.
func Generate(req Request) (Result, error) {
	// 1) Plan.
	p, err := req.plan()
	if err != nil {
		return Result{}, err
	}
	// 2) Geometry.
	poly, err := geom.NewPolygon(req.Geometry.Name, req.Geometry.Points)
	if err != nil {
		return Result{}, err
	}
	// 3) Pipeline.
	res := Result{Algorithm: p.algo, Metric: p.metric, Threshold: p.thr}
	switch p.algo {
	case Paving:
		res.Mesh, err = runPaving(poly, req, p)
	case Annealing:
		res.Mesh, res.Iterations, err = runAnnealing(poly, req, p)
	default:
		res.Mesh, res.Iterations, err = runDelaunay(poly, req, p)
	}
	if err != nil {
		return Result{}, err
	}
	// 4) Post-processing.
	res.Smoothing = smooth.Smooth(res.Mesh, req.SmoothingPasses)
	if req.Renumber {
		rn, err := renumber.Renumber(res.Mesh)
		if err != nil {
			return Result{}, err
		}
		res.Bandwidth = rn.After
	} else {
		res.Bandwidth = renumber.Bandwidth(res.Mesh)
	}
	// 5) Validate and summarise the final mesh.
	if err := res.Mesh.Validate(); err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	res.Stats = res.Mesh.Stats(p.metric)
	worst, ok := res.Mesh.WorstQuality(p.metric)
	res.Converged = ok && !p.metric.Violates(worst, p.thr)
	lvmesh.Logger().Info("generate: mesh ready",
		"name", res.Mesh.Name, "algorithm", string(p.algo),
		"vertices", res.Stats.Vertices, "triangles", res.Stats.Triangles,
		"quads", res.Stats.Quads, "converged", res.Converged, "iterations", res.Iterations)

	return res, nil
}

func triangulateOpts(req Request) []delaunay.Option {
	var opts []delaunay.Option
	if req.Density > 0 {
		opts = append(opts, delaunay.WithDensity(req.Density))
	} else if req.MaxArea > 0 {
		opts = append(opts, delaunay.WithMaxArea(req.MaxArea))
	}

	return opts
}

func runDelaunay(poly geom.Polygon, req Request, p plan) (*mesh.Mesh, int, error) {
	m, err := delaunay.Triangulate(poly, triangulateOpts(req)...)
	if err != nil {
		return nil, 0, err
	}
	opts := []refine.Option{refine.WithMetric(p.metric), refine.WithThreshold(p.thr)}
	if req.MaxIterations > 0 {
		opts = append(opts, refine.WithMaxIterations(req.MaxIterations))
	}
	if req.MaxArea > 0 && req.Density == 0 {
		opts = append(opts, refine.WithMaxArea(req.MaxArea))
	}
	r, err := refine.Refine(m, opts...)
	if err != nil {
		return nil, 0, err
	}

	return r.Mesh, r.Iterations, nil
}

func runPaving(poly geom.Polygon, req Request, p plan) (*mesh.Mesh, error) {
	var opts []paving.Option
	switch {
	case req.Density > 0:
		opts = append(opts, paving.WithDensity(req.Density))
	case req.MaxArea > 0:
		opts = append(opts, paving.WithMaxArea(req.MaxArea))
	default:
		opts = append(opts, paving.WithMaxArea(poly.Area()/defaultPavingElements))
	}
	if p.metric == quality.Angle {
		opts = append(opts, paving.WithMinAngle(math.Min(p.thr, 45)))
	}

	return paving.Pave(poly, opts...)
}

func runAnnealing(poly geom.Polygon, req Request, p plan) (*mesh.Mesh, int, error) {
	m, err := delaunay.Triangulate(poly, triangulateOpts(req)...)
	if err != nil {
		return nil, 0, err
	}
	opts := []anneal.Option{
		anneal.WithMetric(p.metric),
		anneal.WithThreshold(p.thr),
		anneal.WithSeed(req.Seed),
	}
	if req.MaxIterations > 0 {
		opts = append(opts, anneal.WithMaxIterations(req.MaxIterations))
	}
	if a := req.Annealing; a != nil {
		d := anneal.DefaultOptions()
		t0, cool, floor := d.Temperature, d.CoolingRate, d.MinTemp
		if a.Temperature > 0 {
			t0 = a.Temperature
		}
		if a.CoolingRate > 0 {
			cool = a.CoolingRate
		}
		if a.MinTemp > 0 {
			floor = a.MinTemp
		}
		opts = append(opts, anneal.WithSchedule(t0, cool, floor))
		if a.MaxIterations > 0 {
			opts = append(opts, anneal.WithMaxIterations(a.MaxIterations))
		}
		if a.StepScale > 0 {
			opts = append(opts, anneal.WithStepScale(a.StepScale))
		}
		if a.SizeWeight > 0 {
			opts = append(opts, anneal.WithSizeWeight(a.SizeWeight))
		}
		opts = append(opts, anneal.WithRestarts(a.Restarts))
	}
	r, err := anneal.Anneal(m, opts...)
	if err != nil {
		return nil, 0, err
	}

	return r.Mesh, r.Iterations, nil
}

// Batch runs reqs concurrently, at most limit at a time (limit <= 0 means
// unbounded), and returns results in input order. The first failure cancels
// requests that have not started yet and is returned.
func Batch(ctx context.Context, reqs []Request, limit int) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	results := make([]Result, len(reqs))
	for i, r := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(r)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
