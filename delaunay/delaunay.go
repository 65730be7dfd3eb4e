package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Triangulate returns a constrained Delaunay triangulation of poly.
//
// Steps:
//  1. Validate poly and orient it counter-clockwise.
//  2. Densify the boundary to the target edge length (if any).
//  3. Ear-clip + legalise the boundary ring (cdt.New).
//  4. Insert lattice and explicit interior points one by one.
//
// Complexity: O(n³ + k·T) with n boundary vertices, k Steiner points.
func Triangulate(poly geom.Polygon, opts ...Option) (*mesh.Mesh, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	p, err := geom.NewPolygon(poly.Name, poly.Points)
	if err != nil {
		return nil, err
	}
	l := o.EdgeLength()
	if o.RefineBoundary && l > 0 {
		p = p.Densify(l)
	}
	ring := make([]int, p.Len())
	for i := range ring {
		ring[i] = i
	}
	t, err := cdt.New(p.Points, ring)
	if err != nil {
		return nil, fmt.Errorf("delaunay: %w", err)
	}

	seeds := append(Lattice(p, l), o.Interior...)
	inserted := 0
	for _, s := range seeds {
		if !p.Contains(s) {
			continue
		}
		if _, err := t.Insert(s); err != nil {
			if errors.Is(err, cdt.ErrDuplicatePoint) {
				continue
			}

			return nil, fmt.Errorf("delaunay: insert (%g, %g): %w", s.X, s.Y, err)
		}
		inserted++
	}
	m := t.ToMesh(p.Name)
	lvmesh.Logger().Debug("delaunay: triangulated",
		"name", p.Name, "boundary", p.Len(), "interior", inserted,
		"triangles", len(m.Triangles), "edge", l)

	return m, nil
}

// Lattice returns hexagonal lattice points of spacing l that lie strictly
// inside p and at least l/2 from its boundary. Rows are ordered bottom-up,
// points left-to-right. l <= 0 yields nil.
func Lattice(p geom.Polygon, l float64) []geom.Point {
	if !(l > 0) {
		return nil
	}
	lo, hi := p.Bounds()
	dy := l * math.Sqrt(3) / 2
	clear := l / 2
	var out []geom.Point
	for r := 1; ; r++ {
		y := lo.Y + float64(r)*dy
		if y >= hi.Y {
			break
		}
		x0 := lo.X + l/2
		if r%2 == 0 {
			x0 = lo.X + l
		}
		for x := x0; x < hi.X; x += l {
			q := geom.Pt(x, y)
			if !p.Contains(q) {
				continue
			}
			if d, _ := p.BoundaryDist(q); d < clear {
				continue
			}
			out = append(out, q)
		}
	}

	return out
}
