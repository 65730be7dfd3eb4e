package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a simple polygon given by its boundary vertices in order, without
// repeating the first point. After NewPolygon the order is counter-clockwise.
type Polygon struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// NewPolygon copies pts, validates them and normalises the orientation to
// counter-clockwise. A closing point equal to the first one is dropped.
//
// Complexity: O(n²) for the simplicity check.
func NewPolygon(name string, pts []Point) (Polygon, error) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	if len(cp) > 3 && cp[0] == cp[len(cp)-1] {
		cp = cp[:len(cp)-1]
	}
	p := Polygon{Name: name, Points: cp}
	if err := p.Validate(); err != nil {
		return Polygon{}, err
	}
	if p.SignedArea() < 0 {
		p.reverse()
	}

	return p, nil
}

// Validate checks the boundary in stages, cheapest first, and returns the
// first failure wrapped with its position.
func (p Polygon) Validate() error {
	n := len(p.Points)
	// Stage 1: cardinality.
	if n < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	// Stage 2: finiteness.
	for i, q := range p.Points {
		if !q.Finite() {
			return fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
	}
	tol := p.Tolerance()
	// Stage 3: consecutive coincidence, closing pair included.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if Dist(p.Points[i], p.Points[j]) <= tol.Length {
			return fmt.Errorf("%w: points %d and %d", ErrCoincidentPoints, i, j)
		}
	}
	// Stage 4: non-zero area.
	if math.Abs(2*p.SignedArea()) <= tol.Area {
		return ErrDegenerate
	}
	// Stage 5: simplicity.
	return p.checkSimple(tol)
}

// checkSimple rejects crossings between non-adjacent edges and folds between
// adjacent ones.
func (p Polygon) checkSimple(tol Tolerance) error {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		// Adjacent edge i+1 shares b; it may only touch at b.
		c := p.Points[(i+2)%n]
		if n > 3 && Orient(a, b, c, tol) == 0 && (OnSegment(a, b, c, tol) || OnSegment(b, c, a, tol)) {
			return fmt.Errorf("%w: edges %d and %d fold back", ErrSelfIntersecting, i, (i+1)%n)
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c, d := p.Edge(j)
			if SegmentsIntersect(a, b, c, d, tol) {
				return fmt.Errorf("%w: edges %d and %d", ErrSelfIntersecting, i, j)
			}
		}
	}

	return nil
}

// Len returns the number of boundary points.
func (p Polygon) Len() int { return len(p.Points) }

// Edge returns the i-th boundary segment (Points[i], Points[i+1 mod n]).
func (p Polygon) Edge(i int) (Point, Point) {
	n := len(p.Points)

	return p.Points[i%n], p.Points[(i+1)%n]
}

// SignedArea returns the shoelace area: positive for counter-clockwise order.
func (p Polygon) SignedArea() float64 {
	return SignedArea(p.Points)
}

// SignedArea returns the shoelace area of the closed ring pts.
func SignedArea(pts []Point) float64 {
	var s float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		s += a.X*b.Y - b.X*a.Y
	}

	return s / 2
}

// Area returns the enclosed area (non-negative).
func (p Polygon) Area() float64 { return math.Abs(p.SignedArea()) }

// Perimeter returns the boundary length.
func (p Polygon) Perimeter() float64 {
	var s float64
	for i := range p.Points {
		a, b := p.Edge(i)
		s += Dist(a, b)
	}

	return s
}

// Bounds returns the lower-left and upper-right corners of the bounding box.
func (p Polygon) Bounds() (lo, hi Point) {
	b := p.Ring().Bound()

	return Point{b.Min[0], b.Min[1]}, Point{b.Max[0], b.Max[1]}
}

// Scale returns the bounding-box diagonal.
func (p Polygon) Scale() float64 { return ScaleOf(p.Points) }

// Tolerance returns the tolerances for this polygon's scale.
func (p Polygon) Tolerance() Tolerance { return NewTolerance(p.Scale()) }

// CCW reports whether the boundary is counter-clockwise.
func (p Polygon) CCW() bool { return p.Ring().Orientation() == orb.CCW }

// Ring returns the boundary as an orb.Ring, closed as orb expects.
func (p Polygon) Ring() orb.Ring {
	r := make(orb.Ring, 0, len(p.Points)+1)
	for _, q := range p.Points {
		r = append(r, orb.Point{q.X, q.Y})
	}
	if len(p.Points) > 0 {
		r = append(r, r[0])
	}

	return r
}

// OnBoundary reports whether q lies on a boundary segment within tolerance.
func (p Polygon) OnBoundary(q Point) bool {
	tol := p.Tolerance()
	for i := range p.Points {
		a, b := p.Edge(i)
		if OnSegment(a, b, q, tol) {
			return true
		}
	}

	return false
}

// Contains reports whether q lies strictly inside the polygon. Boundary
// points are outside.
func (p Polygon) Contains(q Point) bool {
	if p.OnBoundary(q) {
		return false
	}

	return planar.RingContains(p.Ring(), orb.Point{q.X, q.Y})
}

// BoundaryDist returns the distance from q to the nearest boundary segment
// and that segment's index.
func (p Polygon) BoundaryDist(q Point) (float64, int) {
	best, idx := math.Inf(1), -1
	for i := range p.Points {
		a, b := p.Edge(i)
		if d := DistToSegment(a, b, q); d < best {
			best, idx = d, i
		}
	}

	return best, idx
}

// Densify returns a copy whose edges are split uniformly so that no segment
// exceeds maxLen. Original vertices are kept, in order. maxLen <= 0 returns a
// plain copy.
func (p Polygon) Densify(maxLen float64) Polygon {
	out := Polygon{Name: p.Name}
	if !(maxLen > 0) {
		out.Points = append([]Point(nil), p.Points...)

		return out
	}
	for i := range p.Points {
		a, b := p.Edge(i)
		k := int(math.Ceil(Dist(a, b)/maxLen - relLength))
		if k < 1 {
			k = 1
		}
		for s := 0; s < k; s++ {
			t := float64(s) / float64(k)
			out.Points = append(out.Points, Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)})
		}
	}

	return out
}

func (p *Polygon) reverse() {
	for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
		p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
	}
}
