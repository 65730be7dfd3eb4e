package geom

import "math"

// Relative tolerance factors. Absolute tolerances are derived from the scale
// of the data (see Tolerance) so the same polygon meshes identically whether
// expressed in millimetres or kilometres.
const (
	relLength = 1e-9
	relArea   = 1e-10
	relCircle = 1e-12
)

// Tolerance bundles the absolute epsilons for one input scale.
type Tolerance struct {
	Length float64 // distances below Length are zero
	Area   float64 // |Cross| below Area is collinear
}

// NewTolerance derives tolerances from a characteristic length (typically the
// bounding-box diagonal). A non-positive scale falls back to 1.
func NewTolerance(scale float64) Tolerance {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}

	return Tolerance{Length: relLength * scale, Area: relArea * scale * scale}
}

// ScaleOf returns the bounding-box diagonal of pts, or 0 for fewer than two
// distinct points.
func ScaleOf(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}

	return Dist(lo, hi)
}

// Cross returns (b-a)×(c-a): twice the signed area of triangle abc.
// Positive for counter-clockwise order.
func Cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Orient classifies c against the directed line a→b: +1 left, -1 right,
// 0 when the distance from c to the line is within tol.Length.
func Orient(a, b, c Point, tol Tolerance) int {
	cr := Cross(a, b, c)
	l := Dist(a, b)
	if l <= tol.Length {
		if math.Abs(cr) <= tol.Area {
			return 0
		}
	} else if math.Abs(cr) <= tol.Length*l {
		return 0
	}
	if cr > 0 {
		return 1
	}

	return -1
}

// Dist returns the Euclidean distance |ab|.
func Dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// Dist2 returns |ab|².
func Dist2(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y

	return dx*dx + dy*dy
}

// Angle returns the interior angle at vertex at of triangle (at, b, c) in
// degrees, via the law of cosines. The cosine is clamped to [-1, 1] so
// nearly-degenerate input never yields NaN. A zero-length side gives 0.
func Angle(at, b, c Point) float64 {
	ab, ac, bc := Dist(at, b), Dist(at, c), Dist(b, c)
	if ab == 0 || ac == 0 {
		return 0
	}
	cos := (ab*ab + ac*ac - bc*bc) / (2 * ab * ac)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}

// Circumcenter returns the center of the circle through a, b, c.
// ok is false when the points are (nearly) collinear.
func Circumcenter(a, b, c Point) (Point, bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	b2, c2 := bx*bx+by*by, cx*cx+cy*cy
	if math.Abs(d) <= relArea*(b2+c2) || d == 0 {
		return Point{}, false
	}
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d

	return Point{a.X + ux, a.Y + uy}, true
}

// InCircle returns the in-circle determinant of d against triangle abc.
// For counter-clockwise abc the result is > 0 iff d lies inside the
// circumcircle.
func InCircle(a, b, c, d Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y
	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	return ad*(bdx*cdy-cdx*bdy) - bd*(adx*cdy-cdx*ady) + cd*(adx*bdy-bdx*ady)
}

// InCircumcircle reports whether d lies strictly inside the circumcircle of
// the counter-clockwise triangle abc. Cocircular points (within a bound
// relative to the magnitude of the determinant's terms) are NOT inside, which
// keeps edge flipping from cycling on regular grids.
func InCircumcircle(a, b, c, d Point) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y
	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy
	det := ad*(bdx*cdy-cdx*bdy) - bd*(adx*cdy-cdx*ady) + cd*(adx*bdy-bdx*ady)
	perm := ad*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		bd*(math.Abs(adx*cdy)+math.Abs(cdx*ady)) +
		cd*(math.Abs(adx*bdy)+math.Abs(bdx*ady))

	return det > relCircle*perm
}

// OnSegment reports whether p lies on the closed segment ab within tol.
func OnSegment(a, b, p Point, tol Tolerance) bool {
	return DistToSegment(a, b, p) <= tol.Length
}

// DistToSegment returns the distance from p to the closed segment ab.
func DistToSegment(a, b, p Point) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return Dist(a, p)
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))

	return Dist(a.Add(d.Scale(t)), p)
}

// SegmentsIntersect reports whether the closed segments ab and cd share at
// least one point (crossing, touching or overlapping).
func SegmentsIntersect(a, b, c, d Point, tol Tolerance) bool {
	o1 := Orient(a, b, c, tol)
	o2 := Orient(a, b, d, tol)
	o3 := Orient(c, d, a, tol)
	o4 := Orient(c, d, b, tol)
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	// Touching and collinear overlap cases.
	return (o1 == 0 && OnSegment(a, b, c, tol)) ||
		(o2 == 0 && OnSegment(a, b, d, tol)) ||
		(o3 == 0 && OnSegment(c, d, a, tol)) ||
		(o4 == 0 && OnSegment(c, d, b, tol))
}

// SegmentsCross reports whether ab and cd intersect at a single point that is
// interior to both segments.
func SegmentsCross(a, b, c, d Point, tol Tolerance) bool {
	o1 := Orient(a, b, c, tol)
	o2 := Orient(a, b, d, tol)
	o3 := Orient(c, d, a, tol)
	o4 := Orient(c, d, b, tol)

	return o1*o2 < 0 && o3*o4 < 0
}

// SegmentIntersection returns the intersection of the lines through ab and
// cd as a parameter t along ab (point = a + t(b-a)). ok is false for parallel
// lines.
func SegmentIntersection(a, b, c, d Point) (t float64, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	den := r.X*s.Y - r.Y*s.X
	if den == 0 {
		return 0, false
	}
	q := c.Sub(a)

	return (q.X*s.Y - q.Y*s.X) / den, true
}
