package quality

import (
	"math"

	"github.com/katalvlaran/lvmesh/geom"
)

// gauss is the 2×2 Gauss–Legendre abscissa 1/√3.
var gauss = 1 / math.Sqrt(3)

// Angles returns the interior angles of triangle abc at a, b and c.
func Angles(a, b, c geom.Point) [3]float64 {
	return [3]float64{geom.Angle(a, b, c), geom.Angle(b, c, a), geom.Angle(c, a, b)}
}

// MinAngle returns the smallest interior angle of abc in degrees.
func MinAngle(a, b, c geom.Point) float64 {
	an := Angles(a, b, c)

	return math.Min(an[0], math.Min(an[1], an[2]))
}

// TriangleAspectRatio returns longest edge / (2√3·inradius): 1 for an
// equilateral triangle, +Inf when the area vanishes.
func TriangleAspectRatio(a, b, c geom.Point) float64 {
	ab, bc, ca := geom.Dist(a, b), geom.Dist(b, c), geom.Dist(c, a)
	s := (ab + bc + ca) / 2
	area := math.Abs(geom.Cross(a, b, c)) / 2
	if area == 0 || s == 0 {
		return math.Inf(1)
	}
	r := area / s
	longest := math.Max(ab, math.Max(bc, ca))

	return longest / (2 * math.Sqrt(3) * r)
}

// Jacobian returns twice the signed area of abc.
func Jacobian(a, b, c geom.Point) float64 { return geom.Cross(a, b, c) }

// TriangleArea returns the signed area of abc.
func TriangleArea(a, b, c geom.Point) float64 { return geom.Cross(a, b, c) / 2 }

// QuadArea returns the signed shoelace area of q.
func QuadArea(q [4]geom.Point) float64 { return geom.SignedArea(q[:]) }

// QuadAngles returns the interior angle at each corner of q.
func QuadAngles(q [4]geom.Point) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		out[i] = geom.Angle(q[i], q[(i+1)%4], q[(i+3)%4])
	}

	return out
}

// QuadMinAngle returns the smallest corner angle of q in degrees.
func QuadMinAngle(q [4]geom.Point) float64 {
	an := QuadAngles(q)
	m := an[0]
	for _, v := range an[1:] {
		m = math.Min(m, v)
	}

	return m
}

// QuadEdgeRatio returns longest / shortest edge of q (+Inf for a zero edge).
func QuadEdgeRatio(q [4]geom.Point) float64 {
	lo, hi := math.Inf(1), 0.0
	for i := 0; i < 4; i++ {
		l := geom.Dist(q[i], q[(i+1)%4])
		lo, hi = math.Min(lo, l), math.Max(hi, l)
	}
	if lo == 0 {
		return math.Inf(1)
	}

	return hi / lo
}

// QuadJacobians returns the bilinear-map determinant at the four Gauss points
// (±1/√3, ±1/√3) of the reference square. Nodes map to (-1,-1), (1,-1),
// (1,1), (-1,1) in order.
func QuadJacobians(q [4]geom.Point) [4]float64 {
	var out [4]float64
	pts := [4][2]float64{{-gauss, -gauss}, {gauss, -gauss}, {gauss, gauss}, {-gauss, gauss}}
	for k, gp := range pts {
		xi, eta := gp[0], gp[1]
		dxXi := 0.25 * (-(1-eta)*q[0].X + (1-eta)*q[1].X + (1+eta)*q[2].X - (1+eta)*q[3].X)
		dyXi := 0.25 * (-(1-eta)*q[0].Y + (1-eta)*q[1].Y + (1+eta)*q[2].Y - (1+eta)*q[3].Y)
		dxEta := 0.25 * (-(1-xi)*q[0].X - (1+xi)*q[1].X + (1+xi)*q[2].X + (1-xi)*q[3].X)
		dyEta := 0.25 * (-(1-xi)*q[0].Y - (1+xi)*q[1].Y + (1+xi)*q[2].Y + (1-xi)*q[3].Y)
		out[k] = dxXi*dyEta - dxEta*dyXi
	}

	return out
}

// QuadMinJacobian returns the smallest Gauss-point Jacobian of q.
func QuadMinJacobian(q [4]geom.Point) float64 {
	js := QuadJacobians(q)
	m := js[0]
	for _, v := range js[1:] {
		m = math.Min(m, v)
	}

	return m
}

// QuadConvex reports whether every corner of q turns left by more than
// areaTol (twice-area units).
func QuadConvex(q [4]geom.Point, areaTol float64) bool {
	for i := 0; i < 4; i++ {
		if geom.Cross(q[i], q[(i+1)%4], q[(i+2)%4]) <= areaTol {
			return false
		}
	}

	return true
}
