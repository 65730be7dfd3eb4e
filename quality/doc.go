// Package quality computes element-quality metrics for triangles and
// quadrilaterals and the comparison rules every optimiser shares.
//
// Metrics:
//
//	– Angle:        minimum interior angle in degrees; higher is better,
//	                60 for an equilateral triangle, 90 for a square.
//	– AspectRatio:  longest edge / (2√3 · inradius) for triangles, longest /
//	                shortest edge for quads; lower is better, 1 is ideal,
//	                +Inf for a degenerate element.
//
// A threshold is interpreted per metric: an Angle element violates when its
// value is below the threshold, an AspectRatio element when above.
//
// Jacobian is twice the signed area for a triangle and the bilinear-map
// determinant sampled at the four 2×2 Gauss points for a quad; a positive
// value means valid orientation.
package quality
