// Package paving generates quad-dominant meshes by advancing a front inward
// from the boundary, one row of elements at a time.
//
// Row construction, for an element size h:
//
//  1. every front vertex with an interior angle below 75° is cut off by a
//     corner triangle on its two neighbours;
//  2. every remaining front vertex is offset by h along its inward angle
//     bisector (mitre length capped at 2h);
//  3. consecutive offset points closer than h/2 are merged into one;
//  4. each front edge proposes a quad (p_i, p_i+1, q_i+1, q_i), or a triangle
//     when both its offsets merged.
//
// Proposals are accepted in front order. One is dropped when it is not
// convex with a positive Jacobian, misses the optional minimum angle, has an
// offset corner outside the current front, crosses a front edge or overlaps
// an accepted element. Dropped edges stay on the front, so a row may cover
// only part of it. The new front must be simple and counter-clockwise.
// Paving stops at the first row with no accepted element, after MaxRows
// rows, or when the front encloses less than 2h². The residual region is
// then closed with a constrained Delaunay triangulation seeded at spacing h.
//
// Element areas tile the polygon exactly: each row partitions the region
// between consecutive fronts and the fallback triangulates the last front.
package paving
