// Package geom_test holds shared fixtures for the geometry tests.
package geom_test

import "github.com/katalvlaran/lvmesh/geom"

const (
	// epsTiny is the tolerance for exact-arithmetic comparisons.
	epsTiny = 1e-9

	// epsAngle is the tolerance for angles computed through acos.
	epsAngle = 1e-6
)

// square100 returns the counter-clockwise 100×100 square.
func square100() []geom.Point {
	return []geom.Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
}

// lShape returns an L-shaped polygon with one reflex corner at (50,50).
func lShape() []geom.Point {
	return []geom.Point{{0, 0}, {100, 0}, {100, 50}, {50, 50}, {50, 100}, {0, 100}}
}
