package smooth_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/smooth"
)

func ExampleSmooth() {
	// A unit square fanned around an off-centre vertex. No Boundary is
	// recorded; the hull is pinned through its free edges.
	m := &mesh.Mesh{Vertices: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.3, Y: 0.3}}}
	for _, t := range [][3]int{{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}} {
		if _, err := m.AddTriangle(t[0], t[1], t[2]); err != nil {
			fmt.Println("error:", err)
			return
		}
	}
	res := smooth.Smooth(m, 1)
	fmt.Printf("%+v\n", res)
	fmt.Printf("centre: (%.2f, %.2f) corner: (%.0f, %.0f)\n",
		m.Vertices[4].X, m.Vertices[4].Y, m.Vertices[2].X, m.Vertices[2].Y)
	// Output:
	// {Passes:1 Moved:1 RolledBack:0}
	// centre: (0.50, 0.50) corner: (1, 1)
}
