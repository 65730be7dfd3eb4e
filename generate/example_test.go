package generate_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/generate"
	"github.com/katalvlaran/lvmesh/geom"
)

func ExampleGenerate() {
	res, err := generate.Generate(generate.Request{
		Geometry: geom.Polygon{Name: "tri", Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}}},
		MinAngle: 20,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("triangles=%d converged=%v area=%.0f\n",
		len(res.Mesh.Triangles), res.Converged, res.Mesh.Area())
	// Output:
	// triangles=1 converged=true area=5000
}
