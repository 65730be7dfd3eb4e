package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

var csvHeader = []string{"Type", "Index", "X", "Y", "Additional_Info"}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteCSV writes the input polygon and, when m is non-nil, its mesh:
//
//	Point,i,x,y,Boundary_Point_i
//	Mesh_Vertex,i,x,y,Mesh_Node
//	Triangle,i,a,b,Triangle_Nodes_c
//	Quad,i,a,b,Quad_Nodes_c_d
//
// Element rows carry corner indices in the X and Y columns.
func WriteCSV(w io.Writer, poly geom.Polygon, m *mesh.Mesh) error {
	cw := csv.NewWriter(w)
	rows := [][]string{csvHeader}
	for i, p := range poly.Points {
		rows = append(rows, []string{"Point", strconv.Itoa(i), num(p.X), num(p.Y), fmt.Sprintf("Boundary_Point_%d", i)})
	}
	if m != nil {
		for i, v := range m.Vertices {
			rows = append(rows, []string{"Mesh_Vertex", strconv.Itoa(i), num(v.X), num(v.Y), "Mesh_Node"})
		}
		for i, t := range m.Triangles {
			rows = append(rows, []string{"Triangle", strconv.Itoa(i),
				strconv.Itoa(t[0]), strconv.Itoa(t[1]), fmt.Sprintf("Triangle_Nodes_%d", t[2])})
		}
		for i, q := range m.Quads {
			rows = append(rows, []string{"Quad", strconv.Itoa(i),
				strconv.Itoa(q[0]), strconv.Itoa(q[1]), fmt.Sprintf("Quad_Nodes_%d_%d", q[2], q[3])})
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}

	return nil
}
