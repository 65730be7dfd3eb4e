// Package export converts meshes to and from exchange formats.
//
//   - Record: a plain, JSON-tagged snapshot of a mesh (vertex coordinates,
//     boundary ring, element index lists and optional statistics).
//     FromMesh/ToMesh round-trip coordinates and connectivity exactly.
//   - JSON: WriteJSON/ReadJSON encode a Record.
//   - CSV: WriteCSV emits the tabular layout
//     "Type,Index,X,Y,Additional_Info" with Point, Mesh_Vertex, Triangle and
//     Quad rows.
//   - GeoJSON: GeoJSON builds a FeatureCollection with one polygon per
//     element (quality and Jacobian as properties) plus the boundary;
//     FromGeoJSON rebuilds a mesh, merging vertices with equal coordinates.
//
// Non-finite statistics (a degenerate element's aspect ratio is +Inf) are
// clamped to ±math.MaxFloat64, NaN to 0, since JSON cannot carry them.
package export
