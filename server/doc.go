// Package server exposes mesh generation over HTTP.
//
// Routes:
//
//	GET  /                 service info
//	POST /geometry         store a polygon, returns {"id": ...}
//	GET  /geometry/:id     fetch a stored polygon
//	POST /mesh             generate one mesh (inline geometry or geometry_id)
//	POST /mesh/batch       generate several meshes concurrently
//	POST /export/csv       generate and return the CSV table
//	POST /export/geojson   generate and return a GeoJSON FeatureCollection
//
// A mesh request is served in three steps: the body is bound (and capped at
// the configured size), a geometry_id is replaced by the stored polygon and
// configured defaults fill missing fields, then generate.Generate runs.
//
// Invalid geometry or request fields answer 400, unknown ids 404 and
// meshing failures 422. Every error body is {"error": "..."}.
//
// Stored polygons live in memory for the lifetime of the Server and are safe
// for concurrent use.
package server
