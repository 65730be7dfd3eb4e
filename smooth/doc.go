// Package smooth relaxes interior vertex positions by Laplacian smoothing.
//
// Each pass:
//
//  1. snapshots the positions (Jacobi update: every move reads the snapshot);
//  2. moves every interior vertex to the centroid of its edge neighbours;
//  3. checks each element touching a moved vertex and restores the moved
//     corners of an inverted one, repeatedly, until no inversion is left.
//
// Boundary vertices never move: those in Mesh.Boundary and every endpoint of
// an edge used by a single element. Connectivity is never changed.
//
// Complexity: O(passes · (V + E)) plus at most V rollback sweeps per pass.
package smooth
