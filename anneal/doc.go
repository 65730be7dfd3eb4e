// Package anneal optimises interior vertex positions of a mesh by simulated
// annealing. Connectivity is fixed and boundary vertices never move.
//
// Overview:
//
//   - The objective is the sum over elements of the metric penalty (zero when
//     an element meets the threshold) plus an optional size-uniformity term.
//   - Each proposal picks one interior vertex at random and displaces it by an
//     offset drawn uniformly from [-r, r]², where r = StepScale · mean incident
//     edge length · T/T0.
//   - Proposals that would invert or flatten an incident element are rejected
//     outright. The rest follow the Metropolis rule: improvements are kept,
//     a worsening Δ is kept with probability exp(-Δ/T).
//   - The temperature cools geometrically after every proposal.
//
// The run stops when the objective reaches zero, the temperature falls below
// MinTemp, or MaxIterations proposals were made. The best state visited is
// returned, so the output is never worse than the input.
//
// Boundary vertices are those listed in Mesh.Boundary together with every
// endpoint of an edge used by a single element, so meshes imported without a
// boundary ring keep their hull.
//
// Determinism:
//
//   - Seed (or Rand) fixes the whole run. Restarts > 1 reruns the schedule from
//     the input positions on streams derived from the base generator and keeps
//     the best outcome; restart k always gets the same stream.
//
// Performance and complexity:
//
//   - Time:  O(Restarts · MaxIterations · deg), deg = elements incident to the
//     moved vertex; each proposal re-evaluates only those elements.
//   - Space: O(V + E) for incidence, neighbours and the best snapshot.
//
// Errors:
//
//   - mesh.ErrNilMesh for a nil mesh, mesh validation errors for an invalid
//     input, and triangulation errors when Seeding is set.
//   - Option constructors panic on out-of-range values: ErrBadTemperature,
//     ErrBadCooling, ErrBadIterations, ErrBadStep or ErrBadWeight.
package anneal
