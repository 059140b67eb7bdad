// Package aggregate builds, for every component of a condensation, the
// multiset of spatial points belonging to all of its descendants
// (including itself).
//
// Run performs a single reverse-topological sweep (sinks before parents):
// each component is seeded with the points of its own spatial members, then
// every non-empty child's points are folded in. Under PolicyMoveOrCopy
// (V-Base), a child with exactly one condensation parent has its buffer
// moved rather than copied, since no other parent will read it again;
// PolicyCopyOnly (V-Shared) always copies, because a shared spatial index
// may later be built directly from any component's own aggregated set.
//
// Run's onComponent hook exists because of that same move: under
// PolicyMoveOrCopy a child's buffer can be gone by the time a second,
// separate sweep would try to read it to build that child's own index.
// Calling the index builder inline, once per component as this sweep
// finalizes it, is what keeps aggregation and indexing correct as a single
// pass even though they are conceptually distinct steps (see indexfabric,
// DESIGN.md).
package aggregate
