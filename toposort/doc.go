// Package toposort computes a Kahn-style topological order over a small
// index-addressed DAG (the condensation, or a subgraph of it) and detects
// cycles.
//
// The algorithm works on a copy of the caller's indegree vector: a FIFO is
// seeded with every vertex of zero indegree, then vertices are popped and
// emitted one at a time, decrementing the indegree of each child and
// enqueuing any that drop to zero. If fewer vertices are emitted than exist,
// the input contains a cycle — fatal, since a condensation is a DAG by
// construction and this can only happen from corrupt input.
package toposort
