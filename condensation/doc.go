// Package condensation provides a read-only, immutable view over a directed
// graph's nodes and over the DAG obtained by contracting each of the graph's
// strongly-connected components ("the condensation").
//
// The View is built once during the engine's LOAD phase from a small
// prefix-based file format (see LoadPrefix) and never mutated afterward:
// every downstream component (toposort, aggregate, indexfabric, query) only
// reads node/component attributes and condensation adjacency through it.
//
// SCC computation itself is treated as an external collaborator: LoadPrefix
// expects the condensation already computed and simply deserializes it.
package condensation
