// Package indexfabric builds per-component spatial indexes from aggregated
// point sets (the index builder) and the compact structure that maps a
// node to its responsible index at query time (the lookup fabric).
//
// BuildBase and BuildShared walk components in sinks-first order (the same
// order aggregate.Run consumes) and, per component, either elide the index
// entirely, share one already built for a dominant child (BuildShared only),
// or construct a fresh one. Array
// and BitRank are the two Fabric implementations: Array is V-Base's O(1)
// per-node pointer table; BitRank is V-Shared's bitmap-plus-rank-prefix
// structure over components with an index.
package indexfabric
