package indexfabric_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/indexfabric"
	"github.com/nvlasov/rangereach/spatial"
	"github.com/nvlasov/rangereach/toposort"
)

// chain builds a linear chain of non-spatial components terminating in
// one spatial leaf, with a configurable length.
func chain(t *testing.T, length int) *condensation.View {
	t.Helper()
	nodes := make([]condensation.Node, length)
	components := make([]condensation.Component, length)
	children := make([][]condensation.ComponentID, length)

	for i := 0; i < length; i++ {
		cid := condensation.ComponentID(i)
		isLeaf := i == length-1
		nodes[i] = condensation.Node{CID: cid, IsSpatial: isLeaf, X: 7, Y: 7}
		indeg := 1
		if i == 0 {
			indeg = 0
		}
		components[i] = condensation.Component{Indegree: indeg, IsSpatial: isLeaf, Members: []condensation.NodeID{condensation.NodeID(i)}}
		if !isLeaf {
			children[i] = []condensation.ComponentID{cid + 1}
		}
	}

	return condensation.NewView(nodes, components, children)
}

func sinksFirstOf(t *testing.T, view *condensation.View) []int {
	t.Helper()
	order, err := toposort.SinksFirst(chainGraph{view})
	require.NoError(t, err)
	return order
}

type chainGraph struct{ view *condensation.View }

func (g chainGraph) Size() int { return g.view.NumComponents() }
func (g chainGraph) Indegree(v int) int {
	return g.view.Component(condensation.ComponentID(v)).Indegree
}
func (g chainGraph) Children(v int) []int {
	kids := g.view.Children(condensation.ComponentID(v))
	out := make([]int, len(kids))
	for i, k := range kids {
		out[i] = int(k)
	}
	return out
}

func TestBuildShared_ChainSharesSingleIndexThroughout(t *testing.T) {
	view := chain(t, 1000)
	sinksFirst := sinksFirstOf(t, view)

	result := indexfabric.BuildShared(view, sinksFirst)

	var shared *spatial.Index
	builtCount := 0
	for _, o := range result.Outcomes {
		if o.Index != nil {
			builtCount++
			if shared == nil {
				shared = o.Index
			} else {
				require.Same(t, shared, o.Index)
			}
		}
	}
	// Exactly one component (the leaf) is a spatial singleton with no
	// further descendants and is elided; every other link shares the same
	// index by reference.
	require.Equal(t, 999, builtCount)
}

func TestBuildShared_SpatialNonLeafStillIndexesDescendants(t *testing.T) {
	// B -> C, B is itself spatial (1,1), C is spatial (9,9). B is a
	// spatial component that still has a reachable descendant beyond
	// itself, so it must NOT be elided.
	nodes := []condensation.Node{
		{CID: 0, IsSpatial: true, X: 1, Y: 1},
		{CID: 1, IsSpatial: true, X: 9, Y: 9},
	}
	components := []condensation.Component{
		{Indegree: 0, IsSpatial: true, Members: []condensation.NodeID{0}},
		{Indegree: 1, IsSpatial: true, Members: []condensation.NodeID{1}},
	}
	children := [][]condensation.ComponentID{{1}, {}}
	view := condensation.NewView(nodes, components, children)

	result := indexfabric.BuildShared(view, []int{1, 0})

	require.True(t, result.Outcomes[1].Elided) // C: spatial singleton, no descendants
	require.False(t, result.Outcomes[0].Elided) // B: spatial, but has a descendant
	require.NotNil(t, result.Outcomes[0].Index)
	require.True(t, result.Outcomes[0].Index.HasIntersection(spatial.Box{MinX: 8, MinY: 8, MaxX: 10, MaxY: 10}))
}

func TestBuildBase_EveryNonEmptyComponentGetsOwnIndex(t *testing.T) {
	view := chain(t, 5)
	sinksFirst := sinksFirstOf(t, view)

	result := indexfabric.BuildBase(view, sinksFirst)

	seen := map[*spatial.Index]bool{}
	for i, o := range result.Outcomes {
		require.NotNilf(t, o.Index, "component %d should have its own index", i)
		require.False(t, seen[o.Index], "V-Base must never share an index")
		seen[o.Index] = true
	}
}

// TestArrayAndBitRank_AgreeOnNonElidedNodes checks fabric-level agreement
// for every node whose component is not elided under V-Shared. The one
// elided case (the leaf, a spatial singleton with no descendants) answers
// through the direct-point fallback instead of an index — that full
// equivalence, including the fallback, is query.Driver's job and is
// covered by the query package's own tests.
func TestArrayAndBitRank_AgreeOnNonElidedNodes(t *testing.T) {
	view := chain(t, 50)
	sinksFirst := sinksFirstOf(t, view)

	baseResult := indexfabric.BuildBase(view, sinksFirst)
	array := indexfabric.NewArray(view, baseResult)

	sharedResult := indexfabric.BuildShared(view, sinksFirst)
	bitrank := indexfabric.NewBitRank(view, sharedResult)

	box := spatial.Box{MinX: 6, MinY: 6, MaxX: 8, MaxY: 8}
	for n := 0; n < view.NumNodes()-1; n++ { // exclude the elided leaf
		nid := condensation.NodeID(n)

		aIdx, aOK := array.Lookup(nid)
		bIdx, bOK := bitrank.Lookup(nid)
		require.True(t, aOK)
		require.True(t, bOK)

		require.Equal(t, aIdx.HasIntersection(box), bIdx.HasIntersection(box), "node %d", n)
	}
}
