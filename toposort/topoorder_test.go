package toposort_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nvlasov/rangereach/toposort"
)

// listGraph is the simplest toposort.Graph: adjacency given as literal
// slices, indegree derived once at construction.
type listGraph struct {
	children [][]int
	indegree []int
}

func newListGraph(children [][]int) *listGraph {
	indegree := make([]int, len(children))
	for _, kids := range children {
		for _, k := range kids {
			indegree[k]++
		}
	}
	return &listGraph{children: children, indegree: indegree}
}

func (g *listGraph) Size() int            { return len(g.children) }
func (g *listGraph) Indegree(v int) int   { return g.indegree[v] }
func (g *listGraph) Children(v int) []int { return g.children[v] }

func TestOrder_DiamondIsTopological(t *testing.T) {
	// 0 -> 1, 0 -> 2, 1 -> 3, 2 -> 3
	g := newListGraph([][]int{{1, 2}, {3}, {3}, {}})

	order, err := toposort.Order(g)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[int]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	require.Less(t, pos[0], pos[1])
	require.Less(t, pos[0], pos[2])
	require.Less(t, pos[1], pos[3])
	require.Less(t, pos[2], pos[3])
}

func TestSinksFirst_IsReverseOfOrder(t *testing.T) {
	g := newListGraph([][]int{{1}, {2}, {}})

	order, err := toposort.Order(g)
	require.NoError(t, err)
	sinksFirst, err := toposort.SinksFirst(g)
	require.NoError(t, err)

	require.Len(t, sinksFirst, len(order))
	for i, v := range order {
		require.Equal(t, v, sinksFirst[len(sinksFirst)-1-i])
	}
	// every child appears before its parent in sinksFirst
	require.Equal(t, []int{2, 1, 0}, sinksFirst)
}

func TestOrder_CycleDetected(t *testing.T) {
	// 0 -> 1 -> 0
	g := newListGraph([][]int{{1}, {0}})

	_, err := toposort.Order(g)
	require.ErrorIs(t, err, toposort.ErrCycleDetected)
}

func TestOrder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A non-empty graph, so the loop runs and observes the already-cancelled
	// context before its first pop.
	children := make([][]int, 100)
	for i := 0; i < 99; i++ {
		children[i] = []int{i + 1}
	}

	g := newListGraph(children)
	_, err := toposort.Order(g, toposort.WithCancelContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrder_NeverBlocksPastDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	g := newListGraph([][]int{{1}, {2}, {}})
	order, err := toposort.Order(g, toposort.WithCancelContext(ctx))
	require.NoError(t, err)
	require.Len(t, order, 3)
}
