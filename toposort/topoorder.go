package toposort

import (
	"context"
	"errors"
	"fmt"
)

// ErrCycleDetected is returned when fewer vertices are emitted than the
// graph contains, meaning the input is not acyclic.
var ErrCycleDetected = errors.New("toposort: cycle detected")

// Graph is the adjacency+indegree view toposort operates over. Vertices are
// dense integers in [0, Size()).
type Graph interface {
	// Size returns the number of vertices.
	Size() int
	// Indegree returns the indegree of vertex v within this Graph.
	Indegree(v int) int
	// Children returns the vertices reachable from v by one edge.
	Children(v int) []int
}

// Option configures Order's optional behavior.
type Option func(*options)

type options struct {
	ctx context.Context
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithCancelContext lets a long Order call be aborted. A nil context is
// ignored.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// Order computes a natural (sources-first) topological order over g: for
// every edge u→v, u precedes v in the result. Returns ErrCycleDetected
// wrapped with the count of stranded vertices if g is not acyclic.
func Order(g Graph, opts ...Option) ([]int, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := g.Size()
	indeg := make([]int, n)
	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		indeg[v] = g.Indegree(v)
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]int, 0, n)
	for head := 0; head < len(queue); head++ {
		select {
		case <-o.ctx.Done():
			return nil, o.ctx.Err()
		default:
		}

		u := queue[head]
		order = append(order, u)
		for _, v := range g.Children(u) {
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) != n {
		return nil, fmt.Errorf("%w: emitted %d of %d vertices", ErrCycleDetected, len(order), n)
	}

	return order, nil
}

// SinksFirst computes the reverse of Order: every vertex after all of its
// children, the orientation both engine variants accumulate in.
func SinksFirst(g Graph, opts ...Option) ([]int, error) {
	order, err := Order(g, opts...)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
