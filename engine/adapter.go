package engine

import "github.com/nvlasov/rangereach/condensation"

// componentGraph adapts a condensation.View to toposort.Graph over
// component ids.
type componentGraph struct {
	view *condensation.View
}

func (g componentGraph) Size() int { return g.view.NumComponents() }

func (g componentGraph) Indegree(v int) int {
	return g.view.Component(condensation.ComponentID(v)).Indegree
}

func (g componentGraph) Children(v int) []int {
	children := g.view.Children(condensation.ComponentID(v))
	out := make([]int, len(children))
	for i, c := range children {
		out[i] = int(c)
	}
	return out
}
