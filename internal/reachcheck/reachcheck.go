// Package reachcheck computes ground-truth node reachability over a
// condensation view, for tests to check the engine's query answers
// against an independent implementation. It is not part of the engine
// itself: production code answers queries through the index fabric,
// never by direct graph traversal.
//
// The walker shape — a queue, a visited set, and an enqueue/dequeue
// loop — follows katalvlaran-lvlath's bfs.BFS (see DESIGN.md), generalized
// from vertex-string ids to component ids since reachability only needs
// to be computed once per component, not once per node.
package reachcheck

import "github.com/nvlasov/rangereach/condensation"

// ReachableComponents returns the set of component ids reachable from
// start (including start itself) by following condensation edges.
func ReachableComponents(view *condensation.View, start condensation.ComponentID) map[condensation.ComponentID]bool {
	visited := map[condensation.ComponentID]bool{start: true}
	queue := []condensation.ComponentID{start}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, child := range view.Children(c) {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}

	return visited
}

// Box is a minimal axis-aligned rectangle test, independent of the
// spatial package's own Box, so reachcheck never imports the code under
// test.
type Box struct {
	MinX, MinY, MaxX, MaxY float32
}

func (b Box) contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Answer computes the true answer for query (n, box) by reachability and
// direct point containment: true iff some node reachable from n
// (including n) is spatial with a coordinate in box.
func Answer(view *condensation.View, n condensation.NodeID, box Box) bool {
	start := view.Node(n).CID
	reachable := ReachableComponents(view, start)

	for cid := range reachable {
		for _, member := range view.Component(cid).Members {
			node := view.Node(member)
			if node.IsSpatial && box.contains(node.X, node.Y) {
				return true
			}
		}
	}
	return false
}
