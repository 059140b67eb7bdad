package aggregate

import (
	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/spatial"
)

// Policy selects the ownership discipline used when folding a child's
// aggregated set into its parent's.
type Policy int

const (
	// PolicyMoveOrCopy moves a single-parent child's buffer into the
	// parent and copies a multi-parent child's buffer. Used by the V-Base
	// engine variant.
	PolicyMoveOrCopy Policy = iota

	// PolicyCopyOnly always copies, leaving every child's buffer intact
	// for its own (possibly shared) indexing step. Used by V-Shared.
	PolicyCopyOnly
)

// Result holds the per-component aggregated point sets and, for
// PolicyCopyOnly runs, the single largest non-empty child contributor of
// each component — the "dominant child", needed by the index builder to
// decide whether a component's set is bit-for-bit identical to one
// child's.
type Result struct {
	// Sets holds the aggregated point set indexed by component id. A
	// builder that fully consumes Sets[c] should nil the slot to release
	// memory promptly.
	Sets [][]spatial.Point

	// DominantChild[c] is the id of the non-empty child of c that
	// contributed the most points, valid only when HasDominant[c] is
	// true. Populated only under PolicyCopyOnly; zero value otherwise.
	DominantChild []condensation.ComponentID
	HasDominant   []bool
}

// OnComponent is invoked by Run once per component, immediately after that
// component's aggregated set is finalized for this sweep — in particular,
// strictly before any later (parent) iteration might move-steal the
// buffer out from under it (the move optimization below). The index
// builder hooks in here rather than in a second full sweep over the
// finished Result, because under PolicyMoveOrCopy a single-parent child's
// buffer is gone (nil) by the time such a second sweep would reach it —
// see DESIGN.md.
type OnComponent func(c condensation.ComponentID, agg []spatial.Point, dominantChild condensation.ComponentID, hasDominant bool)

// Run aggregates spatial points over view's condensation, visiting
// components in sinksFirst order (every component after all of its
// children — see toposort.SinksFirst). sinksFirst must list every
// component id in [0, view.NumComponents()) exactly once. onComponent, if
// non-nil, is called once per component as described above; the index
// builder is the intended caller.
func Run(view *condensation.View, sinksFirst []int, policy Policy, onComponent OnComponent) *Result {
	m := view.NumComponents()
	sets := seed(view)

	var descendantCounts []int
	if policy == PolicyMoveOrCopy {
		descendantCounts = descendantCountPrePass(view, sinksFirst, sets)
	}

	dominantChild := make([]condensation.ComponentID, m)
	hasDominant := make([]bool, m)

	for _, ci := range sinksFirst {
		c := condensation.ComponentID(ci)
		agg := sets[c]

		if descendantCounts != nil && descendantCounts[c] > cap(agg) {
			grown := make([]spatial.Point, len(agg), descendantCounts[c])
			copy(grown, agg)
			agg = grown
		}

		var bestSize int
		var bestChild condensation.ComponentID
		var bestFound bool

		for _, child := range view.Children(c) {
			childAgg := sets[child]
			if len(childAgg) == 0 {
				continue
			}

			switch policy {
			case PolicyMoveOrCopy:
				if view.Component(child).Indegree == 1 {
					if len(agg) == 0 {
						agg = childAgg
					} else {
						if len(agg) < len(childAgg) {
							agg, childAgg = childAgg, agg
						}
						agg = append(agg, childAgg...)
					}
					sets[child] = nil
				} else {
					agg = append(agg, childAgg...)
				}
			case PolicyCopyOnly:
				if len(childAgg) > bestSize {
					bestSize = len(childAgg)
					bestChild = child
					bestFound = true
				}
				agg = append(agg, childAgg...)
			}
		}

		sets[c] = agg
		dominantChild[c] = bestChild
		hasDominant[c] = bestFound

		if onComponent != nil {
			onComponent(c, agg, bestChild, bestFound)
		}
	}

	return &Result{Sets: sets, DominantChild: dominantChild, HasDominant: hasDominant}
}

// seed pre-sizes and fills each component's aggregated set with the points
// of its own spatial members.
func seed(view *condensation.View) [][]spatial.Point {
	m := view.NumComponents()
	counts := make([]int, m)
	for n := 0; n < view.NumNodes(); n++ {
		node := view.Node(condensation.NodeID(n))
		if node.IsSpatial {
			counts[node.CID]++
		}
	}

	sets := make([][]spatial.Point, m)
	for c := 0; c < m; c++ {
		if counts[c] > 0 {
			sets[c] = make([]spatial.Point, 0, counts[c])
		}
	}

	for n := 0; n < view.NumNodes(); n++ {
		node := view.Node(condensation.NodeID(n))
		if node.IsSpatial {
			sets[node.CID] = append(sets[node.CID], spatial.Point{X: node.X, Y: node.Y})
		}
	}

	return sets
}

// descendantCountPrePass computes an upper bound on each component's final
// aggregated-set size, used only to pre-size V-Base's buffers before
// merging. It over-counts descendants reachable via multiple condensation
// paths; that is acceptable since it is a reservation hint, not a
// correctness requirement.
func descendantCountPrePass(view *condensation.View, sinksFirst []int, seeded [][]spatial.Point) []int {
	counts := make([]int, view.NumComponents())
	for c := range counts {
		counts[c] = len(seeded[c])
	}

	for _, ci := range sinksFirst {
		c := condensation.ComponentID(ci)
		total := counts[c]
		for _, child := range view.Children(c) {
			total += counts[child]
		}
		counts[c] = total
	}

	return counts
}
