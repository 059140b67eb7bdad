package indexfabric

import (
	"github.com/nvlasov/rangereach/aggregate"
	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/spatial"
)

// Outcome is the per-component result of the index builder: either a real
// spatial index (owned or shared with a child), or Elided, meaning no
// index was built at all.
type Outcome struct {
	Elided bool
	Index  *spatial.Index
}

// BuildResult holds one Outcome per component id.
type BuildResult struct {
	Outcomes []Outcome
}

// BaseBuilder implements the V-Base index-building rule: every component
// with a non-empty aggregated set gets its own freshly built index, never
// shared. It is driven by aggregate.Run's per-component
// callback rather than a second pass over the finished aggregation,
// because under aggregate.PolicyMoveOrCopy a single-parent child's buffer
// is moved into its parent and is gone by the time any later pass would
// reach it — see DESIGN.md.
type BaseBuilder struct {
	outcomes []Outcome
}

// NewBaseBuilder allocates a BaseBuilder for a condensation of n
// components.
func NewBaseBuilder(n int) *BaseBuilder {
	return &BaseBuilder{outcomes: make([]Outcome, n)}
}

// Step records component c's outcome from its just-finalized aggregated
// set. Pass this as (or wrap this in) the callback given to aggregate.Run.
func (b *BaseBuilder) Step(c condensation.ComponentID, agg []spatial.Point, _ condensation.ComponentID, _ bool) {
	if len(agg) > 0 {
		b.outcomes[c] = Outcome{Index: spatial.Build(agg)}
	}
}

// Result returns the accumulated BuildResult after every component has
// been stepped.
func (b *BaseBuilder) Result() *BuildResult {
	return &BuildResult{Outcomes: b.outcomes}
}

// SharedBuilder implements the V-Shared index-building rule (generalized
// per the fix recorded in DESIGN.md):
//
//   - A component that is itself a spatial singleton and whose aggregated
//     set is exactly its own point (no reachable descendant points beyond
//     itself) is elided: it is answered directly from the node's own
//     coordinate, never from an index (the common case this rule targets).
//   - Otherwise, if the dominant child's aggregated set is exactly as large
//     as this component's and that child was not itself elided, the
//     component's index is shared by reference with the child's.
//   - Otherwise, if the aggregated set is non-empty, a fresh index is
//     built.
//   - An empty, non-spatial aggregated set is elided (no reachable spatial
//     point at all; the query driver reports false for it, never a direct
//     coordinate test — see query.Driver).
//
// A spatial component that does have further reachable descendants
// (possible whenever it has outgoing condensation edges) falls through to
// the share-or-build branches like any other component: this is what keeps
// V-Base and V-Shared answering identically in every case, not just the
// common spatial-leaf case. See DESIGN.md.
type SharedBuilder struct {
	view     *condensation.View
	outcomes []Outcome
}

// NewSharedBuilder allocates a SharedBuilder over view.
func NewSharedBuilder(view *condensation.View) *SharedBuilder {
	return &SharedBuilder{view: view, outcomes: make([]Outcome, view.NumComponents())}
}

// Step records component c's outcome. Like BaseBuilder.Step, this must run
// as aggregate.Run finalizes each component, since dominantChild's own
// Outcome must already be known.
func (b *SharedBuilder) Step(c condensation.ComponentID, agg []spatial.Point, dominantChild condensation.ComponentID, hasDominant bool) {
	comp := b.view.Component(c)

	switch {
	case comp.IsSpatial && len(agg) == 1:
		b.outcomes[c] = Outcome{Elided: true}
	case hasDominant && !b.outcomes[dominantChild].Elided && len(agg) == dominantChildSize(b, dominantChild):
		b.outcomes[c] = Outcome{Index: b.outcomes[dominantChild].Index}
	case len(agg) > 0:
		b.outcomes[c] = Outcome{Index: spatial.Build(agg)}
	default:
		b.outcomes[c] = Outcome{Elided: true}
	}
}

// dominantChildSize reports the size the dominant child's own aggregated
// set had at the point its Outcome was recorded, read back as the point
// count of the child's recorded index: a fresh index holds the whole set,
// and a shared one is only ever taken when the sizes are equal. An elided
// child (no index) reports 0.
func dominantChildSize(b *SharedBuilder, child condensation.ComponentID) int {
	if b.outcomes[child].Index != nil {
		return b.outcomes[child].Index.Len()
	}
	return 0
}

// Result returns the accumulated BuildResult after every component has
// been stepped.
func (b *SharedBuilder) Result() *BuildResult {
	return &BuildResult{Outcomes: b.outcomes}
}

// BuildBase runs the V-Base aggregation-and-indexing sweep over view in
// one pass and returns the finished BuildResult.
func BuildBase(view *condensation.View, sinksFirst []int) *BuildResult {
	builder := NewBaseBuilder(view.NumComponents())
	aggregate.Run(view, sinksFirst, aggregate.PolicyMoveOrCopy, builder.Step)
	return builder.Result()
}

// BuildShared runs the V-Shared aggregation-and-indexing sweep over view
// in one pass and returns the finished BuildResult.
func BuildShared(view *condensation.View, sinksFirst []int) *BuildResult {
	builder := NewSharedBuilder(view)
	aggregate.Run(view, sinksFirst, aggregate.PolicyCopyOnly, builder.Step)
	return builder.Result()
}
