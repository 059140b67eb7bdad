package indexfabric

import (
	"math/bits"

	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/spatial"
)

// Fabric maps a node id to the index responsible for answering queries
// rooted at it.
type Fabric interface {
	Lookup(n condensation.NodeID) (*spatial.Index, bool)
}

// Array is V-Base's lookup fabric: a direct per-node pointer table, O(1)
// lookup and O(n) words of memory.
type Array struct {
	table []*spatial.Index
}

// NewArray builds an Array over view's nodes from a BuildResult produced by
// BuildBase.
func NewArray(view *condensation.View, result *BuildResult) *Array {
	table := make([]*spatial.Index, view.NumNodes())
	for n := 0; n < view.NumNodes(); n++ {
		cid := view.Node(condensation.NodeID(n)).CID
		table[n] = result.Outcomes[cid].Index
	}
	return &Array{table: table}
}

// Lookup returns the index responsible for n, or (nil, false) if n's
// component was never indexed (empty aggregated set).
func (a *Array) Lookup(n condensation.NodeID) (*spatial.Index, bool) {
	idx := a.table[n]
	return idx, idx != nil
}

// ByteSize reports the table's resident footprint: one pointer per node.
func (a *Array) ByteSize() int {
	return len(a.table) * 8
}

const wordBits = 64

// BitRank is V-Shared's lookup fabric: a bitmap over component ids marking
// which components own a non-elided index, a word-granular rank-prefix
// table over that bitmap, and a densely packed slice holding only the
// indexes that exist, grounded in gaissmai-bart's internal/bitset
// popcount-rank technique (see DESIGN.md).
//
// A node's lookup goes node -> component (condensation.View.Node) ->
// bit test -> rank -> dense slot, never touching the n-sized table Array
// uses.
type BitRank struct {
	view   *condensation.View
	bitmap []uint64
	rank   []uint32 // rank[w] = popcount of bitmap[0:w], i.e. count of set bits before word w
	dense  []*spatial.Index
}

// NewBitRank builds a BitRank over view's components from a BuildResult
// produced by BuildShared.
func NewBitRank(view *condensation.View, result *BuildResult) *BitRank {
	m := view.NumComponents()
	nwords := (m + wordBits - 1) / wordBits

	bitmap := make([]uint64, nwords)
	for c := 0; c < m; c++ {
		if !result.Outcomes[c].Elided {
			bitmap[c/wordBits] |= 1 << uint(c%wordBits)
		}
	}

	rank := make([]uint32, nwords+1)
	var total uint32
	for w := 0; w < nwords; w++ {
		rank[w] = total
		total += uint32(bits.OnesCount64(bitmap[w]))
	}
	rank[nwords] = total

	dense := make([]*spatial.Index, 0, total)
	for c := 0; c < m; c++ {
		if !result.Outcomes[c].Elided {
			dense = append(dense, result.Outcomes[c].Index)
		}
	}

	return &BitRank{view: view, bitmap: bitmap, rank: rank, dense: dense}
}

// has reports whether component c has a non-elided index, and its rank
// (the number of such components with id < c) when it does.
func (b *BitRank) has(c condensation.ComponentID) (rank int, ok bool) {
	w, bit := int(c)/wordBits, uint(int(c)%wordBits)
	word := b.bitmap[w]
	if word&(1<<bit) == 0 {
		return 0, false
	}
	below := word & ((uint64(1) << bit) - 1)
	return int(b.rank[w]) + bits.OnesCount64(below), true
}

// Lookup returns the index responsible for n, or (nil, false) if n's
// component was elided.
func (b *BitRank) Lookup(n condensation.NodeID) (*spatial.Index, bool) {
	cid := b.view.Node(n).CID
	rank, ok := b.has(cid)
	if !ok {
		return nil, false
	}
	return b.dense[rank], true
}

// ByteSize reports the structure's resident footprint: the bitmap words,
// the rank table entries, and one pointer per dense slot.
func (b *BitRank) ByteSize() int {
	return len(b.bitmap)*8 + len(b.rank)*4 + len(b.dense)*8
}
