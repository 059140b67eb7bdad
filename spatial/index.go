package spatial

import (
	"github.com/dhconnelly/rtreego"
)

// minChildren/maxChildren set the quadratic-split branching factor (around
// 16); min is kept at roughly half of max, the usual R-tree rule of thumb.
const (
	minChildren = 8
	maxChildren = 16
)

// Point is a single 2D coordinate in single-precision floating point.
type Point struct {
	X, Y float32
}

// Box is an axis-aligned closed rectangle: a point (x, y) intersects it iff
// xlo <= x <= xhi && ylo <= y <= yhi.
type Box struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// pointEntry adapts a Point to rtreego.Spatial as a zero-area rectangle.
type pointEntry struct {
	bounds *rtreego.Rect
}

func (e pointEntry) Bounds() *rtreego.Rect { return e.bounds }

// Index is a bulk-constructed 2D point index supporting rectangle
// intersection existence probes.
type Index struct {
	tree *rtreego.Rtree
	n    int
}

// Build bulk-constructs an Index over points. The order of points does not
// affect query results; duplicates are preserved rather than deduplicated,
// since the aggregated point sets this indexes are multisets by design.
func Build(points []Point) *Index {
	tree := rtreego.NewTree(2, minChildren, maxChildren)
	for _, p := range points {
		rect, err := rtreego.NewRect(rtreego.Point{float64(p.X), float64(p.Y)}, []float64{0, 0})
		if err != nil {
			// A zero-length rectangle around a finite float is never
			// rejected by rtreego; a panic here would indicate a NaN/Inf
			// coordinate slipping past the loader.
			panic("spatial: invalid point " + err.Error())
		}
		tree.Insert(pointEntry{bounds: rect})
	}

	return &Index{tree: tree, n: len(points)}
}

// HasIntersection reports whether any indexed point lies inside the closed
// box b.
func (idx *Index) HasIntersection(b Box) bool {
	rect, err := rtreego.NewRect(
		rtreego.Point{float64(b.MinX), float64(b.MinY)},
		[]float64{float64(b.MaxX - b.MinX), float64(b.MaxY - b.MinY)},
	)
	if err != nil {
		// A query box with xhi<xlo or yhi<ylo cannot contain any point.
		return false
	}

	return len(idx.tree.SearchIntersect(rect)) > 0
}

// Len returns the number of points stored in the index.
func (idx *Index) Len() int { return idx.n }

// perEntryOverhead approximates the resident bytes of one indexed point:
// the 2 float64 coordinates rtreego stores internally per Rect corner plus
// slice/pointer/interface bookkeeping for the entry and its tree node slot.
// rtreego exposes no equivalent of boost::geometry's rtree statistics(), so
// this is a documented estimate rather than a measured figure; see
// DESIGN.md.
const perEntryOverhead = 96

// ByteSize estimates the index's serialized footprint in bytes, for the
// engine's reporting.
func (idx *Index) ByteSize() int {
	return idx.n * perEntryOverhead
}
