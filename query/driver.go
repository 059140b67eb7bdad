package query

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvlasov/rangereach/clockutil"
	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/indexfabric"
	"github.com/nvlasov/rangereach/spatial"
)

// ErrInvalidNode is returned by Driver.Answer for a query line whose nid is
// out of range under the strict variant (V-Base's fatal invalid-node
// case); RunStream propagates it and stops reading the stream. A
// non-strict Driver degrades such a line to a reported miss instead.
var ErrInvalidNode = errors.New("query: node id out of range")

// Fallback decides what Driver does for a node whose fabric lookup found no
// index: either test the node's own coordinate directly (spatial nodes
// under V-Shared, per the corrected sharing rule — see DESIGN.md) or
// always report false (V-Base's uniformly-indexed nodes).
type Fallback int

const (
	// FallbackFalse always reports false when no index is found.
	FallbackFalse Fallback = iota
	// FallbackDirectPoint tests the node's own coordinate against the
	// query box when no index is found.
	FallbackDirectPoint
)

// Stats accumulates the running totals the driver tracks across a query
// stream: how many queries ran, how many answered true, and total
// wall-time.
type Stats struct {
	Queries    int
	TrueCount  int
	TotalNanos int64
}

// AverageSeconds returns the mean per-query wall-time, or 0 if no queries
// were served.
func (s Stats) AverageSeconds() float64 {
	if s.Queries == 0 {
		return 0
	}
	return float64(s.TotalNanos) / float64(s.Queries) / 1e9
}

// Driver resolves query lines against a node-to-index fabric over a fixed
// condensation view.
type Driver struct {
	view     *condensation.View
	fabric   indexfabric.Fabric
	clock    clockutil.Clock
	strict   bool
	fallback Fallback

	Stats Stats
}

// QueryOption configures a Driver at construction, mirroring
// katalvlaran-lvlath's functional-options shape (core.GraphOption,
// dfs.TopoOption) for this package's own knobs.
type QueryOption func(*Driver)

// WithStrict sets whether an out-of-range nid is reported as
// ErrInvalidNode (true, V-Base) or degraded to a plain miss (false,
// V-Shared). The default, absent this option, is strict.
func WithStrict(strict bool) QueryOption {
	return func(d *Driver) { d.strict = strict }
}

// WithFallback sets the no-index behavior. The default, absent this
// option, is FallbackFalse.
func WithFallback(fallback Fallback) QueryOption {
	return func(d *Driver) { d.fallback = fallback }
}

// New builds a Driver over view/fabric/clock, strict and FallbackFalse by
// default; apply WithStrict/WithFallback to change either.
func New(view *condensation.View, fabric indexfabric.Fabric, clock clockutil.Clock, opts ...QueryOption) *Driver {
	d := &Driver{view: view, fabric: fabric, clock: clock, strict: true, fallback: FallbackFalse}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Answer resolves a single query (nid, box), updating Stats. It returns
// ErrInvalidNode when strict and nid is out of range; under a non-strict
// Driver an out-of-range nid is reported as a plain miss instead.
func (d *Driver) Answer(nid int, box spatial.Box) (bool, error) {
	start := d.clock.Now()
	defer func() {
		d.Stats.TotalNanos += int64(d.clock.Since(start))
	}()
	d.Stats.Queries++

	n := condensation.NodeID(nid)
	if !d.view.InRange(n) {
		if d.strict {
			return false, fmt.Errorf("%w: %d", ErrInvalidNode, nid)
		}
		return false, nil
	}

	if idx, ok := d.fabric.Lookup(n); ok {
		hit := idx.HasIntersection(box)
		if hit {
			d.Stats.TrueCount++
		}
		return hit, nil
	}

	if d.fallback == FallbackDirectPoint {
		node := d.view.Node(n)
		if node.IsSpatial && inBox(node.X, node.Y, box) {
			d.Stats.TrueCount++
			return true, nil
		}
	}

	return false, nil
}

func inBox(x, y float32, b spatial.Box) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// LineResult is one parsed-and-answered query line, reported by RunStream
// for a caller that wants to print per-line diagnostics.
type LineResult struct {
	Line   string
	NID    int
	Answer bool
	Err    error
}

// RunStream reads whitespace-separated "nid xlo ylo xhi yhi" tuples from r,
// one per line, calling emit for each parsed-and-answered line. A line
// that fails to parse as five tokens ends the stream cleanly rather than
// erroring. A line whose nid is out-of-range under a strict Driver is
// emitted (with ErrInvalidNode) and then RunStream itself returns that
// error, aborting the stream — invalid-node is fatal under V-Base,
// matching main_2dreach.cpp's immediate `return 1` on the same check.
func (d *Driver) RunStream(r io.Reader, emit func(LineResult)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		nid, box, ok := parseLine(line)
		if !ok {
			return nil
		}

		answer, err := d.Answer(nid, box)
		emit(LineResult{Line: line, NID: nid, Answer: answer, Err: err})
		if errors.Is(err, ErrInvalidNode) {
			return err
		}
	}
	return scanner.Err()
}

func parseLine(line string) (nid int, box spatial.Box, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return 0, spatial.Box{}, false
	}

	id64, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, spatial.Box{}, false
	}
	xlo, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return 0, spatial.Box{}, false
	}
	ylo, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return 0, spatial.Box{}, false
	}
	xhi, err := strconv.ParseFloat(fields[3], 32)
	if err != nil {
		return 0, spatial.Box{}, false
	}
	yhi, err := strconv.ParseFloat(fields[4], 32)
	if err != nil {
		return 0, spatial.Box{}, false
	}

	return int(id64), spatial.Box{
		MinX: float32(xlo), MinY: float32(ylo),
		MaxX: float32(xhi), MaxY: float32(yhi),
	}, true
}
