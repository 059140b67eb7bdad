package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/nvlasov/rangereach/clockutil"
	"github.com/nvlasov/rangereach/condensation"
	"github.com/nvlasov/rangereach/indexfabric"
	"github.com/nvlasov/rangereach/logx"
	"github.com/nvlasov/rangereach/query"
	"github.com/nvlasov/rangereach/spatial"
	"github.com/nvlasov/rangereach/toposort"
)

// ErrCorruptInput wraps a cyclic condensation detected during the INDEX
// phase.
var ErrCorruptInput = errors.New("engine: condensation is not acyclic")

// Report is the fixed-order block SERVE prints at shutdown. SCCReuseSeconds
// and FabricBytes are two report-shape quirks carried over from the
// original binaries for output parity (see DESIGN.md): V-Base always
// reports an all-zero SCC reuse time, and V-Shared breaks its index-byte
// total into the fabric's own cost alongside the grand total.
type Report struct {
	InputPrefix         string
	QueryFile           string
	MethodName          string
	IndexingSeconds     float64
	SCCReuseSeconds     float64
	TotalIndexBytes     int
	FabricBytes         int
	NumComponents       int
	TotalStoredPoints   int
	NumQueries          int
	NumTrueAnswers      int
	AverageQuerySeconds float64
}

// LineError is reported, via onLineError, for every query line that
// produced a per-query error; the caller decides whether/how to print it.
// An invalid-node error under a strict Driver is reported this way too,
// immediately before Run itself returns that same error (invalid-node is
// fatal for a strict — V-Base — Driver).
type LineError struct {
	Line string
	Err  error
}

// Run executes LOAD, INDEX, and SERVE in sequence per cfg, invoking
// onLineError for every query line that produced a per-query error. A
// LOAD or INDEX failure returns a non-nil error and no Report. So does a
// strict out-of-range nid encountered during SERVE (fatal, exit 1) —
// Driver.RunStream surfaces that one as query.ErrInvalidNode and Run
// propagates it unwrapped rather than folding it into the generic
// "reading query file" error below, since it is not an I/O failure.
func Run(cfg *Config, clock clockutil.Clock, onLineError func(LineError)) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logx.NullLogger{}
	}

	logger.Info("loading condensation from prefix %s", cfg.InputPrefix)
	view, err := condensation.LoadPrefix(cfg.InputPrefix)
	if err != nil {
		return nil, err
	}

	indexStart := clock.Now()

	graph := componentGraph{view: view}
	sinksFirst, err := toposort.SinksFirst(graph)
	if err != nil {
		if errors.Is(err, toposort.ErrCycleDetected) {
			return nil, fmt.Errorf("%w: %v", ErrCorruptInput, err)
		}
		return nil, err
	}

	var fabric indexfabric.Fabric
	var indexes []*spatial.Index
	if cfg.Variant == VariantShared {
		build := indexfabric.BuildShared(view, sinksFirst)
		fabric = indexfabric.NewBitRank(view, build)
		indexes = uniqueIndexes(build)
	} else {
		build := indexfabric.BuildBase(view, sinksFirst)
		fabric = indexfabric.NewArray(view, build)
		indexes = uniqueIndexes(build)
	}

	indexingSeconds := clock.Since(indexStart).Seconds()
	logger.Info("index built in %.10f seconds", indexingSeconds)

	fabricBytes := fabricByteSize(fabric)
	totalBytes := fabricBytes
	totalPoints := 0
	for _, idx := range indexes {
		totalBytes += idx.ByteSize()
		totalPoints += idx.Len()
	}

	queryFile, err := os.Open(cfg.QueryFile)
	if err != nil {
		return nil, fmt.Errorf("engine: opening query file: %w", err)
	}
	defer queryFile.Close()

	fallback := query.FallbackFalse
	if cfg.Variant == VariantShared {
		fallback = query.FallbackDirectPoint
	}
	driver := query.New(view, fabric, clock, query.WithStrict(cfg.StrictNodeValidation), query.WithFallback(fallback))

	err = driver.RunStream(queryFile, func(lr query.LineResult) {
		if lr.Err != nil && onLineError != nil {
			onLineError(LineError{Line: lr.Line, Err: lr.Err})
		}
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidNode) {
			return nil, err
		}
		return nil, fmt.Errorf("engine: reading query file: %w", err)
	}

	return &Report{
		InputPrefix:         cfg.InputPrefix,
		QueryFile:           cfg.QueryFile,
		MethodName:          cfg.Variant.MethodName(),
		IndexingSeconds:     indexingSeconds,
		SCCReuseSeconds:     0,
		TotalIndexBytes:     totalBytes,
		FabricBytes:         fabricBytes,
		NumComponents:       view.NumComponents(),
		TotalStoredPoints:   totalPoints,
		NumQueries:          driver.Stats.Queries,
		NumTrueAnswers:      driver.Stats.TrueCount,
		AverageQuerySeconds: driver.Stats.AverageSeconds(),
	}, nil
}

// uniqueIndexes collects each distinct *spatial.Index built in result
// exactly once, so a shared index's bytes and point count are not counted
// once per sharer.
func uniqueIndexes(result *indexfabric.BuildResult) []*spatial.Index {
	seen := make(map[*spatial.Index]bool)
	var out []*spatial.Index
	for _, o := range result.Outcomes {
		if o.Index != nil && !seen[o.Index] {
			seen[o.Index] = true
			out = append(out, o.Index)
		}
	}
	return out
}

// fabricByteSize reports the lookup fabric's own resident footprint,
// separate from the indexes it points at.
func fabricByteSize(f indexfabric.Fabric) int {
	type sized interface{ ByteSize() int }
	if s, ok := f.(sized); ok {
		return s.ByteSize()
	}
	return 0
}
