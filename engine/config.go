// Package engine orchestrates the engine's three lifecycle phases, LOAD,
// INDEX, and SERVE: it loads a condensation view, builds the topological
// order, aggregates spatial points, builds the index fabric, and drives
// the query stream, accumulating the final report. The
// Config/Validate/DefaultConfig shape follows junjiewwang-perf-analysis's
// pkg/pprof.Config (see DESIGN.md).
package engine

import (
	"fmt"

	"github.com/nvlasov/rangereach/logx"
)

// Variant selects which of the two engine variants runs the INDEX phase.
type Variant string

const (
	// VariantBase is V-Base: every component with a non-empty aggregated
	// set gets its own freshly built index, looked up through a flat
	// per-node array.
	VariantBase Variant = "base"

	// VariantShared is V-Shared: components share indexes with a
	// dominant child when their aggregated sets coincide, elide entirely
	// when they are spatial singletons with no further descendants, and
	// are looked up through a bitmap+rank structure.
	VariantShared Variant = "shared"
)

// MethodName returns the report's fixed method-name field for v: "2DReach"
// or "2DReach-Pointer".
func (v Variant) MethodName() string {
	if v == VariantShared {
		return "2DReach-Pointer"
	}
	return "2DReach"
}

// Config holds everything a Run needs beyond the condensation data itself.
type Config struct {
	// InputPrefix is the path prefix passed to condensation.LoadPrefix.
	InputPrefix string

	// QueryFile is the path to the query stream consumed during SERVE.
	QueryFile string

	// Variant selects V-Base or V-Shared for the INDEX phase.
	Variant Variant

	// StrictNodeValidation makes an out-of-range query nid a fatal error,
	// matching main_2dreach.cpp's immediate `return 1` on the same check
	// under V-Base; when false, the same case degrades to a reported miss
	// instead, whichever Variant is selected. cliutil.RunVariant turns it
	// off for V-Shared — see DESIGN.md.
	StrictNodeValidation bool

	// Logger receives phase-transition and diagnostic messages. Defaults
	// to logx.NullLogger if nil.
	Logger logx.Logger
}

// DefaultConfig returns a Config with the V-Base variant and strict
// validation, the conservative default.
func DefaultConfig() *Config {
	return &Config{
		Variant:              VariantBase,
		StrictNodeValidation: true,
		Logger:               logx.NullLogger{},
	}
}

// EngineOption configures a Config on top of DefaultConfig's values,
// mirroring katalvlaran-lvlath's functional-options shape (core.GraphOption,
// dfs.TopoOption) for this package's own knobs.
type EngineOption func(*Config)

// WithVariant selects V-Base or V-Shared.
func WithVariant(v Variant) EngineOption {
	return func(c *Config) { c.Variant = v }
}

// WithStrictNodeValidation overrides the default's strict out-of-range
// behavior.
func WithStrictNodeValidation(strict bool) EngineOption {
	return func(c *Config) { c.StrictNodeValidation = strict }
}

// WithLogger overrides the default's logx.NullLogger.
func WithLogger(logger logx.Logger) EngineOption {
	return func(c *Config) { c.Logger = logger }
}

// NewConfig builds a Config for inputPrefix/queryFile, starting from
// DefaultConfig's values and applying opts in order.
func NewConfig(inputPrefix, queryFile string, opts ...EngineOption) *Config {
	c := DefaultConfig()
	c.InputPrefix = inputPrefix
	c.QueryFile = queryFile
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks that Config describes a runnable engine invocation.
func (c *Config) Validate() error {
	if c.InputPrefix == "" {
		return fmt.Errorf("engine: input prefix is required")
	}
	if c.QueryFile == "" {
		return fmt.Errorf("engine: query file is required")
	}
	if c.Variant != VariantBase && c.Variant != VariantShared {
		return fmt.Errorf("engine: invalid variant %q (valid: base, shared)", c.Variant)
	}
	return nil
}
