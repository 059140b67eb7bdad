// Package cliutil holds the small pieces of command wiring shared by the
// two binaries (cmd/2dreach and cmd/2dreach-pointer), following the
// verbose-flag-to-logger wiring junjiewwang-perf-analysis's cmd/cli/cmd
// root command uses (see DESIGN.md).
package cliutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvlasov/rangereach/clockutil"
	"github.com/nvlasov/rangereach/engine"
	"github.com/nvlasov/rangereach/logx"
)

// Args extracts the prefix/query-file pair from the two positional
// arguments; the count itself is checked by the command's
// cobra.ExactArgs(2), not here.
func Args(args []string) (inputPrefix, queryFile string) {
	return args[0], args[1]
}

// BuildLogger constructs the engine logger for a run, honoring --verbose.
func BuildLogger(verbose bool) logx.Logger {
	level := logx.LevelInfo
	if verbose {
		level = logx.LevelDebug
	}
	return logx.NewDefaultLogger(level, os.Stderr)
}

// RunVariant runs the engine for the given variant against cmd's two
// positional args, prints the report to stdout, and logs any per-query
// error to stderr as it happens. It returns an error for cmd.RunE to
// translate into the process's exit code (0 on success, 1 otherwise) —
// including a strict V-Base invalid-node error, which engine.Run itself
// aborts SERVE for.
//
// Only VariantBase enables StrictNodeValidation: V-Shared's documented
// degrade-to-miss behavior for an out-of-range nid (query.WithStrict(false),
// see DESIGN.md) is otherwise unreachable from either binary.
func RunVariant(cmd *cobra.Command, args []string, variant engine.Variant, verbose bool) error {
	inputPrefix, queryFile := Args(args)

	cfg := engine.NewConfig(inputPrefix, queryFile,
		engine.WithVariant(variant),
		engine.WithStrictNodeValidation(variant == engine.VariantBase),
		engine.WithLogger(BuildLogger(verbose)),
	)

	report, err := engine.Run(cfg, clockutil.NewRealClock(), func(le engine.LineError) {
		fmt.Fprintf(cmd.ErrOrStderr(), "query error: %v (line: %q)\n", le.Err, le.Line)
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.String())
	return nil
}
