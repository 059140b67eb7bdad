// Command 2dreach is the V-Base engine variant: every component with a
// non-empty aggregated set gets its own freshly built spatial index,
// looked up through a flat per-node array.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvlasov/rangereach/engine"
	"github.com/nvlasov/rangereach/internal/cliutil"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "2dreach INPUT_PREFIX QUERY_FILE",
	Short: "Answer 2D range-reachability queries over a condensation (V-Base)",
	Long: `2dreach loads a precomputed SCC condensation from INPUT_PREFIX, builds a
per-component spatial index over the reachable descendant points of every
component, and answers each query in QUERY_FILE with a boolean: does any
node reachable from the query's source node carry a spatial coordinate
inside the query's rectangle.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cliutil.RunVariant(cmd, args, engine.VariantBase, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
