// Command 2dreach-pointer is the V-Shared engine variant: components share
// a spatial index by reference with a dominant child when their
// aggregated descendant sets coincide, elide the index entirely for
// spatial singletons with no further descendants, and are looked up
// through a bitmap-plus-rank-prefix structure over components.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvlasov/rangereach/engine"
	"github.com/nvlasov/rangereach/internal/cliutil"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "2dreach-pointer INPUT_PREFIX QUERY_FILE",
	Short: "Answer 2D range-reachability queries over a condensation (V-Shared)",
	Long: `2dreach-pointer is the shared-index variant of 2dreach: it reuses a
dominant child's spatial index by reference wherever a component's
aggregated descendant point set is identical to that child's, and elides
the index for spatial-singleton components with no further reachable
descendants, answering those directly from the node's own coordinate.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cliutil.RunVariant(cmd, args, engine.VariantShared, verbose)
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
