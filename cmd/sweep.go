package cmd

import (
	"github.com/spf13/cobra"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Stop running entries in every document",
	Long: `Scan every document in the store and stop any running entry found,
wherever it is. Only documents that actually change are rewritten.

This is the same sweep that runs before 'tracknote start', and the one
'tracknote watch' repeats on a timer.

Examples:
  tracknote sweep`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sweepStore()
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
