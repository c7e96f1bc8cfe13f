package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/autostop"
)

var stopBlockFlag int

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [doc]",
	Short: "Stop the running entry",
	Long: `Stop the running entry.

With a document argument, stops the running entry in that document's
tracker block. Without one, sweeps the whole store and stops any
running entry wherever it is.

Examples:
  tracknote stop notes/today.md
  tracknote stop`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			sweepStore()
			return
		}
		stopEntry(args[0])
	},
}

func init() {
	stopCmd.Flags().IntVar(&stopBlockFlag, "block", 1, "1-based tracker block index within the document")
	rootCmd.AddCommand(stopCmd)
}

// stopEntry stops the running entry in one document's block.
func stopEntry(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}

	stopped, err := doc.Stop(stopBlockFlag-1, deps.Clock.Now())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to stop entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if !stopped {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing running in this block")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Stopped")
}

// sweepStore stops running entries in every document of the store.
func sweepStore() {
	st, ok := openStore()
	if !ok {
		return
	}
	modified, err := autostop.Sweep(st, deps.Clock.Now(), newLogger())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Sweep failed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if modified == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing was running")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped running entries in %d document(s)\n", modified)
}
