package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/session"
)

var insertTargetFlag string

// insertCmd represents the insert command
var insertCmd = &cobra.Command{
	Use:   "insert <doc>",
	Short: "Add a new tracker block to a document",
	Long: `Append a fresh, empty tracker block to the end of a document.

An optional target time (like "2h30m" or "1d5h") enables progress
display for the new tracker.

Examples:
  tracknote insert notes/today.md
  tracknote insert notes/today.md --target 7h30m`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		insertBlock(args[0])
	},
}

func init() {
	insertCmd.Flags().StringVar(&insertTargetFlag, "target", "", "target time spec, e.g. 2h30m")
	rootCmd.AddCommand(insertCmd)
}

// insertBlock appends a new tracker block to the document.
func insertBlock(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	if err := session.Insert(st, path, insertTargetFlag); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to insert tracker block into '%s'\n", path)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Inserted tracker block into %s\n", path)
}
