package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/markup"
	"github.com/avlone/tracknote/internal/session"
)

var startBlockFlag int

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <doc> [name...]",
	Short: "Start a new top-level entry",
	Long: `Start a new running entry in a document's tracker block.

Before the entry starts, every running entry anywhere in the store is
stopped: there is at most one running entry across all documents. An
omitted name is synthesized as "Segment N".

Examples:
  tracknote start notes/today.md
  tracknote start notes/today.md code review
  tracknote start notes/today.md --block 2 standup`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		startEntry(args[0], strings.TrimSpace(strings.Join(args[1:], " ")))
	},
}

func init() {
	startCmd.Flags().IntVar(&startBlockFlag, "block", 1, "1-based tracker block index within the document")
	rootCmd.AddCommand(startCmd)
}

// startEntry starts a new top-level entry and persists the document.
func startEntry(path, name string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}

	e, err := doc.Start(startBlockFlag-1, name, deps.Clock.Now())
	if err != nil {
		hint := "Check the block index with 'tracknote report'"
		if errors.Is(err, session.ErrMalformedBlock) {
			hint = "Fix the block's JSON payload by hand, then retry"
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to start entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", markup.Strip(e.Name))
}
