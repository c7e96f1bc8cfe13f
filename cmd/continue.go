package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/markup"
)

var continueBlockFlag int

// continueCmd represents the continue command
var continueCmd = &cobra.Command{
	Use:   "continue <doc> <path> [name...]",
	Short: "Continue an entry as a new running sub-entry",
	Long: `Continue a stopped entry by starting a new sub-entry beneath it.

A stopped entry never reopens. Continuing a plain entry first splits it:
its own recorded time moves into a sub-entry named "Part 1", then the
new running sub-entry is appended. An omitted name is synthesized as
"Part N".

The entry path uses the 1-based dotted indexes shown by report output.

Examples:
  tracknote continue notes/today.md 2
  tracknote continue notes/today.md 2.1 follow-up`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		continueEntry(args[0], args[1], strings.TrimSpace(strings.Join(args[2:], " ")))
	},
}

func init() {
	continueCmd.Flags().IntVar(&continueBlockFlag, "block", 1, "1-based tracker block index within the document")
	rootCmd.AddCommand(continueCmd)
}

// continueEntry starts a new running sub-entry and persists the document.
func continueEntry(path, entryPath, name string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}
	v, err := doc.View(continueBlockFlag - 1)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	target, ok := resolveEntry(v.Tracker, entryPath)
	if !ok {
		return
	}

	e, err := doc.Continue(continueBlockFlag-1, target.ID, name, deps.Clock.Now())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to continue entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Continued %s: %s\n", markup.Strip(target.Name), markup.Strip(e.Name))
}
