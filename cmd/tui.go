package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/tui"
)

var tuiBlockFlag int

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui <doc>",
	Short: "Interactive tracker view",
	Long: `Open a document's tracker in an interactive terminal view.

The view shows the entry tree with live-updating durations, and binds
start, stop, continue, remove, collapse, and inline name/time editing
to keys. Press ? inside the view for the key reference.

Examples:
  tracknote tui notes/today.md
  tracknote tui notes/today.md --block 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(args[0])
	},
}

func init() {
	tuiCmd.Flags().IntVar(&tuiBlockFlag, "block", 1, "1-based tracker block index within the document")
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the bubbletea program for one document.
func runTUI(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	cfg := loadConfig()

	model, err := tui.New(st, path, tuiBlockFlag-1, cfg, deps.Clock, newLogger())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open tracker view")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Tracker view failed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
}
