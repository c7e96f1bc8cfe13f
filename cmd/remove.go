package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/markup"
	"github.com/avlone/tracknote/internal/tracker"
)

var removeBlockFlag int

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <doc> <path>",
	Short: "Remove an entry from a tracker",
	Long: `Remove an entry, identified by its 1-based dotted index path.

Removing a group removes its sub-entries with it. When a removal
leaves a group with a single sub-entry, the group flattens back into a
plain entry. The running entry cannot be removed; stop it first.

Examples:
  tracknote remove notes/today.md 2
  tracknote remove notes/today.md 2.1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		removeEntry(args[0], args[1])
	},
}

func init() {
	removeCmd.Flags().IntVar(&removeBlockFlag, "block", 1, "1-based tracker block index within the document")
	rootCmd.AddCommand(removeCmd)
}

// removeEntry removes one entry and persists the document.
func removeEntry(path, entryPath string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}
	v, err := doc.View(removeBlockFlag - 1)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	target, ok := resolveEntry(v.Tracker, entryPath)
	if !ok {
		return
	}

	// The model-level removal does not guard the running entry; the
	// command layer owns that precondition.
	running := v.Tracker.Running()
	if running != nil && (running == target || tracker.FindByID(target.SubEntries, running.ID) != nil) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Cannot remove the running entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Stop it first with 'tracknote stop %s'\n", path)
		deps.Exit(1)
		return
	}

	removed, err := doc.RemoveEntry(removeBlockFlag-1, target.ID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to remove entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if !removed {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry at path '%s'\n", entryPath)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Removed: %s\n", markup.Strip(target.Name))
}
