package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/markup"
	"github.com/avlone/tracknote/internal/timeutil"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is running, and where",
	Long: `Show the running entry across the whole document store.

At most one entry runs system-wide; status reports which document and
block it lives in and for how long it has been running.

Examples:
  tracknote status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showRunning()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// showRunning scans every document for a running entry.
func showRunning() {
	st, ok := openStore()
	if !ok {
		return
	}
	cfg := loadConfig()
	now := deps.Clock.Now()

	paths, err := st.List()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to list documents")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	found := false
	for _, path := range paths {
		doc, ok := loadDocument(st, path)
		if !ok {
			return
		}
		for _, v := range doc.Views {
			r := v.Tracker.Running()
			if r == nil {
				continue
			}
			found = true
			_, _ = fmt.Fprintln(deps.Stdout, "Running:")
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", markup.Strip(r.Name))
			_, _ = fmt.Fprintf(deps.Stdout, "  Document: %s (block %d)\n", path, v.Block+1)
			if r.Start != nil {
				_, _ = fmt.Fprintf(deps.Stdout, "  Started:  %s\n", r.Start.Format(cfg.DisplayTimeFormat))
				_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed:  %s\n", timeutil.FormatDuration(r.Duration(now)))
			}
		}
	}

	if !found {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start an entry with: tracknote start <doc> [name]")
	}
}
