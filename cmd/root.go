package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/markup"
	"github.com/avlone/tracknote/internal/timeutil"
	"github.com/avlone/tracknote/internal/tracker"
)

// storeRoot is the document store directory, set by the global
// --store flag.
var storeRoot string

var rootCmd = &cobra.Command{
	Use:   "tracknote",
	Short: "Time trackers embedded in your markdown documents",
	Long: `tracknote maintains start/stop time trackers embedded as fenced
` + "```tracknote```" + ` blocks inside plain markdown documents.

Usage:
  tracknote                                  Overview of all trackers in the store
  tracknote insert <doc>                     Add a new tracker block to a document
  tracknote start <doc> [name]               Start a new entry (stops everything else)
  tracknote continue <doc> <path> [name]     Continue an entry as a new sub-entry
  tracknote stop [doc]                       Stop the running entry
  tracknote status                           Show what is running where
  tracknote report <doc>                     Render a tracker as a markdown table
  tracknote export csv|md <doc>              Export tracker data
  tracknote sweep                            Stop running entries in every document
  tracknote tui <doc>                        Interactive tracker view

Documents are addressed by their store-relative path, entries by the
1-based dotted indexes shown in report output (e.g. 2 or 2.1).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showOverview()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeRoot, "store", ".", "document store directory")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tracknote version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// showOverview lists every document carrying tracker blocks, with
// totals and the running entry if any.
func showOverview() {
	st, ok := openStore()
	if !ok {
		return
	}
	now := deps.Clock.Now()

	paths, err := st.List()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to list documents")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	type line struct {
		path    string
		blocks  int
		total   string
		today   string
		running string
	}
	var lines []line
	pathWidth := len("Document")
	for _, path := range paths {
		doc, ok := loadDocument(st, path)
		if !ok {
			return
		}
		if len(doc.Views) == 0 {
			continue
		}
		var entries []*tracker.Entry
		running := ""
		for _, v := range doc.Views {
			entries = append(entries, v.Tracker.Entries...)
			if r := v.Tracker.Running(); r != nil && running == "" {
				running = markup.Strip(r.Name)
			}
		}
		lines = append(lines, line{
			path:    path,
			blocks:  len(doc.Views),
			total:   timeutil.FormatDuration(tracker.TotalDuration(entries, now)),
			today:   timeutil.FormatDuration(tracker.TotalDurationToday(entries, now)),
			running: running,
		})
		if len(path) > pathWidth {
			pathWidth = len(path)
		}
	}

	if len(lines) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tracker blocks found in store")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Add one with 'tracknote insert <doc>'")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %-8s  %-10s  %-10s  %s\n",
		pathWidth, "Document", "Blocks", "Total", "Today", "Running")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", pathWidth+50))
	for _, l := range lines {
		running := l.running
		if running == "" {
			running = "-"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %-8d  %-10s  %-10s  %s\n",
			pathWidth, l.path, l.blocks, l.total, l.today, running)
	}
}
