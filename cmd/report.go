package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/session"
	"github.com/avlone/tracknote/internal/timespec"
	"github.com/avlone/tracknote/internal/timeutil"
	"github.com/avlone/tracknote/internal/tracker"
)

var reportAllFlag bool

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [doc]",
	Short: "Render trackers as markdown tables",
	Long: `Render a document's tracker blocks as markdown tables.

Each row shows the entry's dotted index path (the address continue and
remove take), its times, and its duration. With --all, every document
in the store that carries tracker blocks is reported.

Examples:
  tracknote report notes/today.md
  tracknote report --all`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if reportAllFlag {
			reportAll()
			return
		}
		if len(args) == 0 {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Document argument required (or use --all)")
			deps.Exit(1)
			return
		}
		reportOne(args[0])
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportAllFlag, "all", false, "report every document in the store")
	rootCmd.AddCommand(reportCmd)
}

// reportOne prints the tables for one document.
func reportOne(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}
	if len(doc.Views) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No tracker blocks in %s\n", path)
		return
	}
	printReport(doc)
}

// reportAll prints the tables for every document carrying trackers.
func reportAll() {
	st, ok := openStore()
	if !ok {
		return
	}
	paths, err := st.List()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to list documents")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	var docs []*session.Document
	for _, path := range paths {
		doc, ok := loadDocument(st, path)
		if !ok {
			return
		}
		if len(doc.Views) > 0 {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tracker blocks found in store")
		return
	}
	for _, doc := range docs {
		printReport(doc)
	}
}

func printReport(doc *session.Document) {
	cfg := loadConfig()
	now := deps.Clock.Now()
	for _, v := range doc.Views {
		_, _ = fmt.Fprintf(deps.Stdout, "## %s — block %d\n\n", doc.Path, v.Block+1)
		_, _ = fmt.Fprint(deps.Stdout, tracker.MarkdownTable(v.Tracker, now, cfg.DisplayTimeFormat))
		if target := timespec.Parse(v.Tracker.TargetTime); target > 0 {
			total := tracker.TotalDuration(v.Tracker.Entries, now)
			_, _ = fmt.Fprintf(deps.Stdout, "\nTarget: %s of %s (%d%%)\n",
				timeutil.FormatDuration(total),
				timeutil.FormatDuration(target),
				int(float64(total)/float64(target)*100))
		}
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}
