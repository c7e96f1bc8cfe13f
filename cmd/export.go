package cmd

import (
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/tracker"
)

var exportBlockFlag int

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracker data to various formats",
	Long: `Export a document's tracker data for spreadsheets or reports.

Available formats:
  csv    Flat rows, one per timed segment
  md     Markdown table, the same rendering as 'tracknote report'

Examples:
  tracknote export csv notes/today.md > today.csv
  tracknote export md notes/today.md`,
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv <doc>",
	Short: "Export tracker data as CSV",
	Long: `Export a document's tracker blocks as CSV.

One row per timed segment: document path, slash-joined segment name
path, start, end, duration. The field delimiter comes from the
csv_delimiter config setting.

Examples:
  tracknote export csv notes/today.md
  tracknote export csv notes/today.md > today.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exportCSV(args[0])
	},
}

// exportMDCmd represents the export md command
var exportMDCmd = &cobra.Command{
	Use:   "md <doc>",
	Short: "Export tracker data as a markdown table",
	Long: `Export one tracker block as a markdown table, suitable for
pasting into another document.

Examples:
  tracknote export md notes/today.md
  tracknote export md notes/today.md --block 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exportMD(args[0])
	},
}

func init() {
	exportMDCmd.Flags().IntVar(&exportBlockFlag, "block", 1, "1-based tracker block index within the document")
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportMDCmd)
	rootCmd.AddCommand(exportCmd)
}

// exportCSV writes flat CSV rows for every block in the document.
func exportCSV(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}
	cfg := loadConfig()
	now := deps.Clock.Now()

	writer := csv.NewWriter(deps.Stdout)
	if r, _ := utf8.DecodeRuneInString(cfg.CSVDelimiter); r != utf8.RuneError {
		writer.Comma = r
	}

	if err := writer.Write([]string{"document", "segment", "start", "end", "duration"}); err != nil {
		reportCSVError(err)
		return
	}
	for _, v := range doc.Views {
		for _, row := range tracker.CSVRows(path, v.Tracker, now, cfg.DisplayTimeFormat) {
			if err := writer.Write(row); err != nil {
				reportCSVError(err)
				return
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		reportCSVError(err)
	}
}

func reportCSVError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV output")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	deps.Exit(1)
}

// exportMD writes one block's markdown table.
func exportMD(path string) {
	st, ok := openStore()
	if !ok {
		return
	}
	doc, ok := loadDocument(st, path)
	if !ok {
		return
	}
	v, err := doc.View(exportBlockFlag - 1)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	cfg := loadConfig()
	_, _ = fmt.Fprint(deps.Stdout, tracker.MarkdownTable(v.Tracker, deps.Clock.Now(), cfg.DisplayTimeFormat))
}
