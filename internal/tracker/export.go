package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/avlone/tracknote/internal/timeutil"
)

// MarkdownTable renders the tracker as a markdown table, one row per
// entry with sub-entries indented beneath their parent. The first
// column carries the entry's dotted 1-based index path, the address
// the continue and remove commands take. Containers show only their
// derived duration; a running leaf shows "-" for its end. Instants
// are formatted with displayFormat.
func MarkdownTable(t *Tracker, now time.Time, displayFormat string) string {
	var b strings.Builder
	b.WriteString("| # | Segment | Start | End | Duration |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	writeTableRows(&b, t.Entries, "", 0, now, displayFormat)
	b.WriteString(fmt.Sprintf("|  | **Total** |  |  | %s |\n",
		timeutil.FormatDuration(TotalDuration(t.Entries, now))))
	return b.String()
}

func writeTableRows(b *strings.Builder, entries []*Entry, prefix string, depth int, now time.Time, displayFormat string) {
	indent := strings.Repeat("&nbsp;&nbsp;", depth)
	for i, e := range entries {
		path := fmt.Sprintf("%s%d", prefix, i+1)
		if e.IsContainer() {
			fmt.Fprintf(b, "| %s | %s%s |  |  | %s |\n",
				path, indent, e.Name, timeutil.FormatDuration(e.Duration(now)))
			writeTableRows(b, e.SubEntries, path+".", depth+1, now, displayFormat)
			continue
		}
		fmt.Fprintf(b, "| %s | %s%s | %s | %s | %s |\n",
			path, indent, e.Name,
			formatLeafInstant(e.Start, displayFormat),
			formatLeafInstant(e.End, displayFormat),
			timeutil.FormatDuration(e.Duration(now)))
	}
}

func formatLeafInstant(t *time.Time, displayFormat string) string {
	if t == nil {
		return "-"
	}
	return t.Format(displayFormat)
}

// CSVRows flattens the tracker into export rows, leaves only, one row
// per leaf: document path, slash-joined name path, start, end,
// duration. No header row; the caller owns that.
func CSVRows(docPath string, t *Tracker, now time.Time, displayFormat string) [][]string {
	var rows [][]string
	appendCSVRows(&rows, docPath, nil, t.Entries, now, displayFormat)
	return rows
}

func appendCSVRows(rows *[][]string, docPath string, prefix []string, entries []*Entry, now time.Time, displayFormat string) {
	for _, e := range entries {
		namePath := append(append([]string{}, prefix...), e.Name)
		if e.IsContainer() {
			appendCSVRows(rows, docPath, namePath, e.SubEntries, now, displayFormat)
			continue
		}
		end := ""
		if e.End != nil {
			end = e.End.Format(displayFormat)
		}
		start := ""
		if e.Start != nil {
			start = e.Start.Format(displayFormat)
		}
		*rows = append(*rows, []string{
			docPath,
			strings.Join(namePath, " / "),
			start,
			end,
			timeutil.FormatDuration(e.Duration(now)),
		})
	}
}
