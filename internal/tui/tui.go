// Package tui provides the interactive tracker view: a live tree table
// over one document's tracker blocks, with start/stop/continue/remove
// bound to keys and inline editing of names and times.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avlone/tracknote/internal/autostop"
	"github.com/avlone/tracknote/internal/clock"
	"github.com/avlone/tracknote/internal/config"
	"github.com/avlone/tracknote/internal/markup"
	"github.com/avlone/tracknote/internal/session"
	"github.com/avlone/tracknote/internal/store"
	"github.com/avlone/tracknote/internal/timespec"
	"github.com/avlone/tracknote/internal/timeutil"
	"github.com/avlone/tracknote/internal/tracker"
	"github.com/avlone/tracknote/internal/tui/ui"
)

// inputMode says what a confirmed text input applies to.
type inputMode int

const (
	modeNone inputMode = iota
	modeStart
	modeContinue
	modeEditName
	modeEditTimes
)

// row is one visible line of the flattened tracker tree.
type row struct {
	entry *tracker.Entry
	depth int
}

// tickMsg drives the per-second duration refresh. The tick chain is
// owned by the program: it ends when the program quits, so no timer
// outlives its view.
type tickMsg time.Time

// sweepMsg reports a completed timer-driven auto-stop sweep.
type sweepMsg struct {
	modified int
	err      error
}

// Model is the tracker view model.
type Model struct {
	st    store.Store
	doc   *session.Document
	cfg   config.Config
	clock clock.Clock
	log   *slog.Logger

	block  int
	rows   []row
	cursor int

	styles ui.Styles
	keys   ui.KeyMap

	width    int
	height   int
	showHelp bool
	status   string

	mode  inputMode
	input textinput.Model

	gate autostop.Gate
}

// New loads the document at path and returns a model focused on the
// given block index.
func New(st store.Store, path string, block int, cfg config.Config, cl clock.Clock, log *slog.Logger) (Model, error) {
	doc, err := session.Load(st, path, log)
	if err != nil {
		return Model{}, err
	}
	if _, err := doc.View(block); err != nil {
		return Model{}, err
	}

	themeProvider := ui.NewThemeProvider(cfg.Theme)

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	m := Model{
		st:     st,
		doc:    doc,
		cfg:    cfg,
		clock:  cl,
		log:    log,
		block:  block,
		styles: themeProvider.Styles(),
		keys:   ui.DefaultKeyMap(),
		input:  ti,
	}
	m.rebuildRows()
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick schedules the next per-second refresh.
func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sweepOthers runs the auto-stop sweep over every other document.
func (m Model) sweepOthers() tea.Cmd {
	st, now, log, skip := m.st, m.clock.Now(), m.log, m.doc.Path
	return func() tea.Msg {
		modified, err := autostop.SweepExcept(st, now, log, skip)
		return sweepMsg{modified: modified, err: err}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Durations re-render from in-memory state on every tick; the
		// auto-stop sweep behind the same tick is gated to once per
		// wall-clock minute.
		if m.cfg.AutoStop && m.gate.Allow(m.clock.Now()) {
			return m, tea.Batch(m.tick(), m.sweepOthers())
		}
		return m, m.tick()

	case sweepMsg:
		if msg.err != nil {
			m.status = "auto-stop sweep failed: " + msg.err.Error()
		} else if msg.modified > 0 {
			m.status = fmt.Sprintf("auto-stop: closed entries in %d document(s)", msg.modified)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNone {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextBlock):
		if m.block < len(m.doc.Views)-1 {
			m.block++
			m.cursor = 0
			m.rebuildRows()
		}

	case key.Matches(msg, m.keys.PrevBlock):
		if m.block > 0 {
			m.block--
			m.cursor = 0
			m.rebuildRows()
		}

	case key.Matches(msg, m.keys.Start):
		return m.openInput(modeStart, "New entry name (empty for Segment N)...", "")

	case key.Matches(msg, m.keys.Continue):
		if m.selected() == nil {
			m.status = "nothing selected"
			break
		}
		return m.openInput(modeContinue, "Sub-entry name (empty for Part N)...", "")

	case key.Matches(msg, m.keys.Stop):
		stopped, err := m.doc.Stop(m.block, m.clock.Now())
		if err != nil {
			m.status = err.Error()
		} else if !stopped {
			m.status = "nothing running in this block"
		}
		m.rebuildRows()

	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()

	case key.Matches(msg, m.keys.Collapse):
		if e := m.selected(); e != nil && e.IsContainer() {
			if err := m.doc.SetCollapsed(m.block, e.ID, !e.Collapsed); err != nil {
				m.status = err.Error()
			}
			m.rebuildRows()
		}

	case key.Matches(msg, m.keys.EditName):
		if e := m.selected(); e != nil {
			return m.openInput(modeEditName, "Entry name...", e.Name)
		}

	case key.Matches(msg, m.keys.EditTime):
		e := m.selected()
		if e == nil || e.IsContainer() {
			m.status = "select a leaf to edit times"
			break
		}
		return m.openInput(modeEditTimes, "start - end ("+m.cfg.EditTimeFormat+")...", m.formatEditTimes(e))
	}
	return m, nil
}

func (m Model) openInput(mode inputMode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNone
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeNone
		m.input.Blur()
		m.applyInput(mode, value)
		m.rebuildRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyInput(mode inputMode, value string) {
	now := m.clock.Now()
	switch mode {
	case modeStart:
		if _, err := m.doc.Start(m.block, value, now); err != nil {
			m.status = err.Error()
		}

	case modeContinue:
		e := m.selected()
		if e == nil {
			return
		}
		if _, err := m.doc.Continue(m.block, e.ID, value, now); err != nil {
			m.status = err.Error()
		}

	case modeEditName:
		e := m.selected()
		if e == nil || value == "" {
			return
		}
		e.Name = value
		if v, err := m.doc.View(m.block); err == nil {
			if err := m.doc.Save(v); err != nil {
				m.status = err.Error()
			}
		}

	case modeEditTimes:
		m.applyEditedTimes(value)
	}
}

// formatEditTimes renders a leaf's times in the editable layout, the
// running end shown as an empty side.
func (m Model) formatEditTimes(e *tracker.Entry) string {
	start := ""
	if e.Start != nil {
		start = e.Start.Format(m.cfg.EditTimeFormat)
	}
	if e.End == nil {
		return start
	}
	return start + " - " + e.End.Format(m.cfg.EditTimeFormat)
}

// applyEditedTimes parses "start - end" (or just "start" for a running
// leaf) in the editable layout. Unparseable sides keep the old value;
// the editable layout is a lossless round trip for instants this
// system produced, so format-then-parse cannot drift.
func (m *Model) applyEditedTimes(value string) {
	e := m.selected()
	if e == nil || e.IsContainer() {
		return
	}
	startText, endText, hasEnd := strings.Cut(value, " - ")
	if t, err := time.ParseInLocation(m.cfg.EditTimeFormat, strings.TrimSpace(startText), time.Local); err == nil {
		e.Start = &t
	} else {
		m.status = "unparseable start kept unchanged"
	}
	if hasEnd && e.End != nil {
		if t, err := time.ParseInLocation(m.cfg.EditTimeFormat, strings.TrimSpace(endText), time.Local); err == nil {
			e.End = &t
		} else {
			m.status = "unparseable end kept unchanged"
		}
	}
	if v, err := m.doc.View(m.block); err == nil {
		if err := m.doc.Save(v); err != nil {
			m.status = err.Error()
		}
	}
}

// removeSelected removes the entry under the cursor unless it is, or
// contains, the running entry. That precondition lives here in the
// view layer: the model-level Remove does not check it.
func (m *Model) removeSelected() {
	e := m.selected()
	if e == nil {
		return
	}
	if e.IsLeaf() && e.End == nil {
		m.status = "cannot remove the running entry, stop it first"
		return
	}
	if e.IsContainer() && tracker.RunningEntry(e.SubEntries) != nil {
		m.status = "cannot remove a group with a running entry, stop it first"
		return
	}
	if _, err := m.doc.RemoveEntry(m.block, e.ID); err != nil {
		m.status = err.Error()
	}
	m.rebuildRows()
	if m.cursor >= len(m.rows) && m.cursor > 0 {
		m.cursor = len(m.rows) - 1
	}
}

func (m Model) selected() *tracker.Entry {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].entry
}

// rebuildRows reflattens the visible tree: collapsed containers hide
// their children, and reverse_order flips the top level only. The
// running-entry lookup is unaffected; it always walks insertion order.
func (m *Model) rebuildRows() {
	m.rows = nil
	v, err := m.doc.View(m.block)
	if err != nil {
		return
	}
	top := v.Tracker.Entries
	if m.cfg.ReverseOrder {
		reversed := make([]*tracker.Entry, len(top))
		for i, e := range top {
			reversed[len(top)-1-i] = e
		}
		top = reversed
	}
	m.appendRows(top, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

func (m *Model) appendRows(entries []*tracker.Entry, depth int) {
	for _, e := range entries {
		m.rows = append(m.rows, row{entry: e, depth: depth})
		if e.IsContainer() && !e.Collapsed {
			m.appendRows(e.SubEntries, depth+1)
		}
	}
}

// View implements tea.Model
func (m Model) View() string {
	v, err := m.doc.View(m.block)
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}
	now := m.clock.Now()

	var b strings.Builder
	title := fmt.Sprintf("%s — block %d/%d", m.doc.Path, m.block+1, len(m.doc.Views))
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if v.DecodeErr != nil {
		b.WriteString(m.styles.Warning.Render("block was malformed and loaded as empty"))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(m.styles.StatusHelp.Render("no entries — press s to start one"))
		b.WriteString("\n")
	}
	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.cursor, now))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderTotals(v, now))
	b.WriteString("\n")

	if m.mode != modeNone {
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
	} else if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.styles.StatusHelp.Render("s start · c continue · x stop · d remove · e/t edit · ? help · q quit"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(m.status))
	}

	return m.styles.App.Render(b.String())
}

func (m Model) renderRow(r row, selected bool, now time.Time) string {
	e := r.entry
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if e.IsContainer() {
		if e.Collapsed {
			marker = "▸ "
		} else {
			marker = "▾ "
		}
	}

	name := markup.Render(e.Name, m.styles.Markup)

	var times string
	if e.IsLeaf() {
		start := "-"
		if e.Start != nil {
			start = e.Start.Format(m.cfg.DisplayTimeFormat)
		}
		end := "…"
		if e.End != nil {
			end = e.End.Format(m.cfg.DisplayTimeFormat)
		}
		times = m.styles.RowTime.Render(start + " → " + end)
	}

	duration := m.styles.RowDuration.Render(timeutil.FormatClock(e.Duration(now)))

	line := fmt.Sprintf("%s%s%s  %s  %s", indent, marker, name, times, duration)
	switch {
	case e.IsLeaf() && e.End == nil:
		line = m.styles.RowRunning.Render(line)
	case selected:
		line = m.styles.RowSelected.Render(line)
	default:
		line = m.styles.RowNormal.Render(line)
	}
	if selected {
		return "> " + line
	}
	return "  " + line
}

// renderTotals shows total and today durations, plus progress toward
// the tracker's target time when one is set.
func (m Model) renderTotals(v *session.View, now time.Time) string {
	total := tracker.TotalDuration(v.Tracker.Entries, now)
	today := tracker.TotalDurationToday(v.Tracker.Entries, now)

	line := fmt.Sprintf("Total: %s   Today: %s",
		timeutil.FormatDuration(total), timeutil.FormatDuration(today))

	if target := timespec.Parse(v.Tracker.TargetTime); target > 0 {
		percent := int(float64(total) / float64(target) * 100)
		progress := fmt.Sprintf("   Target: %s (%d%%)", timeutil.FormatDuration(target), percent)
		if total >= target {
			line += m.styles.ProgressDone.Render(progress)
		} else {
			line += m.styles.ProgressPending.Render(progress)
		}
	}
	return m.styles.StatusBar.Render(line)
}

func (m Model) renderHelp() string {
	help := [][2]string{
		{"↑/k ↓/j", "move"},
		{"[ ]", "switch tracker block"},
		{"s", "start a new entry (stops everything else first)"},
		{"c", "continue selected entry as a new sub-entry"},
		{"x", "stop the running entry in this block"},
		{"d", "remove selected entry (not while running)"},
		{"space", "collapse or expand a group"},
		{"e", "edit name"},
		{"t", "edit times"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, h := range help {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.styles.HelpKey.Render(fmt.Sprintf("%8s", h[0])),
			m.styles.HelpDesc.Render(h[1])))
	}
	return b.String()
}
