package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/avlone/tracknote/internal/markup"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App       lipgloss.Style
	ViewTitle lipgloss.Style

	// Tracker tree rows
	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	RowRunning  lipgloss.Style
	RowName     lipgloss.Style
	RowTime     lipgloss.Style
	RowDuration lipgloss.Style
	Collapsed   lipgloss.Style

	// Progress toward a target time
	ProgressDone    lipgloss.Style
	ProgressPending lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusHelp lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Inline name markup
	Markup markup.Styles
}

// NewStylesFromRegistry creates a Styles struct using colors from a
// bubbletint registry. Theme colors map to semantic elements:
// Purple for titles, Cyan for instants, BrightPurple for durations,
// Green for the running row, BrightBlack for muted chrome.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		RowSelected: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowRunning: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		RowName: lipgloss.NewStyle().
			Foreground(fg),
		RowTime: lipgloss.NewStyle().
			Foreground(secondary),
		RowDuration: lipgloss.NewStyle().
			Foreground(accent).
			Align(lipgloss.Right),
		Collapsed: lipgloss.NewStyle().
			Foreground(muted),

		ProgressDone: lipgloss.NewStyle().
			Foreground(success),
		ProgressPending: lipgloss.NewStyle().
			Foreground(muted),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),

		Markup: markup.Styles{
			Bold:   lipgloss.NewStyle().Bold(true),
			Italic: lipgloss.NewStyle().Italic(true),
			Code:   lipgloss.NewStyle().Foreground(accent),
			Strike: lipgloss.NewStyle().Strikethrough(true),
			Link:   lipgloss.NewStyle().Foreground(secondary).Underline(true),
		},
	}
}
