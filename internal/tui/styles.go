package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the table shell.
var (
	colorHeader    = lipgloss.Color("63")
	colorAccent    = lipgloss.Color("212")
	colorMuted     = lipgloss.Color("240")
	colorCursorFg  = lipgloss.Color("229")
	colorCursorBg  = lipgloss.Color("57")
	colorSelected  = lipgloss.Color("212")
	colorErrorText = lipgloss.Color("196")
)

// Semantic styles used by the views.
var (
	// TitleStyle renders the dataset title line.
	TitleStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)

	// HeaderStyle renders the column header row.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			BorderBottom(true)

	// FocusedColumnStyle highlights the column the cursor is on in the
	// header row.
	FocusedColumnStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	// CursorRowStyle highlights the row under the cursor.
	CursorRowStyle = lipgloss.NewStyle().Foreground(colorCursorFg).Background(colorCursorBg)

	// SelectedRowStyle marks selected rows that are not under the cursor.
	SelectedRowStyle = lipgloss.NewStyle().Foreground(colorSelected)

	// StatusStyle renders the row/selection summary line.
	StatusStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// HelpStyle renders the key help footer.
	HelpStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// PromptStyle renders the search/filter input prompt.
	PromptStyle = lipgloss.NewStyle().Foreground(colorAccent)

	// ErrorStyle renders load failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(colorErrorText).Bold(true)
)

// Row state markers shown in the selection column.
const (
	markerSelected   = "[x]"
	markerUnselected = "[ ]"
)
