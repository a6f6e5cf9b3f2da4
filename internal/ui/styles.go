package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Selected   = lipgloss.Color("#4F46E5") // Indigo
)

// Styles
var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// List items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Application rows
	AppNameStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	AppIDStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	GroupNameStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	TokenStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	MissingStyle = lipgloss.NewStyle().
			Foreground(Error)

	// Change lines
	AddedStyle = lipgloss.NewStyle().
			Foreground(Success)

	RemovedStyle = lipgloss.NewStyle().
			Foreground(Error)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1).
			MarginTop(1)

	// Help bar
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	DividerStyle = lipgloss.NewStyle().
			Foreground(Border)

	// Notification/Toast styles
	SuccessNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Background(lipgloss.Color("#064E3B")).
				Padding(0, 1).
				Bold(true)

	ErrorNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCA5A5")).
				Background(lipgloss.Color("#7F1D1D")).
				Padding(0, 1).
				Bold(true)

	WarningNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCD34D")).
				Background(lipgloss.Color("#78350F")).
				Padding(0, 1).
				Bold(true)

	InfoNotifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93C5FD")).
			Background(lipgloss.Color("#1E3A5F")).
			Padding(0, 1).
			Bold(true)
)

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// RenderNotification renders a styled notification message
func RenderNotification(msgType string, message string) string {
	var icon string
	var style lipgloss.Style

	switch msgType {
	case "success":
		icon = "✓"
		style = SuccessNotifyStyle
	case "error":
		icon = "✗"
		style = ErrorNotifyStyle
	case "warning":
		icon = "⚠"
		style = WarningNotifyStyle
	case "info":
		icon = "ℹ"
		style = InfoNotifyStyle
	default:
		icon = "•"
		style = MutedStyle
	}

	return style.Render(icon + " " + message)
}

// Divider renders a horizontal rule of the given width
func Divider(width int) string {
	if width < 1 {
		width = 1
	}
	line := make([]rune, width)
	for i := range line {
		line[i] = '─'
	}
	return DividerStyle.Render(string(line))
}
