package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#7C3AED")
	Secondary  = lipgloss.Color("#38BDF8")
	Success    = lipgloss.Color("#4ADE80")
	Warning    = lipgloss.Color("#FBBF24")
	Error      = lipgloss.Color("#F87171")
	Muted      = lipgloss.Color("#64748B")
	Foreground = lipgloss.Color("#E2E8F0")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)

	TextStyle = lipgloss.NewStyle().
		Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	LoadingStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Comic cards
	CardStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(1, 2).
		MarginBottom(1)

	ActiveCardStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(Primary).
		Padding(1, 2).
		MarginBottom(1)

	// Grid cells
	CellStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Muted).
		Padding(0, 1).
		MarginRight(1)

	ActiveCellStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(Primary).
		Padding(0, 1).
		MarginRight(1)

	// Hot / update badges on listings
	HotBadgeStyle = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	UpBadgeStyle = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	// Tabs
	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Background(lipgloss.Color("#1E293B")).
		Padding(0, 2).
		Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true).
		MarginTop(1)

	InputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Primary).
		Padding(0, 1)

	// Reader overlay chrome
	OverlayStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Primary).
		Padding(0, 1)

	ProgressBarStyle = lipgloss.NewStyle().
		Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
		Foreground(Muted)
)

func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "fetching", "downloading", "processing":
		return LoadingStyle
	case "complete":
		return SuccessStyle
	case "error":
		return ErrorStyle
	default:
		return MutedStyle
	}
}
