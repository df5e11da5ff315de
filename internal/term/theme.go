package term

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Frame        lipgloss.Style
	HeadingLarge lipgloss.Style
	HeadingMed   lipgloss.Style
	HeadingSmall lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Focus        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Failure      lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00B7C3")
	secondary := lipgloss.Color("#7D7D7D")
	success := lipgloss.Color("#00C853")
	warning := lipgloss.Color("#FFBF00")
	danger := lipgloss.Color("#FF0055")

	return theme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		HeadingLarge: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		HeadingMed: lipgloss.NewStyle().
			Bold(true),
		HeadingSmall: lipgloss.NewStyle().
			Underline(true),
		Body: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Focus: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Error: lipgloss.NewStyle().
			Foreground(danger),
		Success: lipgloss.NewStyle().
			Foreground(success),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Failure: lipgloss.NewStyle().
			Foreground(danger),
		Button: lipgloss.NewStyle().
			Foreground(secondary),
		ButtonFocus: lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Foreground(accent),
	}
}
