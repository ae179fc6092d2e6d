package termhost

import "github.com/charmbracelet/lipgloss"

var (
	primary      = lipgloss.Color("212")
	muted        = lipgloss.Color("241")
	borderNormal = lipgloss.Color("240")
	dim          = lipgloss.Color("236")
)

// Styles controls how modal boxes are drawn.
type Styles struct {
	Box      lipgloss.Style
	Inactive lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
}

// DefaultStyles returns the stock modal styles.
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
		Inactive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderNormal).
			Padding(0, 2),
		Title: lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Hint:  lipgloss.NewStyle().Foreground(muted),
	}
}
