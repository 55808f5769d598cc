package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#d97706")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	laneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(28)

	laneTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd60a"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff453a"))
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#30d158"))
)

// KES formats an amount stored in cents as Kenyan shillings. Amounts
// are whole shillings in practice, so no decimals unless needed.
func KES(cents int) string {
	if cents%100 == 0 {
		return fmt.Sprintf("KES %d", cents/100)
	}
	return fmt.Sprintf("KES %.2f", float64(cents)/100)
}
