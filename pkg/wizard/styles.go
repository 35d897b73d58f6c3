package wizard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#764BA2"))
)

func banner(step, total int, title string) string {
	return bannerStyle.Render(title) + " " + counterStyle.Render(fmt.Sprintf("Step %d of %d", step, total))
}

func heading(text string) string {
	return headingStyle.Render(text)
}
