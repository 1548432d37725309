package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/spirit-tracker/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(1, 2)

	hintStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#D75F00")).
			PaddingLeft(1).
			Foreground(lipgloss.Color("#FFAF5F"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#AF0000")).
			Bold(true).
			Padding(1, 4)

	victoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	defeatStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF0000")).Bold(true)
)

var categoryColors = map[models.PhaseCategory]lipgloss.Color{
	models.CategorySpirit:  lipgloss.Color("#5FAF5F"),
	models.CategoryFast:    lipgloss.Color("#FFD75F"),
	models.CategoryInvader: lipgloss.Color("#D75F5F"),
	models.CategorySlow:    lipgloss.Color("#5F87D7"),
	models.CategoryTime:    lipgloss.Color("#A8A8A8"),
}

func categoryStyle(c models.PhaseCategory) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryColors[c])
}

var phaseIcons = map[string]string{
	"sprout":    "❀",
	"zap":       "⚡",
	"skull":     "☠",
	"ghost":     "✦",
	"shield":    "⛨",
	"flame":     "🔥",
	"tent":      "⌂",
	"ship":      "⛵",
	"arrow":     "➜",
	"hourglass": "⌛",
	"sun":       "☀",
}

func phaseIcon(p models.Phase) string {
	if icon, ok := phaseIcons[p.Icon]; ok {
		return icon
	}
	return "•"
}

func outcomeStyle(o models.Outcome) lipgloss.Style {
	if o == models.Victory {
		return victoryStyle
	}
	return defeatStyle
}
