package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphStar   = "★"
	glyphBullet = "●"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styleCrumbs = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleFooter = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// markdownStyle picks the glamour style without querying the terminal (those
// queries can block on some terminals).
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NOTEPRESS_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is often "fg;bg" (e.g. "15;0" => dark bg); common xterm
	// palette: 0-6 dark colors, 7-15 light.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bg := strings.TrimSpace(parts[len(parts)-1])
		switch bg {
		case "7", "8", "9", "10", "11", "12", "13", "14", "15":
			return "light"
		}
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
