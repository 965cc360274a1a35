package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(72)

	taglineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(72).
		MarginBottom(1)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
███████╗ ██████╗ ██╗  ██╗ ██████╗
██╔════╝██╔═══██╗██║ ██╔╝██╔═══██╗
███████╗██║   ██║█████╔╝ ██║   ██║
╚════██║██║   ██║██╔═██╗ ██║   ██║
███████║╚██████╔╝██║  ██╗╚██████╔╝
╚══════╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝
            A N A L Y S T
`
	fmt.Println(bannerStyle.Render(banner))
	fmt.Println(taglineStyle.Render("AI-powered analysis for global markets, crypto, forex, and commodities"))
}
