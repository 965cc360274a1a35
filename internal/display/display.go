package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	summaryStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5E7EB")).
		Width(80)

	keyPointStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		MarginTop(1)

	pointStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		PaddingLeft(2)

	metaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		MarginTop(1)

	fallbackStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2).
		Width(80)
)

// Render turns a formatted response into styled terminal output.
func Render(resp models.FormattedResponse) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(resp.Title))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(resp.Summary))
	b.WriteString("\n\n")

	for _, point := range resp.KeyPoints {
		b.WriteString(keyPointStyle.Render("• " + point))
		b.WriteString("\n")
	}

	for _, section := range resp.Details {
		b.WriteString(sectionStyle.Render(section.Section))
		b.WriteString("\n")
		for _, point := range section.Points {
			line := point
			if !strings.HasPrefix(line, "•") {
				line = "• " + line
			}
			b.WriteString(pointStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if meta := renderMetadata(resp.Metadata); meta != "" {
		b.WriteString(metaStyle.Render(meta))
		b.WriteString("\n")
	}

	if !resp.Success {
		return fallbackStyle.Render(b.String())
	}
	return b.String()
}

// Print writes the rendered response to stdout.
func Print(resp models.FormattedResponse) {
	fmt.Println(Render(resp))
}

func renderMetadata(meta *models.ResponseMetadata) string {
	if meta == nil {
		return ""
	}

	parts := []string{}
	if meta.Model != "" {
		parts = append(parts, "Model: "+meta.Model)
	}
	if meta.Confidence != "" {
		parts = append(parts, "Confidence: "+meta.Confidence)
	}
	if meta.Timestamp > 0 {
		parts = append(parts, time.UnixMilli(meta.Timestamp).Format("2006-01-02 15:04:05"))
	}
	if len(meta.Sources) > 0 {
		parts = append(parts, fmt.Sprintf("Sources: %s", strings.Join(meta.Sources, "; ")))
	}
	return strings.Join(parts, " | ")
}
