package format

import (
	"regexp"
	"strings"
)

// Caps applied to every formatted response regardless of input size.
const (
	maxKeyPoints        = 8
	maxSections         = 4
	maxPointsPerSection = 6
	maxSectionPoints    = 4
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	headingSplit  = regexp.MustCompile(`#{1,3}\s+`)
	emphasisMarks = regexp.MustCompile(`\*+`)
	bulletMarker  = regexp.MustCompile(`^[•\-*]\s*`)
)

// sentences splits content on sentence terminators and keeps trimmed
// fragments longer than minLen.
func sentences(content string, minLen int) []string {
	parts := sentenceSplit.Split(content, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minLen {
			out = append(out, p)
		}
	}
	return out
}

// ExtractSummary returns the first sentence of the content longer than 20
// characters, with a trailing period ensured. Empty when no sentence
// qualifies.
func ExtractSummary(content string) string {
	candidates := sentences(content, 20)
	if len(candidates) == 0 {
		return ""
	}
	summary := candidates[0]
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// extractKeyPoints collects up to two sentences per keyword, bullet-prefixed
// and deduplicated, capped at 8 points.
func extractKeyPoints(content string, keywords []string) []string {
	return collectKeywordPoints(content, keywords, 10, 2, maxKeyPoints)
}

// extractSectionPoints is the per-section variant: one sentence per
// keyword, capped at 4 points.
func extractSectionPoints(content string, keywords []string) []string {
	return collectKeywordPoints(content, keywords, 15, 1, maxSectionPoints)
}

func collectKeywordPoints(content string, keywords []string, minLen, perKeyword, limit int) []string {
	candidates := sentences(content, minLen)
	points := []string{}
	seen := map[string]bool{}

	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		taken := 0
		for _, sentence := range candidates {
			if taken >= perKeyword {
				break
			}
			if !strings.Contains(strings.ToLower(sentence), kw) {
				continue
			}
			point := "• " + sentence
			taken++
			if seen[point] {
				continue
			}
			seen[point] = true
			points = append(points, point)
		}
	}

	if len(points) > limit {
		points = points[:limit]
	}
	return points
}

// markdownSections splits content on markdown heading markers. Each block's
// first line (emphasis stripped) becomes the section title; subsequent
// bullet lines become its points. Blocks without bullet points are skipped.
func markdownSections(content string) []sectionBlock {
	blocks := headingSplit.Split(content, -1)
	out := []sectionBlock{}

	for i := 1; i < len(blocks); i++ {
		lines := []string{}
		for _, line := range strings.Split(blocks[i], "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		title := strings.TrimSpace(emphasisMarks.ReplaceAllString(lines[0], ""))
		points := []string{}
		for _, line := range lines[1:] {
			trimmed := strings.TrimSpace(line)
			if !bulletMarker.MatchString(trimmed) {
				continue
			}
			point := strings.TrimSpace(bulletMarker.ReplaceAllString(trimmed, ""))
			if point != "" {
				points = append(points, point)
			}
		}
		if len(points) == 0 {
			continue
		}
		if len(points) > maxPointsPerSection {
			points = points[:maxPointsPerSection]
		}
		out = append(out, sectionBlock{title: title, points: points})
	}

	return out
}

type sectionBlock struct {
	title  string
	points []string
}
