package analysis

import "regexp"

// maxCitations caps the raw citation list length.
const maxCitations = 10

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s]+`)
	sourcePattern = regexp.MustCompile(`(?i)(?:Source|According to|Via|From):\s*([^\n]+)`)
	outletPattern = regexp.MustCompile(`(?i)\b(?:Bloomberg|Reuters|CNBC|Yahoo Finance|MarketWatch|WSJ|Financial Times)\b`)
)

// ExtractCitations scans analysis text for source attributions: bare URLs,
// "Source:"-style phrases up to end of line, and mentions of well-known
// financial outlets. Order of discovery is preserved, exact duplicates are
// dropped, and the result is capped at 10 entries.
func ExtractCitations(content string) []string {
	citations := []string{}

	citations = append(citations, urlPattern.FindAllString(content, -1)...)
	for _, m := range sourcePattern.FindAllStringSubmatch(content, -1) {
		citations = append(citations, m[1])
	}
	citations = append(citations, outletPattern.FindAllString(content, -1)...)

	seen := make(map[string]bool, len(citations))
	unique := citations[:0]
	for _, c := range citations {
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}

	if len(unique) > maxCitations {
		unique = unique[:maxCitations]
	}
	return unique
}
