package analysis

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractCitationsOrderAndContent(t *testing.T) {
	content := "See https://example.com/a and Source: Bloomberg report"
	citations := ExtractCitations(content)

	if len(citations) < 2 {
		t.Fatalf("expected at least 2 citations, got %v", citations)
	}
	if citations[0] != "https://example.com/a" {
		t.Fatalf("expected URL first, got %q", citations[0])
	}
	found := false
	for _, c := range citations {
		if strings.Contains(c, "Bloomberg") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Bloomberg citation, got %v", citations)
	}
}

func TestExtractCitationsDeduplicates(t *testing.T) {
	content := "Reuters said so. Reuters confirmed. https://x.io https://x.io"
	citations := ExtractCitations(content)

	seen := map[string]int{}
	for _, c := range citations {
		seen[c]++
		if seen[c] > 1 {
			t.Fatalf("duplicate citation %q in %v", c, citations)
		}
	}
}

func TestExtractCitationsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "https://news.example.com/%d ", i)
	}
	citations := ExtractCitations(b.String())
	if len(citations) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(citations))
	}
}

func TestExtractCitationsSourcePhraseToEndOfLine(t *testing.T) {
	content := "According to: Morgan Stanley desk note\nUnrelated line"
	citations := ExtractCitations(content)
	if len(citations) != 1 || citations[0] != "Morgan Stanley desk note" {
		t.Fatalf("unexpected citations %v", citations)
	}
}

func TestExtractCitationsEmptyInput(t *testing.T) {
	if got := ExtractCitations(""); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}
