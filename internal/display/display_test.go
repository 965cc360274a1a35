package display

import (
	"strings"
	"testing"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

func TestRenderIncludesAllParts(t *testing.T) {
	resp := models.FormattedResponse{
		Success:   true,
		Title:     "Market Data - STOCKS",
		Summary:   "Real-time market data for 2 assets.",
		KeyPoints: []string{"📈 AAPL: $175.50 (up 1.20%)"},
		Details: []models.DetailSection{
			{Section: "Data Sources", Points: []string{"Yahoo Finance"}},
		},
		Metadata: &models.ResponseMetadata{Model: "sonar-pro", Confidence: "Real-time"},
	}

	out := Render(resp)
	for _, want := range []string{
		"Market Data - STOCKS",
		"Real-time market data for 2 assets.",
		"AAPL: $175.50",
		"Data Sources",
		"Yahoo Finance",
		"Model: sonar-pro",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMetadataEmpty(t *testing.T) {
	if got := renderMetadata(nil); got != "" {
		t.Fatalf("renderMetadata(nil) = %q", got)
	}
	if got := renderMetadata(&models.ResponseMetadata{}); got != "" {
		t.Fatalf("renderMetadata(empty) = %q", got)
	}
}

func TestRenderFallbackKeepsContent(t *testing.T) {
	resp := models.FormattedResponse{
		Success:         false,
		Title:           "Market Data - Temporarily Unavailable",
		Summary:         "Unable to fetch live market data at this time.",
		FallbackMessage: "Technical details: upstream timeout",
	}
	out := Render(resp)
	if !strings.Contains(out, "Temporarily Unavailable") {
		t.Fatalf("fallback render missing title:\n%s", out)
	}
}
