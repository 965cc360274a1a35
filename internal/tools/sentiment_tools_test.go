package tools

import (
	"testing"

	"github.com/kephothoX/SokoAnalyst/internal/analysis"
	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

func TestBuildMarketOverview(t *testing.T) {
	sentiments := []models.SymbolSentiment{
		{Symbol: "AAPL", Overall: "bullish"},
		{Symbol: "MSFT", Overall: "slightly bullish"},
		{Symbol: "TSLA", Overall: "bearish"},
		{Symbol: "GLD", Overall: "neutral"},
	}
	overview := buildMarketOverview(sentiments)
	if overview.BullishAssets != 2 || overview.BearishAssets != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", overview.BullishAssets, overview.BearishAssets)
	}
	if overview.OverallSentiment != "bullish" || overview.MarketMood != "Risk-On" {
		t.Fatalf("overview = %q/%q", overview.OverallSentiment, overview.MarketMood)
	}
}

func TestBuildMarketOverviewBalanced(t *testing.T) {
	sentiments := []models.SymbolSentiment{
		{Symbol: "AAPL", Overall: "bullish"},
		{Symbol: "TSLA", Overall: "bearish"},
	}
	overview := buildMarketOverview(sentiments)
	if overview.OverallSentiment != "neutral" || overview.MarketMood != "Mixed" {
		t.Fatalf("balanced overview = %q/%q, want neutral/Mixed", overview.OverallSentiment, overview.MarketMood)
	}
}

func TestFactorForSource(t *testing.T) {
	factors := analysis.FactorScores{Technical: 0.5, Fundamental: -0.25, News: 1, Social: -1}

	cases := []struct {
		source string
		want   float64
		ok     bool
	}{
		{"news", 1, true},
		{"Social", -1, true},
		{"technical", 0.5, true},
		{"FUNDAMENTAL", -0.25, true},
		{"astrology", 0, false},
	}
	for _, tc := range cases {
		got, ok := factorForSource(factors, tc.source)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("factorForSource(%q) = %v, %v; want %v, %v", tc.source, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBlendNewsScoreAveragesHeadlines(t *testing.T) {
	articles := []*dataflows.NewsArticle{
		{Title: "Shares rally on strong quarterly results"},
		{Title: "Upgrade fuels fresh momentum", Content: "Institutional buying continues"},
	}

	got := blendNewsScore(0, articles)
	if got != 0.5 {
		t.Fatalf("blendNewsScore = %v, want 0.5", got)
	}
}

func TestBlendNewsScoreBearishHeadlines(t *testing.T) {
	articles := []*dataflows.NewsArticle{
		{Title: "Analysts downgrade the stock after sales decline"},
	}

	got := blendNewsScore(1, articles)
	if got != 0 {
		t.Fatalf("blendNewsScore = %v, want 0", got)
	}
}

func TestBlendNewsScoreNoArticles(t *testing.T) {
	if got := blendNewsScore(0.4, nil); got != 0.4 {
		t.Fatalf("blendNewsScore without articles = %v, want the search score unchanged", got)
	}
}
