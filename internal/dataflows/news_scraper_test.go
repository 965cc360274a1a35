package dataflows

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/config"
)

func TestGetGoogleNewsReadsSameDaySavedFile(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())
	cfg.CacheEnabled = false

	saved := []*NewsArticle{
		{Title: "Markets rally on rate cut hopes", Source: "Example Wire"},
		{Title: "Tech stocks surge in early trading", Source: "Example Wire"},
	}
	path := filepath.Join(cfg.DataDir, "news_data",
		fmt.Sprintf("google_news_%s_%s.json", "AAPL_earnings", time.Now().Format("2006-01-02")))
	if err := SaveDataToFile(saved, path); err != nil {
		t.Fatalf("SaveDataToFile: %v", err)
	}

	scraper := NewNewsScraperClient(cfg)
	articles, err := scraper.GetGoogleNews(GoogleNewsParams{Query: "AAPL earnings", MaxResults: 1}, cfg)
	if err != nil {
		t.Fatalf("expected saved-file read, got error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("MaxResults should trim saved articles, got %d", len(articles))
	}
	if articles[0].Title != "Markets rally on rate cut hopes" {
		t.Fatalf("unexpected article %+v", articles[0])
	}
}

func TestParseRelativeTime(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())
	scraper := NewNewsScraperClient(cfg)

	now := time.Now()
	got := scraper.parseRelativeTime("3 hours ago")
	if d := now.Sub(got); d < 2*time.Hour+59*time.Minute || d > 3*time.Hour+time.Minute {
		t.Fatalf("3 hours ago parsed to %v before now", d)
	}

	got = scraper.parseRelativeTime("2 days ago")
	if d := now.Sub(got); d < 47*time.Hour || d > 49*time.Hour {
		t.Fatalf("2 days ago parsed to %v before now", d)
	}
}
