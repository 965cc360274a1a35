package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

func testStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewHistoryStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListAnalyses(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	resp := models.FormattedResponse{
		Success:   true,
		Title:     "Market Data - STOCKS",
		Summary:   "Real-time market data for 2 assets.",
		KeyPoints: []string{"📈 AAPL: $175.50 (up 1.20%)"},
	}

	id, err := store.SaveAnalysis(ctx, models.ToolMarketData, []string{"AAPL", "MSFT"}, resp)
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	records, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	record := records[0]
	if record.ToolType != string(models.ToolMarketData) {
		t.Fatalf("tool type = %q", record.ToolType)
	}
	if len(record.Symbols) != 2 || record.Symbols[0] != "AAPL" {
		t.Fatalf("symbols = %v", record.Symbols)
	}
	if record.Response.Title != resp.Title {
		t.Fatalf("round-tripped title = %q", record.Response.Title)
	}
	if len(record.Response.KeyPoints) != 1 {
		t.Fatalf("round-tripped key points = %v", record.Response.KeyPoints)
	}
}

func TestGetAnalysis(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveAnalysis(ctx, models.ToolMarketSentiment, []string{"TSLA"}, models.FormattedResponse{
		Success: true,
		Title:   "Market Sentiment Analysis",
		Summary: "Sentiment analysis across 1 asset using multiple data sources.",
	})
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	record, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record.Title != "Market Sentiment Analysis" {
		t.Fatalf("title = %q", record.Title)
	}

	if _, err := store.Get(ctx, id+999); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestPruneKeepsRecent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.SaveAnalysis(ctx, models.ToolMarketData, nil, models.FormattedResponse{
		Success: true,
		Title:   "Recent",
	}); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	deleted, err := store.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("pruned %d fresh records", deleted)
	}

	records, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after prune, want 1", len(records))
	}
}
