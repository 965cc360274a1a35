package dataflows

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// Config is an alias for the main application config
type Config = config.Config

// SearchResult is the normalized payload returned by Perplexity searches.
type SearchResult struct {
	Content   string             `json:"content"`
	Citations []string           `json:"citations"`
	Model     string             `json:"model"`
	Usage     models.TokenUsage  `json:"usage"`
}

// MarketData represents a single OHLCV bar
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewsArticle represents a news article
type NewsArticle struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	URL         string            `json:"url"`
	Source      string            `json:"source"`
	PublishedAt time.Time         `json:"published_at"`
	Sentiment   float64           `json:"sentiment,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// DateRange represents a time period for data queries
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastNDays is the trailing window of the given length ending now.
func LastNDays(days int) DateRange {
	end := time.Now()
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}
