package tools

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/kephothoX/SokoAnalyst/internal/analysis"
	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
	"github.com/kephothoX/SokoAnalyst/internal/format"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

var defaultSentimentSources = []string{"news", "social", "technical", "fundamental"}

// NewMarketSentimentTool creates the multi-source sentiment tool. It mines
// recent coverage per symbol and scores it with the weighted keyword model.
func NewMarketSentimentTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_sentiment",
			Desc: "Analyze market sentiment for symbols across news, social, technical, and fundamental sources",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbols": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Asset symbols to score",
					Required: true,
				},
				"sources": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Sentiment sources to include: news, social, technical, fundamental. Empty includes all.",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.SentimentInput) (*models.FormattedResponse, error) {
			return SentimentReport(ctx, cfg, input), nil
		},
	)
}

// SentimentReport scores sentiment per symbol and formats the result.
func SentimentReport(ctx context.Context, cfg *config.Config, input models.SentimentInput) *models.FormattedResponse {
	if len(input.Symbols) == 0 {
		return fallback(models.ToolMarketSentiment, "symbols parameter is required")
	}
	sources := input.Sources
	if len(sources) == 0 {
		sources = defaultSentimentSources
	}

	perplexity := dataflows.NewPerplexityClient(cfg)
	scraper := dataflows.NewNewsScraperClient(cfg)
	sentiments := make([]models.SymbolSentiment, 0, len(input.Symbols))
	for _, symbol := range input.Symbols {
		symbol = dataflows.NormalizeSymbol(symbol)
		sentiment, err := scoreSymbolSentiment(ctx, cfg, perplexity, scraper, symbol, sources)
		if err != nil {
			log.Printf("Sentiment scoring failed for %s: %v", symbol, err)
			continue
		}
		sentiments = append(sentiments, *sentiment)
	}

	if len(sentiments) == 0 {
		return fallback(models.ToolMarketSentiment, "no sentiment data could be gathered")
	}

	resp := &models.ToolResponse{
		Success:        true,
		SentimentData:  sentiments,
		MarketOverview: buildMarketOverview(sentiments),
		Timestamp:      time.Now().UnixMilli(),
	}
	formatted := format.FormatToolResponse(resp, models.ToolMarketSentiment)
	return &formatted
}

func scoreSymbolSentiment(ctx context.Context, cfg *config.Config, perplexity *dataflows.PerplexityClient, scraper *dataflows.NewsScraperClient, symbol string, sources []string) (*models.SymbolSentiment, error) {
	result, err := perplexity.SearchMarketNews(ctx, []string{symbol}, "sentiment and outlook")
	if err != nil {
		return nil, err
	}

	advanced := analysis.AnalyzeAdvancedSentiment(result.Content)

	sourceScores := map[string]models.SourceSentiment{}
	for _, source := range sources {
		score, ok := factorForSource(advanced.Factors, source)
		if !ok {
			continue
		}
		key := strings.ToLower(source)
		if key == "news" {
			score = blendNewsScore(score, scrapedCoverage(scraper, cfg, symbol))
		}
		sourceScores[key] = models.SourceSentiment{
			Score:      score,
			Confidence: advanced.Confidence,
		}
	}

	return &models.SymbolSentiment{
		Symbol:  symbol,
		Overall: advanced.Category,
		Score:   advanced.Score,
		Sources: sourceScores,
	}, nil
}

// scrapedCoverage pulls recent Google News articles for the symbol.
// A scrape failure leaves the news factor on search content alone.
func scrapedCoverage(scraper *dataflows.NewsScraperClient, cfg *config.Config, symbol string) []*dataflows.NewsArticle {
	articles, err := scraper.GetGoogleNews(dataflows.GoogleNewsParams{
		Query:      symbol + " stock news",
		MaxResults: 10,
	}, cfg)
	if err != nil {
		log.Printf("News scrape failed for %s: %v", symbol, err)
		return nil
	}
	return articles
}

// blendNewsScore averages the search-derived news factor with the keyword
// score of scraped headlines and summaries when any were found.
func blendNewsScore(searchScore float64, articles []*dataflows.NewsArticle) float64 {
	headline, ok := headlineNewsScore(articles)
	if !ok {
		return searchScore
	}
	return (searchScore + headline) / 2
}

func headlineNewsScore(articles []*dataflows.NewsArticle) (float64, bool) {
	if len(articles) == 0 {
		return 0, false
	}
	parts := make([]string, 0, len(articles)*2)
	for _, article := range articles {
		parts = append(parts, article.Title)
		if article.Content != "" {
			parts = append(parts, article.Content)
		}
	}
	advanced := analysis.AnalyzeAdvancedSentiment(strings.Join(parts, ". "))
	return advanced.Factors.News, true
}

func factorForSource(factors analysis.FactorScores, source string) (float64, bool) {
	switch strings.ToLower(source) {
	case "news":
		return factors.News, true
	case "social":
		return factors.Social, true
	case "technical":
		return factors.Technical, true
	case "fundamental":
		return factors.Fundamental, true
	}
	return 0, false
}

// buildMarketOverview aggregates per-symbol categories into a market read
func buildMarketOverview(sentiments []models.SymbolSentiment) *models.MarketOverview {
	bullish, bearish := 0, 0
	for _, s := range sentiments {
		switch {
		case strings.Contains(s.Overall, "bullish"):
			bullish++
		case strings.Contains(s.Overall, "bearish"):
			bearish++
		}
	}

	overall := "neutral"
	mood := "Mixed"
	if bullish > bearish {
		overall = "bullish"
		mood = "Risk-On"
	} else if bearish > bullish {
		overall = "bearish"
		mood = "Risk-Off"
	}

	return &models.MarketOverview{
		OverallSentiment: overall,
		MarketMood:       mood,
		BullishAssets:    bullish,
		BearishAssets:    bearish,
	}
}
