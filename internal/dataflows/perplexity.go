package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kephothoX/SokoAnalyst/internal/analysis"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

const financialSystemPrompt = "You are SokoAnalyst, an elite financial intelligence system. Use advanced reasoning to analyze financial markets with precision. Provide:\n\n" +
	"1. **Data Analysis**: Current prices, volumes, market cap, and key metrics\n" +
	"2. **Reasoning Process**: Step-by-step analysis of market conditions\n" +
	"3. **Context**: Historical perspective and market dynamics\n" +
	"4. **Risk Assessment**: Potential risks and opportunities\n" +
	"5. **Actionable Insights**: Clear, professional recommendations\n\n" +
	"Always cite sources and provide specific numbers with proper context. Use professional financial terminology and maintain analytical rigor."

const reasoningSystemPrompt = "You are SokoAnalyst, an elite institutional-grade financial intelligence system.\n\n" +
	"Your analysis methodology:\n" +
	"1. **Data Gathering**: Collect real-time market data and news\n" +
	"2. **Multi-Factor Analysis**: Combine technical, fundamental, and sentiment factors\n" +
	"3. **Risk Assessment**: Identify key risks and probability-weighted scenarios\n" +
	"4. **Reasoning Chain**: Show your analytical process step-by-step\n" +
	"5. **Professional Conclusions**: Provide clear, actionable insights\n\n" +
	"Format your response with:\n" +
	"- Executive Summary\n" +
	"- Detailed Analysis with reasoning\n" +
	"- Risk Factors\n" +
	"- Investment Thesis\n" +
	"- Specific Recommendations\n\n" +
	"Use institutional-quality analysis with proper financial terminology."

// Per-type deep analysis prompts. Symbols are joined into %s.
var analysisPrompts = map[string]string{
	"technical": "Perform detailed technical analysis for %s. Include:\n" +
		"- Current price action and trend analysis\n" +
		"- Key support and resistance levels\n" +
		"- Technical indicators (RSI, MACD, Moving Averages)\n" +
		"- Chart patterns and breakout potential\n" +
		"- Volume analysis and momentum indicators\n" +
		"- Short-term and medium-term outlook",
	"fundamental": "Conduct comprehensive fundamental analysis for %s. Include:\n" +
		"- Financial health and key metrics (P/E, EPS, Revenue growth)\n" +
		"- Business model and competitive advantages\n" +
		"- Industry trends and market position\n" +
		"- Recent earnings and guidance\n" +
		"- Valuation assessment and fair value estimation\n" +
		"- Long-term growth prospects",
	"sentiment": "Analyze current market sentiment for %s. Include:\n" +
		"- News sentiment and media coverage analysis\n" +
		"- Social media sentiment and retail investor behavior\n" +
		"- Institutional sentiment and smart money flows\n" +
		"- Options flow and derivatives positioning\n" +
		"- Fear & Greed indicators\n" +
		"- Contrarian signals and sentiment extremes",
	"comprehensive": "Provide comprehensive multi-dimensional analysis for %s. Include:\n" +
		"- Technical analysis with key levels and indicators\n" +
		"- Fundamental valuation and business assessment\n" +
		"- Market sentiment and positioning analysis\n" +
		"- Risk-reward assessment and scenario planning\n" +
		"- Correlation analysis with broader markets\n" +
		"- Actionable investment thesis with specific entry/exit levels",
}

var contextPrompts = map[string]string{
	"trading":         "Focus on short-term trading opportunities, entry/exit points, and risk management for active trading.",
	"investment":      "Provide long-term investment analysis, value assessment, and portfolio allocation recommendations.",
	"risk_management": "Emphasize risk factors, scenario analysis, stress testing, and hedging strategies.",
	"research":        "Deliver comprehensive research-grade analysis with detailed methodology and supporting evidence.",
}

// PerplexityClient wraps the Perplexity chat completions API
type PerplexityClient struct {
	client *resty.Client
	cache  *CacheManager
	model  string
	apiKey string
}

// NewPerplexityClient creates a new Perplexity client
func NewPerplexityClient(config *Config) *PerplexityClient {
	cacheDir := filepath.Join(config.DataCacheDir, "perplexity")
	cache := NewCacheManager(cacheDir, time.Duration(config.CacheTTLMinutes)*time.Minute, config.CacheEnabled)

	client := resty.New()
	client.SetBaseURL(config.PerplexityBaseURL)
	client.SetTimeout(60 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	client.SetAuthToken(config.PerplexityAPIKey)

	return &PerplexityClient{
		client: client,
		cache:  cache,
		model:  config.PerplexityModel,
		apiKey: config.PerplexityAPIKey,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string           `json:"citations"`
	Usage     *models.TokenUsage `json:"usage"`
}

// SearchFinancialData runs a financial query through the reasoning model
// and returns the normalized result with citations mined from the content.
func (pc *PerplexityClient) SearchFinancialData(ctx context.Context, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if pc.apiKey == "" {
		return nil, fmt.Errorf("Perplexity API key not configured")
	}

	var cached SearchResult
	if pc.cache.Get("perplexity", "search", query, &cached) {
		return &cached, nil
	}

	req := chatRequest{
		Model: pc.model,
		Messages: []chatMessage{
			{Role: "system", Content: financialSystemPrompt},
			{Role: "user", Content: "Analyze the following financial query with detailed reasoning: " + query},
		},
		MaxTokens:   2000,
		Temperature: 0.2,
		TopP:        0.9,
	}

	result, err := pc.complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search financial data: %w", err)
	}

	pc.cache.Set("perplexity", "search", query, result)
	return result, nil
}

// SearchMarketNews queries for latest news and sentiment about the symbols
func (pc *PerplexityClient) SearchMarketNews(ctx context.Context, symbols []string, newsType string) (*SearchResult, error) {
	if newsType == "" {
		newsType = "general"
	}
	query := fmt.Sprintf("Latest %s news and market sentiment for %s. Include current market sentiment, recent news headlines, and analyst opinions. Provide specific sentiment scores if available.",
		newsType, strings.Join(symbols, ", "))
	return pc.SearchFinancialData(ctx, query)
}

// SearchEconomicIndicators queries for current values of economic indicators
func (pc *PerplexityClient) SearchEconomicIndicators(ctx context.Context, indicators, countries []string) (*SearchResult, error) {
	if len(countries) == 0 {
		countries = []string{"US"}
	}
	query := fmt.Sprintf("Latest economic indicators for %s: %s. Include current values, previous values, changes, and release dates. Provide specific numbers and percentages.",
		strings.Join(countries, ", "), strings.Join(indicators, ", "))
	return pc.SearchFinancialData(ctx, query)
}

// AnalyzeMarketWithReasoning runs a deep per-type analysis over the symbols.
// analysisType is one of technical, fundamental, sentiment, comprehensive.
func (pc *PerplexityClient) AnalyzeMarketWithReasoning(ctx context.Context, symbols []string, analysisType string) (*SearchResult, error) {
	if pc.apiKey == "" {
		return nil, fmt.Errorf("Perplexity API key not configured")
	}

	prompt, ok := analysisPrompts[analysisType]
	if !ok {
		prompt = analysisPrompts["comprehensive"]
	}

	cacheKey := map[string]interface{}{
		"symbols": symbols,
		"type":    analysisType,
	}
	var cached SearchResult
	if pc.cache.Get("perplexity", "reasoning", cacheKey, &cached) {
		return &cached, nil
	}

	req := chatRequest{
		Model: pc.model,
		Messages: []chatMessage{
			{Role: "system", Content: reasoningSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(prompt, strings.Join(symbols, ", "))},
		},
		MaxTokens:   3000,
		Temperature: 0.15,
		TopP:        0.85,
	}

	result, err := pc.complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform reasoning analysis: %w", err)
	}

	pc.cache.Set("perplexity", "reasoning", cacheKey, result)
	return result, nil
}

// GetMarketIntelligence answers an open query with a context-specific focus.
// context is one of trading, investment, risk_management, research.
func (pc *PerplexityClient) GetMarketIntelligence(ctx context.Context, query, focus string) (*SearchResult, error) {
	prompt, ok := contextPrompts[focus]
	if !ok {
		prompt = contextPrompts["research"]
	}

	enhancedQuery := fmt.Sprintf(`%s

Context: %s

Please provide institutional-grade analysis with:
1. Key findings and implications
2. Supporting data and evidence
3. Risk assessment and scenarios
4. Actionable recommendations
5. Confidence levels and limitations`, query, prompt)

	return pc.SearchFinancialData(ctx, enhancedQuery)
}

// complete posts a chat completion and normalizes the response
func (pc *PerplexityClient) complete(ctx context.Context, req chatRequest) (*SearchResult, error) {
	var result *SearchResult

	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := pc.client.R().
			SetContext(ctx).
			SetBody(req).
			Post("/chat/completions")
		if err != nil {
			return fmt.Errorf("perplexity request failed: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var parsed chatResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return fmt.Errorf("failed to parse completion response: %w", err)
		}
		if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
			return fmt.Errorf("no content received from Perplexity")
		}

		content := parsed.Choices[0].Message.Content
		citations := parsed.Citations
		if len(citations) == 0 {
			citations = analysis.ExtractCitations(content)
		}

		model := parsed.Model
		if model == "" {
			model = req.Model
		}
		usage := models.TokenUsage{}
		if parsed.Usage != nil {
			usage = *parsed.Usage
		}

		result = &SearchResult{
			Content:   content,
			Citations: citations,
			Model:     model,
			Usage:     usage,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// ParseQuote mines a quote record out of free-text market commentary.
// Missing fields stay nil so callers can apply their own fallbacks.
func ParseQuote(content, symbol string) *models.AssetQuote {
	fields := analysis.ExtractNumericFields(content)

	quote := &models.AssetQuote{
		Symbol:     symbol,
		Timestamp:  time.Now().UnixMilli(),
		Source:     "Perplexity",
		RawContent: content,
	}
	if fields.Price != nil {
		quote.Price = *fields.Price
	}
	if fields.Change != nil {
		quote.Change = *fields.Change
	}
	if fields.ChangePercent != nil {
		quote.ChangePercent = *fields.ChangePercent
	}
	if fields.Volume != nil {
		quote.Volume = *fields.Volume
	}
	return quote
}
