package models

// ToolType identifies which analytical tool produced a response and selects
// the extraction template the formatter applies to it.
type ToolType string

const (
	ToolMarketData          ToolType = "marketDataTool"
	ToolTechnicalAnalysis   ToolType = "technicalAnalysisTool"
	ToolMarketSentiment     ToolType = "marketSentimentTool"
	ToolPortfolioAnalysis   ToolType = "portfolioAnalysisTool"
	ToolWatchlistManagement ToolType = "watchlist_management"
	ToolReasoningAnalysis   ToolType = "perplexity_reasoning_analysis"
	ToolMarketIntelligence  ToolType = "market_intelligence"
	ToolWeb3Perpetuals      ToolType = "web3_perpetuals_analysis"
	ToolLocationAnalysis    ToolType = "location_based_market_analysis"
)

// FormattedResponse is the display record handed to the presentation layer.
// Every formatter entry point returns one, success or fallback.
type FormattedResponse struct {
	Success         bool             `json:"success"`
	Title           string           `json:"title"`
	Summary         string           `json:"summary"`
	KeyPoints       []string         `json:"keyPoints"`
	Details         []DetailSection  `json:"details,omitempty"`
	Metadata        *ResponseMetadata `json:"metadata,omitempty"`
	FallbackMessage string           `json:"fallbackMessage,omitempty"`
}

// DetailSection is a named, bounded group of bullet points.
type DetailSection struct {
	Section string   `json:"section"`
	Points  []string `json:"points"`
}

// ResponseMetadata carries provenance for a formatted response.
type ResponseMetadata struct {
	Model      string   `json:"model,omitempty"`
	Timestamp  int64    `json:"timestamp,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Confidence string   `json:"confidence,omitempty"`
}

// TokenUsage mirrors the usage block of the upstream completion API.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ToolResponse is the raw envelope a tool hands to the formatter. Exactly
// one of the typed payloads is populated for the structured tools; the
// prose tools carry their text in Content.
type ToolResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	Content   string      `json:"content,omitempty"`
	Text      string      `json:"text,omitempty"`
	Model     string      `json:"model,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Citations []string    `json:"citations,omitempty"`
	Usage     *TokenUsage `json:"usage,omitempty"`

	// Prose-tool context.
	AnalysisType string   `json:"analysisType,omitempty"`
	Context      string   `json:"context,omitempty"`
	Protocols    []string `json:"protocols,omitempty"`
	Assets       []string `json:"assets,omitempty"`
	Regions      []string `json:"regions,omitempty"`
	Countries    []string `json:"countries,omitempty"`

	// Structured-tool payloads.
	Market             string              `json:"market,omitempty"`
	Data               []AssetQuote        `json:"data,omitempty"`
	Analysis           *TechnicalReport    `json:"analysis,omitempty"`
	ActionableInsights []string            `json:"actionableInsights,omitempty"`
	SentimentData      []SymbolSentiment   `json:"sentimentData,omitempty"`
	MarketOverview     *MarketOverview     `json:"marketOverview,omitempty"`
	Portfolio          *PortfolioReport    `json:"portfolio,omitempty"`
	Action             string              `json:"action,omitempty"`
	Symbols            []WatchlistSymbol   `json:"symbols,omitempty"`
	WatchlistAnalysis  string              `json:"watchlistAnalysis,omitempty"`
	PerpetualsData     []ProtocolMetrics   `json:"perpetualsData,omitempty"`
	RegionalData       []RegionMetrics     `json:"regionalData,omitempty"`
}
