package models

// AssetQuote is a single asset's snapshot inside a market data response.
type AssetQuote struct {
	Symbol        string   `json:"symbol"`
	Market        string   `json:"market,omitempty"`
	Price         float64  `json:"price"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	Volume        float64  `json:"volume"`
	MarketCap     float64  `json:"marketCap,omitempty"`
	High24h       float64  `json:"high24h"`
	Low24h        float64  `json:"low24h"`
	Timestamp     int64    `json:"timestamp,omitempty"`
	Source        string   `json:"source"`
	LastUpdated   string   `json:"lastUpdated,omitempty"`
	RawContent    string   `json:"rawContent,omitempty"`
	Citations     []string `json:"citations,omitempty"`
}

// IndicatorReading is one technical indicator's signal and value.
type IndicatorReading struct {
	Signal string  `json:"signal,omitempty"`
	Trend  string  `json:"trend,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// TechnicalReport groups indicator readings for one symbol.
type TechnicalReport struct {
	Symbol     string                      `json:"symbol"`
	Timestamp  int64                       `json:"timestamp"`
	Indicators map[string]IndicatorReading `json:"indicators"`
}

// SourceSentiment is the per-source breakdown of a symbol's sentiment.
type SourceSentiment struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence,omitempty"`
}

// SymbolSentiment is the aggregated sentiment for one symbol.
type SymbolSentiment struct {
	Symbol  string                     `json:"symbol"`
	Overall string                     `json:"overall"`
	Score   float64                    `json:"score"`
	Sources map[string]SourceSentiment `json:"sources,omitempty"`
}

// MarketOverview summarizes sentiment across all analyzed assets.
type MarketOverview struct {
	OverallSentiment string `json:"overallSentiment"`
	MarketMood       string `json:"marketMood"`
	BullishAssets    int    `json:"bullishAssets"`
	BearishAssets    int    `json:"bearishAssets"`
}

// RiskMetrics carries the aggregate risk figures of a portfolio.
type RiskMetrics struct {
	Volatility  float64 `json:"volatility"`
	Beta        float64 `json:"beta"`
	SharpeRatio float64 `json:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// PortfolioReport is the aggregate analysis of a portfolio.
type PortfolioReport struct {
	TotalValue         float64     `json:"totalValue"`
	TotalReturnPercent float64     `json:"totalReturnPercent"`
	RiskMetrics        RiskMetrics `json:"riskMetrics"`
	Recommendations    []string    `json:"recommendations,omitempty"`
	Timestamp          int64       `json:"timestamp"`
}

// WatchlistSymbol is one entry of a watchlist operation.
type WatchlistSymbol struct {
	Symbol      string  `json:"symbol"`
	Market      string  `json:"market"`
	Reason      string  `json:"reason,omitempty"`
	TargetPrice float64 `json:"targetPrice,omitempty"`
	StopLoss    float64 `json:"stopLoss,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// ProtocolMetrics carries headline figures for a perpetuals protocol.
type ProtocolMetrics struct {
	Protocol  string  `json:"protocol"`
	TVL       float64 `json:"tvl"`
	Volume24h float64 `json:"volume24h"`
}

// RegionMetrics carries headline figures for a geographic region.
type RegionMetrics struct {
	Region         string  `json:"region"`
	Performance6M  float64 `json:"performance6m"`
	GDPGrowth      float64 `json:"gdpGrowth"`
}
