package models

type MarketDataInput struct {
	Symbols []string `json:"symbols"`
	Market  string   `json:"market"`
}

type TechnicalAnalysisInput struct {
	Symbol     string   `json:"symbol"`
	Indicators []string `json:"indicators"`
}

type SentimentInput struct {
	Symbols []string `json:"symbols"`
	Sources []string `json:"sources"`
}

type PortfolioInput struct {
	Holdings map[string]float64 `json:"holdings"`
}

type WatchlistInput struct {
	Action  string            `json:"action"`
	Symbols []WatchlistSymbol `json:"symbols"`
}

type ReasoningInput struct {
	Symbols      []string `json:"symbols"`
	AnalysisType string   `json:"analysisType"`
}

type IntelligenceInput struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type Web3Input struct {
	Protocols    []string `json:"protocols"`
	Assets       []string `json:"assets"`
	AnalysisType string   `json:"analysisType"`
}

type LocationInput struct {
	Regions      []string `json:"regions"`
	Countries    []string `json:"countries"`
	AnalysisType string   `json:"analysisType"`
}
