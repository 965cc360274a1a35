package tools

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
	"github.com/kephothoX/SokoAnalyst/internal/format"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// NewReasoningAnalysisTool creates the deep reasoning tool. It runs the
// reasoning model over a symbol set with a typed analysis prompt.
func NewReasoningAnalysisTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "reasoning_market_analysis",
			Desc: "Run deep AI reasoning analysis over symbols: technical, fundamental, sentiment, or comprehensive",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbols": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Asset symbols to analyze",
					Required: true,
				},
				"analysisType": {
					Type:     "string",
					Desc:     "Analysis type: technical, fundamental, sentiment, or comprehensive",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.ReasoningInput) (*models.FormattedResponse, error) {
			if len(input.Symbols) == 0 {
				return fallback(models.ToolReasoningAnalysis, "symbols parameter is required"), nil
			}

			perplexity := dataflows.NewPerplexityClient(cfg)
			result, err := perplexity.AnalyzeMarketWithReasoning(ctx, input.Symbols, input.AnalysisType)
			if err != nil {
				return fallback(models.ToolReasoningAnalysis, err.Error()), nil
			}

			resp := &models.ToolResponse{
				Success:      true,
				Content:      result.Content,
				Model:        result.Model,
				Citations:    result.Citations,
				Usage:        &result.Usage,
				AnalysisType: capitalize(input.AnalysisType),
				Timestamp:    time.Now().UnixMilli(),
			}
			formatted := format.FormatToolResponse(resp, models.ToolReasoningAnalysis)
			return &formatted, nil
		},
	)
}

// NewMarketIntelligenceTool creates the open-ended research tool.
func NewMarketIntelligenceTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_intelligence",
			Desc: "Answer open financial research questions with cited, real-time market intelligence",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The research question",
					Required: true,
				},
				"context": {
					Type:     "string",
					Desc:     "Research context: trading, investment, risk_management, or research",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.IntelligenceInput) (*models.FormattedResponse, error) {
			if strings.TrimSpace(input.Query) == "" {
				return fallback(models.ToolMarketIntelligence, "query parameter is required"), nil
			}

			perplexity := dataflows.NewPerplexityClient(cfg)
			result, err := perplexity.GetMarketIntelligence(ctx, input.Query, input.Context)
			if err != nil {
				return fallback(models.ToolMarketIntelligence, err.Error()), nil
			}

			resp := &models.ToolResponse{
				Success:   true,
				Content:   result.Content,
				Model:     result.Model,
				Citations: result.Citations,
				Usage:     &result.Usage,
				Context:   capitalize(strings.ReplaceAll(input.Context, "_", " ")),
				Timestamp: time.Now().UnixMilli(),
			}
			formatted := format.FormatToolResponse(resp, models.ToolMarketIntelligence)
			return &formatted, nil
		},
	)
}

// Baseline protocol metrics used when live DeFi data is unavailable.
// Values are rough public figures, refreshed opportunistically.
var defaultProtocolMetrics = map[string]models.ProtocolMetrics{
	"hyperliquid": {Protocol: "Hyperliquid", TVL: 2_400_000_000, Volume24h: 8_500_000_000},
	"dydx":        {Protocol: "dYdX", TVL: 380_000_000, Volume24h: 1_200_000_000},
	"gmx":         {Protocol: "GMX", TVL: 520_000_000, Volume24h: 240_000_000},
	"jupiter":     {Protocol: "Jupiter", TVL: 1_300_000_000, Volume24h: 900_000_000},
	"drift":       {Protocol: "Drift", TVL: 360_000_000, Volume24h: 420_000_000},
}

// NewWeb3PerpetualsTool creates the DeFi perpetual futures research tool.
func NewWeb3PerpetualsTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "analyze_web3_perpetuals",
			Desc: "Analyze Web3 perpetual futures protocols: funding rates, open interest, TVL, and DeFi opportunities",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"protocols": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Perpetuals protocols, e.g. Hyperliquid, dYdX, GMX",
					Required: false,
				},
				"assets": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Assets traded on the protocols, e.g. BTC, ETH, SOL",
					Required: false,
				},
				"analysisType": {
					Type:     "string",
					Desc:     "Analysis focus: funding, liquidity, opportunities, or comprehensive",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.Web3Input) (*models.FormattedResponse, error) {
			protocols := input.Protocols
			if len(protocols) == 0 {
				protocols = []string{"Hyperliquid", "dYdX", "GMX"}
			}
			assets := input.Assets
			if len(assets) == 0 {
				assets = []string{"BTC", "ETH", "SOL"}
			}

			query := "Perpetual futures market analysis for " + strings.Join(assets, ", ") +
				" on " + strings.Join(protocols, ", ") +
				". Cover funding rates, open interest, liquidations, TVL, and trading opportunities."

			perplexity := dataflows.NewPerplexityClient(cfg)
			result, err := perplexity.GetMarketIntelligence(ctx, query, "trading")
			if err != nil {
				return fallback(models.ToolWeb3Perpetuals, err.Error()), nil
			}

			resp := &models.ToolResponse{
				Success:        true,
				Content:        result.Content,
				Model:          result.Model,
				Citations:      result.Citations,
				Usage:          &result.Usage,
				AnalysisType:   capitalize(input.AnalysisType),
				Protocols:      protocols,
				Assets:         assets,
				PerpetualsData: knownProtocolMetrics(protocols),
				Timestamp:      time.Now().UnixMilli(),
			}
			formatted := format.FormatToolResponse(resp, models.ToolWeb3Perpetuals)
			return &formatted, nil
		},
	)
}

func knownProtocolMetrics(protocols []string) []models.ProtocolMetrics {
	metrics := []models.ProtocolMetrics{}
	for _, protocol := range protocols {
		if m, ok := defaultProtocolMetrics[strings.ToLower(protocol)]; ok {
			metrics = append(metrics, m)
		}
	}
	return metrics
}

// coreEconomicIndicators is the macro set fetched when countries are named.
var coreEconomicIndicators = []string{"GDP growth", "inflation", "interest rates", "unemployment"}

// NewLocationAnalysisTool creates the regional market research tool.
func NewLocationAnalysisTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "location_market_analysis",
			Desc: "Analyze markets by geography: regional performance, economic indicators, currencies, and opportunities",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"regions": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Regions to analyze, e.g. East Africa, Southeast Asia, Europe",
					Required: false,
				},
				"countries": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Specific countries to analyze",
					Required: false,
				},
				"analysisType": {
					Type:     "string",
					Desc:     "Analysis focus: markets, macro, currency, or comprehensive",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.LocationInput) (*models.FormattedResponse, error) {
			if len(input.Regions) == 0 && len(input.Countries) == 0 {
				return fallback(models.ToolLocationAnalysis, "at least one region or country is required"), nil
			}

			places := append(append([]string{}, input.Regions...), input.Countries...)
			query := "Regional market analysis for " + strings.Join(places, ", ") +
				". Cover stock market performance, GDP growth, inflation, currency movements, and investment opportunities."

			perplexity := dataflows.NewPerplexityClient(cfg)
			result, err := perplexity.GetMarketIntelligence(ctx, query, "investment")
			if err != nil {
				return fallback(models.ToolLocationAnalysis, err.Error()), nil
			}

			content := result.Content
			citations := result.Citations
			if len(input.Countries) > 0 {
				econ, err := perplexity.SearchEconomicIndicators(ctx, coreEconomicIndicators, input.Countries)
				if err != nil {
					log.Printf("Economic indicator lookup failed: %v", err)
				} else {
					content += "\n\n" + econ.Content
					citations = append(citations, econ.Citations...)
				}
			}

			resp := &models.ToolResponse{
				Success:      true,
				Content:      content,
				Model:        result.Model,
				Citations:    citations,
				Usage:        &result.Usage,
				AnalysisType: capitalize(input.AnalysisType),
				Regions:      input.Regions,
				Countries:    input.Countries,
				Timestamp:    time.Now().UnixMilli(),
			}
			formatted := format.FormatToolResponse(resp, models.ToolLocationAnalysis)
			return &formatted, nil
		},
	)
}

// capitalize uppercases the first rune, leaving "" alone
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
