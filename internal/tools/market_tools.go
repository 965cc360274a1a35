package tools

import (
	"context"
	"fmt"
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

// NewMarketDataTool creates the real-time quote tool. Quotes come from
// Yahoo Finance first, then Perplexity search, then a synthetic estimate
// so the agent always has numbers to work with.
func NewMarketDataTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_data",
			Desc: "Get real-time market data for stocks, crypto, forex, indices, or commodities",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbols": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Asset symbols to fetch, e.g. AAPL, BTC-USD, EURUSD=X",
					Required: true,
				},
				"market": {
					Type:     "string",
					Desc:     "Market category: stocks, crypto, forex, indices, commodities",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.MarketDataInput) (*models.FormattedResponse, error) {
			return MarketDataReport(ctx, cfg, input), nil
		},
	)
}

// MarketDataReport runs the market data pipeline and formats the result.
func MarketDataReport(ctx context.Context, cfg *config.Config, input models.MarketDataInput) *models.FormattedResponse {
	if len(input.Symbols) == 0 {
		return fallback(models.ToolMarketData, "symbols parameter is required")
	}
	market := input.Market
	if market == "" {
		market = "stocks"
	}

	quotes := FetchQuotes(ctx, cfg, input.Symbols, market)

	resp := &models.ToolResponse{
		Success:   true,
		Market:    market,
		Data:      quotes,
		Timestamp: time.Now().UnixMilli(),
	}
	formatted := format.FormatToolResponse(resp, models.ToolMarketData)
	return &formatted
}

// FetchQuotes resolves each symbol through the data source chain. It never
// returns an empty slice: the synthetic estimator backs every symbol.
func FetchQuotes(ctx context.Context, cfg *config.Config, symbols []string, market string) []models.AssetQuote {
	yahoo := dataflows.NewYahooFinanceClient(cfg)
	perplexity := dataflows.NewPerplexityClient(cfg)

	quotes := make([]models.AssetQuote, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = dataflows.NormalizeSymbol(symbol)
		if err := dataflows.ValidateSymbol(symbol); err != nil {
			log.Printf("Skipping invalid symbol %q: %v", symbol, err)
			continue
		}
		quotes = append(quotes, *fetchQuote(ctx, yahoo, perplexity, symbol, market))
	}
	return quotes
}

func fetchQuote(ctx context.Context, yahoo *dataflows.YahooFinanceClient, perplexity *dataflows.PerplexityClient, symbol, market string) *models.AssetQuote {
	if quote, err := yahoo.GetAssetQuote(symbol, market); err == nil {
		return quote
	} else {
		log.Printf("Yahoo Finance quote failed for %s: %v", symbol, err)
	}

	query := fmt.Sprintf("Current price, change, and volume for %s in the %s market", symbol, market)
	if result, err := perplexity.SearchFinancialData(ctx, query); err == nil {
		quote := dataflows.ParseQuote(result.Content, symbol)
		quote.Market = market
		quote.Citations = result.Citations
		if quote.Price > 0 {
			return quote
		}
	} else {
		log.Printf("Perplexity quote failed for %s: %v", symbol, err)
	}

	return dataflows.SyntheticQuote(symbol, market)
}

// NewTechnicalAnalysisTool creates the indicator analysis tool backed by
// Yahoo Finance daily bars.
func NewTechnicalAnalysisTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_technical_analysis",
			Desc: "Compute technical indicators (RSI, MACD, moving averages, Bollinger Bands, ATR, VWMA, MFI) for a symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The asset symbol to analyze",
					Required: true,
				},
				"indicators": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Indicators to compute: " + strings.Join(SupportedIndicators(), ", ") + ". Empty computes all.",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.TechnicalAnalysisInput) (*models.FormattedResponse, error) {
			return TechnicalAnalysisReport(ctx, cfg, input), nil
		},
	)
}

// TechnicalAnalysisReport computes indicators over daily bars and formats
// the result.
func TechnicalAnalysisReport(ctx context.Context, cfg *config.Config, input models.TechnicalAnalysisInput) *models.FormattedResponse {
	if input.Symbol == "" {
		return fallback(models.ToolTechnicalAnalysis, "symbol parameter is required")
	}
	symbol := dataflows.NormalizeSymbol(input.Symbol)

	yahoo := dataflows.NewYahooFinanceClient(cfg)
	bars, err := yahoo.GetDataWindow(symbol, 250)
	if err != nil {
		return fallback(models.ToolTechnicalAnalysis, err.Error())
	}

	report, err := BuildTechnicalReport(symbol, bars, input.Indicators)
	if err != nil {
		return fallback(models.ToolTechnicalAnalysis, err.Error())
	}

	resp := &models.ToolResponse{
		Success:            true,
		Analysis:           report,
		ActionableInsights: actionableInsights(report),
		Timestamp:          report.Timestamp,
	}
	formatted := format.FormatToolResponse(resp, models.ToolTechnicalAnalysis)
	return &formatted
}

// actionableInsights derives trade-oriented notes from indicator readings
func actionableInsights(report *models.TechnicalReport) []string {
	insights := []string{}

	if rsi, ok := report.Indicators["rsi"]; ok {
		switch rsi.Signal {
		case "overbought":
			insights = append(insights, fmt.Sprintf("RSI at %.2f signals overbought conditions, consider taking profits", rsi.Value))
		case "oversold":
			insights = append(insights, fmt.Sprintf("RSI at %.2f signals oversold conditions, watch for a reversal entry", rsi.Value))
		}
	}
	if macd, ok := report.Indicators["macd"]; ok {
		if macd.Signal == "bullish" {
			insights = append(insights, "MACD is above its signal line, momentum favors the upside")
		} else {
			insights = append(insights, "MACD is below its signal line, momentum favors the downside")
		}
	}
	if sma, ok := report.Indicators["sma200"]; ok {
		if sma.Trend == "uptrend" {
			insights = append(insights, fmt.Sprintf("Price holds above the 200 SMA (%.2f), the long-term trend is intact", sma.Value))
		} else {
			insights = append(insights, fmt.Sprintf("Price trades below the 200 SMA (%.2f), the long-term trend is under pressure", sma.Value))
		}
	}
	if atr, ok := report.Indicators["atr"]; ok && atr.Signal == "high volatility" {
		insights = append(insights, fmt.Sprintf("Elevated ATR (%.2f) calls for wider stops and smaller position sizes", atr.Value))
	}

	if len(insights) == 0 {
		insights = append(insights, "No extreme readings detected, conditions look range-bound")
	}
	return insights
}

// fallback wraps the shared fallback builder for tool handlers
func fallback(toolType models.ToolType, errMsg string) *models.FormattedResponse {
	formatted := format.BuildFallback(toolType, errMsg)
	return &formatted
}
