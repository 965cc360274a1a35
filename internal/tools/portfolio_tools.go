package tools

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
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

const riskFreeRate = 0.03

// NewPortfolioAnalysisTool creates the portfolio valuation and risk tool.
func NewPortfolioAnalysisTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "analyze_portfolio",
			Desc: "Value a portfolio of holdings and compute risk metrics (volatility, beta, Sharpe ratio, max drawdown)",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"holdings": {
					Type:     "object",
					Desc:     "Map of symbol to share or unit count, e.g. {\"AAPL\": 50, \"BTC-USD\": 0.5}",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.PortfolioInput) (*models.FormattedResponse, error) {
			if len(input.Holdings) == 0 {
				return fallback(models.ToolPortfolioAnalysis, "holdings parameter is required"), nil
			}

			report, err := buildPortfolioReport(ctx, cfg, input.Holdings)
			if err != nil {
				return fallback(models.ToolPortfolioAnalysis, err.Error()), nil
			}

			resp := &models.ToolResponse{
				Success:   true,
				Portfolio: report,
				Timestamp: report.Timestamp,
			}
			formatted := format.FormatToolResponse(resp, models.ToolPortfolioAnalysis)
			return &formatted, nil
		},
	)
}

func buildPortfolioReport(ctx context.Context, cfg *config.Config, holdings map[string]float64) (*models.PortfolioReport, error) {
	symbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	quotes := FetchQuotes(ctx, cfg, symbols, "stocks")
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quotes available for portfolio symbols")
	}

	totalValue := 0.0
	weightedChange := 0.0
	for _, quote := range quotes {
		units := holdings[quote.Symbol]
		value := units * quote.Price
		totalValue += value
		weightedChange += value * quote.ChangePercent
	}
	if totalValue > 0 {
		weightedChange /= totalValue
	}

	risk := computeRiskMetrics(cfg, quotes, holdings, totalValue)

	return &models.PortfolioReport{
		TotalValue:         math.Round(totalValue*100) / 100,
		TotalReturnPercent: math.Round(weightedChange*100) / 100,
		RiskMetrics:        risk,
		Recommendations:    riskRecommendations(risk),
		Timestamp:          time.Now().UnixMilli(),
	}, nil
}

// computeRiskMetrics derives annualized portfolio risk from 90 days of
// history, with SPY as the beta benchmark. Symbols lacking history simply
// drop out of the weighted return series.
func computeRiskMetrics(cfg *config.Config, quotes []models.AssetQuote, holdings map[string]float64, totalValue float64) models.RiskMetrics {
	yahoo := dataflows.NewYahooFinanceClient(cfg)

	portfolioReturns := map[string]float64{}
	for _, quote := range quotes {
		units := holdings[quote.Symbol]
		weight := 0.0
		if totalValue > 0 {
			weight = units * quote.Price / totalValue
		}
		bars, err := yahoo.GetDataWindow(quote.Symbol, 90)
		if err != nil {
			log.Printf("No history for %s, excluded from risk metrics: %v", quote.Symbol, err)
			continue
		}
		for date, ret := range dailyReturns(bars) {
			portfolioReturns[date] += weight * ret
		}
	}

	series := sortedReturnSeries(portfolioReturns)
	if len(series) < 2 {
		return models.RiskMetrics{Beta: 1.0}
	}

	mean := meanOf(series)
	stdDev := stdDevOf(series, mean)

	volatility := stdDev * math.Sqrt(252) * 100
	annualReturn := mean * 252
	sharpe := 0.0
	if stdDev > 0 {
		sharpe = (annualReturn - riskFreeRate) / (stdDev * math.Sqrt(252))
	}

	beta := 1.0
	if benchBars, err := yahoo.GetDataWindow("SPY", 90); err == nil {
		beta = betaAgainst(portfolioReturns, dailyReturns(benchBars))
	}

	return models.RiskMetrics{
		Volatility:  math.Round(volatility*10) / 10,
		Beta:        math.Round(beta*100) / 100,
		SharpeRatio: math.Round(sharpe*100) / 100,
		MaxDrawdown: math.Round(maxDrawdown(series)*10) / 10,
	}
}

// dailyReturns keys close-to-close returns by date for cross-symbol alignment
func dailyReturns(bars []*dataflows.MarketData) map[string]float64 {
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	returns := map[string]float64{}
	for i := 1; i < len(bars); i++ {
		prev, _ := bars[i-1].Close.Float64()
		curr, _ := bars[i].Close.Float64()
		if prev == 0 {
			continue
		}
		returns[bars[i].Date.Format("2006-01-02")] = curr/prev - 1
	}
	return returns
}

func sortedReturnSeries(byDate map[string]float64) []float64 {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]float64, len(dates))
	for i, date := range dates {
		series[i] = byDate[date]
	}
	return series
}

func meanOf(series []float64) float64 {
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

func stdDevOf(series []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range series {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(series)))
}

func betaAgainst(portfolio, benchmark map[string]float64) float64 {
	paired := [][2]float64{}
	for date, p := range portfolio {
		if b, ok := benchmark[date]; ok {
			paired = append(paired, [2]float64{p, b})
		}
	}
	if len(paired) < 2 {
		return 1.0
	}

	meanP, meanB := 0.0, 0.0
	for _, pair := range paired {
		meanP += pair[0]
		meanB += pair[1]
	}
	meanP /= float64(len(paired))
	meanB /= float64(len(paired))

	covariance, variance := 0.0, 0.0
	for _, pair := range paired {
		covariance += (pair[0] - meanP) * (pair[1] - meanB)
		variance += (pair[1] - meanB) * (pair[1] - meanB)
	}
	if variance == 0 {
		return 1.0
	}
	return covariance / variance
}

// maxDrawdown is the largest peak-to-trough loss of the cumulative return
// path, as a positive percentage
func maxDrawdown(returns []float64) float64 {
	value, peak, worst := 1.0, 1.0, 0.0
	for _, ret := range returns {
		value *= 1 + ret
		if value > peak {
			peak = value
		}
		if drawdown := (peak - value) / peak; drawdown > worst {
			worst = drawdown
		}
	}
	return worst * 100
}

func riskRecommendations(risk models.RiskMetrics) []string {
	recommendations := []string{}
	if risk.Volatility > 25 {
		recommendations = append(recommendations, fmt.Sprintf("Portfolio volatility of %.1f%% is elevated, consider adding defensive positions", risk.Volatility))
	}
	if risk.Beta > 1.3 {
		recommendations = append(recommendations, fmt.Sprintf("Beta of %.2f amplifies market swings, hedge or trim high-beta holdings", risk.Beta))
	}
	if risk.SharpeRatio < 0.5 && risk.SharpeRatio != 0 {
		recommendations = append(recommendations, fmt.Sprintf("Sharpe ratio of %.2f suggests returns are not compensating for risk taken", risk.SharpeRatio))
	}
	if risk.MaxDrawdown > 15 {
		recommendations = append(recommendations, fmt.Sprintf("Max drawdown of %.1f%% exceeds typical tolerance, review position sizing", risk.MaxDrawdown))
	}
	return recommendations
}

// NewWatchlistTool creates the watchlist management tool.
func NewWatchlistTool(cfg *config.Config) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "manage_watchlist",
			Desc: "Add, remove, update, or review symbols on the trading watchlist with targets and priorities",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"action": {
					Type:     "string",
					Desc:     "Watchlist action: add, remove, update, or review",
					Required: true,
				},
				"symbols": {
					Type: "array",
					ElemInfo: &schema.ParameterInfo{
						Type: "object",
						SubParams: map[string]*schema.ParameterInfo{
							"symbol":      {Type: "string", Desc: "Asset symbol", Required: true},
							"market":      {Type: "string", Desc: "Market category"},
							"reason":      {Type: "string", Desc: "Why this symbol is on the watchlist"},
							"targetPrice": {Type: "number", Desc: "Price target"},
							"stopLoss":    {Type: "number", Desc: "Stop loss level"},
							"priority":    {Type: "string", Desc: "high, medium, or low"},
						},
					},
					Desc:     "Symbols with optional targets, stops, and priorities",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.WatchlistInput) (*models.FormattedResponse, error) {
			action := strings.ToLower(strings.TrimSpace(input.Action))
			switch action {
			case "add", "remove", "update", "review":
			default:
				return fallback(models.ToolWatchlistManagement, fmt.Sprintf("unsupported watchlist action %q", input.Action)), nil
			}
			if len(input.Symbols) == 0 {
				return fallback(models.ToolWatchlistManagement, "symbols parameter is required"), nil
			}

			symbols := make([]models.WatchlistSymbol, 0, len(input.Symbols))
			for _, s := range input.Symbols {
				s.Symbol = dataflows.NormalizeSymbol(s.Symbol)
				if err := dataflows.ValidateSymbol(s.Symbol); err != nil {
					log.Printf("Skipping invalid watchlist symbol %q: %v", s.Symbol, err)
					continue
				}
				if s.Market == "" {
					s.Market = "stocks"
				}
				if s.Priority == "" {
					s.Priority = "medium"
				}
				symbols = append(symbols, s)
			}
			if len(symbols) == 0 {
				return fallback(models.ToolWatchlistManagement, "no valid symbols provided"), nil
			}

			resp := &models.ToolResponse{
				Success:           true,
				Action:            action,
				Symbols:           symbols,
				WatchlistAnalysis: watchlistAnalysis(ctx, cfg, action, symbols),
				Timestamp:         time.Now().UnixMilli(),
			}
			formatted := format.FormatToolResponse(resp, models.ToolWatchlistManagement)
			return &formatted, nil
		},
	)
}

// watchlistAnalysis adds a one-line market read for add/review actions.
// Failures degrade to the formatter's default summary text.
func watchlistAnalysis(ctx context.Context, cfg *config.Config, action string, symbols []models.WatchlistSymbol) string {
	if action != "add" && action != "review" {
		return ""
	}

	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Symbol
	}

	perplexity := dataflows.NewPerplexityClient(cfg)
	result, err := perplexity.SearchMarketNews(ctx, names, "watchlist outlook")
	if err != nil {
		log.Printf("Watchlist analysis unavailable: %v", err)
		return ""
	}
	return format.ExtractSummary(result.Content)
}
