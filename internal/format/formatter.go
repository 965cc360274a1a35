package format

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// handlers maps each known tool tag to its extraction routine. Unknown
// tags fall through to the generic handler; there is no dispatch failure.
var handlers = map[models.ToolType]func(*models.ToolResponse) models.FormattedResponse{
	models.ToolReasoningAnalysis:   formatReasoningAnalysis,
	models.ToolMarketIntelligence:  formatMarketIntelligence,
	models.ToolMarketData:          formatMarketData,
	models.ToolTechnicalAnalysis:   formatTechnicalAnalysis,
	models.ToolMarketSentiment:     formatSentimentAnalysis,
	models.ToolPortfolioAnalysis:   formatPortfolioAnalysis,
	models.ToolWatchlistManagement: formatWatchlistManagement,
	models.ToolWeb3Perpetuals:      formatWeb3PerpetualsAnalysis,
	models.ToolLocationAnalysis:    formatLocationBasedAnalysis,
}

// FormatToolResponse turns a raw tool envelope into a display record. It
// never fails: missing or malformed input degrades to the fallback record
// for the tool.
func FormatToolResponse(resp *models.ToolResponse, toolType models.ToolType) models.FormattedResponse {
	if resp == nil || (!resp.Success && resp.Content == "") {
		errMsg := ""
		if resp != nil {
			errMsg = resp.Error
		}
		return BuildFallback(toolType, errMsg)
	}

	// Direct text content bypasses the typed handlers.
	if resp.Text != "" && resp.Content == "" {
		return FormatText(resp.Text, toolType)
	}

	if handler, ok := handlers[toolType]; ok {
		return clamp(handler(resp))
	}
	return clamp(formatGenericResponse(resp, toolType))
}

// FormatText formats a raw prose blob, such as direct agent output. A
// JSON-shaped payload with summary and key insights takes the structured
// path; everything else is mined as markdown-flavored prose.
func FormatText(text string, toolType models.ToolType) models.FormattedResponse {
	if structured, ok := parseStructuredPayload(text); ok {
		return clamp(formatStructuredResponse(structured, toolType))
	}

	details := []models.DetailSection{}
	for _, block := range markdownSections(text) {
		details = append(details, models.DetailSection{Section: block.title, Points: block.points})
	}

	summary := ExtractSummary(text)
	if summary == "" {
		summary = "Professional financial analysis completed with institutional-grade insights."
	}

	return clamp(models.FormattedResponse{
		Success: true,
		Title:   toolTypeLabel(toolType) + " Analysis",
		Summary: summary,
		KeyPoints: extractKeyPoints(text, []string{
			"key insights", "recommendations", "analysis", "findings",
			"outlook", "factors", "risks", "opportunities",
		}),
		Details: details,
		Metadata: &models.ResponseMetadata{
			Timestamp:  time.Now().UnixMilli(),
			Confidence: "AI Generated",
			Sources:    []string{"SokoAnalyst AI Reasoning"},
		},
	})
}

func formatReasoningAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	content := resp.Content

	analysisType := resp.AnalysisType
	if analysisType == "" {
		analysisType = "Comprehensive"
	}

	summary := ExtractSummary(content)
	if summary == "" {
		summary = "Advanced AI analysis completed using institutional-grade reasoning methodology."
	}

	confidence := "Standard"
	if resp.Usage != nil && resp.Usage.TotalTokens > 2000 {
		confidence = "High"
	}

	return models.FormattedResponse{
		Success: true,
		Title:   "AI Reasoning Analysis - " + analysisType,
		Summary: summary,
		KeyPoints: extractKeyPoints(content, []string{
			"key findings", "analysis shows", "data indicates", "conclusion",
			"recommendation", "risk factors", "opportunity", "outlook",
		}),
		Details: contentSections(content, []keywordSection{
			{"Market Analysis", []string{"market", "price", "trend", "volume"}},
			{"Risk Assessment", []string{"risk", "volatility", "downside", "upside"}},
			{"Investment Thesis", []string{"investment", "position", "allocation", "strategy"}},
		}),
		Metadata: &models.ResponseMetadata{
			Model:      resp.Model,
			Timestamp:  responseTimestamp(resp),
			Sources:    capSources(resp.Citations, 3),
			Confidence: confidence,
		},
	}
}

func formatMarketIntelligence(resp *models.ToolResponse) models.FormattedResponse {
	content := resp.Content

	context := resp.Context
	if context == "" {
		context = "Research"
	}

	summary := ExtractSummary(content)
	if summary == "" {
		summary = "Comprehensive market intelligence analysis with real-time insights."
	}

	return models.FormattedResponse{
		Success: true,
		Title:   "Market Intelligence - " + context,
		Summary: summary,
		KeyPoints: extractKeyPoints(content, []string{
			"market conditions", "key drivers", "outlook", "factors",
			"trends", "performance", "indicators", "sentiment",
		}),
		Details: contentSections(content, []keywordSection{
			{"Current Conditions", []string{"current", "today", "recent", "latest"}},
			{"Key Drivers", []string{"driven by", "due to", "because of", "factors"}},
			{"Forward Outlook", []string{"expect", "forecast", "outlook", "future", "ahead"}},
		}),
		Metadata: &models.ResponseMetadata{
			Model:      resp.Model,
			Timestamp:  responseTimestamp(resp),
			Sources:    capSources(resp.Citations, 4),
			Confidence: "Real-time",
		},
	}
}

func formatMarketData(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success {
		return BuildFallback(models.ToolMarketData, resp.Error)
	}
	// An empty asset list still formats as success, with zero key points.

	keyPoints := make([]string, 0, len(resp.Data))
	performance := make([]string, 0, len(resp.Data))
	sources := []string{}
	seenSources := map[string]bool{}

	for _, asset := range resp.Data {
		direction, arrow := "up", "📈"
		if asset.ChangePercent < 0 {
			direction, arrow = "down", "📉"
		}
		keyPoints = append(keyPoints, fmt.Sprintf("%s %s: $%.2f (%s %.2f%%)",
			arrow, asset.Symbol, asset.Price, direction, abs(asset.ChangePercent)))
		performance = append(performance, fmt.Sprintf("%s: Volume %.1fM, Range $%.2f - $%.2f",
			asset.Symbol, asset.Volume/1e6, asset.Low24h, asset.High24h))
		if asset.Source != "" && !seenSources[asset.Source] {
			seenSources[asset.Source] = true
			sources = append(sources, asset.Source)
		}
	}

	market := "Multi-Asset"
	if resp.Market != "" {
		market = strings.ToUpper(resp.Market)
	}

	return models.FormattedResponse{
		Success:   true,
		Title:     "Market Data - " + market,
		Summary:   fmt.Sprintf("Real-time market data for %d asset%s with current prices and performance metrics.", len(resp.Data), plural(len(resp.Data))),
		KeyPoints: keyPoints,
		Details: []models.DetailSection{
			{Section: "Performance Summary", Points: performance},
		},
		Metadata: &models.ResponseMetadata{
			Timestamp:  responseTimestamp(resp),
			Sources:    sources,
			Confidence: "Live Data",
		},
	}
}

func formatTechnicalAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || resp.Analysis == nil {
		return BuildFallback(models.ToolTechnicalAnalysis, resp.Error)
	}

	analysis := resp.Analysis
	names := make([]string, 0, len(analysis.Indicators))
	for name := range analysis.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)

	keyPoints := make([]string, 0, len(names))
	for _, name := range names {
		reading := analysis.Indicators[name]
		signal := reading.Signal
		if signal == "" {
			signal = reading.Trend
		}
		if signal == "" {
			signal = "neutral"
		}
		value := ""
		if reading.Value != 0 {
			value = fmt.Sprintf(" (%.2f)", reading.Value)
		}
		keyPoints = append(keyPoints, fmt.Sprintf("📊 %s: %s%s", name, strings.ToUpper(signal), value))
	}

	insights := resp.ActionableInsights
	if len(insights) == 0 {
		insights = []string{
			"Monitor key support/resistance levels for breakout signals",
			"Consider position sizing based on volatility metrics",
			"Watch for volume confirmation on price movements",
		}
	}

	return models.FormattedResponse{
		Success:   true,
		Title:     "Technical Analysis - " + analysis.Symbol,
		Summary:   fmt.Sprintf("Comprehensive technical analysis with %d indicators providing actionable insights.", len(analysis.Indicators)),
		KeyPoints: keyPoints,
		Details: []models.DetailSection{
			{Section: "Actionable Insights", Points: insights},
		},
		Metadata: &models.ResponseMetadata{
			Timestamp:  analysis.Timestamp,
			Confidence: "Technical",
		},
	}
}

func formatSentimentAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || len(resp.SentimentData) == 0 {
		return BuildFallback(models.ToolMarketSentiment, resp.Error)
	}

	keyPoints := make([]string, 0, len(resp.SentimentData))
	sourcePoints := []string{}

	for _, sentiment := range resp.SentimentData {
		emoji := "🟡"
		switch sentiment.Overall {
		case "bullish":
			emoji = "🟢"
		case "bearish":
			emoji = "🔴"
		}
		keyPoints = append(keyPoints, fmt.Sprintf("%s %s: %s (Score: %.0f%%)",
			emoji, sentiment.Symbol, strings.ToUpper(sentiment.Overall), sentiment.Score*100))

		names := make([]string, 0, len(sentiment.Sources))
		for name := range sentiment.Sources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			mood := "Neutral"
			if sentiment.Sources[name].Score > 0 {
				mood = "Positive"
			} else if sentiment.Sources[name].Score < 0 {
				mood = "Negative"
			}
			sourcePoints = append(sourcePoints, fmt.Sprintf("%s: %s sentiment", strings.ToUpper(name), mood))
		}
	}
	if len(sourcePoints) > maxPointsPerSection {
		sourcePoints = sourcePoints[:maxPointsPerSection]
	}

	details := []models.DetailSection{}
	if len(sourcePoints) > 0 {
		details = append(details, models.DetailSection{Section: "Sentiment Sources", Points: sourcePoints})
	}
	if overview := resp.MarketOverview; overview != nil {
		details = append(details, models.DetailSection{
			Section: "Market Overview",
			Points: []string{
				"Overall Sentiment: " + strings.ToUpper(overview.OverallSentiment),
				"Market Mood: " + overview.MarketMood,
				fmt.Sprintf("Bullish Assets: %d", overview.BullishAssets),
				fmt.Sprintf("Bearish Assets: %d", overview.BearishAssets),
			},
		})
	}

	return models.FormattedResponse{
		Success:   true,
		Title:     "Market Sentiment Analysis",
		Summary:   fmt.Sprintf("Sentiment analysis across %d asset%s using multiple data sources.", len(resp.SentimentData), plural(len(resp.SentimentData))),
		KeyPoints: keyPoints,
		Details:   details,
		Metadata: &models.ResponseMetadata{
			Timestamp:  responseTimestamp(resp),
			Confidence: "Multi-Source",
		},
	}
}

func formatPortfolioAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || resp.Portfolio == nil {
		return BuildFallback(models.ToolPortfolioAnalysis, resp.Error)
	}

	p := resp.Portfolio
	sign := ""
	if p.TotalReturnPercent >= 0 {
		sign = "+"
	}

	recommendations := p.Recommendations
	if len(recommendations) == 0 {
		recommendations = []string{
			"Consider rebalancing to maintain target allocation",
			"Monitor correlation between holdings",
			"Review high-volatility positions for risk management",
		}
	}

	return models.FormattedResponse{
		Success: true,
		Title:   "Portfolio Analysis",
		Summary: "Comprehensive portfolio analysis with risk metrics and optimization recommendations.",
		KeyPoints: []string{
			fmt.Sprintf("💼 Total Value: $%s", formatAmount(p.TotalValue)),
			fmt.Sprintf("📈 Total Return: %s%.2f%%", sign, p.TotalReturnPercent),
			fmt.Sprintf("⚖️ Sharpe Ratio: %.2f", p.RiskMetrics.SharpeRatio),
			fmt.Sprintf("📊 Max Drawdown: %.1f%%", p.RiskMetrics.MaxDrawdown),
		},
		Details: []models.DetailSection{
			{Section: "Risk Metrics", Points: []string{
				fmt.Sprintf("Volatility: %.1f%%", p.RiskMetrics.Volatility),
				fmt.Sprintf("Beta: %.2f", p.RiskMetrics.Beta),
				fmt.Sprintf("Sharpe Ratio: %.2f", p.RiskMetrics.SharpeRatio),
			}},
			{Section: "Recommendations", Points: recommendations},
		},
		Metadata: &models.ResponseMetadata{
			Timestamp:  p.Timestamp,
			Confidence: "Portfolio",
		},
	}
}

func formatWatchlistManagement(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || len(resp.Symbols) == 0 {
		return BuildFallback(models.ToolWatchlistManagement, resp.Error)
	}

	action := resp.Action
	if action == "" {
		action = "update"
	}
	actionText := "Updated in"
	switch action {
	case "add":
		actionText = "Added to"
	case "remove":
		actionText = "Removed from"
	}

	keyPoints := make([]string, 0, len(resp.Symbols))
	names := make([]string, 0, len(resp.Symbols))
	byPriority := map[string][]string{}
	for _, s := range resp.Symbols {
		point := fmt.Sprintf("%s %s (%s)", actionEmoji(action), s.Symbol, s.Market)
		if s.Reason != "" {
			point += " - " + s.Reason
		}
		if s.TargetPrice > 0 {
			point += fmt.Sprintf(" | Target: $%g", s.TargetPrice)
		}
		if s.StopLoss > 0 {
			point += fmt.Sprintf(" | Stop: $%g", s.StopLoss)
		}
		keyPoints = append(keyPoints, point)
		names = append(names, s.Symbol)
		byPriority[s.Priority] = append(byPriority[s.Priority], fmt.Sprintf("• %s: %s", s.Symbol, s.Reason))
	}

	details := []models.DetailSection{}
	for _, priority := range []string{"high", "medium", "low"} {
		if points := byPriority[priority]; len(points) > 0 {
			details = append(details, models.DetailSection{
				Section: capitalize(priority) + " Priority Symbols",
				Points:  points,
			})
		}
	}

	summary := fmt.Sprintf("%s watchlist: %s. ", actionText, strings.Join(names, ", "))
	if resp.WatchlistAnalysis != "" {
		summary += resp.WatchlistAnalysis
	} else {
		summary += "Watchlist updated based on current market analysis."
	}

	return models.FormattedResponse{
		Success:   true,
		Title:     fmt.Sprintf("Watchlist %s - %d Symbol%s", capitalize(action), len(resp.Symbols), plural(len(resp.Symbols))),
		Summary:   summary,
		KeyPoints: keyPoints,
		Details:   details,
		Metadata: &models.ResponseMetadata{
			Timestamp:  responseTimestamp(resp),
			Confidence: "Watchlist Update",
			Sources:    []string{fmt.Sprintf("%d symbols processed", len(resp.Symbols))},
		},
	}
}

func formatWeb3PerpetualsAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || resp.Content == "" {
		return BuildFallback(models.ToolWeb3Perpetuals, resp.Error)
	}
	content := resp.Content

	analysisType := resp.AnalysisType
	if analysisType == "" {
		analysisType = "Comprehensive"
	}

	details := contentSections(content, []keywordSection{
		{"Protocol Analysis", []string{"protocol", "tvl", "volume", "fees"}},
		{"Market Dynamics", []string{"funding", "open interest", "liquidation", "volatility"}},
		{"DeFi Opportunities", []string{"yield", "arbitrage", "opportunity", "risk"}},
	})

	if len(resp.PerpetualsData) > 0 {
		points := make([]string, 0, len(resp.PerpetualsData))
		for _, p := range resp.PerpetualsData {
			points = append(points, fmt.Sprintf("• %s: $%.0fM TVL, $%.0fM 24h volume",
				p.Protocol, p.TVL/1e6, p.Volume24h/1e6))
		}
		details = append([]models.DetailSection{{Section: "Protocol Metrics", Points: points}}, details...)
	}

	summary := ExtractSummary(content)
	if summary == "" {
		summary = fmt.Sprintf("Comprehensive Web3 perpetual futures analysis covering %d protocol%s and %d asset%s with real-time market data and DeFi insights.",
			len(resp.Protocols), plural(len(resp.Protocols)), len(resp.Assets), plural(len(resp.Assets)))
	}

	return models.FormattedResponse{
		Success: true,
		Title:   "Web3 Perpetuals Analysis - " + analysisType,
		Summary: summary,
		KeyPoints: extractKeyPoints(content, []string{
			"funding rate", "open interest", "liquidation", "tvl", "volume",
			"protocol", "defi", "perpetual", "derivatives",
		}),
		Details: details,
		Metadata: &models.ResponseMetadata{
			Model:      resp.Model,
			Timestamp:  responseTimestamp(resp),
			Sources:    capSources(resp.Citations, 4),
			Confidence: "Web3 Data",
		},
	}
}

func formatLocationBasedAnalysis(resp *models.ToolResponse) models.FormattedResponse {
	if !resp.Success || resp.Content == "" {
		return BuildFallback(models.ToolLocationAnalysis, resp.Error)
	}
	content := resp.Content

	analysisType := resp.AnalysisType
	if analysisType == "" {
		analysisType = "Comprehensive"
	}

	details := contentSections(content, []keywordSection{
		{"Regional Performance", []string{"performance", "return", "growth", "market"}},
		{"Economic Indicators", []string{"gdp", "inflation", "unemployment", "interest rate"}},
		{"Currency & Trade", []string{"currency", "exchange rate", "trade", "export"}},
		{"Investment Opportunities", []string{"opportunity", "investment", "sector", "allocation"}},
	})

	if len(resp.RegionalData) > 0 {
		points := make([]string, 0, len(resp.RegionalData))
		for _, r := range resp.RegionalData {
			sign := ""
			if r.Performance6M >= 0 {
				sign = "+"
			}
			points = append(points, fmt.Sprintf("• %s: %s%.1f%% 6M performance, %.1f%% GDP growth",
				r.Region, sign, r.Performance6M*100, r.GDPGrowth))
		}
		details = append([]models.DetailSection{{Section: "Regional Metrics", Points: points}}, details...)
	}

	summary := ExtractSummary(content)
	if summary == "" {
		summary = fmt.Sprintf("Comprehensive regional market analysis covering %d region%s and %d countr%s with economic indicators and investment opportunities.",
			len(resp.Regions), plural(len(resp.Regions)), len(resp.Countries), pluralY(len(resp.Countries)))
	}

	return models.FormattedResponse{
		Success: true,
		Title:   "Location-Based Market Analysis - " + analysisType,
		Summary: summary,
		KeyPoints: extractKeyPoints(content, []string{
			"economic growth", "market performance", "currency", "inflation",
			"gdp", "regional", "opportunity", "risk",
		}),
		Details: details,
		Metadata: &models.ResponseMetadata{
			Model:      resp.Model,
			Timestamp:  responseTimestamp(resp),
			Sources:    capSources(resp.Citations, 4),
			Confidence: "Regional Data",
		},
	}
}

func formatGenericResponse(resp *models.ToolResponse, toolType models.ToolType) models.FormattedResponse {
	return models.FormattedResponse{
		Success: true,
		Title:   toolTypeLabel(toolType),
		Summary: "Analysis completed successfully with comprehensive insights.",
		KeyPoints: extractKeyPoints(resp.Content, []string{
			"result", "analysis", "data", "finding", "insight",
		}),
		Metadata: &models.ResponseMetadata{
			Timestamp:  responseTimestamp(resp),
			Confidence: "Standard",
		},
	}
}

// keywordSection declares a named detail section mined by keyword.
type keywordSection struct {
	title    string
	keywords []string
}

// contentSections builds the keyword-driven sections and appends any
// markdown-header sections found in the content. Empty sections are
// dropped.
func contentSections(content string, sections []keywordSection) []models.DetailSection {
	details := []models.DetailSection{}
	for _, section := range sections {
		points := extractSectionPoints(content, section.keywords)
		if len(points) > 0 {
			details = append(details, models.DetailSection{Section: section.title, Points: points})
		}
	}
	for _, block := range markdownSections(content) {
		details = append(details, models.DetailSection{Section: block.title, Points: block.points})
	}
	return details
}

// clamp enforces the display caps no matter which handler produced the
// response.
func clamp(resp models.FormattedResponse) models.FormattedResponse {
	if len(resp.KeyPoints) > maxKeyPoints {
		resp.KeyPoints = resp.KeyPoints[:maxKeyPoints]
	}
	if len(resp.Details) > maxSections {
		resp.Details = resp.Details[:maxSections]
	}
	for i := range resp.Details {
		if len(resp.Details[i].Points) > maxPointsPerSection {
			resp.Details[i].Points = resp.Details[i].Points[:maxPointsPerSection]
		}
	}
	return resp
}

func toolTypeLabel(toolType models.ToolType) string {
	spaced := strings.ReplaceAll(string(toolType), "_", " ")

	var b strings.Builder
	for i, r := range spaced {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func responseTimestamp(resp *models.ToolResponse) int64 {
	if resp.Timestamp != 0 {
		return resp.Timestamp
	}
	return time.Now().UnixMilli()
}

func capSources(citations []string, limit int) []string {
	if len(citations) > limit {
		return citations[:limit]
	}
	return citations
}

func actionEmoji(action string) string {
	switch action {
	case "add":
		return "➕"
	case "remove":
		return "➖"
	case "update":
		return "🔄"
	}
	return "📋"
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	return intPart + frac
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
