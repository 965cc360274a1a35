package tools

import (
	"github.com/cloudwego/eino/components/tool"
	"github.com/kephothoX/SokoAnalyst/internal/config"
)

// AllTools returns the full analytical toolset in registration order.
func AllTools(cfg *config.Config) []tool.BaseTool {
	return []tool.BaseTool{
		NewMarketDataTool(cfg),
		NewTechnicalAnalysisTool(cfg),
		NewMarketSentimentTool(cfg),
		NewPortfolioAnalysisTool(cfg),
		NewWatchlistTool(cfg),
		NewReasoningAnalysisTool(cfg),
		NewMarketIntelligenceTool(cfg),
		NewWeb3PerpetualsTool(cfg),
		NewLocationAnalysisTool(cfg),
	}
}
