package format

import (
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// Per-tool polite unavailability wording. Tags without an entry use the
// default message.
var fallbackMessages = map[models.ToolType]string{
	models.ToolMarketData:         "I apologize, but I'm currently unable to retrieve market data. This might be due to market hours, connectivity issues, or temporary service unavailability.",
	models.ToolTechnicalAnalysis:  "I'm sorry, but I cannot perform technical analysis at this moment. Please ensure the symbol is valid and try again shortly.",
	models.ToolMarketSentiment:    "I regret that sentiment analysis is temporarily unavailable. This could be due to data source limitations or processing delays.",
	models.ToolPortfolioAnalysis:  "I apologize, but portfolio analysis cannot be completed right now. Please verify your portfolio data and try again.",
	models.ToolReasoningAnalysis:  "I'm sorry, but the AI reasoning analysis is currently unavailable. This might be due to API limitations or temporary service issues.",
	models.ToolMarketIntelligence: "I regret that market intelligence gathering is temporarily unavailable. Please try again in a few moments.",
}

const defaultFallbackMessage = "I apologize, but this analysis is currently unavailable. Our systems are working to restore full functionality."

// BuildFallback produces the structured "service unavailable" record for a
// tool, known or unknown. The summary is never empty and the guidance
// bullet count is fixed at three. A supplied error string is surfaced
// verbatim, prefixed for diagnostics, but never raised.
func BuildFallback(toolType models.ToolType, errMsg string) models.FormattedResponse {
	summary, ok := fallbackMessages[toolType]
	if !ok {
		summary = defaultFallbackMessage
	}

	resp := models.FormattedResponse{
		Success: false,
		Title:   toolTypeLabel(toolType) + " - Temporarily Unavailable",
		Summary: summary,
		KeyPoints: []string{
			"🔄 Please try again in a few moments",
			"📞 Contact support if the issue persists",
			"💡 Alternative analysis methods may be available",
		},
		Metadata: &models.ResponseMetadata{
			Timestamp:  time.Now().UnixMilli(),
			Confidence: "System Status",
		},
	}

	if errMsg != "" {
		resp.FallbackMessage = "Technical details: " + errMsg
	}

	return resp
}
