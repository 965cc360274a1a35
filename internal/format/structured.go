package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// structuredPayload is the JSON shape some reasoning responses arrive in.
type structuredPayload struct {
	Summary         string           `json:"summary"`
	KeyInsights     []string         `json:"keyInsights"`
	Recommendations []recommendation `json:"recommendations"`
	RiskAssessment  *riskAssessment  `json:"riskAssessment"`
	MarketData      *structuredData  `json:"marketData"`
	Timestamp       int64            `json:"timestamp"`
	Confidence      string           `json:"confidence"`
}

type recommendation struct {
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	RiskLevel string `json:"riskLevel"`
	Timeframe string `json:"timeframe"`
}

type riskAssessment struct {
	OverallRisk          string   `json:"overallRisk"`
	KeyRisks             []string `json:"keyRisks"`
	MitigationStrategies []string `json:"mitigationStrategies"`
}

type structuredData struct {
	Symbols  []string           `json:"symbols"`
	Analysis string             `json:"analysis"`
	Prices   map[string]float64 `json:"prices"`
	Changes  map[string]float64 `json:"changes"`
}

// parseStructuredPayload attempts to read text as a structured analysis
// record. Model output often wraps JSON in code fences or surrounding
// prose, so the candidate object is sliced out before parsing. A parse
// failure is a normal outcome.
func parseStructuredPayload(text string) (*structuredPayload, bool) {
	candidate := strings.TrimSpace(text)
	candidate = strings.TrimPrefix(candidate, "```json")
	candidate = strings.TrimPrefix(candidate, "```")
	candidate = strings.TrimSuffix(candidate, "```")

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate = candidate[start : end+1]

	var payload structuredPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}
	if payload.Summary == "" || len(payload.KeyInsights) == 0 {
		return nil, false
	}
	return &payload, true
}

func formatStructuredResponse(payload *structuredPayload, toolType models.ToolType) models.FormattedResponse {
	details := []models.DetailSection{}

	if len(payload.Recommendations) > 0 {
		points := make([]string, 0, len(payload.Recommendations))
		for _, rec := range payload.Recommendations {
			points = append(points, fmt.Sprintf("%s - %s (Risk: %s, Timeframe: %s)",
				rec.Action, rec.Rationale, rec.RiskLevel, rec.Timeframe))
		}
		details = append(details, models.DetailSection{Section: "Actionable Recommendations", Points: points})
	}

	if risk := payload.RiskAssessment; risk != nil {
		points := []string{"Overall Risk Level: " + strings.ToUpper(risk.OverallRisk)}
		for _, r := range risk.KeyRisks {
			points = append(points, "Risk: "+r)
		}
		for _, m := range risk.MitigationStrategies {
			points = append(points, "Mitigation: "+m)
		}
		details = append(details, models.DetailSection{Section: "Risk Assessment", Points: points})
	}

	if data := payload.MarketData; data != nil {
		points := []string{"Symbols Analyzed: " + strings.Join(data.Symbols, ", ")}
		if data.Analysis != "" {
			points = append(points, data.Analysis)
		} else {
			points = append(points, "Market data analysis completed")
		}

		symbols := make([]string, 0, len(data.Prices))
		for symbol := range data.Prices {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			line := fmt.Sprintf("%s: $%.2f", symbol, data.Prices[symbol])
			if change, ok := data.Changes[symbol]; ok && change != 0 {
				sign := ""
				if change > 0 {
					sign = "+"
				}
				line += fmt.Sprintf(" (%s%.2f%%)", sign, change)
			}
			points = append(points, line)
		}
		details = append(details, models.DetailSection{Section: "Market Data Analysis", Points: points})
	}

	keyPoints := make([]string, 0, len(payload.KeyInsights))
	for _, insight := range payload.KeyInsights {
		keyPoints = append(keyPoints, "• "+insight)
	}

	summary := payload.Summary
	if summary == "" {
		summary = "Professional financial analysis completed with institutional-grade insights."
	}

	timestamp := payload.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	confidence := payload.Confidence
	if confidence == "" {
		confidence = "High"
	}

	return models.FormattedResponse{
		Success:   true,
		Title:     toolTypeLabel(toolType) + " Analysis",
		Summary:   summary,
		KeyPoints: keyPoints,
		Details:   details,
		Metadata: &models.ResponseMetadata{
			Timestamp:  timestamp,
			Confidence: confidence,
			Sources:    []string{"SokoAnalyst AI Reasoning"},
		},
	}
}
