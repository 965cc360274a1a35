package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Sentiment categories. Category is always a threshold function of the
// score, never assigned independently.
const (
	SentimentBullish         = "bullish"
	SentimentBearish         = "bearish"
	SentimentNeutral         = "neutral"
	SentimentSlightlyBullish = "slightly bullish"
	SentimentSlightlyBearish = "slightly bearish"
)

// Sentiment is the result of the simple keyword scorer.
type Sentiment struct {
	Category   string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// FactorScores are the four independent sub-scores of the weighted scorer,
// each in [-1, 1].
type FactorScores struct {
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
	News        float64 `json:"news"`
	Social      float64 `json:"social"`
}

// AdvancedSentiment is the result of the weighted multi-factor scorer.
type AdvancedSentiment struct {
	Category   string       `json:"sentiment"`
	Score      float64      `json:"score"`
	Confidence float64      `json:"confidence"`
	Reasoning  string       `json:"reasoning"`
	Factors    FactorScores `json:"factors"`
}

// Vocabulary lists are configuration data ported as-is; bucket membership
// overlaps across factors and that overlap is intentional.
var (
	positiveWords = []string{
		"bullish", "positive", "optimistic", "growth", "gains",
		"rally", "surge", "strong", "outperform",
	}
	negativeWords = []string{
		"bearish", "negative", "pessimistic", "decline", "losses",
		"crash", "weak", "underperform",
	}

	bullishIndicators = []string{
		"bullish", "positive", "optimistic", "growth", "gains",
		"rally", "surge", "strong", "outperform", "upgrade",
		"beat expectations", "momentum", "breakout", "accumulation",
		"institutional buying",
	}
	bearishIndicators = []string{
		"bearish", "negative", "pessimistic", "decline", "losses",
		"crash", "weak", "underperform", "downgrade",
		"miss expectations", "selling pressure", "breakdown",
		"distribution", "institutional selling",
	}

	technicalBullish = []string{"breakout", "momentum", "support", "uptrend", "golden cross"}
	technicalBearish = []string{"breakdown", "resistance", "downtrend", "death cross"}

	fundamentalBullish = []string{"earnings beat", "revenue growth", "margin expansion", "guidance raise"}
	fundamentalBearish = []string{"earnings miss", "revenue decline", "margin compression", "guidance cut"}

	socialPositive = []string{"retail buying", "social media buzz", "trending", "viral"}
	socialNegative = []string{"retail selling", "social media negative", "fear", "panic"}
)

// countPresent returns how many vocabulary entries occur in the content as
// a case-insensitive substring. Presence, not occurrence count.
func countPresent(lowerContent string, vocab []string) int {
	count := 0
	for _, word := range vocab {
		if strings.Contains(lowerContent, word) {
			count++
		}
	}
	return count
}

// factorScore computes (positive - negative) / (positive + negative) over
// the two vocabularies, or 0 when neither side matched.
func factorScore(lowerContent string, positive, negative []string) float64 {
	p := countPresent(lowerContent, positive)
	n := countPresent(lowerContent, negative)
	total := p + n
	if total == 0 {
		return 0
	}
	return float64(p-n) / float64(total)
}

// ExtractSentiment classifies content with the simple keyword scorer.
// Equal positive and negative counts, including zero matches, yield a
// neutral result with score 0.
func ExtractSentiment(content string) Sentiment {
	lower := strings.ToLower(content)

	positive := countPresent(lower, positiveWords)
	negative := countPresent(lower, negativeWords)
	total := positive + negative

	score := 0.0
	if total > 0 {
		score = float64(positive-negative) / float64(total)
	}

	category := SentimentNeutral
	if score > 0.2 {
		category = SentimentBullish
	} else if score < -0.2 {
		category = SentimentBearish
	}

	return Sentiment{
		Category:   category,
		Score:      score,
		Confidence: math.Min(float64(total)/5, 1),
	}
}

// AnalyzeAdvancedSentiment classifies content with the weighted
// multi-factor scorer: four independent factor scores combined with fixed
// weights, finer-grained category thresholds, and a reasoning string that
// names the dominant factor.
func AnalyzeAdvancedSentiment(content string) AdvancedSentiment {
	lower := strings.ToLower(content)

	factors := FactorScores{
		Technical:   factorScore(lower, technicalBullish, technicalBearish),
		Fundamental: factorScore(lower, fundamentalBullish, fundamentalBearish),
		News:        factorScore(lower, bullishIndicators, bearishIndicators),
		Social:      factorScore(lower, socialPositive, socialNegative),
	}

	overall := factors.Technical*0.30 +
		factors.Fundamental*0.30 +
		factors.News*0.25 +
		factors.Social*0.15

	category := SentimentNeutral
	switch {
	case overall > 0.3:
		category = SentimentBullish
	case overall < -0.3:
		category = SentimentBearish
	case overall > 0.1:
		category = SentimentSlightlyBullish
	case overall < -0.1:
		category = SentimentSlightlyBearish
	}

	return AdvancedSentiment{
		Category:   category,
		Score:      overall,
		Confidence: math.Min(math.Abs(overall)*2, 1),
		Reasoning:  sentimentReasoning(category, factors),
		Factors:    factors,
	}
}

// sentimentReasoning names the factor with the largest absolute magnitude
// as the primary driver and lists all four factor percentages.
func sentimentReasoning(category string, factors FactorScores) string {
	ordered := []struct {
		name  string
		value float64
	}{
		{"technical", factors.Technical},
		{"fundamental", factors.Fundamental},
		{"news", factors.News},
		{"social", factors.Social},
	}

	primary := ordered[0]
	for _, f := range ordered[1:] {
		if math.Abs(f.value) > math.Abs(primary.value) {
			primary = f
		}
	}

	sign := ""
	if primary.value > 0 {
		sign = "+"
	}

	return fmt.Sprintf(
		"Sentiment analysis shows %s outlook. Primary driver: %s factors (%s%.1f%%). Technical: %.1f%%, Fundamental: %.1f%%, News: %.1f%%, Social: %.1f%%.",
		category, primary.name, sign, primary.value*100,
		factors.Technical*100, factors.Fundamental*100,
		factors.News*100, factors.Social*100,
	)
}
