package analysis

import (
	"math"
	"strings"
	"testing"
)

func TestExtractSentimentBullish(t *testing.T) {
	s := ExtractSentiment("A broad rally and a late surge lifted the tape.")
	if s.Category != SentimentBullish {
		t.Fatalf("expected bullish, got %s (score %v)", s.Category, s.Score)
	}
	if s.Score != 1 {
		t.Fatalf("expected score 1, got %v", s.Score)
	}
	if math.Abs(s.Confidence-0.4) > 1e-9 {
		t.Fatalf("expected confidence 0.4, got %v", s.Confidence)
	}
}

func TestExtractSentimentBearish(t *testing.T) {
	s := ExtractSentiment("A crash deepened losses as the decline continued.")
	if s.Category != SentimentBearish || s.Score != -1 {
		t.Fatalf("expected bearish score -1, got %s %v", s.Category, s.Score)
	}
}

func TestExtractSentimentThresholdBoundary(t *testing.T) {
	// Three positive words against two negative words score exactly 0.2.
	// The bullish threshold is strict, so this stays neutral.
	text := "A rally and surge brought gains before a crash caused losses."
	s := ExtractSentiment(text)

	if math.Abs(s.Score-0.2) > 1e-9 {
		t.Fatalf("expected score 0.2, got %v", s.Score)
	}
	if s.Category != SentimentNeutral {
		t.Fatalf("score 0.2 must be neutral, got %s", s.Category)
	}
	if s.Confidence != 1 {
		t.Fatalf("five indicators should give confidence 1, got %v", s.Confidence)
	}
}

func TestExtractSentimentSymmetry(t *testing.T) {
	cases := []string{
		"",
		"nothing directional in this text",
		"a rally met a crash",
		"gains and surge versus losses and decline",
	}
	for _, text := range cases {
		s := ExtractSentiment(text)
		if s.Score != 0 || s.Category != SentimentNeutral {
			t.Errorf("ExtractSentiment(%q) = %s %v, want neutral 0", text, s.Category, s.Score)
		}
	}
}

func TestAdvancedSentimentSingleFactorBoundary(t *testing.T) {
	// A lone technical signal contributes exactly 0.30; the bullish
	// threshold is strict so this lands on slightly bullish.
	s := AnalyzeAdvancedSentiment("The chart shows an uptrend.")

	if math.Abs(s.Score-0.30) > 1e-9 {
		t.Fatalf("expected score 0.30, got %v", s.Score)
	}
	if s.Category != SentimentSlightlyBullish {
		t.Fatalf("score 0.30 must be slightly bullish, got %s", s.Category)
	}
	if s.Factors.Technical != 1 || s.Factors.News != 0 {
		t.Fatalf("unexpected factors %+v", s.Factors)
	}
	if math.Abs(s.Confidence-0.6) > 1e-9 {
		t.Fatalf("expected confidence 0.6, got %v", s.Confidence)
	}
}

func TestAdvancedSentimentBullish(t *testing.T) {
	s := AnalyzeAdvancedSentiment("Uptrend intact amid institutional buying.")

	if math.Abs(s.Score-0.55) > 1e-9 {
		t.Fatalf("expected score 0.55, got %v", s.Score)
	}
	if s.Category != SentimentBullish {
		t.Fatalf("expected bullish, got %s", s.Category)
	}
	if s.Confidence != 1 {
		t.Fatalf("expected saturated confidence, got %v", s.Confidence)
	}
}

func TestAdvancedSentimentBearish(t *testing.T) {
	s := AnalyzeAdvancedSentiment("Downtrend accelerating on institutional selling.")

	if math.Abs(s.Score+0.55) > 1e-9 {
		t.Fatalf("expected score -0.55, got %v", s.Score)
	}
	if s.Category != SentimentBearish {
		t.Fatalf("expected bearish, got %s", s.Category)
	}
}

func TestAdvancedSentimentSlightlyBearish(t *testing.T) {
	s := AnalyzeAdvancedSentiment("The chart broke into a downtrend.")
	if s.Category != SentimentSlightlyBearish {
		t.Fatalf("expected slightly bearish at -0.30, got %s (score %v)", s.Category, s.Score)
	}
}

func TestAdvancedSentimentNeutralZero(t *testing.T) {
	s := AnalyzeAdvancedSentiment("The quarterly report covered administrative matters.")
	if s.Score != 0 || s.Category != SentimentNeutral || s.Confidence != 0 {
		t.Fatalf("expected neutral zero, got %+v", s)
	}
}

func TestAdvancedSentimentVocabularyOverlap(t *testing.T) {
	// "momentum" sits in both the technical and the news vocabularies;
	// both factors pick it up independently.
	s := AnalyzeAdvancedSentiment("Momentum is building.")
	if s.Factors.Technical != 1 || s.Factors.News != 1 {
		t.Fatalf("expected overlap in technical and news, got %+v", s.Factors)
	}
}

func TestAdvancedSentimentReasoning(t *testing.T) {
	s := AnalyzeAdvancedSentiment("The chart shows an uptrend.")

	if !strings.Contains(s.Reasoning, "Primary driver: technical factors (+100.0%)") {
		t.Fatalf("reasoning missing primary driver: %q", s.Reasoning)
	}
	for _, fragment := range []string{"Technical: 100.0%", "Fundamental: 0.0%", "News: 0.0%", "Social: 0.0%"} {
		if !strings.Contains(s.Reasoning, fragment) {
			t.Fatalf("reasoning missing %q: %q", fragment, s.Reasoning)
		}
	}
}
