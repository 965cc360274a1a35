package dataflows

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig(t *testing.T, baseURL string) *Config {
	t.Helper()
	cfg := DefaultConfigForTest(t)
	cfg.PerplexityBaseURL = baseURL
	cfg.PerplexityAPIKey = "pplx-test"
	return cfg
}

// DefaultConfigForTest builds a config rooted in a temp dir with caching off
// so tests never touch each other's state.
func DefaultConfigForTest(t *testing.T) *Config {
	t.Helper()
	cfg := defaultTestConfig(t.TempDir())
	return cfg
}

func defaultTestConfig(root string) *Config {
	cfg := &Config{
		ProjectDir:        root,
		DataDir:           root,
		DataCacheDir:      root,
		LLMProvider:       "deepseek",
		CacheEnabled:      false,
		CacheTTLMinutes:   15,
		PerplexityModel:   "sonar-pro",
		PerplexityBaseURL: "https://api.perplexity.ai",
		EinoDebugPort:     52538,
	}
	return cfg
}

func completionServer(t *testing.T, content string, gotBody *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if gotBody != nil {
			if err := json.NewDecoder(r.Body).Decode(gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]interface{}{
			"model": "sonar-reasoning",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
			"usage": map[string]int{
				"prompt_tokens":     120,
				"completion_tokens": 480,
				"total_tokens":      600,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSearchFinancialData(t *testing.T) {
	var body chatRequest
	content := "AAPL is currently trading at $175.50, up 2.35 (1.36%) with volume of 45000000 shares. Source: Bloomberg markets desk"
	srv := completionServer(t, content, &body)
	defer srv.Close()

	client := NewPerplexityClient(testConfig(t, srv.URL))
	result, err := client.SearchFinancialData(context.Background(), "AAPL quote today")
	if err != nil {
		t.Fatalf("SearchFinancialData: %v", err)
	}

	if result.Content != content {
		t.Fatalf("content not passed through")
	}
	if result.Model != "sonar-reasoning" {
		t.Fatalf("unexpected model %s", result.Model)
	}
	if result.Usage.TotalTokens != 600 {
		t.Fatalf("unexpected usage %+v", result.Usage)
	}
	if len(result.Citations) == 0 {
		t.Fatal("citations should be mined from content when API omits them")
	}

	if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
		t.Fatalf("unexpected message layout %+v", body.Messages)
	}
	if !strings.Contains(body.Messages[1].Content, "AAPL quote today") {
		t.Fatalf("query missing from user message")
	}
	if body.MaxTokens != 2000 {
		t.Fatalf("unexpected max tokens %d", body.MaxTokens)
	}
}

func TestSearchFinancialDataRequiresQueryAndKey(t *testing.T) {
	client := NewPerplexityClient(testConfig(t, "http://127.0.0.1:0"))
	if _, err := client.SearchFinancialData(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank query")
	}

	cfg := DefaultConfigForTest(t)
	unkeyed := NewPerplexityClient(cfg)
	if _, err := unkeyed.SearchFinancialData(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestAnalyzeMarketWithReasoningPromptSelection(t *testing.T) {
	var body chatRequest
	srv := completionServer(t, "Executive Summary. Detailed analysis of the uptrend follows here.", &body)
	defer srv.Close()

	client := NewPerplexityClient(testConfig(t, srv.URL))
	if _, err := client.AnalyzeMarketWithReasoning(context.Background(), []string{"AAPL", "MSFT"}, "technical"); err != nil {
		t.Fatalf("AnalyzeMarketWithReasoning: %v", err)
	}

	user := body.Messages[1].Content
	if !strings.Contains(user, "technical analysis for AAPL, MSFT") {
		t.Fatalf("technical prompt not selected: %q", user)
	}
	if body.MaxTokens != 3000 {
		t.Fatalf("unexpected max tokens %d", body.MaxTokens)
	}
}

func TestAnalyzeMarketWithReasoningUnknownTypeDefaults(t *testing.T) {
	var body chatRequest
	srv := completionServer(t, "Comprehensive view of the market follows in detail.", &body)
	defer srv.Close()

	client := NewPerplexityClient(testConfig(t, srv.URL))
	if _, err := client.AnalyzeMarketWithReasoning(context.Background(), []string{"TSLA"}, "astrology"); err != nil {
		t.Fatalf("AnalyzeMarketWithReasoning: %v", err)
	}
	if !strings.Contains(body.Messages[1].Content, "multi-dimensional analysis for TSLA") {
		t.Fatalf("unknown type should fall back to comprehensive: %q", body.Messages[1].Content)
	}
}

func TestGetMarketIntelligenceContext(t *testing.T) {
	var body chatRequest
	srv := completionServer(t, "Key findings summarized with supporting evidence below.", &body)
	defer srv.Close()

	client := NewPerplexityClient(testConfig(t, srv.URL))
	if _, err := client.GetMarketIntelligence(context.Background(), "semiconductor outlook", "trading"); err != nil {
		t.Fatalf("GetMarketIntelligence: %v", err)
	}

	user := body.Messages[1].Content
	if !strings.Contains(user, "semiconductor outlook") {
		t.Fatalf("query missing: %q", user)
	}
	if !strings.Contains(user, "short-term trading opportunities") {
		t.Fatalf("trading context not applied: %q", user)
	}
}

func TestParseQuote(t *testing.T) {
	content := "MSFT price: $410.25, up 3.10 (0.76%) on volume: 22.5M"
	q := ParseQuote(content, "MSFT")

	if q.Price != 410.25 {
		t.Errorf("price = %v", q.Price)
	}
	if q.Volume != 22_500_000 {
		t.Errorf("volume = %v", q.Volume)
	}
	if q.Source != "Perplexity" {
		t.Errorf("source = %s", q.Source)
	}
	if q.RawContent != content {
		t.Error("raw content not preserved")
	}
}
