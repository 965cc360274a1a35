package tools

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
)

func barsFromCloses(closes []float64) []*dataflows.MarketData {
	bars := make([]*dataflows.MarketData, len(closes))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = &dataflows.MarketData{
			Symbol: "TEST",
			Date:   start.AddDate(0, 0, i),
			Open:   decimal.NewFromFloat(c),
			High:   decimal.NewFromFloat(c * 1.01),
			Low:    decimal.NewFromFloat(c * 0.99),
			Close:  decimal.NewFromFloat(c),
			Volume: 1_000_000,
		}
	}
	return bars
}

func linearCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

func TestLatestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	sma, ok := latestSMA(values, 5)
	if !ok || sma != 3 {
		t.Fatalf("latestSMA = %v, %v; want 3, true", sma, ok)
	}
	if _, ok := latestSMA(values, 6); ok {
		t.Fatal("expected insufficient data")
	}
}

func TestLatestEMAConvergesToConstant(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 42.0
	}
	ema, ok := latestEMA(values, 10)
	if !ok {
		t.Fatal("expected EMA to compute")
	}
	if math.Abs(ema-42.0) > 1e-9 {
		t.Fatalf("EMA of constant series = %v, want 42", ema)
	}
}

func TestLatestRSIExtremes(t *testing.T) {
	rising := linearCloses(30, 100, 1)
	rsi, ok := latestRSI(rising, 14)
	if !ok {
		t.Fatal("expected RSI to compute")
	}
	if rsi != 100 {
		t.Fatalf("RSI of monotonic rise = %v, want 100", rsi)
	}

	falling := linearCloses(30, 200, -1)
	rsi, ok = latestRSI(falling, 14)
	if !ok {
		t.Fatal("expected RSI to compute")
	}
	if rsi > 1 {
		t.Fatalf("RSI of monotonic fall = %v, want near 0", rsi)
	}
}

func TestLatestMACDSignOnTrend(t *testing.T) {
	rising := linearCloses(60, 100, 2)
	line, signal, ok := latestMACD(rising)
	if !ok {
		t.Fatal("expected MACD to compute")
	}
	if line <= signal {
		t.Fatalf("MACD on accelerating uptrend: line=%v signal=%v, want line > signal", line, signal)
	}
}

func TestLatestBollingerBands(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 100
	}
	middle, upper, lower, ok := latestBollinger(values, 20, 2.0)
	if !ok {
		t.Fatal("expected bands to compute")
	}
	if middle != 100 || upper != 100 || lower != 100 {
		t.Fatalf("bands of constant series = %v/%v/%v, want 100/100/100", lower, middle, upper)
	}
}

func TestLatestVWMAWeightsByVolume(t *testing.T) {
	closes := []float64{10, 20}
	volumes := []float64{1, 3}
	vwma, ok := latestVWMA(closes, volumes, 2)
	if !ok {
		t.Fatal("expected VWMA to compute")
	}
	want := (10*1 + 20*3) / 4.0
	if math.Abs(vwma-want) > 1e-9 {
		t.Fatalf("VWMA = %v, want %v", vwma, want)
	}
}

func TestBuildTechnicalReport(t *testing.T) {
	bars := barsFromCloses(linearCloses(60, 100, 0.5))
	report, err := BuildTechnicalReport("AAPL", bars, []string{"rsi", "macd", "ema10", "bollinger"})
	if err != nil {
		t.Fatalf("BuildTechnicalReport: %v", err)
	}
	if report.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", report.Symbol)
	}

	rsi, ok := report.Indicators["rsi"]
	if !ok {
		t.Fatal("missing rsi reading")
	}
	if rsi.Signal != "overbought" {
		t.Fatalf("rsi on steady uptrend signal = %q, want overbought", rsi.Signal)
	}

	macd, ok := report.Indicators["macd"]
	if !ok {
		t.Fatal("missing macd reading")
	}
	if macd.Signal != "bullish" {
		t.Fatalf("macd signal = %q, want bullish", macd.Signal)
	}

	ema, ok := report.Indicators["ema10"]
	if !ok {
		t.Fatal("missing ema10 reading")
	}
	if ema.Trend != "uptrend" {
		t.Fatalf("ema10 trend = %q, want uptrend", ema.Trend)
	}
}

func TestBuildTechnicalReportSkipsShortHistory(t *testing.T) {
	bars := barsFromCloses(linearCloses(30, 100, 0.5))
	report, err := BuildTechnicalReport("TSLA", bars, []string{"sma200", "rsi"})
	if err != nil {
		t.Fatalf("BuildTechnicalReport: %v", err)
	}
	if _, ok := report.Indicators["sma200"]; ok {
		t.Fatal("sma200 should be skipped with 30 bars")
	}
	if _, ok := report.Indicators["rsi"]; !ok {
		t.Fatal("rsi should still compute with 30 bars")
	}
}

func TestBuildTechnicalReportErrors(t *testing.T) {
	if _, err := BuildTechnicalReport("AAPL", nil, nil); err == nil {
		t.Fatal("expected error on empty history")
	}
	bars := barsFromCloses([]float64{100, 101})
	if _, err := BuildTechnicalReport("AAPL", bars, []string{"sma200"}); err == nil {
		t.Fatal("expected error when no indicator can compute")
	}
}

func TestActionableInsightsOversold(t *testing.T) {
	bars := barsFromCloses(linearCloses(60, 200, -1))
	report, err := BuildTechnicalReport("NVDA", bars, []string{"rsi", "macd"})
	if err != nil {
		t.Fatalf("BuildTechnicalReport: %v", err)
	}
	insights := actionableInsights(report)
	if len(insights) == 0 {
		t.Fatal("expected insights")
	}
	found := false
	for _, insight := range insights {
		if strings.Contains(insight, "oversold") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an oversold insight, got %v", insights)
	}
}
