package dataflows

import (
	"testing"

	"github.com/kephothoX/SokoAnalyst/internal/analysis"
)

func TestBasePrice(t *testing.T) {
	if got := BasePrice("AAPL", "stocks"); got != 175.5 {
		t.Errorf("AAPL base price = %v", got)
	}
	if got := BasePrice("UNKNOWN", "crypto"); got != 1500.0 {
		t.Errorf("crypto default = %v", got)
	}
	if got := BasePrice("UNKNOWN", "unknown"); got != 100.0 {
		t.Errorf("global default = %v", got)
	}
}

func TestSyntheticQuoteInvariants(t *testing.T) {
	for i := 0; i < 50; i++ {
		q := SyntheticQuote("BTC-USD", "crypto")

		if q.Price <= 0 {
			t.Fatalf("non-positive price %v", q.Price)
		}
		if q.Low24h > q.Price*1.1 || q.High24h < q.Price*0.9 {
			t.Fatalf("implausible range low=%v high=%v price=%v", q.Low24h, q.High24h, q.Price)
		}
		if q.Volume < 0 {
			t.Fatalf("negative volume %v", q.Volume)
		}
		if q.MarketCap <= 0 {
			t.Fatalf("crypto quote must carry a market cap")
		}
		if q.Source != "Fallback" {
			t.Fatalf("unexpected source %s", q.Source)
		}
	}
}

func TestSyntheticQuoteStocksOmitsMarketCap(t *testing.T) {
	q := SyntheticQuote("AAPL", "stocks")
	if q.MarketCap != 0 {
		t.Fatalf("stocks quote must not carry a market cap, got %v", q.MarketCap)
	}
}

// QuoteLine output must survive the numeric field extractor, so generated
// commentary stays consistent with parsed commentary.
func TestQuoteLineRoundTrip(t *testing.T) {
	q := SyntheticQuote("AAPL", "stocks")
	line := QuoteLine(q)

	fields := analysis.ExtractNumericFields(line)
	if fields.Price == nil {
		t.Fatalf("price not recovered from %q", line)
	}
	if fields.Volume == nil {
		t.Fatalf("volume not recovered from %q", line)
	}

	diff := *fields.Price - q.Price
	if diff < -0.01 || diff > 0.01 {
		t.Fatalf("price drifted: generated %v, parsed %v", q.Price, *fields.Price)
	}
}
