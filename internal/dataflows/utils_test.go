package dataflows

import (
	"errors"
	"testing"
	"time"
)

func TestCacheManagerRoundTrip(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Minute, true)

	payload := map[string]string{"symbol": "AAPL"}
	if err := cache.Set("test", "quote", "AAPL", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got map[string]string
	if !cache.Get("test", "quote", "AAPL", &got) {
		t.Fatal("expected cache hit")
	}
	if got["symbol"] != "AAPL" {
		t.Fatalf("unexpected cached value %v", got)
	}
}

func TestCacheManagerExpiry(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Nanosecond, true)

	if err := cache.Set("test", "quote", "AAPL", "data"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var got string
	if cache.Get("test", "quote", "AAPL", &got) {
		t.Fatal("expected expired entry to miss")
	}
}

func TestCacheManagerDisabled(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Minute, false)

	if err := cache.Set("test", "quote", "AAPL", "data"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got string
	if cache.Get("test", "quote", "AAPL", &got) {
		t.Fatal("disabled cache must always miss")
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2.0}

	attempts := 0
	err := WithRetry(cfg, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected eventual success: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2.0}

	attempts := 0
	err := WithRetry(cfg, func() error {
		attempts++
		return errors.New("still failing")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", attempts)
	}
}

func TestValidateSymbol(t *testing.T) {
	if err := ValidateSymbol("aapl"); err != nil {
		t.Errorf("lowercase symbol should validate: %v", err)
	}
	if err := ValidateSymbol("BTC-USD"); err != nil {
		t.Errorf("hyphenated symbol should validate: %v", err)
	}
	if err := ValidateSymbol(""); err == nil {
		t.Error("empty symbol must fail")
	}
	if err := ValidateSymbol("WAYTOOLONGSYMBOL"); err == nil {
		t.Error("oversized symbol must fail")
	}
}

func TestParseDateString(t *testing.T) {
	got, err := ParseDateString("2026-08-31")
	if err != nil {
		t.Fatalf("ParseDateString: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.August {
		t.Fatalf("unexpected date %v", got)
	}

	if _, err := ParseDateString("not a date"); err == nil {
		t.Fatal("expected error for junk input")
	}
}

func TestLastNDays(t *testing.T) {
	window := LastNDays(90)
	if d := window.End.Sub(window.Start); d < 89*24*time.Hour || d > 91*24*time.Hour {
		t.Fatalf("window length %v, want about 90 days", d)
	}
	if time.Since(window.End) > time.Minute {
		t.Fatalf("window should end at the present moment, got %v", window.End)
	}
}
