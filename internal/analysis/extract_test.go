package analysis

import (
	"fmt"
	"math"
	"testing"
)

func TestExtractNumericFieldsFullQuoteLine(t *testing.T) {
	text := "AAPL is currently trading at $175.50, up 2.35 (1.36%) with volume of 45000000 shares."
	fields := ExtractNumericFields(text)

	if fields.Price == nil || *fields.Price != 175.50 {
		t.Fatalf("expected price 175.50, got %v", fields.Price)
	}
	if fields.Change == nil || *fields.Change != 2.35 {
		t.Fatalf("expected change 2.35, got %v", fields.Change)
	}
	if fields.ChangePercent == nil || *fields.ChangePercent != 1.36 {
		t.Fatalf("expected change percent 1.36, got %v", fields.ChangePercent)
	}
	if fields.Volume == nil || *fields.Volume != 45000000 {
		t.Fatalf("expected volume 45000000, got %v", fields.Volume)
	}
}

func TestExtractNumericFieldsDerivedPercent(t *testing.T) {
	fields := ExtractNumericFields("Stock price: $200 with change: +4 today")

	if fields.Price == nil || *fields.Price != 200 {
		t.Fatalf("expected price 200, got %v", fields.Price)
	}
	if fields.Change == nil || *fields.Change != 4 {
		t.Fatalf("expected change 4, got %v", fields.Change)
	}
	if fields.ChangePercent == nil || math.Abs(*fields.ChangePercent-2.0) > 1e-9 {
		t.Fatalf("expected derived change percent 2.0, got %v", fields.ChangePercent)
	}
}

func TestExtractNumericFieldsPercentLiteralWins(t *testing.T) {
	// A matched percent literal is kept even when it disagrees with
	// change/price. The two extraction paths are independent.
	fields := ExtractNumericFields("price: $100, change: +5, moved 9.99% overall")

	if fields.ChangePercent == nil || *fields.ChangePercent != 9.99 {
		t.Fatalf("expected matched percent 9.99, got %v", fields.ChangePercent)
	}
}

func TestExtractChangeDownContext(t *testing.T) {
	change := ExtractChange("The index slid, down 3.25 from the open")
	if change == nil || *change != -3.25 {
		t.Fatalf("expected -3.25, got %v", change)
	}
}

func TestExtractNumericFieldsNoMatches(t *testing.T) {
	fields := ExtractNumericFields("nothing quantitative to see here")
	if fields.Price != nil || fields.Change != nil || fields.ChangePercent != nil || fields.Volume != nil {
		t.Fatalf("expected all fields nil, got %+v", fields)
	}
}

func TestExtractNumericFieldsIdempotent(t *testing.T) {
	text := "MSFT is currently trading at $410.25, up 1.50 (0.37%) with volume of 22000000 shares."
	first := ExtractNumericFields(text)

	reserialized := fmt.Sprintf("%s is currently trading at $%.2f, up %.2f (%.2f%%) with volume of %.0f shares.",
		"MSFT", *first.Price, *first.Change, *first.ChangePercent, *first.Volume)
	second := ExtractNumericFields(reserialized)

	if *first.Price != *second.Price || *first.Change != *second.Change ||
		*first.ChangePercent != *second.ChangePercent || *first.Volume != *second.Volume {
		t.Fatalf("extraction not idempotent: %+v vs %+v", first, second)
	}
}

func TestExtractVolumeSuffixes(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"volume: 500K", 500_000},
		{"volume: 1.2M", 1_200_000},
		{"volume: 2.5B", 2_500_000_000},
		{"volume: 1200", 1200},
		{"3.4m shares", 3_400_000},
		{"traded: 45K", 45_000},
	}
	for _, tc := range cases {
		got := ExtractVolume(tc.text)
		if got == nil || *got != tc.want {
			t.Errorf("ExtractVolume(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParseVolumeString(t *testing.T) {
	if v, ok := ParseVolumeString("1.5b"); !ok || v != 1_500_000_000 {
		t.Fatalf("lowercase suffix: got %v %v", v, ok)
	}
	if _, ok := ParseVolumeString("notanumber"); ok {
		t.Fatal("expected parse failure")
	}
}
