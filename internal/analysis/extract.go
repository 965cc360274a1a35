package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// NumericFields holds the quantities mined out of free-form market
// commentary. A nil field means no pattern matched; that is a normal
// outcome, not an error.
type NumericFields struct {
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	Volume        *float64 `json:"volume"`
}

// patternRule pairs a compiled pattern with the function that turns its
// submatches into a value. Rules are evaluated in order; the first match
// wins.
type patternRule struct {
	re      *regexp.Regexp
	extract func(m []string) (float64, bool)
}

func firstGroup(m []string) (float64, bool) {
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

var pricePatterns = []patternRule{
	{regexp.MustCompile(`\$(\d+\.?\d*)`), firstGroup},
	{regexp.MustCompile(`(?i)price[:\s]+\$?(\d+\.?\d*)`), firstGroup},
	{regexp.MustCompile(`(?i)trading at[:\s]+\$?(\d+\.?\d*)`), firstGroup},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*USD`), firstGroup},
}

var changePatterns = []patternRule{
	{regexp.MustCompile(`([+-]?\d+\.?\d*)\s*\(`), firstGroup},
	{regexp.MustCompile(`(?i)(up|down)\s+(\d+\.?\d*)`), func(m []string) (float64, bool) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		if strings.EqualFold(m[1], "down") {
			v = -v
		}
		return v, true
	}},
	{regexp.MustCompile(`(?i)change[:\s]+([+-]?\d+\.?\d*)`), firstGroup},
}

var percentPatterns = []patternRule{
	{regexp.MustCompile(`([+-]?\d+\.?\d*)%`), firstGroup},
}

var volumePatterns = []patternRule{
	{regexp.MustCompile(`(?i)volume[:\s]+(\d+\.?\d*[KMB]?)`), volumeGroup},
	{regexp.MustCompile(`(?i)(\d+\.?\d*[KMB]?)\s+shares`), volumeGroup},
	{regexp.MustCompile(`(?i)traded[:\s]+(\d+\.?\d*[KMB]?)`), volumeGroup},
}

func volumeGroup(m []string) (float64, bool) {
	return ParseVolumeString(m[1])
}

func matchFirst(rules []patternRule, text string) *float64 {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := rule.extract(m); ok {
			return &v
		}
	}
	return nil
}

// ExtractNumericFields mines price, change, percent change and volume out
// of analysis prose. Each pattern family is tried in declared order and the
// change percent is derived from change/price only when no percent literal
// was present. The two paths are independent and are not reconciled.
func ExtractNumericFields(text string) NumericFields {
	fields := NumericFields{
		Price:         matchFirst(pricePatterns, text),
		Change:        matchFirst(changePatterns, text),
		ChangePercent: matchFirst(percentPatterns, text),
		Volume:        matchFirst(volumePatterns, text),
	}

	if fields.ChangePercent == nil && fields.Price != nil && fields.Change != nil && *fields.Price != 0 {
		derived := *fields.Change / *fields.Price * 100
		fields.ChangePercent = &derived
	}

	return fields
}

// ExtractPrice returns the first price-like value in the text, or nil.
func ExtractPrice(text string) *float64 {
	return matchFirst(pricePatterns, text)
}

// ExtractChange returns the first price-change value in the text, or nil.
// A "down" context negates the magnitude.
func ExtractChange(text string) *float64 {
	return matchFirst(changePatterns, text)
}

// ExtractVolume returns the first volume-like value in the text, or nil.
func ExtractVolume(text string) *float64 {
	return matchFirst(volumePatterns, text)
}

// ParseVolumeString parses volume shorthand like "1.2M", "500K" or "2.5B".
// The suffix is case-insensitive; without one the literal value is used.
func ParseVolumeString(s string) (float64, bool) {
	upper := strings.ToUpper(s)
	num, err := strconv.ParseFloat(strings.TrimRight(upper, "KMB"), 64)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.Contains(upper, "K"):
		return num * 1e3, true
	case strings.Contains(upper, "M"):
		return num * 1e6, true
	case strings.Contains(upper, "B"):
		return num * 1e9, true
	}
	return num, true
}
