package tools

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
	"github.com/kephothoX/SokoAnalyst/internal/models"
)

// indicatorDescriptions documents the supported technical indicators for
// the agent's tool schema.
var indicatorDescriptions = map[string]string{
	"rsi":       "RSI: Measures momentum to flag overbought/oversold conditions. Apply 70/30 thresholds.",
	"macd":      "MACD: Momentum via the difference of 12 and 26 period EMAs, with a 9 period signal line.",
	"sma50":     "50 SMA: Medium-term trend indicator and dynamic support/resistance.",
	"sma200":    "200 SMA: Long-term trend benchmark for golden/death cross setups.",
	"ema10":     "10 EMA: Responsive short-term average for momentum shifts.",
	"bollinger": "Bollinger Bands: 20 SMA basis with 2 standard deviation bands for breakouts and reversals.",
	"atr":       "ATR: Average true range, a volatility measure for stops and position sizing.",
	"vwma":      "VWMA: Volume weighted moving average confirming trends with volume.",
	"mfi":       "MFI: Money Flow Index combining price and volume, with 80/20 thresholds.",
}

// SupportedIndicators lists indicator names in stable order
func SupportedIndicators() []string {
	names := make([]string, 0, len(indicatorDescriptions))
	for name := range indicatorDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildTechnicalReport computes the requested indicators over daily bars.
// An empty indicator list computes all supported indicators. Indicators
// lacking enough history are skipped rather than failing the report.
func BuildTechnicalReport(symbol string, bars []*dataflows.MarketData, indicators []string) (*models.TechnicalReport, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no market data available for %s", symbol)
	}
	if len(indicators) == 0 {
		indicators = SupportedIndicators()
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	series := newBarSeries(bars)
	readings := map[string]models.IndicatorReading{}

	for _, name := range indicators {
		key := strings.ToLower(strings.TrimSpace(name))
		reading, ok := series.compute(key)
		if !ok {
			continue
		}
		readings[key] = reading
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("insufficient history for %s: %d bars", symbol, len(bars))
	}

	return &models.TechnicalReport{
		Symbol:     symbol,
		Timestamp:  time.Now().UnixMilli(),
		Indicators: readings,
	}, nil
}

// barSeries holds the float views of a daily bar history
type barSeries struct {
	closes  []float64
	highs   []float64
	lows    []float64
	volumes []float64
}

func newBarSeries(bars []*dataflows.MarketData) *barSeries {
	s := &barSeries{
		closes:  make([]float64, len(bars)),
		highs:   make([]float64, len(bars)),
		lows:    make([]float64, len(bars)),
		volumes: make([]float64, len(bars)),
	}
	for i, bar := range bars {
		s.closes[i], _ = bar.Close.Float64()
		s.highs[i], _ = bar.High.Float64()
		s.lows[i], _ = bar.Low.Float64()
		s.volumes[i] = float64(bar.Volume)
	}
	return s
}

func (s *barSeries) compute(indicator string) (models.IndicatorReading, bool) {
	last := len(s.closes) - 1
	price := s.closes[last]

	switch indicator {
	case "rsi":
		value, ok := latestRSI(s.closes, 14)
		if !ok {
			return models.IndicatorReading{}, false
		}
		signal := "neutral"
		if value >= 70 {
			signal = "overbought"
		} else if value <= 30 {
			signal = "oversold"
		}
		return models.IndicatorReading{Signal: signal, Value: round2(value)}, true

	case "macd":
		line, sig, ok := latestMACD(s.closes)
		if !ok {
			return models.IndicatorReading{}, false
		}
		signal := "bearish"
		if line > sig {
			signal = "bullish"
		}
		return models.IndicatorReading{Signal: signal, Value: round2(line - sig)}, true

	case "sma50":
		value, ok := latestSMA(s.closes, 50)
		return trendReading(price, value, ok)

	case "sma200":
		value, ok := latestSMA(s.closes, 200)
		return trendReading(price, value, ok)

	case "ema10":
		value, ok := latestEMA(s.closes, 10)
		return trendReading(price, value, ok)

	case "bollinger":
		middle, upper, lower, ok := latestBollinger(s.closes, 20, 2.0)
		if !ok {
			return models.IndicatorReading{}, false
		}
		signal := "neutral"
		if price >= upper {
			signal = "overbought"
		} else if price <= lower {
			signal = "oversold"
		}
		return models.IndicatorReading{Signal: signal, Value: round2(middle)}, true

	case "atr":
		value, ok := latestATR(s.highs, s.lows, s.closes, 14)
		if !ok {
			return models.IndicatorReading{}, false
		}
		signal := "low volatility"
		if price > 0 && value/price > 0.03 {
			signal = "high volatility"
		}
		return models.IndicatorReading{Signal: signal, Value: round2(value)}, true

	case "vwma":
		value, ok := latestVWMA(s.closes, s.volumes, 20)
		return trendReading(price, value, ok)

	case "mfi":
		value, ok := latestMFI(s.highs, s.lows, s.closes, s.volumes, 14)
		if !ok {
			return models.IndicatorReading{}, false
		}
		signal := "neutral"
		if value >= 80 {
			signal = "overbought"
		} else if value <= 20 {
			signal = "oversold"
		}
		return models.IndicatorReading{Signal: signal, Value: round2(value)}, true
	}

	return models.IndicatorReading{}, false
}

// trendReading classifies price against a moving average
func trendReading(price float64, avg float64, ok bool) (models.IndicatorReading, bool) {
	if !ok {
		return models.IndicatorReading{}, false
	}
	trend := "downtrend"
	if price >= avg {
		trend = "uptrend"
	}
	return models.IndicatorReading{Trend: trend, Value: round2(avg)}, true
}

func latestSMA(values []float64, period int) (float64, bool) {
	if len(values) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

func latestEMA(values []float64, period int) (float64, bool) {
	series, ok := emaSeries(values, period)
	if !ok {
		return 0, false
	}
	return series[len(series)-1], true
}

// emaSeries seeds with the SMA of the first period, then smooths forward
func emaSeries(values []float64, period int) ([]float64, bool) {
	if len(values) < period {
		return nil, false
	}
	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for _, v := range values[:period] {
		sum += v
	}
	ema := sum / float64(period)

	series := []float64{ema}
	for _, v := range values[period:] {
		ema = v*multiplier + ema*(1-multiplier)
		series = append(series, ema)
	}
	return series, true
}

func latestRSI(closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

func latestMACD(closes []float64) (line, signal float64, ok bool) {
	fast, okFast := emaSeries(closes, 12)
	slow, okSlow := emaSeries(closes, 26)
	if !okFast || !okSlow {
		return 0, 0, false
	}

	// Align the two series on their tails
	n := len(slow)
	if len(fast) < n {
		n = len(fast)
	}
	macd := make([]float64, n)
	for i := 0; i < n; i++ {
		macd[i] = fast[len(fast)-n+i] - slow[len(slow)-n+i]
	}

	signalSeries, okSignal := emaSeries(macd, 9)
	if !okSignal {
		return 0, 0, false
	}
	return macd[len(macd)-1], signalSeries[len(signalSeries)-1], true
}

func latestBollinger(closes []float64, period int, mult float64) (middle, upper, lower float64, ok bool) {
	sma, okSMA := latestSMA(closes, period)
	if !okSMA {
		return 0, 0, 0, false
	}

	variance := 0.0
	for _, v := range closes[len(closes)-period:] {
		diff := v - sma
		variance += diff * diff
	}
	stdDev := math.Sqrt(variance / float64(period))

	return sma, sma + mult*stdDev, sma - mult*stdDev, true
}

func latestATR(highs, lows, closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	trueRanges := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		tr := highs[i] - lows[i]
		tr = math.Max(tr, math.Abs(highs[i]-closes[i-1]))
		tr = math.Max(tr, math.Abs(lows[i]-closes[i-1]))
		trueRanges = append(trueRanges, tr)
	}

	return latestSMA(trueRanges, period)
}

func latestVWMA(closes, volumes []float64, period int) (float64, bool) {
	if len(closes) < period {
		return 0, false
	}

	totalVolume, weightedSum := 0.0, 0.0
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		totalVolume += volumes[i]
		weightedSum += closes[i] * volumes[i]
	}
	if totalVolume == 0 {
		return 0, false
	}
	return weightedSum / totalVolume, true
}

func latestMFI(highs, lows, closes, volumes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	positiveFlow, negativeFlow := 0.0, 0.0
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		prevTypical := (highs[i-1] + lows[i-1] + closes[i-1]) / 3
		flow := typical * volumes[i]

		if typical > prevTypical {
			positiveFlow += flow
		} else if typical < prevTypical {
			negativeFlow += flow
		}
	}

	if negativeFlow == 0 {
		return 100, true
	}
	ratio := positiveFlow / negativeFlow
	return 100 - 100/(1+ratio), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
