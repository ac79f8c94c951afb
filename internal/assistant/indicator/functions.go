package indicator

import "math"

// Series helpers return one value per input row, with math.NaN() for rows
// inside the lookback window where the indicator is undefined.

// SMASeries computes the simple moving average of values over period.
func SMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMASeries computes an exponential moving average seeded with the first
// value, so every row has a defined value.
func EMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if len(values) == 0 || period <= 0 {
		return out
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

// RSISeries computes the Wilder-smoothed relative strength index of closes.
// Values are defined starting at index period.
func RSISeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
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
	out[period] = rsiValue(avgGain, avgLoss)

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
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// ATRSeries computes the rolling mean of the true range over period.
// The first bar's true range is its high-low spread.
func ATRSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n < period {
		return out
	}

	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			tr[i] = highs[i] - lows[i]
			continue
		}
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return SMASeries(tr, period)
}

// BollingerSeries computes the upper, middle and lower Bollinger bands
// (period-SMA ± mult standard deviations) plus the normalized band width.
func BollingerSeries(closes []float64, period int, mult float64) (upper, middle, lower, width []float64) {
	n := len(closes)
	upper, middle, lower, width = nanSlice(n), nanSlice(n), nanSlice(n), nanSlice(n)
	if period <= 0 || n < period {
		return
	}
	middle = SMASeries(closes, period)
	for i := period - 1; i < n; i++ {
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - middle[i]
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + mult*std
		lower[i] = middle[i] - mult*std
		if middle[i] != 0 {
			width[i] = (upper[i] - lower[i]) / middle[i]
		}
	}
	return
}

// WilliamsSeries computes Williams %R over the given lookback:
// (highest_high - close) / (highest_high - lowest_low) * -100.
func WilliamsSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n < period {
		return out
	}
	for i := period - 1; i < n; i++ {
		hh := highs[i-period+1]
		ll := lows[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			hh = math.Max(hh, highs[j])
			ll = math.Min(ll, lows[j])
		}
		if hh == ll {
			out[i] = 0
			continue
		}
		out[i] = (hh - closes[i]) / (hh - ll) * -100
	}
	return out
}

// MACDSeries computes MACD (EMA12 - EMA26) and its EMA9 signal line.
func MACDSeries(closes []float64) (macd, signal []float64) {
	n := len(closes)
	macd, signal = nanSlice(n), nanSlice(n)
	if n == 0 {
		return
	}
	ema12 := EMASeries(closes, 12)
	ema26 := EMASeries(closes, 26)
	for i := 0; i < n; i++ {
		macd[i] = ema12[i] - ema26[i]
	}
	signal = EMASeries(macd, 9)
	return
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
