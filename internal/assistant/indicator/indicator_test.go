package indicator

import (
	"math"
	"testing"
	"time"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBars(n int) []entity.OHLCV {
	bars := make([]entity.OHLCV, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		// Gentle upward drift with a small oscillation so every
		// indicator sees both gains and losses.
		base := 100.0 + 0.1*float64(i) + 2.0*math.Sin(float64(i)/5.0)
		bars[i] = entity.OHLCV{
			Date:   start.AddDate(0, 0, i),
			Open:   base - 0.5,
			High:   base + 1.0,
			Low:    base - 1.0,
			Close:  base,
			Volume: 1_000_000 + float64(i%7)*10_000,
		}
	}
	return bars
}

func TestEnrich(t *testing.T) {
	t.Run("output length equals input minus longest lookback", func(t *testing.T) {
		bars := makeBars(300)
		rows, err := Enrich(bars)
		require.NoError(t, err)
		assert.Len(t, rows, 300-(SMALong-1))
	})

	t.Run("every output row has all indicator fields defined", func(t *testing.T) {
		rows, err := Enrich(makeBars(260))
		require.NoError(t, err)

		for _, row := range rows {
			assert.False(t, math.IsNaN(row.SMA20), "SMA20")
			assert.False(t, math.IsNaN(row.SMA50), "SMA50")
			assert.False(t, math.IsNaN(row.SMA200), "SMA200")
			assert.False(t, math.IsNaN(row.RSI), "RSI")
			assert.False(t, math.IsNaN(row.ATR), "ATR")
			assert.False(t, math.IsNaN(row.BBWidth), "BBWidth")
			assert.False(t, math.IsNaN(row.Williams), "Williams")
			assert.False(t, math.IsNaN(row.MACD), "MACD")
			assert.False(t, math.IsNaN(row.MACDSignal), "MACDSignal")
		}
	})

	t.Run("too few bars", func(t *testing.T) {
		_, err := Enrich(makeBars(150))
		assert.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Enrich(nil)
		assert.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("RSI stays within bounds", func(t *testing.T) {
		rows, err := Enrich(makeBars(250))
		require.NoError(t, err)
		for _, row := range rows {
			assert.GreaterOrEqual(t, row.RSI, 0.0)
			assert.LessOrEqual(t, row.RSI, 100.0)
		}
	})

	t.Run("Williams stays within bounds", func(t *testing.T) {
		rows, err := Enrich(makeBars(250))
		require.NoError(t, err)
		for _, row := range rows {
			assert.GreaterOrEqual(t, row.Williams, -100.0)
			assert.LessOrEqual(t, row.Williams, 0.0)
		}
	})
}

func TestSMASeries(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	out := SMASeries(closes, 3)

	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestBollingerSeries(t *testing.T) {
	// Constant prices: zero deviation, bands collapse onto the mean.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50.0
	}

	upper, middle, lower, width := BollingerSeries(closes, BollPeriod, BollMult)
	last := len(closes) - 1
	assert.InDelta(t, 50.0, middle[last], 1e-9)
	assert.InDelta(t, 50.0, upper[last], 1e-9)
	assert.InDelta(t, 50.0, lower[last], 1e-9)
	assert.InDelta(t, 0.0, width[last], 1e-9)
}
