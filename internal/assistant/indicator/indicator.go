// Package indicator computes standard technical indicators over daily OHLCV
// history and produces fully-defined rows for the prediction pipeline.
package indicator

import (
	"math"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
)

// Default lookback windows.
const (
	RSIPeriod      = 14
	ATRPeriod      = 14
	WilliamsPeriod = 14
	BollPeriod     = 20
	BollMult       = 2.0
	SMAShort       = 20
	SMAMedium      = 50
	SMALong        = 200
)

// Row is an OHLCV bar augmented with derived indicator fields.
type Row struct {
	entity.OHLCV
	SMA20      float64 `json:"sma20"`
	SMA50      float64 `json:"sma50"`
	SMA200     float64 `json:"sma200"`
	RSI        float64 `json:"rsi"`
	ATR        float64 `json:"atr"`
	BBUpper    float64 `json:"bb_upper"`
	BBMiddle   float64 `json:"bb_middle"`
	BBLower    float64 `json:"bb_lower"`
	BBWidth    float64 `json:"bb_width"`
	Williams   float64 `json:"williams"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
}

// Enrich computes all indicators over the series and drops the leading rows
// where any indicator is still undefined. The 200-day SMA has the longest
// lookback, so the first SMALong-1 rows never survive. Returns
// errs.ErrInsufficientData when no fully-defined row remains.
func Enrich(bars []entity.OHLCV) ([]Row, error) {
	if len(bars) < SMALong {
		return nil, errs.ErrInsufficientData
	}

	n := len(bars)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i, b := range bars {
		opens[i] = b.Open
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
	}

	sma20 := SMASeries(closes, SMAShort)
	sma50 := SMASeries(closes, SMAMedium)
	sma200 := SMASeries(closes, SMALong)
	rsi := RSISeries(closes, RSIPeriod)
	atr := ATRSeries(highs, lows, closes, ATRPeriod)
	bbUpper, bbMiddle, bbLower, bbWidth := BollingerSeries(closes, BollPeriod, BollMult)
	williams := WilliamsSeries(highs, lows, closes, WilliamsPeriod)
	macd, macdSignal := MACDSeries(closes)

	rows := make([]Row, 0, n-SMALong+1)
	for i := 0; i < n; i++ {
		row := Row{
			OHLCV:      bars[i],
			SMA20:      sma20[i],
			SMA50:      sma50[i],
			SMA200:     sma200[i],
			RSI:        rsi[i],
			ATR:        atr[i],
			BBUpper:    bbUpper[i],
			BBMiddle:   bbMiddle[i],
			BBLower:    bbLower[i],
			BBWidth:    bbWidth[i],
			Williams:   williams[i],
			MACD:       macd[i],
			MACDSignal: macdSignal[i],
		}
		if rowDefined(row) {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, errs.ErrInsufficientData
	}
	return rows, nil
}

func rowDefined(r Row) bool {
	for _, v := range []float64{
		r.SMA20, r.SMA50, r.SMA200, r.RSI, r.ATR,
		r.BBUpper, r.BBMiddle, r.BBLower, r.BBWidth,
		r.Williams, r.MACD, r.MACDSignal,
	} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
