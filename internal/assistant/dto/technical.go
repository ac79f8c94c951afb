package dto

// TechnicalAnalysisRequest is the body of POST /api/technical_analysis.
type TechnicalAnalysisRequest struct {
	Request string `json:"request"`
}

// ChartSeries is one named line or bar series within a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

// Chart is a renderable chart payload. Rasterization is left to the client.
type Chart struct {
	Title  string        `json:"title"`
	Type   string        `json:"type"`
	Series []ChartSeries `json:"series"`
}

// IndicatorSnapshot is the latest value of each computed indicator.
type IndicatorSnapshot struct {
	CurrentPrice  float64 `json:"current_price"`
	DailyChange   float64 `json:"daily_change_percent"`
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	SMA20         float64 `json:"sma20"`
	SMA50         float64 `json:"sma50"`
	SMA200        float64 `json:"sma200"`
	ATR           float64 `json:"atr"`
	BBWidth       float64 `json:"bb_width"`
	Williams      float64 `json:"williams"`
	RSIZone       string  `json:"rsi_zone"`
	MACDDirection string  `json:"macd_direction"`
	TrendComment  string  `json:"trend_comment"`
}

// TechnicalAnalysisResult is the reply of POST /api/technical_analysis.
type TechnicalAnalysisResult struct {
	Charts   []Chart            `json:"charts"`
	Snapshot *IndicatorSnapshot `json:"snapshot,omitempty"`
	Analysis string             `json:"analysis"`
	Summary  string             `json:"summary"`
}
