package dto

// PredictionResult is the outcome of one next-day price prediction.
// All monetary and percentage fields are rounded to 2 decimal places.
type PredictionResult struct {
	CurrentPrice   float64 `json:"current_price"`
	PredictedPrice float64 `json:"predicted_price"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"change_percent"`
	PredictionDate string  `json:"prediction_date"`
}
