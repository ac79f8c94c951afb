package dto

// SimulationRequest is a parsed what-if investment question.
type SimulationRequest struct {
	Ticker   string  `json:"ticker"`
	DateExpr string  `json:"date_expr"`
	Amount   float64 `json:"amount"`
}

// SimulationResult is the outcome of a historical what-if computation.
type SimulationResult struct {
	Ticker       string  `json:"ticker"`
	StartDate    string  `json:"start_date"`
	StartPrice   float64 `json:"start_price"`
	CurrentPrice float64 `json:"current_price"`
	SharesBought int     `json:"shares_bought"`
	CurrentValue float64 `json:"current_value"`
	NetGain      float64 `json:"net_gain"`
	ReturnPct    float64 `json:"return_pct"`
}
