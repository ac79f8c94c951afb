package dto

// AddPortfolioItemRequest is the body of POST /api/portfolio/add.
type AddPortfolioItemRequest struct {
	UserID   string  `json:"user_id"`
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
	BuyPrice float64 `json:"buy_price"`
}

// RemovePortfolioItemRequest is the body of POST /api/portfolio/remove.
type RemovePortfolioItemRequest struct {
	UserID string `json:"user_id"`
	ItemID uint   `json:"item_id"`
}

// PortfolioPosition is one valued holding in a portfolio report.
type PortfolioPosition struct {
	ItemID       uint    `json:"item_id"`
	Ticker       string  `json:"ticker"`
	Quantity     float64 `json:"quantity"`
	BuyPrice     float64 `json:"buy_price"`
	CurrentPrice float64 `json:"current_price"`
	CurrentValue float64 `json:"current_value"`
	NetGain      float64 `json:"net_gain"`
	ReturnPct    float64 `json:"return_pct"`
}

// PortfolioValuation is the reply of GET /api/portfolio/calculate.
type PortfolioValuation struct {
	UserID     string              `json:"user_id"`
	Positions  []PortfolioPosition `json:"positions"`
	TotalCost  float64             `json:"total_cost"`
	TotalValue float64             `json:"total_value"`
	NetGain    float64             `json:"net_gain"`
	ReturnPct  float64             `json:"return_pct"`
}

// AddDocumentResponse is the reply of POST /api/add_document.
type AddDocumentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
