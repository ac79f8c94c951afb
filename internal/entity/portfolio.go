package entity

import "time"

// PortfolioItem is one holding in a user's tracked portfolio.
type PortfolioItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Ticker    string    `gorm:"not null" json:"ticker"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	BuyPrice  float64   `gorm:"not null" json:"buy_price"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PortfolioItem model.
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
