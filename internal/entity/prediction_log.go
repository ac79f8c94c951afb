package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PredictionLog records one completed predict-and-adjust run.
// Data holds the full prediction payload as returned to the user.
type PredictionLog struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Ticker         string         `gorm:"not null" json:"ticker"`
	CurrentPrice   float64        `gorm:"not null" json:"current_price"`
	PredictedPrice float64        `gorm:"not null" json:"predicted_price"`
	ChangePercent  float64        `gorm:"not null" json:"change_percent"`
	Sentiment      string         `json:"sentiment"`
	PredictionDate string         `gorm:"not null" json:"prediction_date"`
	Data           datatypes.JSON `json:"data"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PredictionLog model.
func (PredictionLog) TableName() string {
	return "prediction_logs"
}
