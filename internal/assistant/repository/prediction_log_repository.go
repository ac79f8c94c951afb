package repository

import (
	"context"

	"kchol-assistant/internal/entity"

	"gorm.io/gorm"
)

type predictionLogRepository struct {
	db *gorm.DB
}

// NewPredictionLogRepository creates a new prediction log repository.
func NewPredictionLogRepository(db *gorm.DB) PredictionLogRepository {
	return &predictionLogRepository{db: db}
}

func (r *predictionLogRepository) Create(ctx context.Context, log *entity.PredictionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *predictionLogRepository) GetRecent(ctx context.Context, ticker string, limit int) ([]entity.PredictionLog, error) {
	var logs []entity.PredictionLog
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
