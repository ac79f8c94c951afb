package repository

import (
	"context"

	"kchol-assistant/internal/entity"

	"gorm.io/gorm"
)

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, item *entity.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *portfolioRepository) Delete(ctx context.Context, userID string, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&entity.PortfolioItem{}).Error
}

func (r *portfolioRepository) GetByUser(ctx context.Context, userID string) ([]entity.PortfolioItem, error) {
	var items []entity.PortfolioItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}
