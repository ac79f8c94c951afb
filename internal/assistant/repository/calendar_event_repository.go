package repository

import (
	"context"
	"time"

	"kchol-assistant/internal/entity"

	"gorm.io/gorm"
)

type calendarEventRepository struct {
	db *gorm.DB
}

// NewCalendarEventRepository creates a new Postgres-backed calendar event repository.
func NewCalendarEventRepository(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepository{db: db}
}

// Replace swaps the stored events for a symbol with a freshly scraped set.
func (r *calendarEventRepository) Replace(ctx context.Context, symbol string, events []entity.CalendarEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("symbol = ?", symbol).Delete(&entity.CalendarEvent{}).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		return tx.Create(&events).Error
	})
}

func (r *calendarEventRepository) GetUpcoming(ctx context.Context, symbol string, days int) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent
	now := time.Now()
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND event_date >= ? AND event_date <= ?", symbol, now, now.AddDate(0, 0, days)).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
