package entity

import "time"

// Calendar event type values produced by announcement categorization.
const (
	EventTypeBilanco         = "bilanço"
	EventTypeGenelKurul      = "genel_kurul"
	EventTypeTemettu         = "temettü"
	EventTypeSermayeArtirimi = "sermaye_artırımı"
	EventTypeKurumsalOlay    = "kurumsal_olay"
	EventTypeDiger           = "diğer"
)

// CalendarEvent is a scraped financial calendar entry for a company.
type CalendarEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Symbol      string    `gorm:"index;not null" json:"symbol"`
	EventType   string    `gorm:"not null" json:"event_type"`
	EventDate   time.Time `gorm:"not null" json:"event_date"`
	Description string    `gorm:"not null" json:"description"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the CalendarEvent model.
func (CalendarEvent) TableName() string {
	return "calendar_events"
}
