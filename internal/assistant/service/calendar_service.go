package service

import (
	"context"

	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
)

// CalendarService maintains the scraped financial calendar.
type CalendarService interface {
	// Refresh re-scrapes announcements for every configured symbol.
	Refresh(ctx context.Context) error
	Upcoming(ctx context.Context, symbol string, days int) ([]entity.CalendarEvent, error)
}

// NewCalendarService creates a calendar service.
func NewCalendarService(
	kapRepo repository.KAPRepository,
	eventRepo repository.CalendarEventRepository,
	symbols []string,
	log *logger.Logger,
) CalendarService {
	return &calendarService{
		kapRepo:   kapRepo,
		eventRepo: eventRepo,
		symbols:   symbols,
		log:       log,
	}
}

type calendarService struct {
	kapRepo   repository.KAPRepository
	eventRepo repository.CalendarEventRepository
	symbols   []string
	log       *logger.Logger
}

func (s *calendarService) Refresh(ctx context.Context) error {
	for _, symbol := range s.symbols {
		events, err := s.kapRepo.FetchAnnouncements(ctx, symbol)
		if err != nil {
			s.log.Error("calendar scrape failed",
				logger.StringField("symbol", symbol), logger.ErrorField(err))
			continue
		}
		if err := s.eventRepo.Replace(ctx, symbol, events); err != nil {
			s.log.Error("calendar store failed",
				logger.StringField("symbol", symbol), logger.ErrorField(err))
			continue
		}
		s.log.Info("calendar refreshed",
			logger.StringField("symbol", symbol), logger.IntField("events", len(events)))
	}
	return nil
}

func (s *calendarService) Upcoming(ctx context.Context, symbol string, days int) ([]entity.CalendarEvent, error) {
	return s.eventRepo.GetUpcoming(ctx, symbol, days)
}
