package service

import (
	"context"
	"strings"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// Calendar window shown in the briefing.
const briefingCalendarDays = 14

// BriefingService composes and delivers the scheduled daily briefing.
type BriefingService interface {
	// Start registers the cron schedules and begins the scheduler.
	Start(ctx context.Context) error
	Stop()
	// SendBriefing composes and sends one briefing immediately.
	SendBriefing(ctx context.Context) error
}

// NewBriefingService creates a briefing service. Calendar and AI digest
// sections are skipped when their collaborators are nil; without a notifier
// only the calendar refresh job is scheduled.
func NewBriefingService(
	predictor PredictorService,
	news NewsService,
	calendar CalendarService,
	aiRepo repository.AIRepository,
	notifier telegram.Notifier,
	ticker string,
	briefingSpec string,
	calendarSpec string,
	log *logger.Logger,
) BriefingService {
	return &briefingService{
		predictor:    predictor,
		news:         news,
		calendar:     calendar,
		aiRepo:       aiRepo,
		notifier:     notifier,
		ticker:       ticker,
		briefingSpec: briefingSpec,
		calendarSpec: calendarSpec,
		cron:         cron.New(),
		log:          log,
	}
}

type briefingService struct {
	predictor    PredictorService
	news         NewsService
	calendar     CalendarService
	aiRepo       repository.AIRepository
	notifier     telegram.Notifier
	ticker       string
	briefingSpec string
	calendarSpec string
	cron         *cron.Cron
	log          *logger.Logger
}

func (s *briefingService) Start(ctx context.Context) error {
	if s.briefingSpec != "" && s.notifier != nil {
		if _, err := s.cron.AddFunc(s.briefingSpec, func() {
			if err := s.SendBriefing(ctx); err != nil {
				s.log.Error("daily briefing failed", logger.ErrorField(err))
			}
		}); err != nil {
			return err
		}
	}

	if s.calendarSpec != "" && s.calendar != nil {
		if _, err := s.cron.AddFunc(s.calendarSpec, func() {
			if err := s.calendar.Refresh(ctx); err != nil {
				s.log.Error("calendar refresh failed", logger.ErrorField(err))
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.log.Info("briefing scheduler started",
		logger.StringField("briefing_spec", s.briefingSpec),
		logger.StringField("calendar_spec", s.calendarSpec))
	return nil
}

func (s *briefingService) Stop() {
	s.cron.Stop()
}

func (s *briefingService) SendBriefing(ctx context.Context) error {
	if s.notifier == nil {
		return nil
	}

	prediction, err := s.predictor.Predict(ctx, s.ticker)
	if err != nil {
		s.log.Warn("briefing prediction unavailable", logger.ErrorField(err))
		prediction = nil
	}

	news, err := s.news.Analyze(ctx)
	if err != nil {
		s.log.Warn("briefing news unavailable", logger.ErrorField(err))
		news = nil
	}

	var events []entity.CalendarEvent
	if s.calendar != nil {
		// Calendar events are keyed by the bare BIST code, not the
		// Yahoo Finance ticker.
		symbol := strings.TrimSuffix(s.ticker, ".IS")
		events, err = s.calendar.Upcoming(ctx, symbol, briefingCalendarDays)
		if err != nil {
			s.log.Warn("briefing calendar unavailable", logger.ErrorField(err))
		}
	}

	if prediction == nil && news == nil && len(events) == 0 {
		s.log.Warn("briefing skipped, no section available")
		return nil
	}

	message := telegram.FormatDailyBriefing(s.ticker, prediction, news, events)
	if digest := s.newsDigest(ctx, news); digest != "" {
		message += "\n📝 *Özet:* " + digest
	}
	return s.notifier.SendMessage(message)
}

func (s *briefingService) newsDigest(ctx context.Context, news *dto.SentimentRecord) string {
	if s.aiRepo == nil || news == nil || len(news.KeyArticles) == 0 {
		return ""
	}

	digest, err := s.aiRepo.GenerateResponse(ctx, repository.BuildNewsDigestPrompt(s.ticker, news.KeyArticles))
	if err != nil {
		s.log.Warn("news digest generation failed", logger.ErrorField(err))
		return ""
	}
	return digest
}
