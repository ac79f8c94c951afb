package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/entity"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

type fakeCalendarService struct {
	refreshed int
	gotSymbol string
	events    []entity.CalendarEvent
}

func (f *fakeCalendarService) Refresh(ctx context.Context) error {
	f.refreshed++
	return nil
}

func (f *fakeCalendarService) Upcoming(ctx context.Context, symbol string, days int) ([]entity.CalendarEvent, error) {
	f.gotSymbol = symbol
	return f.events, nil
}

func TestBriefingSchedulerRunsCalendarWithoutNotifier(t *testing.T) {
	calendar := &fakeCalendarService{}
	svc := NewBriefingService(nil, nil, calendar, nil, nil,
		"KCHOL.IS", "30 9 * * 1-5", "0 7 * * *", testLogger())
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	// Without a notifier only the calendar refresh job is registered.
	entries := svc.(*briefingService).cron.Entries()
	assert.Len(t, entries, 1)
}

func TestBriefingSchedulerRegistersBothJobs(t *testing.T) {
	calendar := &fakeCalendarService{}
	svc := NewBriefingService(nil, nil, calendar, nil, &fakeNotifier{},
		"KCHOL.IS", "30 9 * * 1-5", "0 7 * * *", testLogger())
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	entries := svc.(*briefingService).cron.Entries()
	assert.Len(t, entries, 2)
}

func TestSendBriefingWithoutNotifierIsNoOp(t *testing.T) {
	svc := NewBriefingService(nil, nil, nil, nil, nil,
		"KCHOL.IS", "", "", testLogger())
	assert.NoError(t, svc.SendBriefing(context.Background()))
}

func TestSendBriefingQueriesCalendarWithBareSymbol(t *testing.T) {
	predictor := &fakePredictor{result: &dto.PredictionResult{
		CurrentPrice:   200,
		PredictedPrice: 205,
		Change:         5,
		ChangePercent:  2.5,
		PredictionDate: "2026-09-01",
	}}
	news := &fakeNewsService{record: &dto.SentimentRecord{}}
	calendar := &fakeCalendarService{}
	notifier := &fakeNotifier{}

	svc := NewBriefingService(predictor, news, calendar, nil, notifier,
		"KCHOL.IS", "", "", testLogger())
	require.NoError(t, svc.SendBriefing(context.Background()))

	assert.Equal(t, "KCHOL", calendar.gotSymbol)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "KCHOL.IS")
}
