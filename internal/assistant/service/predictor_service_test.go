package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/assistant/sentiment"
	"kchol-assistant/internal/entity"
)

func TestPredictIsDeterministic(t *testing.T) {
	yahoo := &fakeYahoo{bars: testBars(300)}
	model := &fakeModel{prediction: 187.4567}
	svc := NewPredictorService(yahoo, model, nil, 365, testLogger())

	first, err := svc.Predict(context.Background(), "KCHOL.IS")
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), "KCHOL.IS")
	require.NoError(t, err)

	assert.Equal(t, first.CurrentPrice, second.CurrentPrice)
	assert.Equal(t, first.PredictedPrice, second.PredictedPrice)
	assert.Equal(t, first.ChangePercent, second.ChangePercent)
	assert.Equal(t, 187.46, first.PredictedPrice)
	require.Len(t, model.gotInput, 10)
}

func TestPredictDateIsAWeekday(t *testing.T) {
	yahoo := &fakeYahoo{bars: testBars(300)}
	svc := NewPredictorService(yahoo, &fakeModel{prediction: 150}, nil, 365, testLogger())

	result, err := svc.Predict(context.Background(), "KCHOL.IS")
	require.NoError(t, err)

	day, err := time.Parse("2006-01-02", result.PredictionDate)
	require.NoError(t, err)
	assert.NotEqual(t, time.Saturday, day.Weekday())
	assert.NotEqual(t, time.Sunday, day.Weekday())
}

func TestPredictInsufficientHistory(t *testing.T) {
	yahoo := &fakeYahoo{bars: testBars(120)}
	svc := NewPredictorService(yahoo, &fakeModel{prediction: 150}, nil, 365, testLogger())

	_, err := svc.Predict(context.Background(), "KCHOL.IS")
	assert.ErrorIs(t, err, errs.ErrInsufficientData)
}

func TestAdjustPrediction(t *testing.T) {
	base := &dto.PredictionResult{
		CurrentPrice:   200.0,
		PredictedPrice: 205.0,
		Change:         5.0,
		ChangePercent:  2.5,
		PredictionDate: "2026-09-01",
	}
	svc := NewPredictorService(&fakeYahoo{}, &fakeModel{}, nil, 365, testLogger())

	tests := []struct {
		name        string
		sentiment   string
		wantPrice   float64
		wantChange  float64
		wantPercent float64
	}{
		{"positive scales up", sentiment.Positive, 209.1, 9.1, 4.55},
		{"negative scales down", sentiment.Negative, 200.9, 0.9, 0.45},
		{"neutral unchanged", sentiment.Neutral, 205.0, 5.0, 2.5},
		{"unknown label unchanged", "karışık", 205.0, 5.0, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjusted := svc.AdjustPrediction(base, tt.sentiment)
			assert.InDelta(t, tt.wantPrice, adjusted.PredictedPrice, 1e-9)
			assert.InDelta(t, tt.wantChange, adjusted.Change, 1e-9)
			assert.InDelta(t, tt.wantPercent, adjusted.ChangePercent, 1e-9)
			assert.Equal(t, base.CurrentPrice, adjusted.CurrentPrice)
			assert.Equal(t, base.PredictionDate, adjusted.PredictionDate)
		})
	}
}

func TestAdjustPredictionUsesOriginalCurrentPrice(t *testing.T) {
	// The percentage is recomputed against the unadjusted current price,
	// not carried over from the base result.
	base := &dto.PredictionResult{CurrentPrice: 100.0, PredictedPrice: 110.0, ChangePercent: 10.0}
	svc := NewPredictorService(&fakeYahoo{}, &fakeModel{}, nil, 365, testLogger())

	adjusted := svc.AdjustPrediction(base, sentiment.Positive)
	assert.InDelta(t, 112.2, adjusted.PredictedPrice, 1e-9)
	assert.InDelta(t, 12.2, adjusted.ChangePercent, 1e-9)
}

func TestRecordWithoutRepositoryIsNoOp(t *testing.T) {
	svc := NewPredictorService(&fakeYahoo{}, &fakeModel{}, nil, 365, testLogger())

	// Must not panic when persistence is not configured.
	svc.Record(context.Background(), "KCHOL.IS", &dto.PredictionResult{PredictedPrice: 150}, sentiment.Neutral)
}

type capturePredictionLog struct {
	created []*entity.PredictionLog
}

func (c *capturePredictionLog) Create(ctx context.Context, log *entity.PredictionLog) error {
	c.created = append(c.created, log)
	return nil
}

func (c *capturePredictionLog) GetRecent(ctx context.Context, ticker string, limit int) ([]entity.PredictionLog, error) {
	return nil, nil
}

func TestRecordPersistsPrediction(t *testing.T) {
	logRepo := &capturePredictionLog{}
	svc := NewPredictorService(&fakeYahoo{}, &fakeModel{}, logRepo, 365, testLogger())

	result := &dto.PredictionResult{
		CurrentPrice:   200.0,
		PredictedPrice: 209.1,
		ChangePercent:  4.55,
		PredictionDate: "2026-09-01",
	}
	svc.Record(context.Background(), "KCHOL.IS", result, sentiment.Positive)

	require.Len(t, logRepo.created, 1)
	entry := logRepo.created[0]
	assert.Equal(t, "KCHOL.IS", entry.Ticker)
	assert.Equal(t, 209.1, entry.PredictedPrice)
	assert.Equal(t, sentiment.Positive, entry.Sentiment)
	assert.NotEmpty(t, entry.Data)
}
