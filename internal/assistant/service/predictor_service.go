package service

import (
	"context"
	"encoding/json"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/indicator"
	"kchol-assistant/internal/assistant/metrics"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"

	"gorm.io/datatypes"
)

// PredictorService produces next-trading-day price predictions.
type PredictorService interface {
	Predict(ctx context.Context, symbol string) (*dto.PredictionResult, error)
	// AdjustPrediction nudges a base prediction by the news sentiment label.
	AdjustPrediction(base *dto.PredictionResult, sentiment string) *dto.PredictionResult
	// Record persists a completed prediction run. Failures are logged only.
	Record(ctx context.Context, ticker string, result *dto.PredictionResult, sentiment string)
}

// NewPredictorService creates a new predictor service.
func NewPredictorService(
	yahooRepo repository.YahooFinanceRepository,
	modelRepo repository.PriceModelRepository,
	logRepo repository.PredictionLogRepository,
	lookbackDays int,
	log *logger.Logger,
) PredictorService {
	return &predictorService{
		yahooRepo:    yahooRepo,
		modelRepo:    modelRepo,
		logRepo:      logRepo,
		lookbackDays: lookbackDays,
		log:          log,
	}
}

type predictorService struct {
	yahooRepo    repository.YahooFinanceRepository
	modelRepo    repository.PriceModelRepository
	logRepo      repository.PredictionLogRepository
	lookbackDays int
	log          *logger.Logger
}

func (s *predictorService) Predict(ctx context.Context, symbol string) (*dto.PredictionResult, error) {
	bars, err := s.yahooRepo.GetOHLCV(ctx, symbol, s.lookbackDays)
	if err != nil {
		return nil, err
	}

	rows, err := indicator.Enrich(bars)
	if err != nil {
		return nil, err
	}

	last := rows[len(rows)-1]
	features := []float64{
		last.Close,
		last.High,
		last.Low,
		last.Open,
		last.Volume,
		last.SMA200,
		last.RSI,
		last.ATR,
		last.BBWidth,
		last.Williams,
	}

	predicted, err := s.modelRepo.Predict(features)
	if err != nil {
		return nil, err
	}

	current := last.Close
	change := predicted - current
	result := &dto.PredictionResult{
		CurrentPrice:   utils.Round2(current),
		PredictedPrice: utils.Round2(predicted),
		Change:         utils.Round2(change),
		ChangePercent:  utils.Round2(change / current * 100),
		PredictionDate: utils.NextTradingDay(utils.TimeNowIstanbul()).Format("2006-01-02"),
	}

	metrics.Predictions.Inc()
	return result, nil
}

// Sentiment adjustment multipliers.
const (
	positiveAdjustment = 1.02
	negativeAdjustment = 0.98
)

func (s *predictorService) AdjustPrediction(base *dto.PredictionResult, sentiment string) *dto.PredictionResult {
	multiplier := 1.0
	switch sentiment {
	case "positive":
		multiplier = positiveAdjustment
	case "negative":
		multiplier = negativeAdjustment
	}

	adjusted := base.PredictedPrice * multiplier
	change := adjusted - base.CurrentPrice
	return &dto.PredictionResult{
		CurrentPrice:   base.CurrentPrice,
		PredictedPrice: utils.Round2(adjusted),
		Change:         utils.Round2(change),
		ChangePercent:  utils.Round2(change / base.CurrentPrice * 100),
		PredictionDate: base.PredictionDate,
	}
}

func (s *predictorService) Record(ctx context.Context, ticker string, result *dto.PredictionResult, sentiment string) {
	if s.logRepo == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Error("failed to marshal prediction payload", logger.ErrorField(err))
		return
	}

	logEntry := &entity.PredictionLog{
		Ticker:         ticker,
		CurrentPrice:   result.CurrentPrice,
		PredictedPrice: result.PredictedPrice,
		ChangePercent:  result.ChangePercent,
		Sentiment:      sentiment,
		PredictionDate: result.PredictionDate,
		Data:           datatypes.JSON(payload),
	}
	if err := s.logRepo.Create(ctx, logEntry); err != nil {
		s.log.Error("failed to persist prediction log", logger.ErrorField(err))
	}
}
