package service

import (
	"context"
	"math"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/parser"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"
)

// SimulationService answers historical what-if investment questions.
type SimulationService interface {
	Simulate(ctx context.Context, req *dto.SimulationRequest) (*dto.SimulationResult, error)
}

// NewSimulationService creates a new simulation service.
func NewSimulationService(yahooRepo repository.YahooFinanceRepository, log *logger.Logger) SimulationService {
	return &simulationService{yahooRepo: yahooRepo, log: log}
}

type simulationService struct {
	yahooRepo repository.YahooFinanceRepository
	log       *logger.Logger
}

func (s *simulationService) Simulate(ctx context.Context, req *dto.SimulationRequest) (*dto.SimulationResult, error) {
	startDate, err := parser.ResolveDate(req.DateExpr, utils.TimeNowIstanbul())
	if err != nil {
		return nil, err
	}

	startPrice, err := s.yahooRepo.GetCloseOn(ctx, req.Ticker, startDate)
	if err != nil {
		return nil, err
	}

	currentPrice, err := s.yahooRepo.GetLatestClose(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	// Whole shares only; the gain is measured against the full amount,
	// so any uninvested remainder counts as flat.
	shares := int(math.Floor(req.Amount / startPrice))
	currentValue := float64(shares) * currentPrice
	netGain := currentValue - req.Amount

	result := &dto.SimulationResult{
		Ticker:       req.Ticker,
		StartDate:    startDate.Format("2006-01-02"),
		StartPrice:   utils.Round2(startPrice),
		CurrentPrice: utils.Round2(currentPrice),
		SharesBought: shares,
		CurrentValue: utils.Round2(currentValue),
		NetGain:      utils.Round2(netGain),
	}
	if req.Amount > 0 {
		result.ReturnPct = utils.Round2(netGain / req.Amount * 100)
	}
	return result, nil
}
