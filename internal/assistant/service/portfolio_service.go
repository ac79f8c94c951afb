package service

import (
	"context"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"
)

// PortfolioService tracks holdings and values them at current market prices.
type PortfolioService interface {
	Add(ctx context.Context, req *dto.AddPortfolioItemRequest) error
	Remove(ctx context.Context, req *dto.RemovePortfolioItemRequest) error
	List(ctx context.Context, userID string) ([]entity.PortfolioItem, error)
	Calculate(ctx context.Context, userID string) (*dto.PortfolioValuation, error)
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	yahooRepo repository.YahooFinanceRepository,
	log *logger.Logger,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		yahooRepo:     yahooRepo,
		log:           log,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	yahooRepo     repository.YahooFinanceRepository
	log           *logger.Logger
}

func (s *portfolioService) Add(ctx context.Context, req *dto.AddPortfolioItemRequest) error {
	item := &entity.PortfolioItem{
		UserID:   req.UserID,
		Ticker:   req.Ticker,
		Quantity: req.Quantity,
		BuyPrice: req.BuyPrice,
	}
	return s.portfolioRepo.Create(ctx, item)
}

func (s *portfolioService) Remove(ctx context.Context, req *dto.RemovePortfolioItemRequest) error {
	return s.portfolioRepo.Delete(ctx, req.UserID, req.ItemID)
}

func (s *portfolioService) List(ctx context.Context, userID string) ([]entity.PortfolioItem, error) {
	return s.portfolioRepo.GetByUser(ctx, userID)
}

// Calculate values every holding at its latest close. Prices are fetched
// once per distinct ticker.
func (s *portfolioService) Calculate(ctx context.Context, userID string) (*dto.PortfolioValuation, error) {
	items, err := s.portfolioRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	valuation := &dto.PortfolioValuation{UserID: userID}
	prices := make(map[string]float64)

	for _, item := range items {
		price, ok := prices[item.Ticker]
		if !ok {
			price, err = s.yahooRepo.GetLatestClose(ctx, item.Ticker)
			if err != nil {
				s.log.Warn("price lookup failed for holding",
					logger.StringField("ticker", item.Ticker), logger.ErrorField(err))
				continue
			}
			prices[item.Ticker] = price
		}

		cost := item.Quantity * item.BuyPrice
		value := item.Quantity * price
		valuation.Positions = append(valuation.Positions, dto.PortfolioPosition{
			ItemID:       item.ID,
			Ticker:       item.Ticker,
			Quantity:     item.Quantity,
			BuyPrice:     item.BuyPrice,
			CurrentPrice: utils.Round2(price),
			CurrentValue: utils.Round2(value),
			NetGain:      utils.Round2(value - cost),
			ReturnPct:    utils.Round2(safePct(value-cost, cost)),
		})
		valuation.TotalCost += cost
		valuation.TotalValue += value
	}

	valuation.NetGain = utils.Round2(valuation.TotalValue - valuation.TotalCost)
	valuation.ReturnPct = utils.Round2(safePct(valuation.NetGain, valuation.TotalCost))
	valuation.TotalCost = utils.Round2(valuation.TotalCost)
	valuation.TotalValue = utils.Round2(valuation.TotalValue)
	return valuation, nil
}

func safePct(gain, base float64) float64 {
	if base == 0 {
		return 0
	}
	return gain / base * 100
}
