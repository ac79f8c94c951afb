package repository

import (
	"context"
	"time"

	"kchol-assistant/internal/entity"
)

// YahooFinanceRepository provides daily market data for a ticker.
type YahooFinanceRepository interface {
	// GetOHLCV returns ascending daily bars for the trailing window.
	GetOHLCV(ctx context.Context, symbol string, days int) ([]entity.OHLCV, error)
	// GetCloseOn returns the closing price on or immediately after the date.
	GetCloseOn(ctx context.Context, symbol string, date time.Time) (float64, error)
	// GetLatestClose returns the most recent closing price.
	GetLatestClose(ctx context.Context, symbol string) (float64, error)
}

// NewsSearchRepository queries a news source for one search term.
type NewsSearchRepository interface {
	Search(ctx context.Context, term string, days, pageSize int) ([]entity.Article, error)
}

// AIRepository generates Turkish free-text responses.
type AIRepository interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
	// GenerateWithSearch grounds the response with web search results.
	GenerateWithSearch(ctx context.Context, prompt string) (string, error)
}

// PriceModelRepository wraps the pretrained next-day close regression model.
type PriceModelRepository interface {
	// Predict maps the fixed 10-element feature vector to a price.
	Predict(features []float64) (float64, error)
}

// PortfolioRepository persists tracked holdings.
type PortfolioRepository interface {
	Create(ctx context.Context, item *entity.PortfolioItem) error
	Delete(ctx context.Context, userID string, itemID uint) error
	GetByUser(ctx context.Context, userID string) ([]entity.PortfolioItem, error)
}

// PredictionLogRepository persists completed prediction runs.
type PredictionLogRepository interface {
	Create(ctx context.Context, log *entity.PredictionLog) error
	GetRecent(ctx context.Context, ticker string, limit int) ([]entity.PredictionLog, error)
}

// DocumentRepository persists knowledge-base documents and retrieves chunks.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	ExistsByFileName(ctx context.Context, fileName string) (bool, error)
	SearchChunks(ctx context.Context, keywords []string, limit int) ([]entity.DocumentChunk, error)
}

// KAPRepository scrapes company announcements from public disclosure pages.
type KAPRepository interface {
	FetchAnnouncements(ctx context.Context, symbol string) ([]entity.CalendarEvent, error)
}

// CalendarEventRepository persists financial calendar entries.
type CalendarEventRepository interface {
	Replace(ctx context.Context, symbol string, events []entity.CalendarEvent) error
	GetUpcoming(ctx context.Context, symbol string, days int) ([]entity.CalendarEvent, error)
}
