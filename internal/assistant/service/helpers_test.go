package service

import (
	"context"
	"math"
	"time"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
)

func testLogger() *logger.Logger {
	log, err := logger.New("error", "json")
	if err != nil {
		panic(err)
	}
	return log
}

func testBars(n int) []entity.OHLCV {
	bars := make([]entity.OHLCV, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		base := 100.0 + 0.1*float64(i) + 2.0*math.Sin(float64(i)/5.0)
		bars[i] = entity.OHLCV{
			Date:   start.AddDate(0, 0, i),
			Open:   base - 0.5,
			High:   base + 1.0,
			Low:    base - 1.0,
			Close:  base,
			Volume: 1_000_000,
		}
	}
	return bars
}

// fakeYahoo serves canned market data.
type fakeYahoo struct {
	bars        []entity.OHLCV
	closeOn     float64
	latestClose float64
	err         error
}

func (f *fakeYahoo) GetOHLCV(ctx context.Context, symbol string, days int) ([]entity.OHLCV, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

func (f *fakeYahoo) GetCloseOn(ctx context.Context, symbol string, date time.Time) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.closeOn, nil
}

func (f *fakeYahoo) GetLatestClose(ctx context.Context, symbol string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.latestClose, nil
}

// fakeModel returns a fixed prediction.
type fakeModel struct {
	prediction float64
	err        error
	gotInput   []float64
}

func (f *fakeModel) Predict(features []float64) (float64, error) {
	f.gotInput = features
	if f.err != nil {
		return 0, f.err
	}
	return f.prediction, nil
}

// fakeNewsSearch serves per-term article lists.
type fakeNewsSearch struct {
	byTerm map[string][]entity.Article
	errFor map[string]error
	calls  []string
}

func (f *fakeNewsSearch) Search(ctx context.Context, term string, days, pageSize int) ([]entity.Article, error) {
	f.calls = append(f.calls, term)
	if err, ok := f.errFor[term]; ok {
		return nil, err
	}
	return f.byTerm[term], nil
}

// fakeAI returns canned text.
type fakeAI struct {
	response string
	err      error
}

func (f *fakeAI) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeAI) GenerateWithSearch(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func article(url, title, company string) entity.Article {
	published := time.Now().Add(-24 * time.Hour)
	return entity.Article{
		Title:         title,
		URL:           url,
		PublishedAt:   &published,
		Source:        "test",
		SourceCompany: company,
	}
}

var errExternal = &errs.ExternalServiceError{Service: "newsapi", Status: 500}
