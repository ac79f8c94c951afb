package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kchol-assistant/internal/assistant/config"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// chartResponse mirrors the Yahoo Finance v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	barCache       *cache.Cache
}

// NewYahooFinanceRepository creates a Yahoo Finance market data repository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (YahooFinanceRepository, error) {
	if cfg.YahooFinance.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("yahoo finance max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		barCache:       cache.New(5*time.Minute, 10*time.Minute),
	}, nil
}

func (r *yahooFinanceRepository) GetOHLCV(ctx context.Context, symbol string, days int) ([]entity.OHLCV, error) {
	cacheKey := fmt.Sprintf("%s:%d", symbol, days)
	if cached, found := r.barCache.Get(cacheKey); found {
		return cached.([]entity.OHLCV), nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		r.cfg.YahooFinance.BaseURL, symbol, start.Unix(), end.Unix())

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error("Failed to fetch market data", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, errs.ErrDataUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.log.Error("Received non-OK response from Yahoo Finance",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
			logger.StringField("body", string(body)))
		return nil, errs.ErrDataUnavailable
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	bars := normalizeChart(&chart)
	if len(bars) == 0 {
		return nil, errs.ErrDataUnavailable
	}

	r.barCache.Set(cacheKey, bars, cache.DefaultExpiration)
	return bars, nil
}

func (r *yahooFinanceRepository) GetCloseOn(ctx context.Context, symbol string, date time.Time) (float64, error) {
	// Fetch a couple of weeks past the target so holidays do not leave a gap.
	days := int(time.Since(date).Hours()/24) + 14
	bars, err := r.GetOHLCV(ctx, symbol, days)
	if err != nil {
		return 0, err
	}

	day := date.Truncate(24 * time.Hour)
	for _, bar := range bars {
		if !bar.Date.Before(day) {
			return bar.Close, nil
		}
	}
	return 0, errs.ErrDataUnavailable
}

func (r *yahooFinanceRepository) GetLatestClose(ctx context.Context, symbol string) (float64, error) {
	bars, err := r.GetOHLCV(ctx, symbol, 14)
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}

// normalizeChart flattens Yahoo's columnar quote arrays into daily bars,
// skipping entries with missing values (suspended trading days).
func normalizeChart(chart *chartResponse) []entity.OHLCV {
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil
	}
	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]entity.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil ||
			quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil {
			continue
		}
		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		bars = append(bars, entity.OHLCV{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}
	return bars
}
