package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kchol-assistant/internal/assistant/config"
	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"

	"golang.org/x/time/rate"
)

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a NewsAPI-backed news search repository.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) (NewsSearchRepository, error) {
	if cfg.NewsAPI.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("news api max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.NewsAPI.MaxRequestPerMinute)
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

func (r *newsAPIRepository) Search(ctx context.Context, term string, days, pageSize int) ([]entity.Article, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	from := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	// BaseURL already carries the API version ("https://newsapi.org/v2").
	endpoint := fmt.Sprintf("%s/everything?q=%s&from=%s&pageSize=%d&language=tr&sortBy=publishedAt&apiKey=%s",
		r.cfg.NewsAPI.BaseURL, url.QueryEscape(term), from, pageSize, r.cfg.NewsAPI.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query news api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &errs.ExternalServiceError{
			Service: "NewsAPI",
			Status:  resp.StatusCode,
			Message: string(body),
		}
	}

	var payload dto.NewsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}

	articles := make([]entity.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.URL == "" {
			continue
		}
		articles = append(articles, entity.Article{
			Title:         a.Title,
			Description:   a.Description,
			Content:       a.Content,
			URL:           a.URL,
			PublishedAt:   a.PublishedAt,
			Source:        a.Source.Name,
			SourceCompany: term,
		})
	}

	r.log.Debug("NewsAPI search completed",
		logger.StringField("term", term),
		logger.IntField("articles", len(articles)))

	return articles, nil
}
