package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"

	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

// googleRSSRepository is the fallback news source: Google News RSS search
// results with article bodies extracted through readability.
type googleRSSRepository struct {
	log          *logger.Logger
	parser       *gofeed.Parser
	httpClient   *http.Client
	contentCache *cache.Cache
}

// NewGoogleRSSRepository creates a Google News RSS news search repository.
func NewGoogleRSSRepository(log *logger.Logger) NewsSearchRepository {
	return &googleRSSRepository{
		log:    log,
		parser: gofeed.NewParser(),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		contentCache: cache.New(30*time.Minute, time.Hour),
	}
}

func (r *googleRSSRepository) Search(ctx context.Context, term string, days, pageSize int) ([]entity.Article, error) {
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=tr&gl=TR&ceid=TR:tr",
		url.QueryEscape(term))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "GoogleNewsRSS", Status: 0, Message: err.Error()}
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	articles := make([]entity.Article, 0, pageSize)
	for _, item := range feed.Items {
		if len(articles) >= pageSize {
			break
		}
		if item.Link == "" {
			continue
		}
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		articles = append(articles, entity.Article{
			Title:         item.Title,
			Description:   item.Description,
			Content:       r.extractContent(ctx, item.Link),
			URL:           item.Link,
			PublishedAt:   item.PublishedParsed,
			Source:        feedSource(item),
			SourceCompany: term,
		})
	}

	r.log.Debug("Google News RSS search completed",
		logger.StringField("term", term),
		logger.IntField("articles", len(articles)))

	return articles, nil
}

// extractContent fetches the article page and pulls the readable body.
// Failures degrade to an empty content field; title and description still
// feed the sentiment scorer.
func (r *googleRSSRepository) extractContent(ctx context.Context, link string) string {
	if cached, found := r.contentCache.Get(link); found {
		return cached.(string)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return ""
	}
	content := doc.Content()

	r.contentCache.Set(link, content, cache.DefaultExpiration)
	return content
}

func feedSource(item *gofeed.Item) string {
	if item.Custom != nil {
		if src, ok := item.Custom["source"]; ok {
			return src
		}
	}
	return "Google News"
}
