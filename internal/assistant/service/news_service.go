package service

import (
	"context"
	"sort"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/metrics"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/assistant/sentiment"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"
)

// Aggregation limits.
const (
	maxScoredArticles = 20
	maxKeyArticles    = 5
)

// NewsService collects recent articles and aggregates their sentiment.
type NewsService interface {
	// Collect returns deduplicated articles across all configured search terms.
	Collect(ctx context.Context) ([]entity.Article, error)
	// Analyze collects articles and computes the aggregate sentiment record.
	Analyze(ctx context.Context) (*dto.SentimentRecord, error)
	// AnalyzeQuery is Analyze with the search term and window overridden.
	// An empty query or non-positive days falls back to the configuration.
	AnalyzeQuery(ctx context.Context, query string, days int) (*dto.SentimentRecord, error)
}

// NewNewsService creates a news service. The fallback repository is used per
// term whenever the primary search fails; it may be nil.
func NewNewsService(
	primary repository.NewsSearchRepository,
	fallback repository.NewsSearchRepository,
	searchTerms []string,
	newsDays int,
	pageSize int,
	log *logger.Logger,
) NewsService {
	return &newsService{
		primary:     primary,
		fallback:    fallback,
		searchTerms: searchTerms,
		newsDays:    newsDays,
		pageSize:    pageSize,
		log:         log,
	}
}

type newsService struct {
	primary     repository.NewsSearchRepository
	fallback    repository.NewsSearchRepository
	searchTerms []string
	newsDays    int
	pageSize    int
	log         *logger.Logger
}

func (s *newsService) Collect(ctx context.Context) ([]entity.Article, error) {
	return s.collect(ctx, s.searchTerms, s.newsDays)
}

func (s *newsService) collect(ctx context.Context, terms []string, days int) ([]entity.Article, error) {
	var all []entity.Article
	seen := make(map[string]bool)

	for _, term := range terms {
		articles, err := s.searchTerm(ctx, term, days)
		if err != nil {
			s.log.Warn("news search failed for term",
				logger.StringField("term", term), logger.ErrorField(err))
			continue
		}
		for _, article := range articles {
			if article.URL != "" && seen[article.URL] {
				continue
			}
			if article.URL != "" {
				seen[article.URL] = true
			}
			all = append(all, article)
		}
	}

	return all, nil
}

func (s *newsService) searchTerm(ctx context.Context, term string, days int) ([]entity.Article, error) {
	articles, err := s.primary.Search(ctx, term, days, s.pageSize)
	if err == nil {
		return articles, nil
	}

	metrics.ExternalErrors.WithLabelValues("newsapi").Inc()
	if s.fallback == nil {
		return nil, err
	}

	s.log.Warn("primary news source failed, using fallback",
		logger.StringField("term", term), logger.ErrorField(err))
	return s.fallback.Search(ctx, term, days, s.pageSize)
}

func (s *newsService) Analyze(ctx context.Context) (*dto.SentimentRecord, error) {
	return s.AnalyzeQuery(ctx, "", 0)
}

func (s *newsService) AnalyzeQuery(ctx context.Context, query string, days int) (*dto.SentimentRecord, error) {
	terms := s.searchTerms
	if query != "" {
		terms = []string{query}
	}
	if days <= 0 {
		days = s.newsDays
	}

	articles, err := s.collect(ctx, terms, days)
	if err != nil {
		return nil, err
	}

	record := &dto.SentimentRecord{
		OverallSentiment: sentiment.Neutral,
		TotalArticles:    len(articles),
		CompanyBreakdown: make(map[string]*dto.CompanySentiment),
		AnalyzedAt:       utils.TimeNowIstanbul(),
	}
	if len(articles) == 0 {
		return record, nil
	}

	// Only the first articles are scored; the rest count toward the total.
	limit := len(articles)
	if limit > maxScoredArticles {
		limit = maxScoredArticles
	}

	scored := make([]dto.ScoredArticle, 0, limit)
	var totalScore float64
	for _, article := range articles[:limit] {
		score := sentiment.Polarity(article.Title + " " + article.Description + " " + article.Content)
		class := sentiment.Classify(score)
		scored = append(scored, dto.ScoredArticle{
			Article:   article,
			Score:     score,
			Sentiment: class,
		})
		totalScore += score
		metrics.ArticlesScored.Inc()

		switch class {
		case sentiment.Positive:
			record.PositiveCount++
		case sentiment.Negative:
			record.NegativeCount++
		default:
			record.NeutralCount++
		}

		company := article.SourceCompany
		if company == "" {
			company = article.Source
		}
		breakdown, ok := record.CompanyBreakdown[company]
		if !ok {
			breakdown = &dto.CompanySentiment{}
			record.CompanyBreakdown[company] = breakdown
		}
		breakdown.Count++
		breakdown.TotalScore += score
		switch class {
		case sentiment.Positive:
			breakdown.Positive++
		case sentiment.Negative:
			breakdown.Negative++
		default:
			breakdown.Neutral++
		}
	}

	// The mean divides by the full article count even though only the
	// first articles are scored, so unscored articles pull toward zero.
	record.SentimentScore = totalScore / float64(record.TotalArticles)
	record.OverallSentiment = sentiment.Classify(record.SentimentScore)
	record.KeyArticles = keyArticles(scored)
	return record, nil
}

// keyArticles returns the strongest-signal articles, ordered by absolute
// score descending. The sort is stable so equal scores keep feed order.
func keyArticles(scored []dto.ScoredArticle) []dto.ScoredArticle {
	ranked := make([]dto.ScoredArticle, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return abs(ranked[i].Score) > abs(ranked[j].Score)
	})
	if len(ranked) > maxKeyArticles {
		ranked = ranked[:maxKeyArticles]
	}
	return ranked
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
