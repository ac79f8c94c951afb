package dto

import (
	"time"

	"kchol-assistant/internal/entity"
)

// Sentiment class labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ScoredArticle is an article with its lexical polarity score attached.
type ScoredArticle struct {
	entity.Article
	Score     float64 `json:"score"`
	Sentiment string  `json:"sentiment"`
}

// CompanySentiment accumulates per-search-term sentiment counts.
type CompanySentiment struct {
	Count      int     `json:"count"`
	Positive   int     `json:"positive"`
	Negative   int     `json:"negative"`
	Neutral    int     `json:"neutral"`
	TotalScore float64 `json:"total_score"`
}

// SentimentRecord is the aggregate sentiment over a set of articles.
type SentimentRecord struct {
	OverallSentiment string                       `json:"overall_sentiment"`
	SentimentScore   float64                      `json:"sentiment_score"`
	PositiveCount    int                          `json:"positive_count"`
	NegativeCount    int                          `json:"negative_count"`
	NeutralCount     int                          `json:"neutral_count"`
	TotalArticles    int                          `json:"total_articles"`
	KeyArticles      []ScoredArticle              `json:"key_articles"`
	CompanyBreakdown map[string]*CompanySentiment `json:"company_breakdown"`
	AnalyzedAt       time.Time                    `json:"analyzed_at"`
}

// NewsAPIResponse mirrors the NewsAPI /v2/everything payload.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is one article entry in a NewsAPI response.
type NewsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"publishedAt"`
	Content     string     `json:"content"`
}
