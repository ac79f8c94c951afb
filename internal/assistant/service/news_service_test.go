package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/sentiment"
	"kchol-assistant/internal/entity"
)

func TestNewsCollectDeduplicatesByURL(t *testing.T) {
	shared := article("https://example.com/a", "Koç Holding rekor kâr", "Koç Holding")
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{
		"Koç Holding": {shared, article("https://example.com/b", "Arçelik büyüme", "Arçelik")},
		"KCHOL":       {shared, article("https://example.com/c", "Tüpraş anlaşma", "Tüpraş")},
	}}

	svc := NewNewsService(primary, nil, []string{"Koç Holding", "KCHOL"}, 7, 10, testLogger())
	articles, err := svc.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, articles, 3)
	assert.Equal(t, "https://example.com/a", articles[0].URL)
	assert.Equal(t, "https://example.com/b", articles[1].URL)
	assert.Equal(t, "https://example.com/c", articles[2].URL)
}

func TestNewsCollectUsesFallbackWhenPrimaryFails(t *testing.T) {
	primary := &fakeNewsSearch{errFor: map[string]error{"KCHOL": errExternal}}
	fallback := &fakeNewsSearch{byTerm: map[string][]entity.Article{
		"KCHOL": {article("https://example.com/rss", "Koç Holding temettü kararı", "Koç Holding")},
	}}

	svc := NewNewsService(primary, fallback, []string{"KCHOL"}, 7, 10, testLogger())
	articles, err := svc.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, "https://example.com/rss", articles[0].URL)
	assert.Equal(t, []string{"KCHOL"}, fallback.calls)
}

func TestNewsCollectSkipsFailedTerms(t *testing.T) {
	primary := &fakeNewsSearch{
		byTerm: map[string][]entity.Article{
			"Arçelik": {article("https://example.com/b", "Arçelik büyüme", "Arçelik")},
		},
		errFor: map[string]error{"KCHOL": errExternal},
	}

	svc := NewNewsService(primary, nil, []string{"KCHOL", "Arçelik"}, 7, 10, testLogger())
	articles, err := svc.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, "Arçelik", articles[0].SourceCompany)
}

func TestNewsAnalyzeMeanDividesByTotalArticles(t *testing.T) {
	// 25 articles but only the first 20 are scored, so the mean spreads
	// the scored sum over all 25.
	var articles []entity.Article
	for i := 0; i < 25; i++ {
		a := article("https://example.com/"+string(rune('a'+i)), "KCHOL rekor", "Koç Holding")
		articles = append(articles, a)
	}
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{"KCHOL": articles}}

	svc := NewNewsService(primary, nil, []string{"KCHOL"}, 7, 30, testLogger())
	record, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, record.TotalArticles)
	assert.Equal(t, 20, record.PositiveCount)
	assert.Equal(t, 0, record.NegativeCount)
	assert.Equal(t, 0, record.NeutralCount)
	// "rekor" scores 0.8, so 20*0.8/25.
	assert.InDelta(t, 0.64, record.SentimentScore, 1e-9)
	assert.Equal(t, sentiment.Positive, record.OverallSentiment)
}

func TestNewsAnalyzeKeyArticlesRankedByAbsoluteScore(t *testing.T) {
	articles := []entity.Article{
		article("https://example.com/1", "Şirket için yatırım planı", "Koç Holding"),   // 0.2
		article("https://example.com/2", "Sektörde kriz derinleşiyor", "Tüpraş"),       // -0.8
		article("https://example.com/3", "Genel kurul toplantısı yapıldı", "Arçelik"),  // 0
		article("https://example.com/4", "Hisse zirve seviyesini gördü", "Yapı Kredi"), // 0.7
		article("https://example.com/5", "Yeni anlaşma imzalandı", "Ford Otosan"),      // 0.3
		article("https://example.com/6", "Çeyrekte rekor sonuç", "Tofaş"),              // 0.8
		article("https://example.com/7", "Güçlü kazanç beklentisi", "Aygaz"),           // (0.5+0.6)/2
	}
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{"KCHOL": articles}}

	svc := NewNewsService(primary, nil, []string{"KCHOL"}, 7, 30, testLogger())
	record, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	require.Len(t, record.KeyArticles, 5)
	got := make([]string, 0, len(record.KeyArticles))
	for _, key := range record.KeyArticles {
		got = append(got, key.Article.URL)
	}
	// |-0.8| and |0.8| tie; the stable sort keeps feed order between them.
	assert.Equal(t, []string{
		"https://example.com/2",
		"https://example.com/6",
		"https://example.com/4",
		"https://example.com/7",
		"https://example.com/5",
	}, got)
}

func TestNewsAnalyzeScoresArticleBody(t *testing.T) {
	// Title and description carry no polarity; the signal sits in the
	// extracted article body, wrapped in markup the scorer strips.
	a := article("https://example.com/body", "KCHOL hakkında açıklama", "Koç Holding")
	a.Description = "Şirketten yeni duyuru geldi."
	a.Content = "<p>Holding bu çeyrekte <b>rekor</b> sonuçlar duyurdu.</p>"
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{"KCHOL": {a}}}

	svc := NewNewsService(primary, nil, []string{"KCHOL"}, 7, 10, testLogger())
	record, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, record.PositiveCount)
	assert.Equal(t, sentiment.Positive, record.OverallSentiment)
	assert.InDelta(t, 0.8, record.SentimentScore, 1e-9)
}

func TestNewsAnalyzeQueryOverridesTerms(t *testing.T) {
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{
		"Tüpraş": {article("https://example.com/t", "Tüpraş rekor üretim", "Tüpraş")},
	}}

	svc := NewNewsService(primary, nil, []string{"KCHOL", "Arçelik"}, 7, 10, testLogger())
	record, err := svc.AnalyzeQuery(context.Background(), "Tüpraş", 3)
	require.NoError(t, err)

	// Only the override term is searched, not the configured list.
	assert.Equal(t, []string{"Tüpraş"}, primary.calls)
	assert.Equal(t, 1, record.TotalArticles)
}

func TestNewsAnalyzeEmptyFeed(t *testing.T) {
	primary := &fakeNewsSearch{}

	svc := NewNewsService(primary, nil, []string{"KCHOL"}, 7, 10, testLogger())
	record, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, record.TotalArticles)
	assert.Zero(t, record.SentimentScore)
	assert.Equal(t, sentiment.Neutral, record.OverallSentiment)
	assert.Empty(t, record.KeyArticles)
}

func TestNewsAnalyzeCompanyBreakdown(t *testing.T) {
	articles := []entity.Article{
		article("https://example.com/1", "Arçelik rekor kırdı", "Arçelik"),
		article("https://example.com/2", "Arçelik zarar açıkladı", "Arçelik"),
		article("https://example.com/3", "Tüpraş olağan toplantı", "Tüpraş"),
	}
	primary := &fakeNewsSearch{byTerm: map[string][]entity.Article{"KCHOL": articles}}

	svc := NewNewsService(primary, nil, []string{"KCHOL"}, 7, 10, testLogger())
	record, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	arcelik, ok := record.CompanyBreakdown["Arçelik"]
	require.True(t, ok)
	assert.Equal(t, 2, arcelik.Count)
	assert.Equal(t, 1, arcelik.Positive)
	assert.Equal(t, 1, arcelik.Negative)

	tupras, ok := record.CompanyBreakdown["Tüpraş"]
	require.True(t, ok)
	assert.Equal(t, 1, tupras.Count)
	assert.Equal(t, 1, tupras.Neutral)
}
