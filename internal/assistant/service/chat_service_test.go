package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/assistant/sentiment"
	"kchol-assistant/internal/assistant/session"
	"kchol-assistant/internal/entity"
)

type fakePredictor struct {
	result   *dto.PredictionResult
	err      error
	recorded []string
}

func (f *fakePredictor) Predict(ctx context.Context, symbol string) (*dto.PredictionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePredictor) AdjustPrediction(base *dto.PredictionResult, label string) *dto.PredictionResult {
	multiplier := 1.0
	switch label {
	case sentiment.Positive:
		multiplier = positiveAdjustment
	case sentiment.Negative:
		multiplier = negativeAdjustment
	}
	adjusted := *base
	adjusted.PredictedPrice = base.PredictedPrice * multiplier
	adjusted.Change = adjusted.PredictedPrice - base.CurrentPrice
	return &adjusted
}

func (f *fakePredictor) Record(ctx context.Context, ticker string, result *dto.PredictionResult, label string) {
	f.recorded = append(f.recorded, ticker+"/"+label)
}

type fakeTechnical struct {
	result *dto.TechnicalAnalysisResult
	err    error
}

func (f *fakeTechnical) Analyze(ctx context.Context, userRequest string) (*dto.TechnicalAnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeTechnical) Snapshot(ctx context.Context) (*dto.IndicatorSnapshot, error) {
	return nil, errs.ErrDataUnavailable
}

type fakeNewsService struct {
	record *dto.SentimentRecord
	err    error
}

func (f *fakeNewsService) Collect(ctx context.Context) ([]entity.Article, error) {
	return nil, f.err
}

func (f *fakeNewsService) Analyze(ctx context.Context) (*dto.SentimentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeNewsService) AnalyzeQuery(ctx context.Context, query string, days int) (*dto.SentimentRecord, error) {
	return f.Analyze(ctx)
}

type fakeAdvisor struct {
	advice string
	err    error
}

func (f *fakeAdvisor) Advise(ctx context.Context, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.advice, nil
}

type fakeSimulationService struct {
	result *dto.SimulationResult
	err    error
	gotReq *dto.SimulationRequest
}

func (f *fakeSimulationService) Simulate(ctx context.Context, req *dto.SimulationRequest) (*dto.SimulationResult, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeQA struct {
	answer    string
	eduAnswer string
}

func (f *fakeQA) Answer(ctx context.Context, message string) string {
	return f.answer
}

func (f *fakeQA) AnswerEducational(ctx context.Context, message string) string {
	return f.eduAnswer
}

func (f *fakeQA) AddDocument(ctx context.Context, fileName, title, content string) error {
	return nil
}

func (f *fakeQA) SeedFromDir(ctx context.Context, dir string) error {
	return nil
}

type chatFixture struct {
	predictor  *fakePredictor
	technical  *fakeTechnical
	news       *fakeNewsService
	advisor    *fakeAdvisor
	simulation *fakeSimulationService
	qa         *fakeQA
	svc        ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		predictor: &fakePredictor{result: &dto.PredictionResult{
			CurrentPrice:   200.0,
			PredictedPrice: 205.0,
			Change:         5.0,
			ChangePercent:  2.5,
			PredictionDate: "2026-09-01",
		}},
		technical: &fakeTechnical{result: &dto.TechnicalAnalysisResult{
			Analysis: "teknik analiz sonucu",
			Summary:  "tamamlandı",
		}},
		news: &fakeNewsService{record: &dto.SentimentRecord{
			OverallSentiment: sentiment.Neutral,
			TotalArticles:    5,
		}},
		advisor:    &fakeAdvisor{advice: "uzun vadeli strateji önerisi"},
		simulation: &fakeSimulationService{result: &dto.SimulationResult{Ticker: "KCHOL.IS", SharesBought: 10}},
		qa:         &fakeQA{answer: "genel yanıt", eduAnswer: "eğitim yanıtı"},
	}
	f.svc = NewChatService(
		f.predictor, f.technical, f.news, f.advisor, f.simulation, f.qa,
		nil, session.NewMemoryStore(), testLogger(),
	)
	return f
}

func TestChatRoutePrecedence(t *testing.T) {
	tests := []struct {
		message  string
		wantType string
	}{
		// Definitional questions win even when an indicator is named.
		{"RSI nedir?", dto.TypeFinancialEduca},
		{"MACD ne demek, anlatır mısın", dto.TypeFinancialEduca},
		{"KCHOL teknik analiz", dto.TypeTechnicalAnalysis},
		{"rsi grafiği göster", dto.TypeTechnicalAnalysis},
		{"fiyat tahmini yap", dto.TypePrediction},
		{"yarın ne olacak", dto.TypePrediction},
		// Prediction outranks the greeting keyword.
		{"merhaba, kchol fiyat tahmini yapar mısın", dto.TypePrediction},
		{"yardım", dto.TypeHelp},
		{"merhaba", dto.TypeGreeting},
		{"selam dostum", dto.TypeGreeting},
		{"haberler ne diyor", dto.TypeNewsAnalysis},
		{"uzun vadeli strateji öner", dto.TypePersonalAdvice},
		{"1 yıl önce 10 bin tl yatırsaydım ne olurdu", dto.TypeSimulation},
		{"kapanış verisi nasıl hesaplanıyor", dto.TypeHelp},
		{"son fiyat kaç tl", dto.TypePrediction},
		{"hacim verisine bakar mısın", dto.TypeFinancialQA},
		{"kchol hakkında genel bilgi verir misin", dto.TypeFinancialQA},
		{"bugün hava çok güzel", dto.TypeAIResponse},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			f := newChatFixture()
			resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: tt.message})
			assert.Equal(t, tt.wantType, resp.Type)
		})
	}
}

func TestChatGreetingRequiresShortMessage(t *testing.T) {
	f := newChatFixture()

	short := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "merhaba nasılsın iyi"})
	assert.Equal(t, dto.TypeHelp, short.Type) // "nasılsın" hits the help keyword first

	long := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "merhaba sana bir şey soracağım dostum"})
	assert.Equal(t, dto.TypeAIResponse, long.Type)

	threeWords := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "merhaba sevgili asistan"})
	assert.Equal(t, dto.TypeGreeting, threeWords.Type)
	assert.Equal(t, greetingResponse, threeWords.Response)
}

func TestChatUnknownFallback(t *testing.T) {
	f := newChatFixture()
	f.qa.answer = qaFallbackResponse

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "bugün hava çok güzel"})
	assert.Equal(t, dto.TypeUnknown, resp.Type)
	assert.Equal(t, unknownResponse, resp.Response)
}

func TestChatSessionLogsBothSides(t *testing.T) {
	f := newChatFixture()
	ctx := context.Background()

	first := f.svc.Chat(ctx, &dto.ChatRequest{Message: "merhaba"})
	require.NotEmpty(t, first.SessionID)

	turns := []string{"fiyat tahmini yap", "haberler ne diyor"}
	for _, message := range turns {
		resp := f.svc.Chat(ctx, &dto.ChatRequest{Message: message, SessionID: first.SessionID})
		assert.Equal(t, first.SessionID, resp.SessionID)
	}

	sess, err := f.svc.History(ctx, first.SessionID)
	require.NoError(t, err)
	require.Len(t, sess.Messages, 6)
	for i, msg := range sess.Messages {
		if i%2 == 0 {
			assert.Equal(t, entity.SenderUser, msg.Sender)
		} else {
			assert.Equal(t, entity.SenderBot, msg.Sender)
		}
	}
	assert.Equal(t, "merhaba", sess.Messages[0].Text)
	assert.Equal(t, greetingResponse, sess.Messages[1].Text)
}

func TestChatUnknownSessionStartsNewOne(t *testing.T) {
	f := newChatFixture()

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{
		Message:   "merhaba",
		SessionID: "does-not-exist",
	})
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEqual(t, "does-not-exist", resp.SessionID)
}

func TestChatPredictionAppliesSentiment(t *testing.T) {
	f := newChatFixture()
	f.news.record = &dto.SentimentRecord{
		OverallSentiment: sentiment.Positive,
		TotalArticles:    12,
	}

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "fiyat tahmini yap"})
	require.Equal(t, dto.TypePrediction, resp.Type)

	assert.Contains(t, resp.Response, "Yükseliş bekleniyor!")
	assert.Contains(t, resp.Response, "Haber Duygusu: Pozitif")
	assert.Contains(t, resp.Response, "Son 12 haberin genel duygusu pozitif")
	require.Len(t, f.predictor.recorded, 1)
	assert.Equal(t, "KCHOL.IS/positive", f.predictor.recorded[0])

	result, ok := resp.Data.(*dto.PredictionResult)
	require.True(t, ok)
	assert.InDelta(t, 209.1, result.PredictedPrice, 1e-9)
}

func TestChatPredictionNeutralSentimentClaimsNoCorrection(t *testing.T) {
	f := newChatFixture()
	f.news.record = &dto.SentimentRecord{
		OverallSentiment: sentiment.Neutral,
		TotalArticles:    8,
	}

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "fiyat tahmini yap"})
	require.Equal(t, dto.TypePrediction, resp.Type)

	assert.Contains(t, resp.Response, "Son 8 haberin genel duygusu nötr olduğu için tahmine düzeltme uygulanmadı.")
	assert.NotContains(t, resp.Response, "%2'lik")
}

func TestChatPredictionSurvivesNewsFailure(t *testing.T) {
	f := newChatFixture()
	f.news.err = errExternal

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "fiyat tahmini yap"})
	require.Equal(t, dto.TypePrediction, resp.Type)
	assert.Contains(t, resp.Response, "Haber Duygusu: Nötr")
	require.Len(t, f.predictor.recorded, 1)
	assert.Equal(t, "KCHOL.IS/neutral", f.predictor.recorded[0])
}

func TestChatPredictionErrorStaysInResponse(t *testing.T) {
	f := newChatFixture()
	f.predictor.err = errs.ErrInsufficientData

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "fiyat tahmini yap"})
	assert.Equal(t, dto.TypeError, resp.Type)
	assert.Contains(t, resp.Response, "Göstergeler için yeterli veri bulunamadı")
}

func TestChatSimulationParsesRequest(t *testing.T) {
	f := newChatFixture()

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{
		Message: "2 yıl önce 50 bin TL yatırsaydım ne olurdu",
	})
	require.Equal(t, dto.TypeSimulation, resp.Type)

	req := f.simulation.gotReq
	require.NotNil(t, req)
	assert.Equal(t, "KCHOL.IS", req.Ticker)
	assert.Equal(t, "2 yıl önce", req.DateExpr)
	assert.InDelta(t, 50000.0, req.Amount, 1e-9)
}

func TestChatSimulationDefaults(t *testing.T) {
	f := newChatFixture()

	f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "yatırsaydım ne olurdu"})

	req := f.simulation.gotReq
	require.NotNil(t, req)
	assert.Equal(t, "1 ay önce", req.DateExpr)
	assert.InDelta(t, 10000.0, req.Amount, 1e-9)
}

func TestChatSimulationDateError(t *testing.T) {
	f := newChatFixture()
	f.simulation.err = errs.ErrDateResolution

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "o gün alsaydım ne olurdu"})
	assert.Equal(t, dto.TypeError, resp.Type)
	assert.Contains(t, resp.Response, "Tarih ifadesini anlayamadım")
}

func TestChatNewsSummary(t *testing.T) {
	f := newChatFixture()
	f.news.record = &dto.SentimentRecord{
		OverallSentiment: sentiment.Negative,
		SentimentScore:   -0.35,
		TotalArticles:    8,
		PositiveCount:    1,
		NegativeCount:    5,
		NeutralCount:     2,
		KeyArticles: []dto.ScoredArticle{
			{Article: entity.Article{Title: "Kriz derinleşiyor"}, Score: -0.8, Sentiment: sentiment.Negative},
		},
	}

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "haber duygusu negatife mi döndü"})
	require.Equal(t, dto.TypeNewsAnalysis, resp.Type)
	assert.Contains(t, resp.Response, "Genel Duygu: Negatif")
	assert.Contains(t, resp.Response, "Toplam Haber: 8")
	assert.Contains(t, resp.Response, "1. Kriz derinleşiyor (Negatif)")
}

func TestChatNewsEmptyFeed(t *testing.T) {
	f := newChatFixture()
	f.news.record = &dto.SentimentRecord{OverallSentiment: sentiment.Neutral}

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "haberler ne diyor"})
	assert.Equal(t, dto.TypeNewsAnalysis, resp.Type)
	assert.Contains(t, resp.Response, "haber bulunamadı")
}

func TestChatEducationUsesQAService(t *testing.T) {
	f := newChatFixture()
	f.qa.eduAnswer = "RSI, göreceli güç endeksidir."

	resp := f.svc.Chat(context.Background(), &dto.ChatRequest{Message: "RSI nedir?"})
	assert.Equal(t, dto.TypeFinancialEduca, resp.Type)
	assert.Equal(t, "RSI, göreceli güç endeksidir.", resp.Response)
}
