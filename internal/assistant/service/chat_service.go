package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/assistant/metrics"
	"kchol-assistant/internal/assistant/parser"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/assistant/sentiment"
	"kchol-assistant/internal/assistant/session"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"
)

// Static router responses.
const (
	helpResponse = `KCHOL Hisse Senedi Asistanı

Size şu konularda yardımcı olabilirim:

Fiyat Tahmini: "Fiyat tahmini yap", "Ne olacak", "Yükselir mi" gibi sorular sorabilirsiniz
Teknik Analiz: "KCHOL teknik analiz", "RSI grafiği göster" gibi istekler yapabilirsiniz
Haber Analizi: "Haberler ne diyor", "Haber duygusu" diye sorabilirsiniz
Simülasyon: "1 yıl önce 10 bin TL yatırsaydım ne olurdu" diye sorabilirsiniz
Genel Sorular: KCHOL, finans, yatırım ve ekonomi hakkında her türlü soru

Sadece sorunuzu yazın, size yardımcı olayım!`

	greetingResponse = "Merhaba! Ben KCHOL hisse senedi fiyat tahmin asistanınız. Size yardımcı olmak için buradayım. Fiyat tahmini yapmak ister misiniz?"

	unknownResponse = `Anlamadığım bir soru sordunuz. Fiyat tahmini yapmak için "fiyat tahmini yap" veya "ne olacak" diyebilirsiniz. Yardım için "yardım" yazabilirsiniz.`
)

// ChatService routes free-text messages to the matching handler and keeps
// the conversation log.
type ChatService interface {
	// Chat handles one turn. Handler failures come back as error-typed
	// responses, never as a returned error.
	Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
	NewSession(ctx context.Context) (*entity.ChatSession, error)
	History(ctx context.Context, sessionID string) (*entity.ChatSession, error)
	Sessions(ctx context.Context) ([]entity.SessionSummary, error)
}

// NewChatService creates the chat router.
func NewChatService(
	predictor PredictorService,
	technical TechnicalAnalysisService,
	news NewsService,
	advisor AdvisorService,
	simulation SimulationService,
	qa QAService,
	aiRepo repository.AIRepository,
	sessions session.Store,
	log *logger.Logger,
) ChatService {
	s := &chatService{
		predictor:  predictor,
		technical:  technical,
		news:       news,
		advisor:    advisor,
		simulation: simulation,
		qa:         qa,
		aiRepo:     aiRepo,
		sessions:   sessions,
		log:        log,
	}
	s.routes = s.buildRoutes()
	return s
}

type chatService struct {
	predictor  PredictorService
	technical  TechnicalAnalysisService
	news       NewsService
	advisor    AdvisorService
	simulation SimulationService
	qa         QAService
	aiRepo     repository.AIRepository
	sessions   session.Store
	log        *logger.Logger
	routes     []route
}

// route pairs a predicate over the lower-cased message with its handler.
// Routes are evaluated in slice order and the first match wins, so the
// slice itself is the precedence contract.
type route struct {
	name   string
	match  func(lower string) bool
	handle func(ctx context.Context, message, lower string) *dto.ChatResponse
}

var (
	educationKeywords  = []string{"nedir", "ne demek", "açıkla", "anlat", "öğret"}
	indicatorKeywords  = []string{"rsi", "macd", "sma", "bollinger", "williams", "hareketli ortalama", "teknik analiz", "gösterge"}
	analysisActions    = []string{"grafik", "chart", "göster", "hesapla", "analiz"}
	predictionKeywords = []string{"tahmin", "fiyat", "ne olacak", "yükselir mi", "düşer mi"}
	helpKeywords       = []string{"yardım", "help", "nasıl", "ne yapabilir"}
	greetingKeywords   = []string{"merhaba", "selam", "hi", "hello"}
	newsKeywords       = []string{"haber", "duygu", "sentiment", "basın"}
	adviceKeywords     = []string{"tavsiye", "öner", "strateji", "risk", "uzun vade", "kısa vade", "düzenli alım"}
	simulationKeywords = []string{"ne olurdu", "kaç para", "simülasyon", "alsaydım", "yatırsaydım", "yatırım yapsaydım"}
	lookupKeywords     = []string{"hacim", "kapanış", "son fiyat", "kaç tl", "değer"}
)

func (s *chatService) buildRoutes() []route {
	return []route{
		{
			name:   dto.TypeFinancialEduca,
			match:  matchAny(educationKeywords),
			handle: s.handleEducation,
		},
		{
			name: dto.TypeTechnicalAnalysis,
			match: func(lower string) bool {
				return containsAnyOf(lower, indicatorKeywords) &&
					(parser.MentionsTicker(lower) || containsAnyOf(lower, analysisActions))
			},
			handle: s.handleTechnical,
		},
		{
			name:   dto.TypePrediction,
			match:  matchAny(predictionKeywords),
			handle: s.handlePrediction,
		},
		{
			name:   dto.TypeHelp,
			match:  matchAny(helpKeywords),
			handle: s.handleHelp,
		},
		{
			name: dto.TypeGreeting,
			match: func(lower string) bool {
				return containsAnyOf(lower, greetingKeywords) && len(strings.Fields(lower)) <= 3
			},
			handle: s.handleGreeting,
		},
		{
			name:   dto.TypeNewsAnalysis,
			match:  matchAny(newsKeywords),
			handle: s.handleNews,
		},
		{
			name:   dto.TypePersonalAdvice,
			match:  matchAny(adviceKeywords),
			handle: s.handleAdvice,
		},
		{
			name:   dto.TypeSimulation,
			match:  matchAny(simulationKeywords),
			handle: s.handleSimulation,
		},
		{
			name: dto.TypeFinancialQA,
			match: func(lower string) bool {
				return containsAnyOf(lower, lookupKeywords) || parser.MentionsTicker(lower)
			},
			handle: s.handleLookup,
		},
		{
			name:   dto.TypeAIResponse,
			match:  func(string) bool { return true },
			handle: s.handleFallback,
		},
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	start := time.Now()
	defer func() {
		metrics.ChatDuration.Observe(time.Since(start).Seconds())
	}()

	sess := s.resolveSession(ctx, req)
	lower := strings.ToLower(req.Message)

	var resp *dto.ChatResponse
	for _, r := range s.routes {
		if !r.match(lower) {
			continue
		}
		metrics.ChatRequests.WithLabelValues(r.name).Inc()
		resp = r.handle(ctx, req.Message, lower)
		break
	}

	if sess != nil {
		resp.SessionID = sess.ID
		s.appendTurn(ctx, sess.ID, req.Message, resp)
	}
	return resp
}

func (s *chatService) NewSession(ctx context.Context) (*entity.ChatSession, error) {
	return s.sessions.Create(ctx, "Yeni Sohbet")
}

func (s *chatService) History(ctx context.Context, sessionID string) (*entity.ChatSession, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *chatService) Sessions(ctx context.Context) ([]entity.SessionSummary, error) {
	return s.sessions.List(ctx)
}

func (s *chatService) resolveSession(ctx context.Context, req *dto.ChatRequest) *entity.ChatSession {
	if req.SessionID != "" {
		sess, err := s.sessions.Get(ctx, req.SessionID)
		if err == nil {
			return sess
		}
		if !errors.Is(err, errs.ErrSessionNotFound) {
			s.log.Error("session lookup failed", logger.ErrorField(err))
		}
	}

	title := req.Message
	if len([]rune(title)) > 40 {
		title = string([]rune(title)[:40])
	}
	sess, err := s.sessions.Create(ctx, title)
	if err != nil {
		s.log.Error("session create failed", logger.ErrorField(err))
		return nil
	}
	return sess
}

// appendTurn writes the user message and the bot reply to the session log.
func (s *chatService) appendTurn(ctx context.Context, sessionID, message string, resp *dto.ChatResponse) {
	now := utils.TimeNowIstanbul()
	userMsg := entity.ChatMessage{Sender: entity.SenderUser, Text: message, Timestamp: now}
	botMsg := entity.ChatMessage{Sender: entity.SenderBot, Text: resp.Response, Type: resp.Type, Data: resp.Data, Timestamp: now}

	if err := s.sessions.Append(ctx, sessionID, userMsg); err != nil {
		s.log.Error("session append failed", logger.ErrorField(err))
		return
	}
	if err := s.sessions.Append(ctx, sessionID, botMsg); err != nil {
		s.log.Error("session append failed", logger.ErrorField(err))
	}
}

func (s *chatService) handleEducation(ctx context.Context, message, _ string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Response: s.qa.AnswerEducational(ctx, message),
		Type:     dto.TypeFinancialEduca,
	}
}

func (s *chatService) handleTechnical(ctx context.Context, message, _ string) *dto.ChatResponse {
	result, err := s.technical.Analyze(ctx, message)
	if err != nil {
		return s.errorResponse("Teknik analiz yapılamadı", err)
	}
	return &dto.ChatResponse{
		Response: result.Analysis,
		Type:     dto.TypeTechnicalAnalysis,
		Data:     result,
	}
}

func (s *chatService) handlePrediction(ctx context.Context, message, _ string) *dto.ChatResponse {
	ticker := parser.ExtractTicker(message)

	base, err := s.predictor.Predict(ctx, ticker)
	if err != nil {
		return s.errorResponse("Tahmin yapılamadı", err)
	}

	overall := sentiment.Neutral
	news, newsErr := s.news.Analyze(ctx)
	if newsErr != nil {
		s.log.Warn("sentiment unavailable for prediction", logger.ErrorField(newsErr))
	} else {
		overall = news.OverallSentiment
	}

	adjusted := s.predictor.AdjustPrediction(base, overall)
	s.predictor.Record(ctx, ticker, adjusted, overall)

	trendText := "Fiyat sabit kalabilir"
	if adjusted.Change > 0 {
		trendText = "Yükseliş bekleniyor!"
	} else if adjusted.Change < 0 {
		trendText = "Düşüş bekleniyor!"
	}

	response := fmt.Sprintf(`KCHOL Hisse Senedi Fiyat Tahmini

Mevcut Fiyat: %.2f TL
Tahmin Edilen Fiyat: %.2f TL
Değişim: %+.2f TL (%+.2f%%)
Tahmin Tarihi: %s
Haber Duygusu: %s

%s`,
		adjusted.CurrentPrice, adjusted.PredictedPrice,
		adjusted.Change, adjusted.ChangePercent,
		adjusted.PredictionDate, sentimentTurkish(overall), trendText)

	if explanation := s.predictionExplanation(ctx, adjusted, overall, news); explanation != "" {
		response += "\n\n" + explanation
	}

	return &dto.ChatResponse{
		Response: response,
		Type:     dto.TypePrediction,
		Data:     adjusted,
	}
}

// predictionExplanation tries a web-search-grounded explanation first and
// falls back to a static news-based sentence.
func (s *chatService) predictionExplanation(ctx context.Context, result *dto.PredictionResult, overall string, news *dto.SentimentRecord) string {
	if s.aiRepo != nil {
		prompt := fmt.Sprintf(`KCHOL hissesi için yarınki kapanış tahmini %.2f TL (mevcut %.2f TL, değişim %%%.2f). Haber duygusu: %s. Güncel piyasa haberlerini de arayarak bu tahmini en fazla iki cümleyle Türkçe açıkla. Tavsiye verme.`,
			result.PredictedPrice, result.CurrentPrice, result.ChangePercent, sentimentTurkish(overall))
		explanation, err := s.aiRepo.GenerateWithSearch(ctx, prompt)
		if err == nil && explanation != "" {
			return explanation
		}
		if err != nil {
			s.log.Warn("search-grounded explanation failed", logger.ErrorField(err))
		}
	}

	if news == nil || news.TotalArticles == 0 {
		return ""
	}
	if overall != sentiment.Positive && overall != sentiment.Negative {
		return fmt.Sprintf("Son %d haberin genel duygusu nötr olduğu için tahmine düzeltme uygulanmadı.",
			news.TotalArticles)
	}
	return fmt.Sprintf("Son %d haberin genel duygusu %s olduğu için tahmine %%2'lik bir düzeltme uygulandı.",
		news.TotalArticles, strings.ToLower(sentimentTurkish(overall)))
}

func (s *chatService) handleHelp(_ context.Context, _, _ string) *dto.ChatResponse {
	return &dto.ChatResponse{Response: helpResponse, Type: dto.TypeHelp}
}

func (s *chatService) handleGreeting(_ context.Context, _, _ string) *dto.ChatResponse {
	return &dto.ChatResponse{Response: greetingResponse, Type: dto.TypeGreeting}
}

func (s *chatService) handleNews(ctx context.Context, _, _ string) *dto.ChatResponse {
	record, err := s.news.Analyze(ctx)
	if err != nil {
		return s.errorResponse("Haber analizi yapılamadı", err)
	}
	if record.TotalArticles == 0 {
		return &dto.ChatResponse{
			Response: "Son günlerde KCHOL ile ilgili haber bulunamadı.",
			Type:     dto.TypeNewsAnalysis,
			Data:     record,
		}
	}

	var b strings.Builder
	b.WriteString("KCHOL Haber Analizi\n\n")
	b.WriteString(fmt.Sprintf("Genel Duygu: %s (skor: %.2f)\n", sentimentTurkish(record.OverallSentiment), record.SentimentScore))
	b.WriteString(fmt.Sprintf("Toplam Haber: %d (Pozitif: %d, Negatif: %d, Nötr: %d)\n",
		record.TotalArticles, record.PositiveCount, record.NegativeCount, record.NeutralCount))
	if len(record.KeyArticles) > 0 {
		b.WriteString("\nÖne Çıkan Haberler:\n")
		for i, article := range record.KeyArticles {
			b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, article.Title, sentimentTurkish(article.Sentiment)))
		}
	}

	return &dto.ChatResponse{
		Response: b.String(),
		Type:     dto.TypeNewsAnalysis,
		Data:     record,
	}
}

func (s *chatService) handleAdvice(ctx context.Context, message, _ string) *dto.ChatResponse {
	advice, err := s.advisor.Advise(ctx, message)
	if err != nil {
		return s.errorResponse("Öneri hazırlanamadı", err)
	}
	return &dto.ChatResponse{Response: advice, Type: dto.TypePersonalAdvice}
}

func (s *chatService) handleSimulation(ctx context.Context, message, _ string) *dto.ChatResponse {
	req := &dto.SimulationRequest{
		Ticker:   parser.ExtractTicker(message),
		DateExpr: parser.ExtractDateExpr(message),
		Amount:   parser.ExtractAmount(message),
	}

	result, err := s.simulation.Simulate(ctx, req)
	if err != nil {
		if errors.Is(err, errs.ErrDateResolution) {
			return &dto.ChatResponse{
				Response: "Tarih ifadesini anlayamadım. Örneğin \"1 yıl önce\" veya \"2023 başı\" diyebilirsiniz.",
				Type:     dto.TypeError,
			}
		}
		return s.errorResponse("Simülasyon yapılamadı", err)
	}

	gainText := "kazanç"
	if result.NetGain < 0 {
		gainText = "kayıp"
	}
	response := fmt.Sprintf(`Yatırım Simülasyonu (%s)

%s tarihinde %.2f TL fiyattan %d adet hisse alabilirdiniz.
Bugünkü fiyat: %.2f TL
Güncel değer: %.2f TL
Net %s: %.2f TL (%%%.2f)`,
		result.Ticker, result.StartDate, result.StartPrice, result.SharesBought,
		result.CurrentPrice, result.CurrentValue, gainText, result.NetGain, result.ReturnPct)

	return &dto.ChatResponse{
		Response: response,
		Type:     dto.TypeSimulation,
		Data:     result,
	}
}

func (s *chatService) handleLookup(ctx context.Context, message, _ string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Response: s.qa.Answer(ctx, message),
		Type:     dto.TypeFinancialQA,
	}
}

func (s *chatService) handleFallback(ctx context.Context, message, _ string) *dto.ChatResponse {
	answer := s.qa.Answer(ctx, message)
	if answer == qaFallbackResponse {
		return &dto.ChatResponse{Response: unknownResponse, Type: dto.TypeUnknown}
	}
	return &dto.ChatResponse{Response: answer, Type: dto.TypeAIResponse}
}

// errorResponse maps an internal failure to a Turkish error-typed reply.
func (s *chatService) errorResponse(prefix string, err error) *dto.ChatResponse {
	s.log.Error(prefix, logger.ErrorField(err))

	detail := "Lütfen daha sonra tekrar deneyin."
	switch {
	case errors.Is(err, errs.ErrModelUnavailable):
		detail = "Üzgünüm, model şu anda kullanılamıyor."
	case errors.Is(err, errs.ErrDataUnavailable):
		detail = "Hisse verisi alınamadı."
	case errors.Is(err, errs.ErrInsufficientData):
		detail = "Göstergeler için yeterli veri bulunamadı."
	}

	return &dto.ChatResponse{
		Response: fmt.Sprintf("%s: %s", prefix, detail),
		Type:     dto.TypeError,
	}
}

func sentimentTurkish(class string) string {
	switch class {
	case sentiment.Positive:
		return "Pozitif"
	case sentiment.Negative:
		return "Negatif"
	default:
		return "Nötr"
	}
}

func matchAny(keywords []string) func(string) bool {
	return func(lower string) bool {
		return containsAnyOf(lower, keywords)
	}
}

func containsAnyOf(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
