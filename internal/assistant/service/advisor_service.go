package service

import (
	"context"

	"kchol-assistant/internal/assistant/parser"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/pkg/logger"
)

// AdvisorService produces horizon-aware strategy commentary. Generated
// commentary is preferred; static templates cover every horizon when the
// generative model is unavailable.
type AdvisorService interface {
	Advise(ctx context.Context, message string) (string, error)
}

// NewAdvisorService creates an advisor service. The AI repository may be nil.
func NewAdvisorService(aiRepo repository.AIRepository, log *logger.Logger) AdvisorService {
	return &advisorService{aiRepo: aiRepo, log: log}
}

type advisorService struct {
	aiRepo repository.AIRepository
	log    *logger.Logger
}

var horizonTemplates = map[string]string{
	parser.HorizonLong: `**Uzun Vadeli Yatırım Stratejisi**

Uzun vadeli yatırımda önemli olan şirketin temel göstergeleridir. KCHOL gibi holding hisselerinde çeşitlendirilmiş iş kolları uzun vadede dalgalanmaları yumuşatabilir. Temettü geçmişini, borçluluk oranlarını ve iştirak performansını takip etmeniz önerilir.

Unutmayın: bu bilgiler yatırım tavsiyesi değildir, yalnızca genel bilgilendirme amaçlıdır.`,

	parser.HorizonShort: `**Kısa Vadeli Yatırım Stratejisi**

Kısa vadeli işlemlerde teknik göstergeler (RSI, MACD, hareketli ortalamalar) ve hacim takibi öne çıkar. Stop-loss kullanmak ve pozisyon büyüklüğünü sınırlamak riski yönetmenin temel araçlarıdır. Kısa vadeli işlemler yüksek risk içerir.

Unutmayın: bu bilgiler yatırım tavsiyesi değildir, yalnızca genel bilgilendirme amaçlıdır.`,

	parser.HorizonDCA: `**Düzenli Alım (Maliyet Ortalama) Stratejisi**

Her ay sabit bir tutarla alım yapmak, fiyat dalgalanmalarının ortalama maliyetinizi dengelemesini sağlar. Bu yaklaşım zamanlama riskini azaltır ve disiplinli birikim için uygundur. Uzun soluklu bir plan gerektirir.

Unutmayın: bu bilgiler yatırım tavsiyesi değildir, yalnızca genel bilgilendirme amaçlıdır.`,

	parser.HorizonGeneral: `**Genel Yatırım Yaklaşımı**

Yatırım kararlarında risk toleransınızı, yatırım ufkunuzu ve finansal hedeflerinizi netleştirmek ilk adımdır. Tek bir hisseye yoğunlaşmak yerine çeşitlendirme riski azaltır. Yatırımdan önce kendi araştırmanızı yapmanız önemlidir.

Unutmayın: bu bilgiler yatırım tavsiyesi değildir, yalnızca genel bilgilendirme amaçlıdır.`,
}

func (s *advisorService) Advise(ctx context.Context, message string) (string, error) {
	horizon := parser.DetectHorizon(message)

	if s.aiRepo != nil {
		response, err := s.aiRepo.GenerateResponse(ctx, repository.BuildStrategyCommentaryPrompt(message, horizon))
		if err == nil && response != "" {
			return response, nil
		}
		if err != nil {
			s.log.Warn("advisor generation failed, using template",
				logger.StringField("horizon", horizon), logger.ErrorField(err))
		}
	}

	return horizonTemplates[horizon], nil
}
