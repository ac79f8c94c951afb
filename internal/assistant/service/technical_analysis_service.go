package service

import (
	"context"
	"fmt"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/indicator"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"
)

// RSI zone boundaries.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// TechnicalAnalysisService builds indicator snapshots, renderable chart
// payloads and a Turkish commentary for the configured ticker.
type TechnicalAnalysisService interface {
	Analyze(ctx context.Context, userRequest string) (*dto.TechnicalAnalysisResult, error)
	// Snapshot computes only the latest indicator values.
	Snapshot(ctx context.Context) (*dto.IndicatorSnapshot, error)
}

// NewTechnicalAnalysisService creates a technical analysis service. The AI
// repository is optional; when present its commentary is appended to the
// rule-based analysis.
func NewTechnicalAnalysisService(
	yahooRepo repository.YahooFinanceRepository,
	aiRepo repository.AIRepository,
	ticker string,
	lookbackDays int,
	log *logger.Logger,
) TechnicalAnalysisService {
	return &technicalAnalysisService{
		yahooRepo:    yahooRepo,
		aiRepo:       aiRepo,
		ticker:       ticker,
		lookbackDays: lookbackDays,
		log:          log,
	}
}

type technicalAnalysisService struct {
	yahooRepo    repository.YahooFinanceRepository
	aiRepo       repository.AIRepository
	ticker       string
	lookbackDays int
	log          *logger.Logger
}

func (s *technicalAnalysisService) Analyze(ctx context.Context, userRequest string) (*dto.TechnicalAnalysisResult, error) {
	rows, err := s.enrichedRows(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := buildSnapshot(rows)
	charts := buildCharts(s.ticker, rows)

	result := &dto.TechnicalAnalysisResult{
		Charts:   charts,
		Snapshot: snapshot,
		Analysis: buildAnalysisText(snapshot),
		Summary:  fmt.Sprintf("KCHOL hisse senedi teknik analizi tamamlandı. %d grafik oluşturuldu.", len(charts)),
	}

	if s.aiRepo != nil {
		commentary, err := s.aiRepo.GenerateResponse(ctx, repository.BuildTechnicalCommentaryPrompt(s.ticker, *snapshot))
		if err != nil {
			s.log.Warn("technical commentary generation failed", logger.ErrorField(err))
		} else if commentary != "" {
			result.Analysis += "\n\n**Değerlendirme:**\n" + commentary
		}
	}

	return result, nil
}

func (s *technicalAnalysisService) Snapshot(ctx context.Context) (*dto.IndicatorSnapshot, error) {
	rows, err := s.enrichedRows(ctx)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(rows), nil
}

func (s *technicalAnalysisService) enrichedRows(ctx context.Context) ([]indicator.Row, error) {
	bars, err := s.yahooRepo.GetOHLCV(ctx, s.ticker, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	return indicator.Enrich(bars)
}

func buildSnapshot(rows []indicator.Row) *dto.IndicatorSnapshot {
	last := rows[len(rows)-1]

	snapshot := &dto.IndicatorSnapshot{
		CurrentPrice: utils.Round2(last.Close),
		RSI:          utils.Round2(last.RSI),
		MACD:         last.MACD,
		MACDSignal:   last.MACDSignal,
		SMA20:        utils.Round2(last.SMA20),
		SMA50:        utils.Round2(last.SMA50),
		SMA200:       utils.Round2(last.SMA200),
		ATR:          utils.Round2(last.ATR),
		BBWidth:      last.BBWidth,
		Williams:     utils.Round2(last.Williams),
	}

	if len(rows) > 1 {
		prev := rows[len(rows)-2]
		snapshot.DailyChange = utils.Round2((last.Close - prev.Close) / prev.Close * 100)
	}

	switch {
	case last.RSI > rsiOverbought:
		snapshot.RSIZone = "Aşırı alım bölgesinde"
	case last.RSI < rsiOversold:
		snapshot.RSIZone = "Aşırı satım bölgesinde"
	default:
		snapshot.RSIZone = "Nötr bölgede"
	}

	if last.MACD > last.MACDSignal {
		snapshot.MACDDirection = "Pozitif"
	} else {
		snapshot.MACDDirection = "Negatif"
	}

	snapshot.TrendComment = trendComment(last.Close, last.SMA20, last.SMA50, last.SMA200)
	return snapshot
}

func trendComment(price, sma20, sma50, sma200 float64) string {
	switch {
	case price > sma20 && sma20 > sma50 && sma50 > sma200:
		return "Güçlü yükseliş trendi"
	case price < sma20 && sma20 < sma50 && sma50 < sma200:
		return "Güçlü düşüş trendi"
	case price > sma20 && sma20 > sma50:
		return "Orta vadeli yükseliş trendi"
	case price < sma20 && sma20 < sma50:
		return "Orta vadeli düşüş trendi"
	default:
		return "Kararsız trend"
	}
}

func buildCharts(ticker string, rows []indicator.Row) []dto.Chart {
	dates := make([]string, len(rows))
	closes := make([]float64, len(rows))
	volumes := make([]float64, len(rows))
	sma20 := make([]float64, len(rows))
	sma50 := make([]float64, len(rows))
	sma200 := make([]float64, len(rows))
	rsi := make([]float64, len(rows))
	macd := make([]float64, len(rows))
	macdSignal := make([]float64, len(rows))
	for i, row := range rows {
		dates[i] = row.Date.Format("2006-01-02")
		closes[i] = row.Close
		volumes[i] = row.Volume
		sma20[i] = row.SMA20
		sma50[i] = row.SMA50
		sma200[i] = row.SMA200
		rsi[i] = row.RSI
		macd[i] = row.MACD
		macdSignal[i] = row.MACDSignal
	}

	return []dto.Chart{
		{
			Title: "Fiyat Grafiği ve Hareketli Ortalamalar",
			Type:  "candlestick",
			Series: []dto.ChartSeries{
				{Name: ticker, Dates: dates, Values: closes},
				{Name: "SMA 20", Dates: dates, Values: sma20},
				{Name: "SMA 50", Dates: dates, Values: sma50},
				{Name: "SMA 200", Dates: dates, Values: sma200},
				{Name: "Hacim", Dates: dates, Values: volumes},
			},
		},
		{
			Title: "RSI Analizi",
			Type:  "line",
			Series: []dto.ChartSeries{
				{Name: "RSI", Dates: dates, Values: rsi},
			},
		},
		{
			Title: "MACD Analizi",
			Type:  "line",
			Series: []dto.ChartSeries{
				{Name: "MACD", Dates: dates, Values: macd},
				{Name: "Sinyal", Dates: dates, Values: macdSignal},
			},
		},
	}
}

func buildAnalysisText(s *dto.IndicatorSnapshot) string {
	return fmt.Sprintf(`**Teknik Analiz Özeti:**

💰 **Mevcut Fiyat:** %.2f TL
📈 **Günlük Değişim:** %+.2f%%

📊 **RSI (%.1f):** %s
📈 **MACD:** %s sinyali
📉 **Trend:** %s`,
		s.CurrentPrice, s.DailyChange,
		s.RSI, s.RSIZone,
		s.MACDDirection,
		s.TrendComment)
}
