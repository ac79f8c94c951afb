package telegram

import (
	"fmt"
	"strings"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/entity"
)

// FormatDailyBriefing renders the morning briefing as a single Markdown
// message: prediction, news sentiment and upcoming calendar events.
func FormatDailyBriefing(
	ticker string,
	prediction *dto.PredictionResult,
	news *dto.SentimentRecord,
	events []entity.CalendarEvent,
) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 *%s Günlük Özet*\n\n", ticker))

	if prediction != nil {
		direction := "➡️"
		if prediction.Change > 0 {
			direction = "📈"
		} else if prediction.Change < 0 {
			direction = "📉"
		}
		b.WriteString(fmt.Sprintf("%s *Fiyat Tahmini (%s)*\n", direction, prediction.PredictionDate))
		b.WriteString(fmt.Sprintf("Mevcut: %.2f TL → Tahmin: %.2f TL (%+.2f%%)\n\n",
			prediction.CurrentPrice, prediction.PredictedPrice, prediction.ChangePercent))
	}

	if news != nil {
		b.WriteString(fmt.Sprintf("📰 *Haber Duygusu:* %s (skor %.2f, %d haber)\n",
			sentimentLabel(news.OverallSentiment), news.SentimentScore, news.TotalArticles))
		for i, article := range news.KeyArticles {
			if i == 3 {
				break
			}
			b.WriteString(fmt.Sprintf("  • %s\n", article.Title))
		}
		b.WriteString("\n")
	}

	if len(events) > 0 {
		b.WriteString("📅 *Yaklaşan Olaylar:*\n")
		for _, event := range events {
			b.WriteString(fmt.Sprintf("  • %s: %s\n",
				event.EventDate.Format("02.01.2006"), event.Description))
		}
	}

	return b.String()
}

func sentimentLabel(class string) string {
	switch class {
	case "positive":
		return "Pozitif"
	case "negative":
		return "Negatif"
	default:
		return "Nötr"
	}
}
