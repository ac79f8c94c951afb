package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kchol-assistant/internal/assistant/parser"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// Announcement status values.
const (
	StatusPending   = "bekliyor"
	StatusCompleted = "tamamlandı"
)

// kapRepository scrapes company announcements from KAP and BIST pages.
// A failure on one source is logged and the other source still contributes.
type kapRepository struct {
	log        *logger.Logger
	httpClient *http.Client
}

// NewKAPRepository creates a KAP/BIST announcement scraper.
func NewKAPRepository(log *logger.Logger) KAPRepository {
	return &kapRepository{
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (r *kapRepository) FetchAnnouncements(ctx context.Context, symbol string) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent

	kapEvents, err := r.scrapeKAP(ctx, symbol)
	if err != nil {
		r.log.Warn("KAP scraping failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
	}
	events = append(events, kapEvents...)

	bistEvents, err := r.scrapeBIST(ctx, symbol)
	if err != nil {
		r.log.Warn("BIST scraping failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
	}
	events = append(events, bistEvents...)

	return dedupeEvents(events), nil
}

func (r *kapRepository) scrapeKAP(ctx context.Context, symbol string) ([]entity.CalendarEvent, error) {
	doc, err := r.fetchDocument(ctx, fmt.Sprintf("https://www.kap.org.tr/tr/sirket-bilgileri/%s", symbol))
	if err != nil {
		return nil, err
	}

	var events []entity.CalendarEvent
	doc.Find("table.announcement-table tr, div.announcements tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		title := strings.TrimSpace(cells.Eq(1).Text())
		category := strings.TrimSpace(cells.Eq(2).Text())

		eventDate, err := parser.ResolveDate(dateText, utils.TimeNowIstanbul())
		if err != nil || title == "" {
			return
		}

		events = append(events, entity.CalendarEvent{
			Symbol:      symbol,
			EventType:   CategorizeAnnouncement(title, category),
			EventDate:   eventDate,
			Description: title,
			Source:      "KAP",
			Status:      eventStatus(eventDate),
		})
	})
	return events, nil
}

func (r *kapRepository) scrapeBIST(ctx context.Context, symbol string) ([]entity.CalendarEvent, error) {
	doc, err := r.fetchDocument(ctx, fmt.Sprintf("https://borsaistanbul.com/tr/sirketler/%s", symbol))
	if err != nil {
		return nil, err
	}

	var events []entity.CalendarEvent
	doc.Find("div:contains('Genel Kurul')").Each(func(i int, section *goquery.Selection) {
		dateText := strings.TrimSpace(section.Find("span.date, time").First().Text())
		if dateText == "" {
			return
		}
		eventDate, err := parser.ResolveDate(dateText, utils.TimeNowIstanbul())
		if err != nil {
			return
		}
		events = append(events, entity.CalendarEvent{
			Symbol:      symbol,
			EventType:   entity.EventTypeGenelKurul,
			EventDate:   eventDate,
			Description: "Genel Kurul Toplantısı",
			Source:      "BIST",
			Status:      eventStatus(eventDate),
		})
	})
	return events, nil
}

func (r *kapRepository) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status %d from %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// CategorizeAnnouncement maps announcement text to a calendar event type.
func CategorizeAnnouncement(title, category string) string {
	titleLower := strings.ToLower(title)
	switch {
	case containsAny(titleLower, "bilanço", "finansal", "gelir", "kar", "zarar"):
		return entity.EventTypeBilanco
	case containsAny(titleLower, "genel kurul", "toplantı"):
		return entity.EventTypeGenelKurul
	case containsAny(titleLower, "temettü", "kar payı", "dividend"):
		return entity.EventTypeTemettu
	case containsAny(titleLower, "sermaye", "artırım"):
		return entity.EventTypeSermayeArtirimi
	case containsAny(titleLower, "birleşme", "devralma", "satın alma"):
		return entity.EventTypeKurumsalOlay
	default:
		return entity.EventTypeDiger
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func eventStatus(eventDate time.Time) string {
	if eventDate.After(time.Now()) {
		return StatusPending
	}
	return StatusCompleted
}

func dedupeEvents(events []entity.CalendarEvent) []entity.CalendarEvent {
	seen := make(map[string]bool, len(events))
	out := make([]entity.CalendarEvent, 0, len(events))
	for _, e := range events {
		desc := e.Description
		if len(desc) > 50 {
			desc = desc[:50]
		}
		key := fmt.Sprintf("%s_%s_%s", e.EventDate.Format("2006-01-02"), e.EventType, desc)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
