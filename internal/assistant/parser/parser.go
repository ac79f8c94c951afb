// Package parser extracts tickers, date expressions and investment amounts
// from free-text Turkish messages. All functions are pure.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/pkg/common"
)

var knownTickers = []string{
	"KCHOL", "THYAO", "GARAN", "AKBNK", "ISCTR", "SAHOL", "ASELS",
	"EREGL", "TUPRS", "FROTO", "TOASO", "ARCLK", "YKBNK", "BIMAS",
	"SISE", "PETKM", "KOZAL", "TCELL",
}

var turkishMonths = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
}

var monthNames = []string{
	"ocak", "şubat", "mart", "nisan", "mayıs", "haziran",
	"temmuz", "ağustos", "eylül", "ekim", "kasım", "aralık",
}

var (
	tickerRe = regexp.MustCompile(`\b(` + strings.Join(knownTickers, "|") + `)(\.IS)?\b`)

	relativeDateRe  = regexp.MustCompile(`(\d+)\s*(ay|yıl|sene|hafta|gün)\s*önce`)
	yearEdgeRe      = regexp.MustCompile(`(\d{4})\s*(başı|sonu)`)
	isoDateRe       = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dottedDateRe    = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`)
	monthNameDateRe = regexp.MustCompile(`(\d{1,2})\s+(` + strings.Join(monthNames, "|") + `)\s+(\d{4})`)

	thousandsShortRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(bin|milyon)`)
	dottedAmountRe   = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d+)?`)
	plainAmountRe    = regexp.MustCompile(`\d{3,}(?:,\d+)?`)
)

// ExtractTicker finds a known BIST code in the message and returns it in
// Yahoo Finance form (CODE.IS). Defaults to KCHOL.IS.
func ExtractTicker(message string) string {
	if m := tickerRe.FindStringSubmatch(strings.ToUpper(message)); m != nil {
		return m[1] + ".IS"
	}
	return common.DefaultTicker
}

// MentionsTicker reports whether the message names a known BIST code.
func MentionsTicker(message string) bool {
	return tickerRe.MatchString(strings.ToUpper(message))
}

// ExtractDateExpr finds the date expression in the message, or the default
// "1 ay önce" when none is present.
func ExtractDateExpr(message string) string {
	lower := strings.ToLower(message)
	for _, re := range []*regexp.Regexp{relativeDateRe, yearEdgeRe, isoDateRe, dottedDateRe, monthNameDateRe} {
		if m := re.FindString(lower); m != "" {
			return m
		}
	}
	return "1 ay önce"
}

// ResolveDate converts a date expression to a calendar date relative to now.
// Supported forms: "N ay/yıl/hafta/gün önce", "YYYY başı", "YYYY sonu",
// "YYYY-MM-DD", "dd.mm.yyyy" and "15 mart 2023".
func ResolveDate(expr string, now time.Time) (time.Time, error) {
	lower := strings.TrimSpace(strings.ToLower(expr))

	if m := relativeDateRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return time.Time{}, errs.ErrDateResolution
		}
		switch m[2] {
		case "ay":
			return now.AddDate(0, -n, 0), nil
		case "yıl", "sene":
			return now.AddDate(-n, 0, 0), nil
		case "hafta":
			return now.AddDate(0, 0, -7*n), nil
		case "gün":
			return now.AddDate(0, 0, -n), nil
		}
	}

	if m := yearEdgeRe.FindStringSubmatch(lower); m != nil {
		year, _ := strconv.Atoi(m[1])
		if m[2] == "başı" {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()), nil
		}
		return time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location()), nil
	}

	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		return buildDate(m[1], m[2], m[3], now.Location())
	}

	if m := dottedDateRe.FindStringSubmatch(lower); m != nil {
		return buildDate(m[3], m[2], m[1], now.Location())
	}

	if m := monthNameDateRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, turkishMonths[m[2]], day, 0, 0, 0, 0, now.Location()), nil
	}

	return time.Time{}, errs.ErrDateResolution
}

func buildDate(y, m, d string, loc *time.Location) (time.Time, error) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, errs.ErrDateResolution
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// ExtractAmount finds an investment amount in the message. "10 bin" style
// shorthand and dotted thousands separators ("1.500.000") are supported.
// Date expressions are masked out first so "1 ay önce" never reads as an
// amount. Defaults to 10000 when nothing parseable remains.
func ExtractAmount(message string) float64 {
	lower := strings.ToLower(message)

	// Mask the date expression so its digits are not mistaken for an amount.
	if expr := ExtractDateExpr(lower); expr != "1 ay önce" || strings.Contains(lower, "1 ay önce") {
		lower = strings.Replace(lower, expr, " ", 1)
	}

	if m := thousandsShortRe.FindStringSubmatch(lower); m != nil {
		base := parseDecimal(m[1])
		switch m[2] {
		case "bin":
			return base * 1000
		case "milyon":
			return base * 1000000
		}
	}

	if m := dottedAmountRe.FindString(lower); m != "" {
		cleaned := strings.ReplaceAll(m, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return v
		}
	}

	if m := plainAmountRe.FindString(lower); m != "" {
		if v := parseDecimal(m); v > 0 {
			return v
		}
	}

	return common.DefaultSimulationAmount
}

func parseDecimal(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Horizon labels for advice requests.
const (
	HorizonLong    = "long"
	HorizonShort   = "short"
	HorizonDCA     = "dca"
	HorizonGeneral = "general"
)

// DetectHorizon classifies the investment horizon mentioned in a message.
func DetectHorizon(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "uzun vade", "uzun vadeli", "emeklilik", "yıllarca"):
		return HorizonLong
	case containsAny(lower, "kısa vade", "kısa vadeli", "günlük", "trade", "al sat"):
		return HorizonShort
	case containsAny(lower, "düzenli", "her ay", "aylık alım", "maaş", "birikim"):
		return HorizonDCA
	default:
		return HorizonGeneral
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
