package utils

import (
	"log"
	"math"
	"time"
)

// TimeNowIstanbul returns the current time in the Borsa Istanbul time zone.
func TimeNowIstanbul() time.Time {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// NextTradingDay returns the first weekday strictly after t.
// Saturday and Sunday are skipped day by day.
func NextTradingDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Round2 rounds a value to two decimal places, matching the precision used
// for all monetary and percentage fields in API responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
