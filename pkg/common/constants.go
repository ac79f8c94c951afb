package common

const (
	// DefaultTicker is the Yahoo Finance symbol the assistant is built around.
	DefaultTicker = "KCHOL.IS"

	// DefaultLookbackDays is the trailing OHLCV window used for indicator
	// computation. The 200-day SMA needs most of it.
	DefaultLookbackDays = 300

	// DefaultNewsDays is the trailing window for news sentiment analysis.
	DefaultNewsDays = 7

	// DefaultSimulationAmount is the investment amount assumed when a
	// simulation request does not contain a parseable amount, in TL.
	DefaultSimulationAmount = 10000.0

	// DefaultCalendarSymbol is the company code used for financial
	// calendar scraping when none is given.
	DefaultCalendarSymbol = "KCHOL"
)
