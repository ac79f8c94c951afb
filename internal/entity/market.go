package entity

import "time"

// OHLCV is a single daily bar of market data, normalized to lowercase
// single-level fields regardless of how the provider labels its columns.
type OHLCV struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
