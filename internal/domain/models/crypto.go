package models

import "github.com/shopspring/decimal"

// PricePoint is a single observation of a crypto price.
//
// Fields:
//   - Timestamp: observation time as UTC epoch milliseconds.
//   - Symbol: canonical (uppercase) ticker symbol, e.g. "BTC".
//   - Price: quoted price; decimals keep the CSV values exact.
//
// Points are created once at ingestion and never mutated.
type PricePoint struct {
	Timestamp int64           `json:"timestamp" example:"1641009600000"`
	Symbol    string          `json:"symbol" example:"BTC"`
	Price     decimal.Decimal `json:"price" example:"46813.21"`
}

// CryptoStats bundles the four reference points of a symbol's history.
//
// All four refer to the same symbol; the service fails entirely when any of
// them is missing, so a populated CryptoStats is always complete.
//
// swagger:model CryptoStats
type CryptoStats struct {
	Symbol string     `json:"symbol" example:"BTC"`
	Oldest PricePoint `json:"oldest"`
	Newest PricePoint `json:"newest"`
	Min    PricePoint `json:"min"`
	Max    PricePoint `json:"max"`
}

// NormalizedCrypto is a symbol ranked by its normalized range
// (max-min)/min, rounded half-up to 8 fractional digits.
//
// swagger:model NormalizedCrypto
type NormalizedCrypto struct {
	Symbol          string          `json:"symbol" example:"ETH"`
	NormalizedRange decimal.Decimal `json:"normalizedRange" example:"0.63838634"`
}
