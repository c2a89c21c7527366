package dto

import (
	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// CryptoStatsResponse wraps the stats payload of GET /cryptos/{symbol}/stats.
//
// Response DTOs are kept separate from internal domain models so the API
// surface can evolve without leaking storage concerns.
type CryptoStatsResponse struct {
	Stats models.CryptoStats `json:"stats"`
}

// NormalizedCryptosResponse is the body of GET /cryptos/list-by-normalized-range.
// Entries are sorted by normalized range, descending.
type NormalizedCryptosResponse struct {
	NormalizedCryptos []models.NormalizedCrypto `json:"normalizedCryptos"`
}

// HighestNormalizedRangeResponse is the body of GET /cryptos/highest-normalized-range.
type HighestNormalizedRangeResponse struct {
	HighestNormalizedRangeCrypto models.NormalizedCrypto `json:"highestNormalizedRangeCrypto"`
}
