package service

import (
	"context"
	"strings"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// CryptoStatsService exposes per-symbol summary statistics.
type CryptoStatsService interface {
	// GetStats returns the oldest, newest, minimum-price and maximum-price
	// points of a symbol. The lookup is case-insensitive. It returns a
	// *NotFoundError when any of the four points is absent; a partial
	// result is never produced.
	GetStats(ctx context.Context, symbol string) (*models.CryptoStats, error)
}

type cryptoStatsService struct {
	repo storage.PricesRepository
}

func NewCryptoStatsService(repo storage.PricesRepository) CryptoStatsService {
	return &cryptoStatsService{repo: repo}
}

func (s *cryptoStatsService) GetStats(ctx context.Context, symbol string) (*models.CryptoStats, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))

	// Four independent point lookups; the full series is never materialized.
	oldest, err := s.repo.OldestPoint(ctx, sym)
	if err != nil {
		return nil, err
	}
	newest, err := s.repo.NewestPoint(ctx, sym)
	if err != nil {
		return nil, err
	}
	min, err := s.repo.MinPoint(ctx, sym)
	if err != nil {
		return nil, err
	}
	max, err := s.repo.MaxPoint(ctx, sym)
	if err != nil {
		return nil, err
	}

	if oldest == nil || newest == nil || min == nil || max == nil {
		return nil, newNotFound("There is no data for the requested crypto: " + sym)
	}

	return &models.CryptoStats{
		Symbol: sym,
		Oldest: *oldest,
		Newest: *newest,
		Min:    *min,
		Max:    *max,
	}, nil
}
