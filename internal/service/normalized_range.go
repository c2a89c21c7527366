package service

import (
	"context"
	"sort"
	"time"

	"github.com/guttosm/cryptopulse/internal/cache"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
	"github.com/shopspring/decimal"
)

// normalizedRangeScale is the number of fractional digits kept when dividing.
const normalizedRangeScale = 8

// NormalizedRangeService ranks symbols by relative volatility.
type NormalizedRangeService interface {
	// ListByNormalizedRange returns every symbol with a defined normalized
	// range over its full history, sorted descending. Symbols without a
	// defined range are dropped; an empty result is not an error.
	ListByNormalizedRange(ctx context.Context) ([]models.NormalizedCrypto, error)

	// GetHighestNormalizedRange returns the symbol with the highest
	// normalized range within the UTC day of the given date. It returns a
	// *NotFoundError when no symbol has a defined range in that window.
	GetHighestNormalizedRange(ctx context.Context, date time.Time) (*models.NormalizedCrypto, error)
}

type normalizedRangeService struct {
	repo  storage.PricesRepository
	cache cache.RankingCache // optional; nil disables caching
}

func NewNormalizedRangeService(repo storage.PricesRepository, cache cache.RankingCache) NormalizedRangeService {
	return &normalizedRangeService{repo: repo, cache: cache}
}

// normalizedRange applies the core rule (max-min)/min rounded half-up to
// 8 fractional digits. The range is undefined when min is absent or zero:
// there is no positive baseline to normalize against.
func normalizedRange(min, max *decimal.Decimal) (decimal.Decimal, bool) {
	if min == nil || max == nil || min.IsZero() {
		return decimal.Decimal{}, false
	}
	return max.Sub(*min).DivRound(*min, normalizedRangeScale), true
}

func (s *normalizedRangeService) ListByNormalizedRange(ctx context.Context) ([]models.NormalizedCrypto, error) {
	if s.cache != nil {
		if ranking, ok := s.cache.GetRanking(ctx); ok {
			return ranking, nil
		}
	}

	symbols, err := s.repo.AllSymbols(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make([]models.NormalizedCrypto, 0, len(symbols))
	for _, symbol := range symbols {
		min, err := s.repo.MinPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
		max, err := s.repo.MaxPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
		nr, ok := normalizedRange(min, max)
		if !ok {
			continue
		}
		ranking = append(ranking, models.NormalizedCrypto{Symbol: symbol, NormalizedRange: nr})
	}

	// Stable sort keeps equal ranges in symbol enumeration order.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].NormalizedRange.GreaterThan(ranking[j].NormalizedRange)
	})

	if s.cache != nil {
		s.cache.SetRanking(ctx, ranking)
	}
	return ranking, nil
}

func (s *normalizedRangeService) GetHighestNormalizedRange(ctx context.Context, date time.Time) (*models.NormalizedCrypto, error) {
	// Half-open UTC day window [00:00 of date, 00:00 of date+1) in epoch ms.
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	startMs := start.UnixMilli()
	endMs := start.AddDate(0, 0, 1).UnixMilli()

	symbols, err := s.repo.AllSymbols(ctx)
	if err != nil {
		return nil, err
	}

	var best *models.NormalizedCrypto
	for _, symbol := range symbols {
		min, err := s.repo.MinPriceInRange(ctx, symbol, startMs, endMs)
		if err != nil {
			return nil, err
		}
		max, err := s.repo.MaxPriceInRange(ctx, symbol, startMs, endMs)
		if err != nil {
			return nil, err
		}
		nr, ok := normalizedRange(min, max)
		if !ok {
			continue
		}
		// Strictly-greater replacement: the first symbol in enumeration
		// order wins a tie.
		if best == nil || nr.GreaterThan(best.NormalizedRange) {
			best = &models.NormalizedCrypto{Symbol: symbol, NormalizedRange: nr}
		}
	}

	if best == nil {
		return nil, newNotFound("No crypto data found for the requested date: " + start.Format("2006-01-02"))
	}
	return best, nil
}
