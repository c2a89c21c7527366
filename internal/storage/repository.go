package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PricesRepository defines the contract for price data access.
//
// Read methods follow the "absent means nil" convention: when a symbol has
// no matching rows they return (nil, nil), never an error. Database failures
// are returned as-is so callers can treat them as internal errors.
type PricesRepository interface {
	InsertPricesBatch(ctx context.Context, points []models.PricePoint) error

	AllSymbols(ctx context.Context) ([]string, error)

	MinPrice(ctx context.Context, symbol string) (*decimal.Decimal, error)
	MaxPrice(ctx context.Context, symbol string) (*decimal.Decimal, error)
	MinPriceInRange(ctx context.Context, symbol string, startMs, endMs int64) (*decimal.Decimal, error)
	MaxPriceInRange(ctx context.Context, symbol string, startMs, endMs int64) (*decimal.Decimal, error)

	OldestPoint(ctx context.Context, symbol string) (*models.PricePoint, error)
	NewestPoint(ctx context.Context, symbol string) (*models.PricePoint, error)
	MinPoint(ctx context.Context, symbol string) (*models.PricePoint, error)
	MaxPoint(ctx context.Context, symbol string) (*models.PricePoint, error)

	HasIngestionForFile(ctx context.Context, filename string) (bool, error)
	UpsertIngestionLog(ctx context.Context, filename, symbol string, rowCount int) error
	DeletePricesBySymbol(ctx context.Context, symbol string) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// InsertPricesBatch inserts multiple price points into the DB in a single transaction.
func (r *pricesRepository) InsertPricesBatch(ctx context.Context, points []models.PricePoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"prices",
		"symbol",
		"price_timestamp",
		"price",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, p := range points {
		if _, err := stmt.Exec(p.Symbol, p.Timestamp, p.Price.String()); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// AllSymbols returns every known symbol in a fixed alphabetical order.
// The order is the enumeration order used for ranking tie-breaks.
func (r *pricesRepository) AllSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM prices ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// MinPrice returns the lowest price ever recorded for a symbol, or nil when
// the symbol is unknown.
func (r *pricesRepository) MinPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	return r.scanPrice(r.db.QueryRowContext(ctx,
		`SELECT MIN(price) FROM prices WHERE symbol = $1`, symbol))
}

// MaxPrice returns the highest price ever recorded for a symbol, or nil when
// the symbol is unknown.
func (r *pricesRepository) MaxPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	return r.scanPrice(r.db.QueryRowContext(ctx,
		`SELECT MAX(price) FROM prices WHERE symbol = $1`, symbol))
}

// MinPriceInRange returns the lowest price within [startMs, endMs), or nil
// when no point falls inside the window.
func (r *pricesRepository) MinPriceInRange(ctx context.Context, symbol string, startMs, endMs int64) (*decimal.Decimal, error) {
	return r.scanPrice(r.db.QueryRowContext(ctx,
		`SELECT MIN(price) FROM prices WHERE symbol = $1 AND price_timestamp >= $2 AND price_timestamp < $3`,
		symbol, startMs, endMs))
}

// MaxPriceInRange returns the highest price within [startMs, endMs), or nil
// when no point falls inside the window.
func (r *pricesRepository) MaxPriceInRange(ctx context.Context, symbol string, startMs, endMs int64) (*decimal.Decimal, error) {
	return r.scanPrice(r.db.QueryRowContext(ctx,
		`SELECT MAX(price) FROM prices WHERE symbol = $1 AND price_timestamp >= $2 AND price_timestamp < $3`,
		symbol, startMs, endMs))
}

// OldestPoint returns the earliest point by timestamp for a symbol.
func (r *pricesRepository) OldestPoint(ctx context.Context, symbol string) (*models.PricePoint, error) {
	return r.scanPoint(r.db.QueryRowContext(ctx,
		`SELECT price_timestamp, symbol, price FROM prices
		 WHERE symbol = $1 ORDER BY price_timestamp ASC, price ASC LIMIT 1`, symbol))
}

// NewestPoint returns the latest point by timestamp for a symbol.
func (r *pricesRepository) NewestPoint(ctx context.Context, symbol string) (*models.PricePoint, error) {
	return r.scanPoint(r.db.QueryRowContext(ctx,
		`SELECT price_timestamp, symbol, price FROM prices
		 WHERE symbol = $1 ORDER BY price_timestamp DESC, price ASC LIMIT 1`, symbol))
}

// MinPoint returns the point carrying the lowest price for a symbol.
// The secondary timestamp key keeps ties deterministic.
func (r *pricesRepository) MinPoint(ctx context.Context, symbol string) (*models.PricePoint, error) {
	return r.scanPoint(r.db.QueryRowContext(ctx,
		`SELECT price_timestamp, symbol, price FROM prices
		 WHERE symbol = $1 ORDER BY price ASC, price_timestamp ASC LIMIT 1`, symbol))
}

// MaxPoint returns the point carrying the highest price for a symbol.
func (r *pricesRepository) MaxPoint(ctx context.Context, symbol string) (*models.PricePoint, error) {
	return r.scanPoint(r.db.QueryRowContext(ctx,
		`SELECT price_timestamp, symbol, price FROM prices
		 WHERE symbol = $1 ORDER BY price DESC, price_timestamp ASC LIMIT 1`, symbol))
}

// HasIngestionForFile checks if a source file was already loaded.
func (r *pricesRepository) HasIngestionForFile(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a source file.
func (r *pricesRepository) UpsertIngestionLog(ctx context.Context, filename, symbol string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (filename, symbol, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (filename)
		DO UPDATE SET symbol = EXCLUDED.symbol,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, filename, symbol, rowCount)
	return err
}

// DeletePricesBySymbol removes all points for a symbol (used by forced re-ingestion).
func (r *pricesRepository) DeletePricesBySymbol(ctx context.Context, symbol string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prices WHERE symbol = $1`, symbol)
	return err
}

// scanPrice maps a single NUMERIC column to a decimal, with NULL meaning
// "no data" rather than an error.
func (r *pricesRepository) scanPrice(row *sql.Row) (*decimal.Decimal, error) {
	var raw sql.NullString
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !raw.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw.String)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", raw.String, err)
	}
	return &d, nil
}

// scanPoint maps a (timestamp, symbol, price) row to a PricePoint, with
// sql.ErrNoRows meaning "no data".
func (r *pricesRepository) scanPoint(row *sql.Row) (*models.PricePoint, error) {
	var (
		ts  int64
		sym string
		raw string
	)
	if err := row.Scan(&ts, &sym, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return &models.PricePoint{Timestamp: ts, Symbol: sym, Price: price}, nil
}
