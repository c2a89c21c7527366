package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
	"github.com/shopspring/decimal"
)

// expectedHeaders enforces strict column ordering for crypto value files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"timestamp",
	"symbol",
	"price",
}

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching expected order/length
//   - rows with an unparsable timestamp or price
//   - unrecoverable I/O errors
//
// Symbols are canonicalized to uppercase here, at the boundary, before any
// row reaches storage.
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path string, repo storage.PricesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable but we check explicitly

	// Validate headers strictly.
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	// Parse rows streaming; flush batches to DB.
	buf := make([]models.PricePoint, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPricesBatch(ctx, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read line %d: %w", lineNumber+1, err)
		}
		lineNumber++

		if len(record) != len(expectedHeaders) {
			return 0, fmt.Errorf("line %d: expected %d columns, got %d", lineNumber, len(expectedHeaders), len(record))
		}

		point, err := parseRecord(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, point)
		total++

		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("insert batch ending at line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("insert final batch: %w", err)
	}

	return total, nil
}

// parseRecord converts one CSV row (timestamp,symbol,price) into a PricePoint.
func parseRecord(record []string) (models.PricePoint, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return models.PricePoint{}, fmt.Errorf("parse timestamp %q: %w", record[0], err)
	}

	symbol := strings.ToUpper(strings.TrimSpace(record[1]))
	if symbol == "" {
		return models.PricePoint{}, fmt.Errorf("empty symbol")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return models.PricePoint{}, fmt.Errorf("parse price %q: %w", record[2], err)
	}

	return models.PricePoint{Timestamp: ts, Symbol: symbol, Price: price}, nil
}
